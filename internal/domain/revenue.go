package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Destination identifies where a revenue logically lands.
type Destination string

const (
	// DestinationConta credits the bank-account register.
	DestinationConta Destination = "conta"
	// DestinationCofre credits the safe register.
	DestinationCofre Destination = "cofre"
	// DestinationTotal tracks gross company revenue only and never
	// touches either register.
	DestinationTotal Destination = "total"
)

// Valid reports whether d is a known destination.
func (d Destination) Valid() bool {
	return d == DestinationConta || d == DestinationCofre || d == DestinationTotal
}

// TracksBalance reports whether revenues with this destination contribute
// to a cash-position register.
func (d Destination) TracksBalance() bool {
	return d == DestinationConta || d == DestinationCofre
}

// Kind returns the register credited by this destination.
// Only meaningful when TracksBalance is true.
func (d Destination) Kind() Kind {
	return Kind(d)
}

// ParseDestination parses a revenue destination.
func ParseDestination(s string) (Destination, error) {
	d := Destination(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDestination, s)
	}

	return d, nil
}

// Revenue represents a single revenue record.
type Revenue struct {
	ID          string
	Amount      decimal.Decimal
	Company     string
	Category    string
	ReceivedAt  *time.Time
	Destination Destination
	Owner       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the revenue's invariants.
func (r *Revenue) Validate() error {
	if err := ValidateAmount(r.Amount); err != nil {
		return err
	}

	if err := ValidateCompany(r.Company); err != nil {
		return err
	}

	if !r.Destination.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDestination, r.Destination)
	}

	return nil
}
