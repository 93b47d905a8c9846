package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies one of the two tracked cash-position registers.
type Kind string

const (
	// KindConta is the bank-account register.
	KindConta Kind = "conta"
	// KindCofre is the safe / cash-box register.
	KindCofre Kind = "cofre"
)

// Kinds lists every tracked register.
func Kinds() []Kind {
	return []Kind{KindConta, KindCofre}
}

// Valid reports whether k names a tracked register.
func (k Kind) Valid() bool {
	return k == KindConta || k == KindCofre
}

// ParseKind parses a register name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAccountKind, s)
	}

	return k, nil
}

// Balance is the current signed amount of one register.
// It is created lazily on the first adjustment and mutated only through
// the balance store's atomic delta operation.
type Balance struct {
	Kind        Kind
	Amount      decimal.Decimal
	LastUpdated time.Time
}
