package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records where and when a paid expense was settled.
// Its presence on an Expense is the paid flag: an expense is paid exactly
// when Payment is non-nil, which makes "source required iff paid"
// structural rather than a runtime check.
type Payment struct {
	Source Kind
	PaidAt time.Time
}

// Expense represents a single expense record.
type Expense struct {
	ID             string
	Amount         decimal.Decimal
	InterestAmount decimal.Decimal
	Company        string
	Category       string
	DueDate        time.Time
	Payment        *Payment
	Owner          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalAmount is the amount that moves a register when the expense is paid.
// Interest is debited from the same source as the principal.
func (e *Expense) TotalAmount() decimal.Decimal {
	return e.Amount.Add(e.InterestAmount)
}

// IsPaid reports whether the expense has been settled.
func (e *Expense) IsPaid() bool {
	return e.Payment != nil
}

// Validate checks the expense's invariants.
func (e *Expense) Validate() error {
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}

	if e.InterestAmount.IsNegative() {
		return ErrNegativeAmount
	}

	if err := ValidateCompany(e.Company); err != nil {
		return err
	}

	if e.Payment != nil && !e.Payment.Source.Valid() {
		return ErrUnknownAccountKind
	}

	return nil
}
