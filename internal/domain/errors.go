package domain

import "errors"

var (
	// Balance errors
	ErrUnknownAccountKind = errors.New("unknown account kind")

	// Expense errors
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrMissingPaymentSource = errors.New("paid expense requires a payment source")

	// Revenue errors
	ErrRevenueNotFound    = errors.New("revenue not found")
	ErrInvalidDestination = errors.New("invalid revenue destination")

	// Shared validation errors
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrNegativeAmount = errors.New("interest amount cannot be negative")
)
