package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCompany = errors.New("invalid company name")
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxCompanyNameLength = 255
	MaxRecordAmount      = "1000000000" // 1 billion
)

// ValidateAmount validates a monetary amount for expenses and revenues.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxRecordAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxRecordAmount)
	}

	return nil
}

// ValidateCompany validates a company name.
func ValidateCompany(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCompany)
	}

	if len(name) > MaxCompanyNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCompany, MaxCompanyNameLength)
	}

	return nil
}

// RecordFilter bounds a bulk read of expense or revenue records.
// The date window applies to the record's settlement date: paid date for
// expenses, received date for revenues. Limit <= 0 means no limit.
type RecordFilter struct {
	Company string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
