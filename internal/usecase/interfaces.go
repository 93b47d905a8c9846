package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// BalanceRepository defines data access for the per-kind balance registers.
type BalanceRepository interface {
	// Get returns the current signed amount for kind, decimal.Zero if the
	// register was never initialized.
	Get(ctx context.Context, kind domain.Kind) (decimal.Decimal, error)
	// ApplyDelta atomically adds delta to the stored amount, creating the
	// register on first use. The read-modify-write serializes at the
	// storage layer, never in application code.
	ApplyDelta(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error
	List(ctx context.Context) ([]*domain.Balance, error)
}

// ExpenseRepository defines data access for expense records.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.RecordFilter) ([]*domain.Expense, error)
}

// RevenueRepository defines data access for revenue records.
type RevenueRepository interface {
	Create(ctx context.Context, revenue *domain.Revenue) error
	GetByID(ctx context.Context, id string) (*domain.Revenue, error)
	Update(ctx context.Context, revenue *domain.Revenue) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.RecordFilter) ([]*domain.Revenue, error)
}

// BalanceAdjuster is the single seam through which lifecycle managers move
// a register. They never read-modify-write balances themselves.
type BalanceAdjuster interface {
	Adjust(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
