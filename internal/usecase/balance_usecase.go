package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// BalanceUseCase is the adjustment service in front of the balance store.
type BalanceUseCase struct {
	balanceRepo BalanceRepository
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(balanceRepo BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{balanceRepo: balanceRepo}
}

// GetBalance returns the current amount of one register.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, kind domain.Kind) (decimal.Decimal, error) {
	if !kind.Valid() {
		return decimal.Zero, domain.ErrUnknownAccountKind
	}

	return uc.balanceRepo.Get(ctx, kind)
}

// ListBalances returns every register, including ones never adjusted.
func (uc *BalanceUseCase) ListBalances(ctx context.Context) ([]*domain.Balance, error) {
	stored, err := uc.balanceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byKind := make(map[domain.Kind]*domain.Balance, len(stored))
	for _, b := range stored {
		byKind[b.Kind] = b
	}

	balances := make([]*domain.Balance, 0, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		if b, ok := byKind[kind]; ok {
			balances = append(balances, b)
			continue
		}

		balances = append(balances, &domain.Balance{Kind: kind, Amount: decimal.Zero})
	}

	return balances, nil
}

// Adjust applies a signed delta to one register. A zero delta is a no-op.
// Storage errors surface unchanged; retries belong to the storage adapter.
func (uc *BalanceUseCase) Adjust(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error {
	if !kind.Valid() {
		return domain.ErrUnknownAccountKind
	}

	if delta.IsZero() {
		return nil
	}

	return uc.balanceRepo.ApplyDelta(ctx, kind, delta)
}

// ComputeDelta returns the movement needed when a committed amount changes
// from oldAmount to newAmount. The register moves by exactly the difference,
// never by a from-scratch recomputation.
func ComputeDelta(oldAmount, newAmount decimal.Decimal) decimal.Decimal {
	return newAmount.Sub(oldAmount)
}
