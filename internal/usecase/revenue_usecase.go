package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// RevenueUseCase handles the revenue lifecycle and its balance side effects.
type RevenueUseCase struct {
	revenueRepo RevenueRepository
	balances    BalanceAdjuster
	idGen       IDGenerator
}

// NewRevenueUseCase creates a new RevenueUseCase.
func NewRevenueUseCase(revenueRepo RevenueRepository, balances BalanceAdjuster, idGen IDGenerator) *RevenueUseCase {
	return &RevenueUseCase{
		revenueRepo: revenueRepo,
		balances:    balances,
		idGen:       idGen,
	}
}

// CreateRevenueInput represents input for creating a revenue.
type CreateRevenueInput struct {
	Amount      decimal.Decimal
	Company     string
	Category    string
	ReceivedAt  *time.Time
	Destination domain.Destination
	Owner       string
}

// UpdateRevenueInput represents the full new state of a revenue.
type UpdateRevenueInput struct {
	Amount      decimal.Decimal
	Company     string
	Category    string
	ReceivedAt  *time.Time
	Destination domain.Destination
}

// CreateRevenue creates a revenue, crediting its destination register unless
// the destination is "total". The record write is ordered before the balance
// adjustment.
func (uc *RevenueUseCase) CreateRevenue(ctx context.Context, input CreateRevenueInput) (*domain.Revenue, error) {
	now := time.Now().UTC()

	revenue := &domain.Revenue{
		ID:          uc.idGen.Generate(),
		Amount:      input.Amount,
		Company:     input.Company,
		Category:    input.Category,
		ReceivedAt:  input.ReceivedAt,
		Destination: input.Destination,
		Owner:       input.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := revenue.Validate(); err != nil {
		return nil, err
	}

	if err := uc.revenueRepo.Create(ctx, revenue); err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, revenue.ID, RevenueMovements(nil, revenue)); err != nil {
		return revenue, err
	}

	return revenue, nil
}

// GetRevenue retrieves a revenue by ID.
func (uc *RevenueUseCase) GetRevenue(ctx context.Context, id string) (*domain.Revenue, error) {
	return uc.revenueRepo.GetByID(ctx, id)
}

// ListRevenuesInput represents input for listing revenues.
type ListRevenuesInput struct {
	Company string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// ListRevenues lists revenues with filters and pagination.
func (uc *RevenueUseCase) ListRevenues(ctx context.Context, input ListRevenuesInput) ([]*domain.Revenue, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.revenueRepo.List(ctx, domain.RecordFilter{
		Company: input.Company,
		From:    input.From,
		To:      input.To,
		Limit:   limit,
		Offset:  offset,
	})
}

// UpdateRevenue replaces a revenue's fields. A destination change reverses
// the old register and reapplies on the new one; an amount change on the
// same register moves it by exactly the difference. The old side of every
// movement comes from the persisted snapshot.
func (uc *RevenueUseCase) UpdateRevenue(ctx context.Context, id string, input UpdateRevenueInput) (*domain.Revenue, error) {
	oldRevenue, err := uc.revenueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	updated := &domain.Revenue{
		ID:          oldRevenue.ID,
		Amount:      input.Amount,
		Company:     input.Company,
		Category:    input.Category,
		ReceivedAt:  input.ReceivedAt,
		Destination: input.Destination,
		Owner:       oldRevenue.Owner,
		CreatedAt:   oldRevenue.CreatedAt,
		UpdatedAt:   now,
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := uc.revenueRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, updated.ID, RevenueMovements(oldRevenue, updated)); err != nil {
		return updated, err
	}

	return updated, nil
}

// DeleteRevenue removes a revenue, reversing its credit when the destination
// tracked a register.
func (uc *RevenueUseCase) DeleteRevenue(ctx context.Context, id string) error {
	oldRevenue, err := uc.revenueRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.revenueRepo.Delete(ctx, id); err != nil {
		return err
	}

	return uc.apply(ctx, id, RevenueMovements(oldRevenue, nil))
}

func (uc *RevenueUseCase) apply(ctx context.Context, recordID string, movements []Movement) error {
	for _, m := range movements {
		if err := uc.balances.Adjust(ctx, m.Kind, m.Delta); err != nil {
			return &ReconciliationRequiredError{
				RecordType: "revenue",
				RecordID:   recordID,
				Kind:       m.Kind,
				Delta:      m.Delta,
				Err:        err,
			}
		}
	}

	return nil
}
