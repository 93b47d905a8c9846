package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// ExpenseUseCase handles the expense lifecycle and its balance side effects.
type ExpenseUseCase struct {
	expenseRepo ExpenseRepository
	balances    BalanceAdjuster
	idGen       IDGenerator
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(expenseRepo ExpenseRepository, balances BalanceAdjuster, idGen IDGenerator) *ExpenseUseCase {
	return &ExpenseUseCase{
		expenseRepo: expenseRepo,
		balances:    balances,
		idGen:       idGen,
	}
}

// CreateExpenseInput represents input for creating an expense.
// A non-nil PaymentSource marks the expense paid; PaidAt defaults to the
// current date when omitted. A PaidAt without a source is rejected.
type CreateExpenseInput struct {
	Amount         decimal.Decimal
	InterestAmount decimal.Decimal
	Company        string
	Category       string
	DueDate        time.Time
	PaidAt         *time.Time
	PaymentSource  *domain.Kind
	Owner          string
}

// UpdateExpenseInput represents the full new state of an expense.
type UpdateExpenseInput struct {
	Amount         decimal.Decimal
	InterestAmount decimal.Decimal
	Company        string
	Category       string
	DueDate        time.Time
	PaidAt         *time.Time
	PaymentSource  *domain.Kind
}

// CreateExpense creates an expense, debiting its payment source when the
// expense is created already paid. The record write is ordered before the
// balance adjustment; an adjustment failure after the write surfaces as a
// ReconciliationRequiredError alongside the created record.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, input CreateExpenseInput) (*domain.Expense, error) {
	now := time.Now().UTC()

	payment, err := resolvePayment(input.PaymentSource, input.PaidAt, nil, now)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		ID:             uc.idGen.Generate(),
		Amount:         input.Amount,
		InterestAmount: input.InterestAmount,
		Company:        input.Company,
		Category:       input.Category,
		DueDate:        input.DueDate,
		Payment:        payment,
		Owner:          input.Owner,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, expense.ID, ExpenseMovements(nil, expense)); err != nil {
		return expense, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*domain.Expense, error) {
	return uc.expenseRepo.GetByID(ctx, id)
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	Company string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// ListExpenses lists expenses with filters and pagination.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.expenseRepo.List(ctx, domain.RecordFilter{
		Company: input.Company,
		From:    input.From,
		To:      input.To,
		Limit:   limit,
		Offset:  offset,
	})
}

// UpdateExpense replaces an expense's fields and applies whatever register
// movements the paid-status transition requires. The reversal side of every
// movement is computed from the persisted snapshot, never from a
// caller-supplied copy of the old record.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, id string, input UpdateExpenseInput) (*domain.Expense, error) {
	oldExpense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	payment, err := resolvePayment(input.PaymentSource, input.PaidAt, oldExpense.Payment, now)
	if err != nil {
		return nil, err
	}

	updated := &domain.Expense{
		ID:             oldExpense.ID,
		Amount:         input.Amount,
		InterestAmount: input.InterestAmount,
		Company:        input.Company,
		Category:       input.Category,
		DueDate:        input.DueDate,
		Payment:        payment,
		Owner:          oldExpense.Owner,
		CreatedAt:      oldExpense.CreatedAt,
		UpdatedAt:      now,
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	if err := uc.apply(ctx, updated.ID, ExpenseMovements(oldExpense, updated)); err != nil {
		return updated, err
	}

	return updated, nil
}

// DeleteExpense removes an expense, reversing its movement when it was paid.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	oldExpense, err := uc.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}

	return uc.apply(ctx, id, ExpenseMovements(oldExpense, nil))
}

func (uc *ExpenseUseCase) apply(ctx context.Context, recordID string, movements []Movement) error {
	for _, m := range movements {
		if err := uc.balances.Adjust(ctx, m.Kind, m.Delta); err != nil {
			return &ReconciliationRequiredError{
				RecordType: "expense",
				RecordID:   recordID,
				Kind:       m.Kind,
				Delta:      m.Delta,
				Err:        err,
			}
		}
	}

	return nil
}

// resolvePayment builds the paid-state variant from the request fields.
// Marking as paid without an explicit date stamps the current date; an
// already-paid expense keeps its original paid date.
func resolvePayment(source *domain.Kind, paidAt *time.Time, previous *domain.Payment, now time.Time) (*domain.Payment, error) {
	if source == nil {
		if paidAt != nil {
			return nil, domain.ErrMissingPaymentSource
		}

		return nil, nil
	}

	when := now
	switch {
	case paidAt != nil:
		when = *paidAt
	case previous != nil:
		when = previous.PaidAt
	}

	return &domain.Payment{Source: *source, PaidAt: when}, nil
}
