package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// ReconciliationUseCase recomputes register balances from the full record
// history, independently of the incrementally maintained store. It is the
// cross-check that detects drift left behind by partial failures; it never
// mutates the store.
type ReconciliationUseCase struct {
	balanceRepo BalanceRepository
	expenseRepo ExpenseRepository
	revenueRepo RevenueRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	balanceRepo BalanceRepository,
	expenseRepo ExpenseRepository,
	revenueRepo RevenueRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		balanceRepo: balanceRepo,
		expenseRepo: expenseRepo,
		revenueRepo: revenueRepo,
	}
}

// ReconcileScope bounds the record history used for recomputation.
// The zero value means all-time, all companies.
type ReconcileScope struct {
	From    *time.Time
	To      *time.Time
	Company string
}

// ReconcileResult holds the recomputed amount per register.
type ReconcileResult struct {
	Conta decimal.Decimal
	Cofre decimal.Decimal
}

// Amount returns the recomputed amount for one register.
func (r *ReconcileResult) Amount(kind domain.Kind) decimal.Decimal {
	if kind == domain.KindCofre {
		return r.Cofre
	}

	return r.Conta
}

func (r *ReconcileResult) add(kind domain.Kind, amount decimal.Decimal) {
	if kind == domain.KindCofre {
		r.Cofre = r.Cofre.Add(amount)
		return
	}

	r.Conta = r.Conta.Add(amount)
}

// Reconcile recomputes each register from scratch over the scoped history:
// the sum of revenue amounts landing in the register minus the sum of paid
// expense totals drawn from it. A register with no contributing records
// comes back as zero.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, scope ReconcileScope) (*ReconcileResult, error) {
	filter := domain.RecordFilter{
		Company: scope.Company,
		From:    scope.From,
		To:      scope.To,
	}

	revenues, err := uc.revenueRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{Conta: decimal.Zero, Cofre: decimal.Zero}

	for _, revenue := range revenues {
		if !revenue.Destination.TracksBalance() {
			continue
		}

		result.add(revenue.Destination.Kind(), revenue.Amount)
	}

	for _, expense := range expenses {
		if !expense.IsPaid() {
			continue
		}

		result.add(expense.Payment.Source, expense.TotalAmount().Neg())
	}

	return result, nil
}

// DriftEntry compares one register's stored amount with the recomputed one.
type DriftEntry struct {
	Kind     domain.Kind
	Stored   decimal.Decimal
	Computed decimal.Decimal
	Drift    decimal.Decimal
	InSync   bool
}

// DriftReport is a full store-versus-history comparison.
type DriftReport struct {
	Entries   []DriftEntry
	InSync    bool
	CheckedAt time.Time
}

// Report recomputes the all-time balances and compares them with the store.
// Any non-zero drift means an adjustment was lost or double-applied and
// needs repair.
func (uc *ReconciliationUseCase) Report(ctx context.Context) (*DriftReport, error) {
	computed, err := uc.Reconcile(ctx, ReconcileScope{})
	if err != nil {
		return nil, err
	}

	report := &DriftReport{
		Entries:   make([]DriftEntry, 0, len(domain.Kinds())),
		InSync:    true,
		CheckedAt: time.Now().UTC(),
	}

	for _, kind := range domain.Kinds() {
		stored, err := uc.balanceRepo.Get(ctx, kind)
		if err != nil {
			return nil, err
		}

		drift := stored.Sub(computed.Amount(kind))
		inSync := drift.IsZero()
		if !inSync {
			report.InSync = false
		}

		report.Entries = append(report.Entries, DriftEntry{
			Kind:     kind,
			Stored:   stored,
			Computed: computed.Amount(kind),
			Drift:    drift,
			InSync:   inSync,
		})
	}

	return report, nil
}
