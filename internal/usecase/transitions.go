package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// Movement is one single-register adjustment produced by a lifecycle
// transition.
type Movement struct {
	Kind  domain.Kind
	Delta decimal.Decimal
}

// ExpenseMovements returns the ordered register movements required by an
// expense transition. A nil old means the expense is being created, a nil
// new means it is being deleted. Every transition of the lifecycle is
// enumerable here, independent of storage:
//
//	create unpaid, update unpaid->unpaid, delete unpaid   -> none
//	create paid, update unpaid->paid                      -> debit new source
//	update paid->unpaid, delete paid                      -> credit old source
//	update paid->paid, same source                        -> debit the difference
//	update paid->paid, source changed                     -> credit old, debit new
func ExpenseMovements(oldExpense, newExpense *domain.Expense) []Movement {
	switch {
	case oldExpense == nil && newExpense == nil:
		return nil

	case oldExpense == nil:
		if !newExpense.IsPaid() {
			return nil
		}

		return []Movement{{Kind: newExpense.Payment.Source, Delta: newExpense.TotalAmount().Neg()}}

	case newExpense == nil:
		if !oldExpense.IsPaid() {
			return nil
		}

		return []Movement{{Kind: oldExpense.Payment.Source, Delta: oldExpense.TotalAmount()}}
	}

	oldPaid, newPaid := oldExpense.IsPaid(), newExpense.IsPaid()

	switch {
	case !oldPaid && !newPaid:
		return nil

	case !oldPaid && newPaid:
		return []Movement{{Kind: newExpense.Payment.Source, Delta: newExpense.TotalAmount().Neg()}}

	case oldPaid && !newPaid:
		return []Movement{{Kind: oldExpense.Payment.Source, Delta: oldExpense.TotalAmount()}}
	}

	// Paid on both sides. A source change is two independent single-register
	// movements, not a delta on one register.
	if oldExpense.Payment.Source != newExpense.Payment.Source {
		return []Movement{
			{Kind: oldExpense.Payment.Source, Delta: oldExpense.TotalAmount()},
			{Kind: newExpense.Payment.Source, Delta: newExpense.TotalAmount().Neg()},
		}
	}

	delta := ComputeDelta(oldExpense.TotalAmount(), newExpense.TotalAmount())
	if delta.IsZero() {
		return nil
	}

	return []Movement{{Kind: oldExpense.Payment.Source, Delta: delta.Neg()}}
}

// RevenueMovements returns the ordered register movements required by a
// revenue transition. A nil old means creation, a nil new means deletion.
// Revenues with destination "total" never touch a register.
func RevenueMovements(oldRevenue, newRevenue *domain.Revenue) []Movement {
	switch {
	case oldRevenue == nil && newRevenue == nil:
		return nil

	case oldRevenue == nil:
		if !newRevenue.Destination.TracksBalance() {
			return nil
		}

		return []Movement{{Kind: newRevenue.Destination.Kind(), Delta: newRevenue.Amount}}

	case newRevenue == nil:
		if !oldRevenue.Destination.TracksBalance() {
			return nil
		}

		return []Movement{{Kind: oldRevenue.Destination.Kind(), Delta: oldRevenue.Amount.Neg()}}
	}

	if oldRevenue.Destination == newRevenue.Destination {
		if !newRevenue.Destination.TracksBalance() {
			return nil
		}

		delta := ComputeDelta(oldRevenue.Amount, newRevenue.Amount)
		if delta.IsZero() {
			return nil
		}

		return []Movement{{Kind: newRevenue.Destination.Kind(), Delta: delta}}
	}

	// Destination changed: reverse on the old register, reapply on the new.
	var movements []Movement
	if oldRevenue.Destination.TracksBalance() {
		movements = append(movements, Movement{Kind: oldRevenue.Destination.Kind(), Delta: oldRevenue.Amount.Neg()})
	}

	if newRevenue.Destination.TracksBalance() {
		movements = append(movements, Movement{Kind: newRevenue.Destination.Kind(), Delta: newRevenue.Amount})
	}

	return movements
}
