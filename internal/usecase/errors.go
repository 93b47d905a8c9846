package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// ReconciliationRequiredError reports a balance adjustment that failed after
// the record mutation it belongs to had already been committed. The record
// and the register are out of sync until the adjustment is replayed or the
// drift is repaired from the reconciliation view, so callers must surface it
// distinctly from a hard failure: the user-visible mutation did succeed.
type ReconciliationRequiredError struct {
	RecordType string
	RecordID   string
	Kind       domain.Kind
	Delta      decimal.Decimal
	Err        error
}

func (e *ReconciliationRequiredError) Error() string {
	return fmt.Sprintf(
		"reconciliation required: %s %s: delta %s on %s was not applied: %v",
		e.RecordType, e.RecordID, e.Delta, e.Kind, e.Err,
	)
}

func (e *ReconciliationRequiredError) Unwrap() error {
	return e.Err
}
