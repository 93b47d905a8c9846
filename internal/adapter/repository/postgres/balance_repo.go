package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
)

// BalanceRepository implements usecase.BalanceRepository on top of a single
// balances table keyed by register kind. The read-modify-write of ApplyDelta
// happens inside one UPSERT statement, so concurrent adjustments serialize
// in the database row lock rather than in application code.
type BalanceRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool, retrier *Retrier) *BalanceRepository {
	return &BalanceRepository{
		pool:    pool,
		retrier: retrier,
	}
}

// Get returns the stored amount for one register. A register that was never
// adjusted reads as zero.
func (r *BalanceRepository) Get(ctx context.Context, kind domain.Kind) (decimal.Decimal, error) {
	const query = `SELECT amount FROM balances WHERE kind = $1`

	var amount pgtype.Numeric

	err := r.pool.QueryRow(ctx, query, string(kind)).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	return numericToDecimal(amount), nil
}

// ApplyDelta atomically adds delta to the register, creating the row on
// first use. Transient conflicts (deadlocks, serialization failures) are
// retried; the statement itself is idempotent per invocation only, so the
// retrier re-runs it solely when the previous attempt did not commit.
func (r *BalanceRepository) ApplyDelta(ctx context.Context, kind domain.Kind, delta decimal.Decimal) error {
	const query = `
		INSERT INTO balances (kind, amount, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (kind) DO UPDATE
		SET amount = balances.amount + EXCLUDED.amount,
		    updated_at = now()`

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, query, string(kind), decimalToNumeric(delta))

		return err
	})
}

// List returns every initialized register.
func (r *BalanceRepository) List(ctx context.Context) ([]*domain.Balance, error) {
	const query = `SELECT kind, amount, updated_at FROM balances ORDER BY kind`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.Balance

	for rows.Next() {
		var (
			kind      string
			amount    pgtype.Numeric
			updatedAt pgtype.Timestamptz
		)

		if err := rows.Scan(&kind, &amount, &updatedAt); err != nil {
			return nil, err
		}

		balances = append(balances, &domain.Balance{
			Kind:        domain.Kind(kind),
			Amount:      numericToDecimal(amount),
			LastUpdated: pgTimestamptzToTime(updatedAt),
		})
	}

	return balances, rows.Err()
}
