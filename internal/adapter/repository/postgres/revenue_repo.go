package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmaia/saldo/internal/domain"
)

// RevenueRepository implements usecase.RevenueRepository.
type RevenueRepository struct {
	pool *pgxpool.Pool
}

// NewRevenueRepository creates a new RevenueRepository.
func NewRevenueRepository(pool *pgxpool.Pool) *RevenueRepository {
	return &RevenueRepository{pool: pool}
}

const revenueColumns = `id, amount, company, category, received_at, destination, owner, created_at, updated_at`

// Create inserts a new revenue.
func (r *RevenueRepository) Create(ctx context.Context, revenue *domain.Revenue) error {
	const query = `
		INSERT INTO revenues (` + revenueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		revenue.ID,
		decimalToNumeric(revenue.Amount),
		revenue.Company,
		revenue.Category,
		timePtrToPgTimestamptz(revenue.ReceivedAt),
		string(revenue.Destination),
		revenue.Owner,
		timeToPgTimestamptz(revenue.CreatedAt),
		timeToPgTimestamptz(revenue.UpdatedAt),
	)

	return err
}

// GetByID retrieves a revenue by ID.
func (r *RevenueRepository) GetByID(ctx context.Context, id string) (*domain.Revenue, error) {
	const query = `SELECT ` + revenueColumns + ` FROM revenues WHERE id = $1`

	revenue, err := scanRevenue(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRevenueNotFound
		}

		return nil, err
	}

	return revenue, nil
}

// Update rewrites an existing revenue.
func (r *RevenueRepository) Update(ctx context.Context, revenue *domain.Revenue) error {
	const query = `
		UPDATE revenues
		SET amount = $2, company = $3, category = $4, received_at = $5,
		    destination = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		revenue.ID,
		decimalToNumeric(revenue.Amount),
		revenue.Company,
		revenue.Category,
		timePtrToPgTimestamptz(revenue.ReceivedAt),
		string(revenue.Destination),
		timeToPgTimestamptz(revenue.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRevenueNotFound
	}

	return nil
}

// Delete removes a revenue.
func (r *RevenueRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM revenues WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRevenueNotFound
	}

	return nil
}

// List returns revenues matching the filter, newest first. The date window
// applies to received_at, so it never matches revenues without a receipt
// date.
func (r *RevenueRepository) List(ctx context.Context, filter domain.RecordFilter) ([]*domain.Revenue, error) {
	query := `SELECT ` + revenueColumns + ` FROM revenues`
	where, args := recordFilterClauses(filter, "received_at")

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revenues []*domain.Revenue

	for rows.Next() {
		revenue, err := scanRevenue(rows)
		if err != nil {
			return nil, err
		}

		revenues = append(revenues, revenue)
	}

	return revenues, rows.Err()
}

func scanRevenue(row pgx.Row) (*domain.Revenue, error) {
	var (
		revenue     domain.Revenue
		amount      pgtype.Numeric
		receivedAt  pgtype.Timestamptz
		destination string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&revenue.ID,
		&amount,
		&revenue.Company,
		&revenue.Category,
		&receivedAt,
		&destination,
		&revenue.Owner,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	revenue.Amount = numericToDecimal(amount)
	revenue.ReceivedAt = pgTimestamptzToTimePtr(receivedAt)
	revenue.Destination = domain.Destination(destination)
	revenue.CreatedAt = pgTimestamptzToTime(createdAt)
	revenue.UpdatedAt = pgTimestamptzToTime(updatedAt)

	return &revenue, nil
}
