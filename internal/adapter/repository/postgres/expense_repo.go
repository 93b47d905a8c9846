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

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, amount, interest_amount, company, category, due_date, paid_at, payment_source, owner, created_at, updated_at`

// Create inserts a new expense.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	const query = `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		decimalToNumeric(expense.Amount),
		decimalToNumeric(expense.InterestAmount),
		expense.Company,
		expense.Category,
		timeToPgTimestamptz(expense.DueDate),
		paymentPaidAt(expense.Payment),
		paymentSource(expense.Payment),
		expense.Owner,
		timeToPgTimestamptz(expense.CreatedAt),
		timeToPgTimestamptz(expense.UpdatedAt),
	)

	return err
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	const query = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	return expense, nil
}

// Update rewrites an existing expense.
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	const query = `
		UPDATE expenses
		SET amount = $2, interest_amount = $3, company = $4, category = $5,
		    due_date = $6, paid_at = $7, payment_source = $8, updated_at = $9
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		expense.ID,
		decimalToNumeric(expense.Amount),
		decimalToNumeric(expense.InterestAmount),
		expense.Company,
		expense.Category,
		timeToPgTimestamptz(expense.DueDate),
		paymentPaidAt(expense.Payment),
		paymentSource(expense.Payment),
		timeToPgTimestamptz(expense.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// List returns expenses matching the filter, newest first. The date window
// applies to paid_at, so it never matches unpaid expenses.
func (r *ExpenseRepository) List(ctx context.Context, filter domain.RecordFilter) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	where, args := recordFilterClauses(filter, "paid_at")

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

	var expenses []*domain.Expense

	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// recordFilterClauses builds the shared WHERE fragments for record listing.
// dateColumn is the column the From/To window applies to.
func recordFilterClauses(filter domain.RecordFilter, dateColumn string) ([]string, []any) {
	var (
		where []string
		args  []any
	)

	if filter.Company != "" {
		args = append(args, filter.Company)
		where = append(where, fmt.Sprintf("company = $%d", len(args)))
	}

	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("%s >= $%d", dateColumn, len(args)))
	}

	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("%s <= $%d", dateColumn, len(args)))
	}

	return where, args
}

func paymentPaidAt(p *domain.Payment) pgtype.Timestamptz {
	if p == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: p.PaidAt, Valid: true}
}

func paymentSource(p *domain.Payment) pgtype.Text {
	if p == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: string(p.Source), Valid: true}
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		expense   domain.Expense
		amount    pgtype.Numeric
		interest  pgtype.Numeric
		dueDate   pgtype.Timestamptz
		paidAt    pgtype.Timestamptz
		source    pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&expense.ID,
		&amount,
		&interest,
		&expense.Company,
		&expense.Category,
		&dueDate,
		&paidAt,
		&source,
		&expense.Owner,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.Amount = numericToDecimal(amount)
	expense.InterestAmount = numericToDecimal(interest)
	expense.DueDate = pgTimestamptzToTime(dueDate)
	expense.CreatedAt = pgTimestamptzToTime(createdAt)
	expense.UpdatedAt = pgTimestamptzToTime(updatedAt)

	if paidAt.Valid && source.Valid {
		expense.Payment = &domain.Payment{
			Source: domain.Kind(source.String),
			PaidAt: paidAt.Time,
		}
	}

	return &expense, nil
}
