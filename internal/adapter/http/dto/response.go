package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
	"github.com/rmaia/saldo/internal/usecase"
)

// WarningReconciliationRequired flags a response whose record was committed
// but whose balance adjustment was not applied.
const WarningReconciliationRequired = "reconciliation_required"

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Company        string          `json:"company"`
	Category       string          `json:"category,omitempty"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Paid           bool            `json:"paid"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	PaymentSource  string          `json:"payment_source,omitempty"`
	Owner          string          `json:"owner,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Warning        string          `json:"warning,omitempty"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:             e.ID,
		Amount:         e.Amount,
		InterestAmount: e.InterestAmount,
		TotalAmount:    e.TotalAmount(),
		Company:        e.Company,
		Category:       e.Category,
		Paid:           e.IsPaid(),
		Owner:          e.Owner,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}

	if !e.DueDate.IsZero() {
		due := e.DueDate
		resp.DueDate = &due
	}

	if e.Payment != nil {
		paidAt := e.Payment.PaidAt
		resp.PaidAt = &paidAt
		resp.PaymentSource = string(e.Payment.Source)
	}

	return resp
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}

	return result
}

// ListExpensesResponse wraps an expense listing.
type ListExpensesResponse struct {
	Expenses []*ExpenseResponse `json:"expenses"`
	Total    int64              `json:"total"`
}

// RevenueResponse represents a revenue in API responses.
type RevenueResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Company     string          `json:"company"`
	Category    string          `json:"category,omitempty"`
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
	Destination string          `json:"destination"`
	Owner       string          `json:"owner,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Warning     string          `json:"warning,omitempty"`
}

// RevenueFromDomain converts a domain revenue to a response.
func RevenueFromDomain(r *domain.Revenue) *RevenueResponse {
	return &RevenueResponse{
		ID:          r.ID,
		Amount:      r.Amount,
		Company:     r.Company,
		Category:    r.Category,
		ReceivedAt:  r.ReceivedAt,
		Destination: string(r.Destination),
		Owner:       r.Owner,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RevenuesFromDomain converts domain revenues to responses.
func RevenuesFromDomain(revenues []*domain.Revenue) []*RevenueResponse {
	result := make([]*RevenueResponse, len(revenues))
	for i, r := range revenues {
		result[i] = RevenueFromDomain(r)
	}

	return result
}

// ListRevenuesResponse wraps a revenue listing.
type ListRevenuesResponse struct {
	Revenues []*RevenueResponse `json:"revenues"`
	Total    int64              `json:"total"`
}

// BalanceResponse represents one register in API responses.
type BalanceResponse struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
}

// BalanceFromDomain converts a domain balance to a response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	resp := &BalanceResponse{
		Kind:   string(b.Kind),
		Amount: b.Amount,
	}

	if !b.LastUpdated.IsZero() {
		updated := b.LastUpdated
		resp.LastUpdated = &updated
	}

	return resp
}

// BalancesFromDomain converts domain balances to responses.
func BalancesFromDomain(balances []*domain.Balance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}

	return result
}

// ListBalancesResponse wraps the balance listing.
type ListBalancesResponse struct {
	Balances []*BalanceResponse `json:"balances"`
}

// ReconcileResponse is the recomputed per-register view over a scope.
type ReconcileResponse struct {
	Conta   decimal.Decimal `json:"conta"`
	Cofre   decimal.Decimal `json:"cofre"`
	From    *time.Time      `json:"from,omitempty"`
	To      *time.Time      `json:"to,omitempty"`
	Company string          `json:"company,omitempty"`
}

// DriftEntryResponse compares one register's stored and recomputed amounts.
type DriftEntryResponse struct {
	Kind     string          `json:"kind"`
	Stored   decimal.Decimal `json:"stored"`
	Computed decimal.Decimal `json:"computed"`
	Drift    decimal.Decimal `json:"drift"`
	InSync   bool            `json:"in_sync"`
}

// DriftReportResponse is the full store-versus-history comparison.
type DriftReportResponse struct {
	Entries   []DriftEntryResponse `json:"entries"`
	InSync    bool                 `json:"in_sync"`
	CheckedAt time.Time            `json:"checked_at"`
}

// DriftReportFromDomain converts a drift report to a response.
func DriftReportFromDomain(report *usecase.DriftReport) *DriftReportResponse {
	resp := &DriftReportResponse{
		Entries:   make([]DriftEntryResponse, 0, len(report.Entries)),
		InSync:    report.InSync,
		CheckedAt: report.CheckedAt,
	}

	for _, entry := range report.Entries {
		resp.Entries = append(resp.Entries, DriftEntryResponse{
			Kind:     string(entry.Kind),
			Stored:   entry.Stored,
			Computed: entry.Computed,
			Drift:    entry.Drift,
			InSync:   entry.InSync,
		})
	}

	return resp
}

// DeleteResponse acknowledges a deletion. Warning is set when the record
// was removed but its balance reversal was not applied.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Warning string `json:"warning,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
