package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rmaia/saldo/internal/adapter/http/dto"
	"github.com/rmaia/saldo/internal/domain"
	"github.com/rmaia/saldo/internal/infrastructure/metrics"
	"github.com/rmaia/saldo/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, id string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, input usecase.ListExpensesInput) ([]*domain.Expense, error)
	UpdateExpense(ctx context.Context, id string, input usecase.UpdateExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService, logger zerolog.Logger, m *metrics.Metrics) *ExpenseHandler {
	return &ExpenseHandler{
		expenseUC: expenseUC,
		logger:    logger,
		metrics:   m,
	}
}

// Create creates a new expense.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(ownerID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense", err.Error())
		return
	}

	expense, err := h.expenseUC.CreateExpense(r.Context(), input)
	if err != nil && !h.reconciliationWarning(w, r, http.StatusCreated, expense, err) {
		writeError(w, mapDomainError(err), "failed to create expense", err.Error())
		return
	}

	if err != nil {
		return
	}

	h.metrics.ExpenseOperations.WithLabelValues("create").Inc()
	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Get retrieves an expense by ID.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	expense, err := h.expenseUC.GetExpense(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// List lists expenses filtered by company and paid-date window.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenseUC.ListExpenses(r.Context(), usecase.ListExpensesInput{
		Company: r.URL.Query().Get("company"),
		From:    parseTimeQuery(r, "from"),
		To:      parseTimeQuery(r, "to"),
		Limit:   parseIntQuery(r, "limit", 0),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
		Total:    int64(len(expenses)),
	})
}

// Update replaces an expense.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense", err.Error())
		return
	}

	expense, err := h.expenseUC.UpdateExpense(r.Context(), id, input)
	if err != nil && !h.reconciliationWarning(w, r, http.StatusOK, expense, err) {
		writeError(w, mapDomainError(err), "failed to update expense", err.Error())
		return
	}

	if err != nil {
		return
	}

	h.metrics.ExpenseOperations.WithLabelValues("update").Inc()
	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	err := h.expenseUC.DeleteExpense(r.Context(), id)
	if err != nil {
		var reconErr *usecase.ReconciliationRequiredError
		if errors.As(err, &reconErr) {
			h.logReconciliationRequired(r, reconErr)
			writeJSON(w, http.StatusOK, dto.DeleteResponse{
				Deleted: true,
				Warning: dto.WarningReconciliationRequired,
			})

			return
		}

		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())

		return
	}

	h.metrics.ExpenseOperations.WithLabelValues("delete").Inc()
	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: true})
}

// reconciliationWarning handles the partial-failure contract: the record
// write committed, only the balance adjustment was lost, so the client gets
// the record back with a warning instead of an error status. Returns false
// when err is not a reconciliation failure.
func (h *ExpenseHandler) reconciliationWarning(w http.ResponseWriter, r *http.Request, status int, expense *domain.Expense, err error) bool {
	var reconErr *usecase.ReconciliationRequiredError
	if !errors.As(err, &reconErr) {
		return false
	}

	h.logReconciliationRequired(r, reconErr)

	resp := dto.ExpenseFromDomain(expense)
	resp.Warning = dto.WarningReconciliationRequired
	writeJSON(w, status, resp)

	return true
}

func (h *ExpenseHandler) logReconciliationRequired(r *http.Request, reconErr *usecase.ReconciliationRequiredError) {
	h.metrics.ReconciliationRequired.WithLabelValues(reconErr.RecordType, string(reconErr.Kind)).Inc()
	h.logger.Error().
		Err(reconErr).
		Str("record_id", reconErr.RecordID).
		Str("kind", string(reconErr.Kind)).
		Str("delta", reconErr.Delta.String()).
		Str("path", r.URL.Path).
		Msg("balance adjustment not applied, reconciliation required")
}
