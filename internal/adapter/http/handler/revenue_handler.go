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

// RevenueService defines the behavior needed by RevenueHandler.
type RevenueService interface {
	CreateRevenue(ctx context.Context, input usecase.CreateRevenueInput) (*domain.Revenue, error)
	GetRevenue(ctx context.Context, id string) (*domain.Revenue, error)
	ListRevenues(ctx context.Context, input usecase.ListRevenuesInput) ([]*domain.Revenue, error)
	UpdateRevenue(ctx context.Context, id string, input usecase.UpdateRevenueInput) (*domain.Revenue, error)
	DeleteRevenue(ctx context.Context, id string) error
}

// RevenueHandler handles revenue-related HTTP requests.
type RevenueHandler struct {
	revenueUC RevenueService
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewRevenueHandler creates a new RevenueHandler.
func NewRevenueHandler(revenueUC RevenueService, logger zerolog.Logger, m *metrics.Metrics) *RevenueHandler {
	return &RevenueHandler{
		revenueUC: revenueUC,
		logger:    logger,
		metrics:   m,
	}
}

// Create creates a new revenue.
func (h *RevenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRevenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(ownerID(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid revenue", err.Error())
		return
	}

	revenue, err := h.revenueUC.CreateRevenue(r.Context(), input)
	if err != nil && !h.reconciliationWarning(w, r, http.StatusCreated, revenue, err) {
		writeError(w, mapDomainError(err), "failed to create revenue", err.Error())
		return
	}

	if err != nil {
		return
	}

	h.metrics.RevenueOperations.WithLabelValues("create").Inc()
	writeJSON(w, http.StatusCreated, dto.RevenueFromDomain(revenue))
}

// Get retrieves a revenue by ID.
func (h *RevenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing revenue ID", "")
		return
	}

	revenue, err := h.revenueUC.GetRevenue(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get revenue", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RevenueFromDomain(revenue))
}

// List lists revenues filtered by company and receipt-date window.
func (h *RevenueHandler) List(w http.ResponseWriter, r *http.Request) {
	revenues, err := h.revenueUC.ListRevenues(r.Context(), usecase.ListRevenuesInput{
		Company: r.URL.Query().Get("company"),
		From:    parseTimeQuery(r, "from"),
		To:      parseTimeQuery(r, "to"),
		Limit:   parseIntQuery(r, "limit", 0),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list revenues", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListRevenuesResponse{
		Revenues: dto.RevenuesFromDomain(revenues),
		Total:    int64(len(revenues)),
	})
}

// Update replaces a revenue.
func (h *RevenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing revenue ID", "")
		return
	}

	var req dto.UpdateRevenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid revenue", err.Error())
		return
	}

	revenue, err := h.revenueUC.UpdateRevenue(r.Context(), id, input)
	if err != nil && !h.reconciliationWarning(w, r, http.StatusOK, revenue, err) {
		writeError(w, mapDomainError(err), "failed to update revenue", err.Error())
		return
	}

	if err != nil {
		return
	}

	h.metrics.RevenueOperations.WithLabelValues("update").Inc()
	writeJSON(w, http.StatusOK, dto.RevenueFromDomain(revenue))
}

// Delete removes a revenue.
func (h *RevenueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing revenue ID", "")
		return
	}

	err := h.revenueUC.DeleteRevenue(r.Context(), id)
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

		writeError(w, mapDomainError(err), "failed to delete revenue", err.Error())

		return
	}

	h.metrics.RevenueOperations.WithLabelValues("delete").Inc()
	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: true})
}

func (h *RevenueHandler) reconciliationWarning(w http.ResponseWriter, r *http.Request, status int, revenue *domain.Revenue, err error) bool {
	var reconErr *usecase.ReconciliationRequiredError
	if !errors.As(err, &reconErr) {
		return false
	}

	h.logReconciliationRequired(r, reconErr)

	resp := dto.RevenueFromDomain(revenue)
	resp.Warning = dto.WarningReconciliationRequired
	writeJSON(w, status, resp)

	return true
}

func (h *RevenueHandler) logReconciliationRequired(r *http.Request, reconErr *usecase.ReconciliationRequiredError) {
	h.metrics.ReconciliationRequired.WithLabelValues(reconErr.RecordType, string(reconErr.Kind)).Inc()
	h.logger.Error().
		Err(reconErr).
		Str("record_id", reconErr.RecordID).
		Str("kind", string(reconErr.Kind)).
		Str("delta", reconErr.Delta.String()).
		Str("path", r.URL.Path).
		Msg("balance adjustment not applied, reconciliation required")
}
