package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rmaia/saldo/internal/adapter/http/dto"
	"github.com/rmaia/saldo/internal/infrastructure/metrics"
	"github.com/rmaia/saldo/internal/usecase"
)

// ReconciliationService defines the behavior needed by
// ReconciliationHandler.
type ReconciliationService interface {
	Reconcile(ctx context.Context, scope usecase.ReconcileScope) (*usecase.ReconcileResult, error)
	Report(ctx context.Context) (*usecase.DriftReport, error)
}

// ReconciliationHandler exposes the recomputed balance view and the drift
// report.
type ReconciliationHandler struct {
	reconUC ReconciliationService
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconUC ReconciliationService, logger zerolog.Logger, m *metrics.Metrics) *ReconciliationHandler {
	return &ReconciliationHandler{
		reconUC: reconUC,
		logger:  logger,
		metrics: m,
	}
}

// Reconcile recomputes per-register balances over an optional date window
// and company scope.
func (h *ReconciliationHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	scope := usecase.ReconcileScope{
		From:    parseTimeQuery(r, "from"),
		To:      parseTimeQuery(r, "to"),
		Company: r.URL.Query().Get("company"),
	}

	result, err := h.reconUC.Reconcile(r.Context(), scope)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reconcile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconcileResponse{
		Conta:   result.Conta,
		Cofre:   result.Cofre,
		From:    scope.From,
		To:      scope.To,
		Company: scope.Company,
	})
}

// Report compares the stored registers with the all-time recomputation.
func (h *ReconciliationHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconUC.Report(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build drift report", err.Error())
		return
	}

	h.metrics.ReconciliationRuns.Inc()

	for _, entry := range report.Entries {
		drift, _ := entry.Drift.Float64()
		h.metrics.BalanceDrift.WithLabelValues(string(entry.Kind)).Set(drift)
	}

	if !report.InSync {
		h.logger.Warn().
			Time("checked_at", report.CheckedAt).
			Msg("register drift detected")
	}

	writeJSON(w, http.StatusOK, dto.DriftReportFromDomain(report))
}
