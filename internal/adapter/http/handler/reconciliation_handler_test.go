package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/adapter/http/dto"
	"github.com/rmaia/saldo/internal/domain"
	"github.com/rmaia/saldo/internal/infrastructure/metrics"
	"github.com/rmaia/saldo/internal/usecase"
)

type stubReconciliationService struct {
	reconcileFunc func(ctx context.Context, scope usecase.ReconcileScope) (*usecase.ReconcileResult, error)
	reportFunc    func(ctx context.Context) (*usecase.DriftReport, error)
}

func (s *stubReconciliationService) Reconcile(ctx context.Context, scope usecase.ReconcileScope) (*usecase.ReconcileResult, error) {
	return s.reconcileFunc(ctx, scope)
}

func (s *stubReconciliationService) Report(ctx context.Context) (*usecase.DriftReport, error) {
	return s.reportFunc(ctx)
}

func newReconciliationTestHandler(svc *stubReconciliationService) (*metrics.Metrics, http.Handler) {
	m := metrics.NewWith(prometheus.NewRegistry())
	h := NewReconciliationHandler(svc, zerolog.Nop(), m)

	r := chi.NewRouter()
	r.Get("/reconciliation", h.Reconcile)
	r.Get("/reconciliation/report", h.Report)

	return m, r
}

func TestReconciliationHandlerReconcile(t *testing.T) {
	var gotScope usecase.ReconcileScope

	svc := &stubReconciliationService{
		reconcileFunc: func(_ context.Context, scope usecase.ReconcileScope) (*usecase.ReconcileResult, error) {
			gotScope = scope
			return &usecase.ReconcileResult{
				Conta: decimal.NewFromInt(375),
				Cofre: decimal.NewFromInt(200),
			}, nil
		},
	}

	_, router := newReconciliationTestHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/reconciliation?from=2026-01-01&company=padaria", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if gotScope.Company != "padaria" || gotScope.From == nil || gotScope.To != nil {
		t.Errorf("scope not forwarded: %+v", gotScope)
	}

	var resp dto.ReconcileResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if !resp.Conta.Equal(decimal.NewFromInt(375)) || !resp.Cofre.Equal(decimal.NewFromInt(200)) {
		t.Errorf("unexpected amounts: %+v", resp)
	}

	if resp.Company != "padaria" {
		t.Errorf("expected scope echoed back, got %+v", resp)
	}
}

func TestReconciliationHandlerReport(t *testing.T) {
	svc := &stubReconciliationService{
		reportFunc: func(_ context.Context) (*usecase.DriftReport, error) {
			return &usecase.DriftReport{
				Entries: []usecase.DriftEntry{
					{Kind: domain.KindConta, Stored: decimal.NewFromInt(375), Computed: decimal.NewFromInt(375), Drift: decimal.Zero, InSync: true},
					{Kind: domain.KindCofre, Stored: decimal.NewFromInt(250), Computed: decimal.NewFromInt(200), Drift: decimal.NewFromInt(50), InSync: false},
				},
				InSync:    false,
				CheckedAt: time.Now().UTC(),
			}, nil
		},
	}

	m, router := newReconciliationTestHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/reconciliation/report", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp dto.DriftReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.InSync {
		t.Error("expected report out of sync")
	}

	if len(resp.Entries) != 2 || !resp.Entries[1].Drift.Equal(decimal.NewFromInt(50)) {
		t.Errorf("unexpected entries: %+v", resp.Entries)
	}

	if got := testutil.ToFloat64(m.ReconciliationRuns); got != 1 {
		t.Errorf("expected one reconciliation run recorded, got %v", got)
	}

	if got := testutil.ToFloat64(m.BalanceDrift.WithLabelValues("cofre")); got != 50 {
		t.Errorf("expected cofre drift gauge 50, got %v", got)
	}
}

func TestReconciliationHandlerReportError(t *testing.T) {
	svc := &stubReconciliationService{
		reportFunc: func(_ context.Context) (*usecase.DriftReport, error) {
			return nil, errors.New("history unavailable")
		},
	}

	_, router := newReconciliationTestHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/reconciliation/report", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
