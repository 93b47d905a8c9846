package handler

import (
	"bytes"
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

type stubRevenueService struct {
	createFunc func(ctx context.Context, input usecase.CreateRevenueInput) (*domain.Revenue, error)
	getFunc    func(ctx context.Context, id string) (*domain.Revenue, error)
	listFunc   func(ctx context.Context, input usecase.ListRevenuesInput) ([]*domain.Revenue, error)
	updateFunc func(ctx context.Context, id string, input usecase.UpdateRevenueInput) (*domain.Revenue, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (s *stubRevenueService) CreateRevenue(ctx context.Context, input usecase.CreateRevenueInput) (*domain.Revenue, error) {
	return s.createFunc(ctx, input)
}

func (s *stubRevenueService) GetRevenue(ctx context.Context, id string) (*domain.Revenue, error) {
	return s.getFunc(ctx, id)
}

func (s *stubRevenueService) ListRevenues(ctx context.Context, input usecase.ListRevenuesInput) ([]*domain.Revenue, error) {
	return s.listFunc(ctx, input)
}

func (s *stubRevenueService) UpdateRevenue(ctx context.Context, id string, input usecase.UpdateRevenueInput) (*domain.Revenue, error) {
	return s.updateFunc(ctx, id, input)
}

func (s *stubRevenueService) DeleteRevenue(ctx context.Context, id string) error {
	return s.deleteFunc(ctx, id)
}

func newRevenueTestHandler(svc *stubRevenueService) (*metrics.Metrics, http.Handler) {
	m := metrics.NewWith(prometheus.NewRegistry())
	h := NewRevenueHandler(svc, zerolog.Nop(), m)

	r := chi.NewRouter()
	r.Post("/revenues", h.Create)
	r.Get("/revenues", h.List)
	r.Get("/revenues/{id}", h.Get)
	r.Put("/revenues/{id}", h.Update)
	r.Delete("/revenues/{id}", h.Delete)

	return m, r
}

func sampleRevenue() *domain.Revenue {
	return &domain.Revenue{
		ID:          "01HTREVENUE0000000000000000",
		Amount:      decimal.NewFromInt(300),
		Company:     "padaria",
		Destination: domain.DestinationConta,
		Owner:       "user-1",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestRevenueHandlerCreate(t *testing.T) {
	var gotInput usecase.CreateRevenueInput

	svc := &stubRevenueService{
		createFunc: func(_ context.Context, input usecase.CreateRevenueInput) (*domain.Revenue, error) {
			gotInput = input
			return sampleRevenue(), nil
		},
	}

	m, router := newRevenueTestHandler(svc)

	body, _ := json.Marshal(dto.CreateRevenueRequest{
		Amount:      decimal.NewFromInt(300),
		Company:     "padaria",
		Destination: "conta",
	})

	r := httptest.NewRequest(http.MethodPost, "/revenues", bytes.NewReader(body))
	r.Header.Set(UserIDHeader, "user-1")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if gotInput.Destination != domain.DestinationConta || gotInput.Owner != "user-1" {
		t.Errorf("input not forwarded: %+v", gotInput)
	}

	if got := testutil.ToFloat64(m.RevenueOperations.WithLabelValues("create")); got != 1 {
		t.Errorf("expected create counter 1, got %v", got)
	}
}

func TestRevenueHandlerCreateUnknownDestination(t *testing.T) {
	_, router := newRevenueTestHandler(&stubRevenueService{})

	body, _ := json.Marshal(dto.CreateRevenueRequest{
		Amount:      decimal.NewFromInt(300),
		Company:     "padaria",
		Destination: "checking",
	})

	r := httptest.NewRequest(http.MethodPost, "/revenues", bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown destination, got %d", w.Code)
	}
}

func TestRevenueHandlerUpdateReconciliationWarning(t *testing.T) {
	revenue := sampleRevenue()

	svc := &stubRevenueService{
		updateFunc: func(_ context.Context, _ string, _ usecase.UpdateRevenueInput) (*domain.Revenue, error) {
			return revenue, &usecase.ReconciliationRequiredError{
				RecordType: "revenue",
				RecordID:   revenue.ID,
				Kind:       domain.KindConta,
				Delta:      decimal.NewFromInt(150),
				Err:        errors.New("deadline exceeded"),
			}
		},
	}

	m, router := newRevenueTestHandler(svc)

	body, _ := json.Marshal(dto.UpdateRevenueRequest{
		Amount:      decimal.NewFromInt(450),
		Company:     "padaria",
		Destination: "conta",
	})

	r := httptest.NewRequest(http.MethodPut, "/revenues/"+revenue.ID, bytes.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite lost adjustment, got %d", w.Code)
	}

	var resp dto.RevenueResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Warning != dto.WarningReconciliationRequired {
		t.Errorf("expected reconciliation warning, got %q", resp.Warning)
	}

	if got := testutil.ToFloat64(m.ReconciliationRequired.WithLabelValues("revenue", "conta")); got != 1 {
		t.Errorf("expected reconciliation_required counter 1, got %v", got)
	}
}

func TestRevenueHandlerDeleteWithLostReversal(t *testing.T) {
	svc := &stubRevenueService{
		deleteFunc: func(_ context.Context, _ string) error {
			return &usecase.ReconciliationRequiredError{
				RecordType: "revenue",
				RecordID:   "rev-1",
				Kind:       domain.KindCofre,
				Delta:      decimal.NewFromInt(-300),
				Err:        errors.New("connection reset"),
			}
		},
	}

	_, router := newRevenueTestHandler(svc)

	r := httptest.NewRequest(http.MethodDelete, "/revenues/rev-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp dto.DeleteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if !resp.Deleted || resp.Warning != dto.WarningReconciliationRequired {
		t.Errorf("expected deletion with warning, got %+v", resp)
	}
}

func TestRevenueHandlerGetMissing(t *testing.T) {
	svc := &stubRevenueService{
		getFunc: func(_ context.Context, _ string) (*domain.Revenue, error) {
			return nil, domain.ErrRevenueNotFound
		},
	}

	_, router := newRevenueTestHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/revenues/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
