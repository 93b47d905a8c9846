package integration

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/adapter/http/dto"
)

// Concurrent record traffic must leave the registers exactly where the
// history says they should be. The upsert delta keeps each adjustment
// atomic, so no interleaving can lose an update.
func TestConcurrentAdjustments(t *testing.T) {
	router, testDB := newTestServer(t)
	ctx := context.Background()

	const workers = 20

	contaSource := "conta"

	var wg sync.WaitGroup

	errs := make(chan error, workers*2)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			code := doJSON(t, router, http.MethodPost, "/api/v1/expenses", dto.CreateExpenseRequest{
				Amount:        decimal.NewFromInt(10),
				Company:       "padaria",
				PaymentSource: &contaSource,
			}, nil)
			if code != http.StatusCreated {
				errs <- &statusError{code}
			}
		}()

		wg.Add(1)

		go func() {
			defer wg.Done()

			code := doJSON(t, router, http.MethodPost, "/api/v1/revenues", dto.CreateRevenueRequest{
				Amount:      decimal.NewFromInt(25),
				Company:     "padaria",
				Destination: "conta",
			}, nil)
			if code != http.StatusCreated {
				errs <- &statusError{code}
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent request failed: %v", err)
	}

	// 20 * 25 in, 20 * 10 out.
	want := decimal.NewFromInt(300)
	if got := testDB.BalanceAmount(ctx, "conta"); !got.Equal(want) {
		t.Errorf("expected conta %s after concurrent traffic, got %s", want, got)
	}

	var report dto.DriftReportResponse

	if code := doJSON(t, router, http.MethodGet, "/api/v1/reconciliation/report", nil, &report); code != http.StatusOK {
		t.Fatalf("expected 200 from drift report, got %d", code)
	}

	if !report.InSync {
		t.Errorf("expected registers in sync after concurrent traffic, got %+v", report)
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
