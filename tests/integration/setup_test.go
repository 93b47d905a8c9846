package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	adaptershttp "github.com/rmaia/saldo/internal/adapter/http"
	"github.com/rmaia/saldo/internal/adapter/http/handler"
	"github.com/rmaia/saldo/internal/adapter/repository/postgres"
	"github.com/rmaia/saldo/internal/infrastructure/metrics"
	"github.com/rmaia/saldo/internal/usecase"
	"github.com/rmaia/saldo/tests/testutil"
)

const testOwner = "user-integration"

// newTestServer wires the full object graph against the test database.
// Idempotency is left out so tests do not need a redis instance.
func newTestServer(t *testing.T) (http.Handler, *testutil.TestDB) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(context.Background())

	logger := zerolog.Nop()

	retrier := postgres.NewRetrier(logger)
	balanceRepo := postgres.NewBalanceRepository(testDB.Pool, retrier)
	expenseRepo := postgres.NewExpenseRepository(testDB.Pool)
	revenueRepo := postgres.NewRevenueRepository(testDB.Pool)
	idGen := postgres.NewULIDGenerator()

	balanceUC := usecase.NewBalanceUseCase(balanceRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, balanceUC, idGen)
	revenueUC := usecase.NewRevenueUseCase(revenueRepo, balanceUC, idGen)
	reconUC := usecase.NewReconciliationUseCase(balanceRepo, expenseRepo, revenueRepo)

	m := metrics.NewWith(prometheus.NewRegistry())

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		ExpenseHandler:        handler.NewExpenseHandler(expenseUC, logger, m),
		RevenueHandler:        handler.NewRevenueHandler(revenueUC, logger, m),
		BalanceHandler:        handler.NewBalanceHandler(balanceUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconUC, logger, m),
		HealthHandler:         handler.NewHealthHandler(testDB.Pool, nil),
		Logger:                logger,
	})

	return router, testDB
}

// doJSON performs a request against the router and decodes the response
// body into out when out is non-nil.
func doJSON(t *testing.T, router http.Handler, method, path string, body, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}

		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-User-ID", testOwner)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, r)

	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
		}
	}

	return w.Code
}
