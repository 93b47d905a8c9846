package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/adapter/http/dto"
)

func TestValidationOverHTTP(t *testing.T) {
	router, testDB := newTestServer(t)
	ctx := context.Background()

	t.Run("non-positive expense amount rejected", func(t *testing.T) {
		code := doJSON(t, router, http.MethodPost, "/api/v1/expenses", dto.CreateExpenseRequest{
			Amount:  decimal.Zero,
			Company: "padaria",
		}, nil)

		if code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("unknown payment source rejected", func(t *testing.T) {
		wallet := "wallet"

		code := doJSON(t, router, http.MethodPost, "/api/v1/expenses", dto.CreateExpenseRequest{
			Amount:        decimal.NewFromInt(10),
			Company:       "padaria",
			PaymentSource: &wallet,
		}, nil)

		if code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("unknown revenue destination rejected", func(t *testing.T) {
		code := doJSON(t, router, http.MethodPost, "/api/v1/revenues", dto.CreateRevenueRequest{
			Amount:      decimal.NewFromInt(10),
			Company:     "padaria",
			Destination: "checking",
		}, nil)

		if code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("blank company rejected", func(t *testing.T) {
		code := doJSON(t, router, http.MethodPost, "/api/v1/revenues", dto.CreateRevenueRequest{
			Amount:      decimal.NewFromInt(10),
			Company:     "   ",
			Destination: "conta",
		}, nil)

		if code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("rejected records leave no balance trace", func(t *testing.T) {
		if !testDB.BalanceAmount(ctx, "conta").IsZero() || !testDB.BalanceAmount(ctx, "cofre").IsZero() {
			t.Error("expected registers untouched by rejected requests")
		}
	})

	t.Run("missing expense returns 404", func(t *testing.T) {
		code := doJSON(t, router, http.MethodGet, "/api/v1/expenses/01HTXYZMISSING0000000000", nil, nil)
		if code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", code)
		}
	})

	t.Run("unknown balance kind returns 400", func(t *testing.T) {
		code := doJSON(t, router, http.MethodGet, "/api/v1/balances/checking", nil, nil)
		if code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("balance listing always names both registers", func(t *testing.T) {
		var list dto.ListBalancesResponse

		code := doJSON(t, router, http.MethodGet, "/api/v1/balances", nil, &list)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		if len(list.Balances) != 2 {
			t.Fatalf("expected 2 registers, got %d", len(list.Balances))
		}

		for _, b := range list.Balances {
			if !b.Amount.IsZero() {
				t.Errorf("expected %s to start at zero, got %s", b.Kind, b.Amount)
			}
		}
	})
}
