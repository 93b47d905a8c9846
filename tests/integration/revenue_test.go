package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/adapter/http/dto"
)

func TestRevenueLifecycle(t *testing.T) {
	router, testDB := newTestServer(t)
	ctx := context.Background()

	var created dto.RevenueResponse

	t.Run("create conta revenue credits the register", func(t *testing.T) {
		code := doJSON(t, router, http.MethodPost, "/api/v1/revenues", dto.CreateRevenueRequest{
			Amount:      decimal.NewFromInt(300),
			Company:     "padaria",
			Category:    "vendas",
			Destination: "conta",
		}, &created)

		if code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", code)
		}

		if created.Destination != "conta" {
			t.Errorf("expected destination conta, got %q", created.Destination)
		}

		if got := testDB.BalanceAmount(ctx, "conta"); !got.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected conta 300, got %s", got)
		}
	})

	t.Run("moving the destination migrates the credit", func(t *testing.T) {
		code := doJSON(t, router, http.MethodPut, "/api/v1/revenues/"+created.ID, dto.UpdateRevenueRequest{
			Amount:      decimal.NewFromInt(300),
			Company:     "padaria",
			Category:    "vendas",
			Destination: "cofre",
		}, nil)

		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		if got := testDB.BalanceAmount(ctx, "conta"); !got.IsZero() {
			t.Errorf("expected conta back to 0, got %s", got)
		}

		if got := testDB.BalanceAmount(ctx, "cofre"); !got.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected cofre 300, got %s", got)
		}
	})

	t.Run("total destination tracks no register", func(t *testing.T) {
		code := doJSON(t, router, http.MethodPut, "/api/v1/revenues/"+created.ID, dto.UpdateRevenueRequest{
			Amount:      decimal.NewFromInt(300),
			Company:     "padaria",
			Category:    "vendas",
			Destination: "total",
		}, nil)

		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		if got := testDB.BalanceAmount(ctx, "cofre"); !got.IsZero() {
			t.Errorf("expected cofre refunded to 0, got %s", got)
		}

		if got := testDB.BalanceAmount(ctx, "conta"); !got.IsZero() {
			t.Errorf("expected conta untouched, got %s", got)
		}
	})

	t.Run("amount change on a tracked destination adjusts by the difference", func(t *testing.T) {
		code := doJSON(t, router, http.MethodPut, "/api/v1/revenues/"+created.ID, dto.UpdateRevenueRequest{
			Amount:      decimal.NewFromInt(450),
			Company:     "padaria",
			Category:    "vendas",
			Destination: "conta",
		}, nil)

		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		if got := testDB.BalanceAmount(ctx, "conta"); !got.Equal(decimal.NewFromInt(450)) {
			t.Errorf("expected conta 450, got %s", got)
		}
	})

	t.Run("deleting reverses the credit", func(t *testing.T) {
		var deleted dto.DeleteResponse

		code := doJSON(t, router, http.MethodDelete, "/api/v1/revenues/"+created.ID, nil, &deleted)
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}

		if !deleted.Deleted || deleted.Warning != "" {
			t.Errorf("unexpected delete response: %+v", deleted)
		}

		if got := testDB.BalanceAmount(ctx, "conta"); !got.IsZero() {
			t.Errorf("expected conta back to 0, got %s", got)
		}
	})
}
