package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartLoggedOutIssuesNoRequest(t *testing.T) {
	env := newTestEnv(t)

	snap := env.service.Cart.Cart(t.Context())
	if snap.Loading || snap.HasData || snap.Err != nil {
		t.Fatalf("snapshot %+v", snap)
	}
	if env.requests.total() != 0 {
		t.Fatalf("%d requests issued while logged out", env.requests.total())
	}
}

func TestCartMutationsRequireSession(t *testing.T) {
	env := newTestEnv(t)

	if err := env.service.Cart.Add(t.Context(), "p1", 1); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("add err = %v", err)
	}
	if err := env.service.Cart.Remove(t.Context(), "p1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("remove err = %v", err)
	}
	if err := env.service.Cart.Clear(t.Context()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("clear err = %v", err)
	}
}

func TestCartAddKeepsTotalDerived(t *testing.T) {
	env := newTestEnv(t)
	env.loginDefault(t)
	pizza := env.seedProduct(t, "Margherita Pizza", "10.00", true)

	if err := env.service.Cart.Add(t.Context(), pizza.ID, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	snap := env.service.Cart.Cart(t.Context())
	if !snap.HasData {
		t.Fatalf("snapshot %+v", snap)
	}
	cart := snap.Data
	if !cart.TotalAmount.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("total = %s, want 20.00", cart.TotalAmount)
	}
	if cart.ItemCount() != 2 {
		t.Fatalf("item count = %d, want 2", cart.ItemCount())
	}
	if !cart.TotalAmount.Equal(cart.SumItems()) {
		t.Fatalf("total %s drifted from line sum %s", cart.TotalAmount, cart.SumItems())
	}
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	env.loginDefault(t)
	posts := env.requests.count("POST")

	if err := env.service.Cart.Add(t.Context(), "p1", 0); err == nil {
		t.Fatal("zero quantity accepted")
	}
	if env.requests.count("POST") != posts {
		t.Fatal("request issued for invalid quantity")
	}
}

func TestCartAddUnknownProductNotifies(t *testing.T) {
	env := newTestEnv(t)
	env.loginDefault(t)

	if err := env.service.Cart.Add(t.Context(), "missing", 1); err == nil {
		t.Fatal("unknown product accepted")
	}
	if env.notifier.errorCount() != 1 {
		t.Fatalf("error toasts = %d, want 1", env.notifier.errorCount())
	}
}

func TestCartRemoveAndClearInvalidate(t *testing.T) {
	env := newTestEnv(t)
	env.loginDefault(t)
	pizza := env.seedProduct(t, "Margherita Pizza", "10.00", true)
	dessert := env.seedProduct(t, "Tiramisu", "6.00", true)

	env.service.Cart.Add(t.Context(), pizza.ID, 1)
	env.service.Cart.Add(t.Context(), dessert.ID, 1)

	if err := env.service.Cart.Remove(t.Context(), dessert.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	snap := env.service.Cart.Cart(t.Context())
	if !snap.Data.TotalAmount.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("total after remove = %s", snap.Data.TotalAmount)
	}

	if err := env.service.Cart.Clear(t.Context()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	snap = env.service.Cart.Cart(t.Context())
	if snap.Data.ItemCount() != 0 || !snap.Data.TotalAmount.IsZero() {
		t.Fatalf("cart not empty after clear: %+v", snap.Data)
	}
}
