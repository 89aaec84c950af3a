package usecase

import (
	"errors"
	"net/http"
	"testing"

	"resto-client/internal/dto/request"

	"github.com/shopspring/decimal"
)

func TestProductsCatalogIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Margherita Pizza", "12.50", true)

	snap := env.service.Product.Products(t.Context(), request.ProductFilters{})
	if !snap.HasData || snap.Err != nil {
		t.Fatalf("snapshot %+v", snap)
	}
	if len(snap.Data) != 1 || snap.Data[0].Name != "Margherita Pizza" {
		t.Fatalf("catalog %+v", snap.Data)
	}
}

func TestProductsFilterSetsAreSeparateEntries(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Margherita Pizza", "12.50", true)
	env.seedProduct(t, "House Lemonade", "3.50", false)

	all := env.service.Product.Products(t.Context(), request.ProductFilters{})
	avail := true
	filtered := env.service.Product.Products(t.Context(), request.ProductFilters{Available: &avail})

	if len(all.Data) != 2 || len(filtered.Data) != 1 {
		t.Fatalf("all=%d filtered=%d", len(all.Data), len(filtered.Data))
	}
}

func TestCatalogDoesNotRefetchOnRevisit(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Margherita Pizza", "12.50", true)

	env.service.Product.Products(t.Context(), request.ProductFilters{})
	before := env.requests.count(http.MethodGet)
	env.service.Product.Products(t.Context(), request.ProductFilters{})

	if got := env.requests.count(http.MethodGet); got != before {
		t.Fatalf("catalog refetched on revisit: %d -> %d", before, got)
	}
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	req := &request.CreateProductRequest{
		Name:        "Tiramisu",
		Description: "Classic dessert",
		Price:       decimal.RequireFromString("6.00"),
		Category:    "Dessert",
		Available:   true,
	}

	if _, err := env.service.Product.Create(t.Context(), req); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("logged out err = %v, want ErrNotAuthenticated", err)
	}

	env.loginDefault(t)
	if _, err := env.service.Product.Create(t.Context(), req); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("default role err = %v, want ErrAdminOnly", err)
	}
	if env.requests.count(http.MethodPost) != 1 {
		// Only the login itself.
		t.Fatalf("POSTs = %d, want 1", env.requests.count(http.MethodPost))
	}
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)
	posts := env.requests.count(http.MethodPost)

	_, err := env.service.Product.Create(t.Context(), &request.CreateProductRequest{
		Name:        "Free Bread",
		Description: "On the house",
		Price:       decimal.Zero,
		Category:    "Main",
	})
	if err == nil {
		t.Fatal("zero price accepted")
	}
	if env.requests.count(http.MethodPost) != posts {
		t.Fatal("request issued for invalid price")
	}
}

func TestCreateProductInvalidatesCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)

	snap := env.service.Product.Products(t.Context(), request.ProductFilters{})
	if len(snap.Data) != 0 {
		t.Fatalf("catalog not empty: %+v", snap.Data)
	}

	if _, err := env.service.Product.Create(t.Context(), &request.CreateProductRequest{
		Name:        "Tiramisu",
		Description: "Classic dessert",
		Price:       decimal.RequireFromString("6.00"),
		Category:    "Dessert",
		Available:   true,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The cached entry was refetched by the mutation, no new Get needed.
	snap = env.service.Product.Products(t.Context(), request.ProductFilters{})
	if len(snap.Data) != 1 || snap.Data[0].Name != "Tiramisu" {
		t.Fatalf("catalog after create: %+v", snap.Data)
	}
}

func TestUpdateProductRefreshesDetailEntry(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)
	p := env.seedProduct(t, "Margherita Pizza", "12.50", true)

	detail := env.service.Product.ProductByID(t.Context(), p.ID)
	if !detail.HasData || !detail.Data.Price.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("detail %+v", detail)
	}

	newPrice := decimal.RequireFromString("13.00")
	if _, err := env.service.Product.Update(t.Context(), p.ID, &request.UpdateProductRequest{
		Price: &newPrice,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	detail = env.service.Product.ProductByID(t.Context(), p.ID)
	if !detail.Data.Price.Equal(newPrice) {
		t.Fatalf("detail price = %s, want %s", detail.Data.Price, newPrice)
	}
}

func TestUpdateProductRevalidatesDetailExactlyOnce(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)
	p := env.seedProduct(t, "Margherita Pizza", "12.50", true)

	env.service.Product.ProductByID(t.Context(), p.ID)
	env.service.Product.Products(t.Context(), request.ProductFilters{})

	detailKey := http.MethodGet + " /api/products/" + p.ID
	listKey := http.MethodGet + " /api/products"
	detailBefore := env.requests.pathCount(detailKey)
	listBefore := env.requests.pathCount(listKey)

	newPrice := decimal.RequireFromString("13.00")
	if _, err := env.service.Product.Update(t.Context(), p.ID, &request.UpdateProductRequest{
		Price: &newPrice,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := env.requests.pathCount(detailKey) - detailBefore; got != 1 {
		t.Fatalf("detail refetched %d times, want 1", got)
	}
	if got := env.requests.pathCount(listKey) - listBefore; got != 1 {
		t.Fatalf("list refetched %d times, want 1", got)
	}
}

func TestProductByIDWithEmptyIDIssuesNoRequest(t *testing.T) {
	env := newTestEnv(t)

	snap := env.service.Product.ProductByID(t.Context(), "")
	if snap.Loading || snap.HasData {
		t.Fatalf("snapshot %+v", snap)
	}
	if env.requests.total() != 0 {
		t.Fatalf("%d requests issued", env.requests.total())
	}
}

func TestDeleteProductRemovesItFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)
	p := env.seedProduct(t, "Margherita Pizza", "12.50", true)

	env.service.Product.Products(t.Context(), request.ProductFilters{})
	if err := env.service.Product.Delete(t.Context(), p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	snap := env.service.Product.Products(t.Context(), request.ProductFilters{})
	if len(snap.Data) != 0 {
		t.Fatalf("catalog still has %d products", len(snap.Data))
	}
}
