package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/test"
)

func demoCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Margherita Pizza", Category: model.CategoryVeg, Price: decimal.RequireFromString("299.00")},
		{ID: "p2", Name: "Pepperoni Pizza", Category: model.CategoryNonVeg, Price: decimal.RequireFromString("349.00")},
		{ID: "p3", Name: "Paneer Tikka", Category: model.CategoryVeg, Price: decimal.RequireFromString("199.00")},
	}
}

func TestCatalogFindByNamesEmptyInputSkipsQuery(t *testing.T) {
	repo := &test.ProductRepositoryStub{Products: demoCatalog()}
	uc := NewCatalogUseCase(repo)

	result, err := uc.FindByNames(context.Background(), []string{"", "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected empty result, got %v", result)
	}
	if len(repo.NameCalls) != 0 {
		t.Fatalf("expected no repository query, got %v", repo.NameCalls)
	}
}

func TestCatalogFindByNamesMatchesPaddedCatalogNames(t *testing.T) {
	repo := &test.ProductRepositoryStub{Products: []model.Product{
		{ID: "p9", Name: "  Masala Dosa ", Category: model.CategoryVeg, Price: decimal.RequireFromString("149.00")},
	}}
	uc := NewCatalogUseCase(repo)

	result, err := uc.FindByNames(context.Background(), []string{"masala dosa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result["masala dosa"]; len(got) != 1 || got[0].ID != "p9" {
		t.Fatalf("expected padded catalog name to match, got %v", result)
	}
}

func TestCatalogFindByNamesDedupesAndMatchesCaseInsensitively(t *testing.T) {
	repo := &test.ProductRepositoryStub{Products: demoCatalog()}
	uc := NewCatalogUseCase(repo)

	result, err := uc.FindByNames(context.Background(), []string{"MARGHERITA PIZZA", " margherita pizza ", "Pizza", "Dosa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.NameCalls) != 1 || len(repo.NameCalls[0]) != 3 {
		t.Fatalf("expected one deduplicated query, got %v", repo.NameCalls)
	}
	if got := result["margherita pizza"]; len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected matches for margherita: %v", got)
	}
	if got, ok := result["pizza"]; !ok || len(got) != 0 {
		t.Fatalf("substring must not match, got %v (present=%v)", got, ok)
	}
	if got, ok := result["dosa"]; !ok || len(got) != 0 {
		t.Fatalf("expected empty matches for dosa, got %v (present=%v)", got, ok)
	}
}

func TestCatalogCheckAvailabilityKeepsFirstSeenOrder(t *testing.T) {
	products := append(demoCatalog(), model.Product{ID: "p9", Name: "margherita pizza", Price: decimal.RequireFromString("289.00")})
	uc := NewCatalogUseCase(&test.ProductRepositoryStub{Products: products})

	result, err := uc.CheckAvailability(context.Background(), []string{"Dosa", "Margherita Pizza", "dosa", "Paneer Tikka"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result))
	}
	if result[0].Name != "Dosa" || result[0].Available() {
		t.Fatalf("unexpected first entry %+v", result[0])
	}
	if result[1].Name != "Margherita Pizza" || len(result[1].Matches) != 2 {
		t.Fatalf("expected duplicate catalog rows to be tolerated, got %+v", result[1])
	}
	if result[2].Name != "Paneer Tikka" || !result[2].Available() {
		t.Fatalf("unexpected third entry %+v", result[2])
	}
}

func TestCatalogPropagatesStorageErrors(t *testing.T) {
	boom := errors.New("db down")
	uc := NewCatalogUseCase(&test.ProductRepositoryStub{Err: boom})

	if _, err := uc.FindByNames(context.Background(), []string{"x"}); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := uc.CheckAvailability(context.Background(), []string{"x"}); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := uc.GetByID(context.Background(), "p1"); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if _, err := uc.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
