package usecase

import (
	"context"

	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/domain/repository"
)

// CatalogUseCase provides read-only catalog lookups.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// Availability is the lookup outcome for one requested name.
type Availability struct {
	Name    string
	Matches []model.Product
}

// Available reports whether at least one product matched.
func (a Availability) Available() bool {
	return len(a.Matches) > 0
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// FindByNames resolves names case-insensitively and returns matches keyed by normalized name.
// Every requested key is present in the result, possibly with no matches.
func (u *CatalogUseCase) FindByNames(ctx context.Context, names []string) (map[string][]model.Product, error) {
	_, keys := DedupeNames(names)
	result := make(map[string][]model.Product, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	products, err := u.products.FindByNames(ctx, keys)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		result[key] = nil
	}
	for _, p := range products {
		key := NormalizeName(p.Name)
		if _, requested := result[key]; requested {
			result[key] = append(result[key], p)
		}
	}
	return result, nil
}

// CheckAvailability resolves names and reports one entry per distinct name in first-seen order.
func (u *CatalogUseCase) CheckAvailability(ctx context.Context, names []string) ([]Availability, error) {
	unique, keys := DedupeNames(names)
	matches, err := u.FindByNames(ctx, unique)
	if err != nil {
		return nil, err
	}

	result := make([]Availability, 0, len(unique))
	for i, name := range unique {
		result = append(result, Availability{Name: name, Matches: matches[keys[i]]})
	}
	return result, nil
}

// GetByID returns product by identifier.
func (u *CatalogUseCase) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns the whole catalog ordered by name.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}
