package repository

import (
	"context"

	"github.com/subediaakash/zomato-mcp/internal/domain/model"
)

// ProductRepository provides read-only catalog access.
type ProductRepository interface {
	// FindByNames returns products whose lower-cased name equals one of the given keys.
	FindByNames(ctx context.Context, keys []string) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}
