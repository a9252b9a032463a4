package repository

import (
	"context"
	"time"

	"github.com/subediaakash/zomato-mcp/internal/domain/model"
)

// StatusGuard inspects the current status under lock and vetoes an update by returning an error.
type StatusGuard func(current model.OrderStatus) error

// OrderRepository describes persistence operations with orders. Every lookup and
// mutation is scoped by userID at the query level.
type OrderRepository interface {
	// Create persists the order and all of its items atomically.
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, userID, orderID string) (*model.Order, error)
	// UpdateStatus returns the updated order with its items read in the same transaction.
	UpdateStatus(ctx context.Context, userID, orderID string, status model.OrderStatus, guard StatusGuard) (*model.Order, error)
	// Delete removes the order (items cascade) and returns the deleted row with its items.
	Delete(ctx context.Context, userID, orderID string) (*model.Order, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]model.OrderSummary, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}
