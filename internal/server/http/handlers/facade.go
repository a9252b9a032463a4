package handlers

import (
	"context"

	"github.com/subediaakash/zomato-mcp/internal/chat"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

// TokenParser resolves bearer tokens into user ids.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// CatalogFacade exposes read access to products.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, productID string) (*model.Product, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	RecentOrders(ctx context.Context, userID string, amount int, unit model.WindowUnit) ([]model.OrderSummary, error)
	Order(ctx context.Context, userID, orderID string) (*model.Order, error)
	CreateOrder(ctx context.Context, userID string, items []usecase.ItemRequest) (*model.Order, error)
	CancelOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	DeleteOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
}

// ChatFacade runs one assistant turn.
type ChatFacade interface {
	Chat(ctx context.Context, userID string, history []chat.Message) (chat.Turn, error)
}

// HealthFacade probes backing services.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// FoodOrderFacade aggregates the full set of operations used across handlers.
type FoodOrderFacade interface {
	TokenParser
	CatalogFacade
	OrderFacade
	ChatFacade
	HealthFacade
}
