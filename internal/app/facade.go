package app

import (
	"context"

	"github.com/subediaakash/zomato-mcp/internal/chat"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	pkgAuth "github.com/subediaakash/zomato-mcp/internal/pkg/auth"
	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Assistant answers a chat turn for a user.
type Assistant interface {
	Reply(ctx context.Context, userID string, history []chat.Message) (chat.Turn, error)
}

type FoodOrderFacade struct {
	tokens    pkgAuth.Strategy
	catalog   *usecase.CatalogUseCase
	orders    *usecase.OrderUseCase
	assistant Assistant
	health    HealthChecker
}

func NewFoodOrderFacade(tokens pkgAuth.Strategy, catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, assistant Assistant, health HealthChecker) *FoodOrderFacade {
	return &FoodOrderFacade{tokens: tokens, catalog: catalog, orders: orders, assistant: assistant, health: health}
}

func (f *FoodOrderFacade) ParseToken(token string) (string, error) {
	return f.tokens.ParseToken(token)
}

func (f *FoodOrderFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *FoodOrderFacade) Product(ctx context.Context, productID string) (*model.Product, error) {
	return f.catalog.GetByID(ctx, productID)
}

func (f *FoodOrderFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListAll(ctx, userID)
}

func (f *FoodOrderFacade) RecentOrders(ctx context.Context, userID string, amount int, unit model.WindowUnit) ([]model.OrderSummary, error) {
	return f.orders.ListByWindow(ctx, userID, amount, unit)
}

func (f *FoodOrderFacade) Order(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *FoodOrderFacade) CreateOrder(ctx context.Context, userID string, items []usecase.ItemRequest) (*model.Order, error) {
	return f.orders.Create(ctx, userID, items)
}

// CancelOrder cancels and returns the order with its items as read in the cancelling transaction.
func (f *FoodOrderFacade) CancelOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return f.orders.Cancel(ctx, userID, orderID)
}

func (f *FoodOrderFacade) DeleteOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return f.orders.Delete(ctx, userID, orderID)
}

func (f *FoodOrderFacade) Chat(ctx context.Context, userID string, history []chat.Message) (chat.Turn, error) {
	return f.assistant.Reply(ctx, userID, history)
}

func (f *FoodOrderFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
