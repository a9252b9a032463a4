package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/domain/repository"
)

// ItemRequest is one requested order line. ProductID takes precedence over ProductName.
type ItemRequest struct {
	ProductID   string
	ProductName string
	Quantity    *int
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	catalog *CatalogUseCase
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, catalog *CatalogUseCase, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:  orders,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

type resolvedLine struct {
	quantity int
	key      string
	id       string
	label    string
}

// Create places a PENDING order for userID. Either every requested product resolves and the
// order is written with all its items, or nothing is written.
func (u *OrderUseCase) Create(ctx context.Context, userID string, items []ItemRequest) (*model.Order, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, domainErrors.Invalid("items", "at least one item is required")
	}

	lines := make([]resolvedLine, 0, len(items))
	var names []string
	for i, item := range items {
		quantity, err := ResolveQuantity(item.Quantity)
		if err != nil {
			return nil, domainErrors.Invalid(fmt.Sprintf("items[%d].quantity", i), "must be a positive integer")
		}

		line := resolvedLine{quantity: quantity}
		switch {
		case strings.TrimSpace(item.ProductID) != "":
			line.id = strings.TrimSpace(item.ProductID)
			line.label = line.id
		case strings.TrimSpace(item.ProductName) != "":
			line.label = strings.TrimSpace(item.ProductName)
			line.key = NormalizeName(line.label)
			names = append(names, line.label)
		default:
			return nil, domainErrors.Invalid(fmt.Sprintf("items[%d]", i), "productId or productName is required")
		}
		lines = append(lines, line)
	}

	byName, err := u.catalog.FindByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	order := &model.Order{
		ID:        u.newID(),
		UserID:    userID,
		Status:    model.OrderStatusPending,
		CreatedAt: u.now().UTC(),
		Items:     make([]model.OrderItem, 0, len(lines)),
	}

	var missing []string
	reported := make(map[string]struct{})
	for _, line := range lines {
		product, err := u.resolve(ctx, line, byName)
		if err != nil {
			return nil, err
		}
		if product == nil {
			if _, dup := reported[strings.ToLower(line.label)]; !dup {
				reported[strings.ToLower(line.label)] = struct{}{}
				missing = append(missing, line.label)
			}
			continue
		}
		order.Items = append(order.Items, model.OrderItem{
			ID:              u.newID(),
			OrderID:         order.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			ImageURL:        product.ImageURL,
			Quantity:        line.quantity,
			PriceAtPurchase: product.Price,
		})
	}
	if len(missing) > 0 {
		return nil, &domainErrors.MissingProductsError{Names: missing}
	}

	if err := u.orders.Create(ctx, order); err != nil {
		u.logger.Error("order create failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("create order: %w", err)
	}

	u.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID),
		slog.Int("items", len(order.Items)),
		slog.String("total", order.Total().StringFixed(2)),
	)
	return order, nil
}

// resolve returns nil product when the line references nothing in the catalog.
func (u *OrderUseCase) resolve(ctx context.Context, line resolvedLine, byName map[string][]model.Product) (*model.Product, error) {
	if line.id == "" {
		matches := byName[line.key]
		if len(matches) == 0 {
			return nil, nil
		}
		return &matches[0], nil
	}

	product, err := u.catalog.GetByID(ctx, line.id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve product %s: %w", line.id, err)
	}
	return product, nil
}

// Get returns an order with its items.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	return u.orders.GetByID(ctx, userID, orderID)
}

// Cancel moves an order to CANCELLED. Cancelling an already cancelled order succeeds without change.
func (u *OrderUseCase) Cancel(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return u.transition(ctx, userID, orderID, model.OrderStatusCancelled)
}

func (u *OrderUseCase) transition(ctx context.Context, userID, orderID string, next model.OrderStatus) (*model.Order, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}

	var previous model.OrderStatus
	order, err := u.orders.UpdateStatus(ctx, userID, orderID, next, func(current model.OrderStatus) error {
		previous = current
		if current == next || current.CanTransitionTo(next) {
			return nil
		}
		return &domainErrors.TransitionError{From: string(current), To: string(next)}
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrIllegalTransition) {
			u.logger.Info("order transition rejected",
				slog.String("order_id", orderID),
				slog.String("user_id", userID),
				slog.String("from", string(previous)),
				slog.String("to", string(next)),
			)
		}
		return nil, err
	}

	u.logger.Info("order status changed",
		slog.String("order_id", orderID),
		slog.String("user_id", userID),
		slog.String("from", string(previous)),
		slog.String("status", string(next)),
	)
	return order, nil
}

// Delete removes an order of any status together with its items.
func (u *OrderUseCase) Delete(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	order, err := u.orders.Delete(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	u.logger.Info("order deleted", slog.String("order_id", orderID), slog.String("user_id", userID))
	return order, nil
}

// ListByWindow returns summaries of orders created within the last amount units, newest first.
// An empty unit means hours.
func (u *OrderUseCase) ListByWindow(ctx context.Context, userID string, amount int, unit model.WindowUnit) ([]model.OrderSummary, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	if amount < 1 {
		return nil, domainErrors.Invalid("amount", "must be a positive integer")
	}
	if unit == "" {
		unit = model.WindowHours
	}
	window, ok := unit.Duration(amount)
	if !ok {
		return nil, domainErrors.Invalid("unit", "must be one of minutes, hours, days, weeks")
	}

	return u.orders.ListSince(ctx, userID, u.now().Add(-window))
}

// ListAll returns every order of the user with nested items.
func (u *OrderUseCase) ListAll(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	return u.orders.ListByUser(ctx, userID)
}
