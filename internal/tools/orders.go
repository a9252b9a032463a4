package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

// Orders runs order lifecycle operations for the order tools.
type Orders interface {
	Create(ctx context.Context, userID string, items []usecase.ItemRequest) (*model.Order, error)
	ListByWindow(ctx context.Context, userID string, amount int, unit model.WindowUnit) ([]model.OrderSummary, error)
}

const (
	CreateOrder = "createOrder"
	ListOrders  = "listOrders"
)

// bindUser fills an omitted user id with the acting identity and refuses any other identity.
func bindUser(userID *string, acting string) error {
	*userID = strings.TrimSpace(*userID)
	if *userID == "" {
		*userID = acting
		return nil
	}
	if *userID != acting {
		return fmt.Errorf("%w: userId does not match the signed-in user", domainErrors.ErrUnauthorized)
	}
	return nil
}

type createOrderInput struct {
	UserID string            `json:"userId" validate:"required"`
	Items  []createOrderItem `json:"items" validate:"required,min=1,dive"`
}

type createOrderItem struct {
	ProductName string `json:"productName" validate:"required"`
	Quantity    *int   `json:"quantity" validate:"required,gt=0,lte=2147483647"`
}

func (in *createOrderInput) bind(acting string) error {
	if err := bindUser(&in.UserID, acting); err != nil {
		return err
	}
	for i := range in.Items {
		in.Items[i].ProductName = strings.TrimSpace(in.Items[i].ProductName)
		if in.Items[i].Quantity == nil {
			q := usecase.DefaultQuantity
			in.Items[i].Quantity = &q
		}
	}
	return nil
}

// CreateOrderResult is the successful outcome of createOrder.
type CreateOrderResult struct {
	OK          bool    `json:"ok"`
	OrderID     string  `json:"orderId"`
	TotalAmount float64 `json:"totalAmount"`
	ItemCount   int     `json:"itemCount"`
}

func createOrderTool(orders Orders) Tool {
	return newTool(
		CreateOrder,
		"Create a new order for the user with the given products and quantities.",
		"Sorry, something went wrong while creating your order. Please try again later.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"userId": map[string]any{"type": "string", "description": "Id of the signed-in user."},
				"items": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"productName": map[string]any{"type": "string", "minLength": 1},
							"quantity":    map[string]any{"type": "integer", "minimum": 1, "maximum": usecase.MaxQuantity, "default": 1},
						},
						"required": []string{"productName"},
					},
				},
			},
			"required":             []string{"userId", "items"},
			"additionalProperties": false,
		},
		func(ctx context.Context, in *createOrderInput) (any, error) {
			items := make([]usecase.ItemRequest, 0, len(in.Items))
			for _, item := range in.Items {
				items = append(items, usecase.ItemRequest{ProductName: item.ProductName, Quantity: item.Quantity})
			}

			order, err := orders.Create(ctx, in.UserID, items)
			if err != nil {
				return nil, err
			}
			return CreateOrderResult{
				OK:          true,
				OrderID:     order.ID,
				TotalAmount: order.Total().InexactFloat64(),
				ItemCount:   len(order.Items),
			}, nil
		},
	)
}

type listOrdersInput struct {
	UserID string           `json:"userId" validate:"required"`
	Amount int              `json:"amount" validate:"gt=0"`
	Unit   model.WindowUnit `json:"unit" validate:"oneof=minutes hours days weeks"`
}

func (in *listOrdersInput) bind(acting string) error {
	if in.Unit == "" {
		in.Unit = model.WindowHours
	}
	return bindUser(&in.UserID, acting)
}

// OrderSummary is one row of listOrders.
type OrderSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	ItemCount int       `json:"itemCount"`
}

func listOrdersTool(orders Orders) Tool {
	return newTool(
		ListOrders,
		"List the user's orders placed within the last amount of minutes, hours, days or weeks, newest first.",
		"Sorry, something went wrong while fetching your orders. Please try again later.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"userId": map[string]any{"type": "string", "description": "Id of the signed-in user."},
				"amount": map[string]any{"type": "integer", "minimum": 1},
				"unit": map[string]any{
					"type":    "string",
					"enum":    []string{"minutes", "hours", "days", "weeks"},
					"default": "hours",
				},
			},
			"required":             []string{"userId", "amount", "unit"},
			"additionalProperties": false,
		},
		func(ctx context.Context, in *listOrdersInput) (any, error) {
			summaries, err := orders.ListByWindow(ctx, in.UserID, in.Amount, in.Unit)
			if err != nil {
				return nil, err
			}
			result := make([]OrderSummary, 0, len(summaries))
			for _, s := range summaries {
				result = append(result, OrderSummary{ID: s.ID, CreatedAt: s.CreatedAt, Status: string(s.Status), ItemCount: s.ItemCount})
			}
			return result, nil
		},
	)
}
