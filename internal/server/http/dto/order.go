package dto

import "time"

// CreateOrderRequest describes POST /api/orders payload.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest references a product by id or by name.
type OrderItemRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    *int   `json:"quantity"`
}

// RecentOrdersQuery holds the look-back window of GET /api/orders/recent.
type RecentOrdersQuery struct {
	Amount int    `form:"amount" binding:"required"`
	Unit   string `form:"unit"`
}

// OrderResponse is an order with its items.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Status    string              `json:"status"`
	Delivered bool                `json:"delivered"`
	CreatedAt time.Time           `json:"createdAt"`
	Total     float64             `json:"total"`
	Items     []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one line of an order.
type OrderItemResponse struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ImageURL        string  `json:"imageUrl"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// OrdersResponse wraps a full order listing.
type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// OrderSummaryResponse is a windowed listing row.
type OrderSummaryResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
	ItemCount int       `json:"itemCount"`
}

// DeleteOrderResponse confirms a deletion.
type DeleteOrderResponse struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}
