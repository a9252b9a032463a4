package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: nil,
	OrderStatusCancelled: nil,
}

// Valid reports whether status is a known lifecycle state.
func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a user's purchase. Items are attached when loaded with details.
type Order struct {
	ID        string
	UserID    string
	Status    OrderStatus
	CreatedAt time.Time
	Delivered bool
	Items     []OrderItem
}

// Total sums quantity x price-at-purchase over the items.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderItem is one line of an order. PriceAtPurchase is a snapshot and never recomputed.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	ProductName     string
	ImageURL        string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// Subtotal returns quantity x price-at-purchase.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderSummary is a listing row annotated with its item count.
type OrderSummary struct {
	ID        string
	Status    OrderStatus
	CreatedAt time.Time
	ItemCount int
}
