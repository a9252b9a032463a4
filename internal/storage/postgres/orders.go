package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/domain/repository"
)

const orderWithItemsQuery = `SELECT o.id, o.user_id, o.status, o.delivered, o.created_at,
       i.id, i.product_id, p.product_name, p.image_url, i.quantity, i.price_at_purchase
FROM orders o
LEFT JOIN order_items i ON i.order_id = o.id
LEFT JOIN products p ON p.id = i.product_id`

const ownedItemsQuery = `SELECT i.id, i.product_id, p.product_name, p.image_url, i.quantity, i.price_at_purchase
FROM order_items i
JOIN orders o ON o.id = i.order_id
LEFT JOIN products p ON p.id = i.product_id
WHERE i.order_id=$1 AND o.user_id=$2
ORDER BY i.id`

// ownedItems reads the items of an order owned by userID within tx.
func ownedItems(ctx context.Context, tx pgx.Tx, userID, orderID string) ([]model.OrderItem, error) {
	rows, err := tx.Query(ctx, ownedItemsQuery, orderID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var (
			item        = model.OrderItem{OrderID: orderID}
			productName *string
			imageURL    *string
		)
		if err := rows.Scan(&item.ID, &item.ProductID, &productName, &imageURL, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, err
		}
		if productName != nil {
			item.ProductName = *productName
		}
		if imageURL != nil {
			item.ImageURL = *imageURL
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	if len(order.Items) == 0 {
		return domainErrors.Invalid("items", "order must contain at least one item")
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (id, user_id, status, delivered, created_at) VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, insertOrder, order.ID, order.UserID, order.Status, order.Delivered, order.CreatedAt); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertItem = `INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase) VALUES ($1, $2, $3, $4, $5)`
		for _, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem, item.ID, order.ID, item.ProductID, item.Quantity, item.PriceAtPurchase); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, userID, orderID string) (*model.Order, error) {
	const query = orderWithItemsQuery + `
WHERE o.id=$1 AND o.user_id=$2
ORDER BY i.id`
	orders, err := r.collect(ctx, query, orderID, userID)
	if err != nil {
		if isNoRecord(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = orderWithItemsQuery + `
WHERE o.user_id=$1
ORDER BY o.created_at DESC, o.id, i.id`
	return r.collect(ctx, query, userID)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, userID, orderID string, status model.OrderStatus, guard repository.StatusGuard) (*model.Order, error) {
	var updated model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT status FROM orders WHERE id=$1 AND user_id=$2 FOR UPDATE`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, selectQuery, orderID, userID).Scan(&current); err != nil {
			if isNoRecord(err) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if guard != nil {
			if err := guard(current); err != nil {
				return err
			}
		}

		const updateQuery = `UPDATE orders SET status=$1, delivered=$2 WHERE id=$3 AND user_id=$4
                             RETURNING id, user_id, status, delivered, created_at`
		if err := tx.QueryRow(ctx, updateQuery, status, status == model.OrderStatusDelivered, orderID, userID).
			Scan(&updated.ID, &updated.UserID, &updated.Status, &updated.Delivered, &updated.CreatedAt); err != nil {
			return err
		}

		items, err := ownedItems(ctx, tx, userID, orderID)
		if err != nil {
			return fmt.Errorf("load order items: %w", err)
		}
		updated.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete reads the items before removing the order so the returned snapshot keeps them.
func (r *orderRepository) Delete(ctx context.Context, userID, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		items, err := ownedItems(ctx, tx, userID, orderID)
		if err != nil {
			return fmt.Errorf("load order items: %w", err)
		}

		const query = `DELETE FROM orders WHERE id=$1 AND user_id=$2
                       RETURNING id, user_id, status, delivered, created_at`
		if err := tx.QueryRow(ctx, query, orderID, userID).
			Scan(&order.ID, &order.UserID, &order.Status, &order.Delivered, &order.CreatedAt); err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		if isNoRecord(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]model.OrderSummary, error) {
	const query = `SELECT o.id, o.status, o.created_at, COUNT(i.id)
                   FROM orders o
                   LEFT JOIN order_items i ON i.order_id = o.id
                   WHERE o.user_id=$1 AND o.created_at >= $2
                   GROUP BY o.id, o.status, o.created_at
                   ORDER BY o.created_at DESC, o.id`
	rows, err := r.storage.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderSummary
	for rows.Next() {
		var s model.OrderSummary
		if err := rows.Scan(&s.ID, &s.Status, &s.CreatedAt, &s.ItemCount); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// collect folds flat order/item join rows into orders, keeping the first-seen order of ids.
func (r *orderRepository) collect(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	index := make(map[string]int)
	for rows.Next() {
		var (
			o           model.Order
			itemID      *string
			productID   *string
			productName *string
			imageURL    *string
			quantity    *int
			price       decimal.NullDecimal
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Delivered, &o.CreatedAt,
			&itemID, &productID, &productName, &imageURL, &quantity, &price); err != nil {
			return nil, err
		}

		pos, seen := index[o.ID]
		if !seen {
			o.Items = []model.OrderItem{}
			result = append(result, o)
			pos = len(result) - 1
			index[o.ID] = pos
		}
		if itemID == nil {
			continue
		}

		item := model.OrderItem{ID: *itemID, OrderID: o.ID, PriceAtPurchase: price.Decimal}
		if productID != nil {
			item.ProductID = *productID
		}
		if productName != nil {
			item.ProductName = *productName
		}
		if imageURL != nil {
			item.ImageURL = *imageURL
		}
		if quantity != nil {
			item.Quantity = *quantity
		}
		result[pos].Items = append(result[pos].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
