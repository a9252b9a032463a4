package test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/domain/repository"
)

// ProductRepositoryStub serves products from memory unless a Fn override is set.
type ProductRepositoryStub struct {
	Products      []model.Product
	Err           error
	FindByNamesFn func(context.Context, []string) ([]model.Product, error)
	GetByIDFn     func(context.Context, string) (*model.Product, error)
	ListFn        func(context.Context) ([]model.Product, error)

	mu        sync.Mutex
	NameCalls [][]string
}

// FindByNames matches trimmed, lower-cased product names against keys.
func (s *ProductRepositoryStub) FindByNames(ctx context.Context, keys []string) ([]model.Product, error) {
	s.mu.Lock()
	s.NameCalls = append(s.NameCalls, append([]string(nil), keys...))
	s.mu.Unlock()

	if s.FindByNamesFn != nil {
		return s.FindByNamesFn(ctx, keys)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	var result []model.Product
	for _, p := range s.Products {
		if wanted[strings.ToLower(strings.TrimSpace(p.Name))] {
			result = append(result, p)
		}
	}
	return result, nil
}

// GetByID returns product with id or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all products.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.Product(nil), s.Products...), nil
}

// OrderRepositoryStub keeps orders in memory and scopes every access by user id.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) error
	UpdateStatusFn func(context.Context, string, string, model.OrderStatus, repository.StatusGuard) (*model.Order, error)
	Err            error

	mu     sync.Mutex
	orders map[string]model.Order
	seq    []string
}

func (s *OrderRepositoryStub) lookup(userID, orderID string) (model.Order, bool) {
	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID {
		return model.Order{}, false
	}
	return o, true
}

// Put stores order as is, bypassing Create.
func (s *OrderRepositoryStub) Put(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orders == nil {
		s.orders = make(map[string]model.Order)
	}
	if _, exists := s.orders[order.ID]; !exists {
		s.seq = append(s.seq, order.ID)
	}
	s.orders[order.ID] = order
}

// Len reports the number of stored orders.
func (s *OrderRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Create stores order with its items.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return s.Err
	}
	stored := *order
	stored.Items = append([]model.OrderItem(nil), order.Items...)
	s.Put(stored)
	return nil
}

// GetByID returns owned order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.lookup(userID, orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

// UpdateStatus runs guard against the stored status before applying the change and returns the order with its items.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, userID, orderID string, status model.OrderStatus, guard repository.StatusGuard) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, userID, orderID, status, guard)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.lookup(userID, orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if guard != nil {
		if err := guard(o.Status); err != nil {
			return nil, err
		}
	}
	o.Status = status
	o.Delivered = status == model.OrderStatusDelivered
	s.orders[orderID] = o
	updated := o
	updated.Items = append([]model.OrderItem{}, o.Items...)
	return &updated, nil
}

// Delete removes owned order together with its items and returns the snapshot including them.
func (s *OrderRepositoryStub) Delete(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.lookup(userID, orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	delete(s.orders, orderID)
	for i, id := range s.seq {
		if id == orderID {
			s.seq = append(s.seq[:i], s.seq[i+1:]...)
			break
		}
	}
	o.Items = append([]model.OrderItem{}, o.Items...)
	return &o, nil
}

// ListSince returns summaries of owned orders created at or after since, newest first.
func (s *OrderRepositoryStub) ListSince(ctx context.Context, userID string, since time.Time) ([]model.OrderSummary, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.OrderSummary
	for _, o := range s.owned(userID) {
		if o.CreatedAt.Before(since) {
			continue
		}
		result = append(result, model.OrderSummary{ID: o.ID, Status: o.Status, CreatedAt: o.CreatedAt, ItemCount: len(o.Items)})
	}
	return result, nil
}

// ListByUser returns owned orders with items, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.owned(userID), nil
}

func (s *OrderRepositoryStub) owned(userID string) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, id := range s.seq {
		if o := s.orders[id]; o.UserID == userID {
			result = append(result, o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}
