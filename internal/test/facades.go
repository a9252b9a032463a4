package test

import (
	"context"
	"sync/atomic"

	"github.com/subediaakash/zomato-mcp/internal/domain/model"
)

// CatalogFacadeStub provides controllable behaviour for product endpoints.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context) ([]model.Product, error)
	ProductFn  func(context.Context, string) (*model.Product, error)
}

// Products delegates to provided function or returns an empty catalog.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

// Product delegates to provided function or echoes the requested id.
func (s CatalogFacadeStub) Product(ctx context.Context, productID string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, productID)
	}
	return &model.Product{ID: productID}, nil
}

// HealthCheckerStub reports a configurable store health and counts probes.
type HealthCheckerStub struct {
	Err   error
	calls atomic.Int32
}

// HealthCheck returns the configured error.
func (s *HealthCheckerStub) HealthCheck(context.Context) error {
	s.calls.Add(1)
	return s.Err
}

// Health mirrors HealthCheck for facade-shaped consumers.
func (s *HealthCheckerStub) Health(ctx context.Context) error {
	return s.HealthCheck(ctx)
}

// Calls returns how many probes were made.
func (s *HealthCheckerStub) Calls() int {
	return int(s.calls.Load())
}
