package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/test"
)

type fakeCache struct {
	values  map[string]string
	getErr  error
	setErr  error
	setKeys []string
	ttl     time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	if c.getErr != nil {
		return redis.NewStringResult("", c.getErr)
	}
	v, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	c.setKeys = append(c.setKeys, key)
	c.ttl = expiration
	if c.setErr != nil {
		return redis.NewStatusResult("", c.setErr)
	}
	c.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func pizza() *model.Product {
	return &model.Product{
		ID:        "p1",
		Name:      "Margherita Pizza",
		Category:  model.CategoryVeg,
		Price:     decimal.RequireFromString("299.00"),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetByIDMissPopulatesCache(t *testing.T) {
	calls := 0
	next := &test.ProductRepositoryStub{
		GetByIDFn: func(ctx context.Context, id string) (*model.Product, error) {
			calls++
			return pizza(), nil
		},
	}
	cache := newFakeCache()
	repo := New(next, cache, time.Minute, discardLogger())

	first, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", first.Name)
	assert.Equal(t, []string{"product:p1"}, cache.setKeys)
	assert.Equal(t, time.Minute, cache.ttl)

	second, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second lookup must be served from cache")
	assert.True(t, second.Price.Equal(first.Price))
	assert.Equal(t, first.Category, second.Category)
}

func TestGetByIDFallsThroughOnCacheErrors(t *testing.T) {
	next := &test.ProductRepositoryStub{
		GetByIDFn: func(ctx context.Context, id string) (*model.Product, error) { return pizza(), nil },
	}
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	repo := New(next, cache, time.Minute, discardLogger())

	product, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
}

func TestGetByIDIgnoresMalformedEntries(t *testing.T) {
	next := &test.ProductRepositoryStub{
		GetByIDFn: func(ctx context.Context, id string) (*model.Product, error) { return pizza(), nil },
	}
	cache := newFakeCache()
	cache.values["product:p1"] = "{not json"
	repo := New(next, cache, time.Minute, discardLogger())

	product, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", product.Name)

	var stored cachedProduct
	require.NoError(t, json.Unmarshal([]byte(cache.values["product:p1"]), &stored))
	assert.Equal(t, "p1", stored.ID)
}

func TestGetByIDDoesNotCacheMisses(t *testing.T) {
	next := &test.ProductRepositoryStub{
		GetByIDFn: func(ctx context.Context, id string) (*model.Product, error) { return nil, domainErrors.ErrNotFound },
	}
	cache := newFakeCache()
	repo := New(next, cache, time.Minute, discardLogger())

	_, err := repo.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
	assert.Empty(t, cache.setKeys)
}

func TestNameLookupsBypassCache(t *testing.T) {
	next := &test.ProductRepositoryStub{
		FindByNamesFn: func(ctx context.Context, keys []string) ([]model.Product, error) {
			return []model.Product{*pizza()}, nil
		},
	}
	cache := newFakeCache()
	repo := New(next, cache, time.Minute, discardLogger())

	products, err := repo.FindByNames(context.Background(), []string{"margherita pizza"})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Empty(t, cache.setKeys)
}
