package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	"github.com/subediaakash/zomato-mcp/internal/domain/repository"
)

type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// ProductRepository reads single products through Redis and falls back to the wrapped repository.
// Name lookups and listings always go to the wrapped repository.
type ProductRepository struct {
	repository.ProductRepository
	cache  cacheClient
	ttl    time.Duration
	logger *slog.Logger
}

type cachedProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Category    model.Category  `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ListerID    string          `json:"listerId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// New wraps next with a cache-aside lookup by id.
func New(next repository.ProductRepository, cache cacheClient, ttl time.Duration, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{ProductRepository: next, cache: cache, ttl: ttl, logger: logger}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	key := productKey(id)

	raw, err := r.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedProduct
		if err := json.Unmarshal(raw, &cached); err == nil {
			p := model.Product(cached)
			return &p, nil
		}
		r.logger.Warn("drop malformed cached product", slog.String("product_id", id))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("product cache read failed", slog.String("product_id", id), slog.String("error", err.Error()))
	}

	product, err := r.ProductRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedProduct(*product))
	if err != nil {
		return product, nil
	}
	if err := r.cache.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("product cache write failed", slog.String("product_id", id), slog.String("error", err.Error()))
	}
	return product, nil
}
