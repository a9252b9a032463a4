package rediscache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/subediaakash/zomato-mcp/internal/config"
	"github.com/subediaakash/zomato-mcp/internal/domain/repository"
)

// Module decorates the product repository with a Redis read-through cache when REDIS_ADDR is set.
var Module = fx.Options(
	fx.Decorate(decorateProducts),
)

type decorateParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Products  repository.ProductRepository
}

func decorateProducts(p decorateParams) repository.ProductRepository {
	if p.Config.RedisAddress == "" {
		return p.Products
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis unavailable, product cache will miss", slog.String("addr", p.Config.RedisAddress), slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return New(p.Products, client, p.Config.ProductCacheTTL, p.Logger)
}
