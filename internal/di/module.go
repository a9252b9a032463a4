package di

import (
	"go.uber.org/fx"

	"github.com/subediaakash/zomato-mcp/internal/adapter/llm"
	"github.com/subediaakash/zomato-mcp/internal/app"
	"github.com/subediaakash/zomato-mcp/internal/chat"
	"github.com/subediaakash/zomato-mcp/internal/config"
	"github.com/subediaakash/zomato-mcp/internal/logger"
	"github.com/subediaakash/zomato-mcp/internal/pkg/auth"
	"github.com/subediaakash/zomato-mcp/internal/server/http/handlers"
	"github.com/subediaakash/zomato-mcp/internal/server/http/router"
	"github.com/subediaakash/zomato-mcp/internal/storage/postgres"
	"github.com/subediaakash/zomato-mcp/internal/storage/rediscache"
	"github.com/subediaakash/zomato-mcp/internal/tools"
	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		rediscache.Module,
		llm.Module,
		usecase.Module,
		tools.Module,
		chat.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(o *chat.Orchestrator) app.Assistant { return o },
			func(f *app.FoodOrderFacade) handlers.FoodOrderFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
