package tools

import (
	"go.uber.org/fx"

	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

// Module provides the tool registry used by the chat orchestrator.
var Module = fx.Options(
	fx.Provide(
		func(c *usecase.CatalogUseCase) Catalog { return c },
		func(o *usecase.OrderUseCase) Orders { return o },
		NewRegistry,
	),
)
