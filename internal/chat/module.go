package chat

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/subediaakash/zomato-mcp/internal/config"
	"github.com/subediaakash/zomato-mcp/internal/tools"
)

// Module provides the chat orchestrator.
var Module = fx.Provide(newOrchestrator)

type orchestratorParams struct {
	fx.In

	Model    Model
	Registry *tools.Registry
	Config   *config.Config
	Logger   *slog.Logger
}

func newOrchestrator(p orchestratorParams) *Orchestrator {
	return NewOrchestrator(p.Model, p.Registry, p.Config.ChatMaxRounds, p.Config.ChatTimeout, p.Logger)
}
