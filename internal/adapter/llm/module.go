package llm

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/subediaakash/zomato-mcp/internal/chat"
	"github.com/subediaakash/zomato-mcp/internal/config"
)

// Module exposes the chat completions client as the conversation model.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (chat.Model, error) {
	return NewClient(p.Config.LLMBaseURL, p.Config.LLMAPIKey, p.Config.LLMModel, p.Logger)
}
