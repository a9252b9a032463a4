package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/subediaakash/zomato-mcp/internal/domain/errors"
	"github.com/subediaakash/zomato-mcp/internal/tools"
)

// FallbackReply is sent when the model cannot finish a turn.
const FallbackReply = "Sorry, I couldn't complete that request right now. Please try again later."

// Dispatcher runs tools on behalf of a user.
type Dispatcher interface {
	Tools() []tools.Tool
	Dispatch(ctx context.Context, actingUserID, name string, raw json.RawMessage) any
}

// Turn is the outcome of one user message.
type Turn struct {
	Reply     string
	Rounds    int
	ToolCalls []string
	Fallback  bool
}

// Orchestrator drives the model through bounded rounds of tool calls.
type Orchestrator struct {
	model     Model
	tools     Dispatcher
	maxRounds int
	timeout   time.Duration
	logger    *slog.Logger
}

// NewOrchestrator constructs Orchestrator. maxRounds caps tool rounds and timeout caps the whole turn.
func NewOrchestrator(model Model, dispatcher Dispatcher, maxRounds int, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{model: model, tools: dispatcher, maxRounds: maxRounds, timeout: timeout, logger: logger}
}

// Reply answers the last user message of history on behalf of userID.
func (o *Orchestrator) Reply(ctx context.Context, userID string, history []Message) (Turn, error) {
	if userID == "" {
		return Turn{}, domainErrors.ErrUnauthorized
	}
	if len(history) == 0 || history[len(history)-1].Role != RoleUser {
		return Turn{}, domainErrors.Invalid("messages", "must end with a user message")
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := append([]Message(nil), history...)
	system := BuildSystemPrompt(userID, o.maxRounds)
	specs := o.specs()

	var turn Turn
	for {
		req := Request{System: system, Messages: messages}
		if turn.Rounds < o.maxRounds {
			req.Tools = specs
		}

		resp, err := o.model.Complete(ctx, req)
		if err != nil {
			return o.fallback(ctx, userID, turn, err), nil
		}

		if len(resp.ToolCalls) == 0 || req.Tools == nil {
			reply := strings.TrimSpace(resp.Content)
			if reply == "" {
				return o.fallback(ctx, userID, turn, errors.New("empty reply")), nil
			}
			turn.Reply = reply
			o.logger.Info("chat turn completed", slog.String("user_id", userID), slog.Int("rounds", turn.Rounds), slog.Int("tool_calls", len(turn.ToolCalls)))
			return turn, nil
		}

		turn.Rounds++
		messages = append(messages, Message{Role: RoleAssistant, Content: resp.Content, ToolCalls: resp.ToolCalls})
		for _, call := range resp.ToolCalls {
			result := o.tools.Dispatch(ctx, userID, call.Name, call.Arguments)
			o.logger.Info("tool call", slog.String("user_id", userID), slog.String("tool", call.Name), slog.Int("round", turn.Rounds))
			turn.ToolCalls = append(turn.ToolCalls, call.Name)
			messages = append(messages, Message{Role: RoleTool, ToolCallID: call.ID, Name: call.Name, Content: encodeResult(result)})
		}

		if ctx.Err() != nil {
			return o.fallback(ctx, userID, turn, ctx.Err()), nil
		}
	}
}

func (o *Orchestrator) specs() []ToolSpec {
	registered := o.tools.Tools()
	specs := make([]ToolSpec, 0, len(registered))
	for _, t := range registered {
		specs = append(specs, ToolSpec{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	return specs
}

func (o *Orchestrator) fallback(ctx context.Context, userID string, turn Turn, cause error) Turn {
	attrs := []any{slog.String("user_id", userID), slog.Int("rounds", turn.Rounds), slog.String("error", cause.Error())}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		attrs = append(attrs, slog.Bool("timeout", true))
	}
	o.logger.Warn("chat turn fell back", attrs...)

	turn.Reply = FallbackReply
	turn.Fallback = true
	return turn
}

func encodeResult(result any) string {
	raw, err := json.Marshal(result)
	if err != nil {
		raw, _ = json.Marshal(tools.Failure{Error: "tool result could not be encoded"})
	}
	return string(raw)
}
