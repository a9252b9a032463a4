package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/subediaakash/zomato-mcp/internal/chat"
)

// ErrNoChoices indicates the completion response carried no message.
var ErrNoChoices = errors.New("completion returned no choices")

// TooManyRequestsError represents rate limiting signal from the model provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	http   *resty.Client
	model  string
	logger *slog.Logger
}

type functionSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type toolSpec struct {
	Type     string       `json:"type"`
	Function functionSpec `json:"function"`
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function functionCall `json:"function"`
}

type message struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

type completionRequest struct {
	Model    string     `json:"model"`
	Messages []message  `json:"messages"`
	Tools    []toolSpec `json:"tools,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// NewClient creates a chat completions client. An empty apiKey sends no Authorization header.
func NewClient(baseURL, apiKey, model string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse llm url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("llm url must be absolute")
	}

	httpClient := resty.New().
		SetBaseURL(parsed.String()).
		SetTimeout(60*time.Second).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			return parseRetryAfter(resp.Header().Get("Retry-After")), nil
		}).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
		})
	if apiKey != "" {
		httpClient.SetAuthToken(apiKey)
	}

	return &Client{http: httpClient, model: model, logger: logger}, nil
}

// Complete sends the conversation and returns either the final text or requested tool calls.
func (c *Client) Complete(ctx context.Context, req chat.Request) (*chat.Response, error) {
	var completion completionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(c.encode(req)).
		SetResult(&completion).
		Post("/chat/completions")
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After"))}
	default:
		body := resp.String()
		if len(body) > 512 {
			body = body[:512]
		}
		c.logger.Error("llm request failed", slog.Int("status", resp.StatusCode()), slog.String("body", body))
		return nil, fmt.Errorf("llm error: %s", resp.Status())
	}

	if len(completion.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return decode(completion.Choices[0].Message), nil
}

func (c *Client) encode(req chat.Request) completionRequest {
	out := completionRequest{Model: c.model, Messages: make([]message, 0, len(req.Messages)+1)}
	if req.System != "" {
		system := req.System
		out.Messages = append(out.Messages, message{Role: string(chat.RoleSystem), Content: &system})
	}

	for _, m := range req.Messages {
		content := m.Content
		msg := message{Role: string(m.Role), Content: &content, ToolCallID: m.ToolCallID}
		if m.Role == chat.RoleAssistant && len(m.ToolCalls) > 0 && content == "" {
			msg.Content = nil
		}
		for _, call := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, toolCall{
				ID:       call.ID,
				Type:     "function",
				Function: functionCall{Name: call.Name, Arguments: string(call.Arguments)},
			})
		}
		out.Messages = append(out.Messages, msg)
	}

	for _, t := range req.Tools {
		out.Tools = append(out.Tools, toolSpec{
			Type:     "function",
			Function: functionSpec{Name: t.Name, Description: t.Description, Parameters: t.Parameters},
		})
	}
	return out
}

func decode(m message) *chat.Response {
	resp := &chat.Response{}
	if m.Content != nil {
		resp.Content = *m.Content
	}
	for _, call := range m.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, chat.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}
	return resp
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
