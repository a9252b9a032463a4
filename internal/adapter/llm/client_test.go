package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subediaakash/zomato-mcp/internal/chat"
	"github.com/subediaakash/zomato-mcp/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/v1", "sk-test", "gpt-test", testLogger())
	require.NoError(t, err)
	client.http.SetRetryCount(0)
	return client
}

func TestNewClientValidatesURL(t *testing.T) {
	if _, err := NewClient("://bad-url", "", "m", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewClient("/relative", "", "m", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCompleteEncodesConversationAndTools(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"Done!"},"finish_reason":"stop"}]}`)
	})

	resp, err := client.Complete(context.Background(), chat.Request{
		System: "be nice",
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "order pizza"},
			{Role: chat.RoleAssistant, ToolCalls: []chat.ToolCall{{ID: "c1", Name: "createOrder", Arguments: json.RawMessage(`{"items":[]}`)}}},
			{Role: chat.RoleTool, ToolCallID: "c1", Name: "createOrder", Content: `{"ok":true}`},
		},
		Tools: []chat.ToolSpec{{Name: "createOrder", Description: "create", Parameters: map[string]any{"type": "object"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Done!", resp.Content)
	assert.Empty(t, resp.ToolCalls)

	assert.Equal(t, "gpt-test", got["model"])
	messages := got["messages"].([]any)
	require.Len(t, messages, 4)
	assert.Equal(t, map[string]any{"role": "system", "content": "be nice"}, messages[0])

	assistant := messages[2].(map[string]any)
	assert.Nil(t, assistant["content"])
	call := assistant["tool_calls"].([]any)[0].(map[string]any)
	assert.Equal(t, "function", call["type"])
	assert.Equal(t, `{"items":[]}`, call["function"].(map[string]any)["arguments"])

	toolMsg := messages[3].(map[string]any)
	assert.Equal(t, "tool", toolMsg["role"])
	assert.Equal(t, "c1", toolMsg["tool_call_id"])

	tools := got["tools"].([]any)
	require.Len(t, tools, 1)
	assert.Equal(t, "createOrder", tools[0].(map[string]any)["function"].(map[string]any)["name"])
}

func TestCompleteDecodesToolCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":null,"tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"listOrders","arguments":"{\"amount\":2,\"unit\":\"days\"}"}}
		]},"finish_reason":"tool_calls"}]}`)
	})

	resp, err := client.Complete(context.Background(), chat.Request{Messages: []chat.Message{{Role: chat.RoleUser, Content: "my orders"}}})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
	require.Len(t, resp.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.ToolCalls[0].ID)
	assert.Equal(t, "listOrders", resp.ToolCalls[0].Name)
	assert.JSONEq(t, `{"amount":2,"unit":"days"}`, string(resp.ToolCalls[0].Arguments))
}

func TestCompleteHandlesErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		headers map[string]string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "rate limited",
			status:  http.StatusTooManyRequests,
			headers: map[string]string{"Retry-After": "7"},
			check: func(t *testing.T, err error) {
				var tooMany TooManyRequestsError
				require.ErrorAs(t, err, &tooMany)
				assert.Equal(t, 7*time.Second, tooMany.RetryAfter)
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   "upstream down",
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "llm error")
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrNoChoices))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tc.headers {
					w.Header().Set(k, v)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := client.Complete(context.Background(), chat.Request{})
			tc.check(t, err)
		})
	}
}

func TestCompleteHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Complete(ctx, chat.Request{})
	require.Error(t, err)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter(""))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
	assert.Equal(t, 5*time.Second, parseRetryAfter("soon"))

	future := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
	got := parseRetryAfter(future)
	assert.True(t, got > 0 && got <= 10*time.Second, "unexpected duration %s", got)
}

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{LLMBaseURL: "https://api.example.com/v1", LLMModel: "gpt-5-nano"}
	model, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	require.NoError(t, err)
	client, ok := model.(*Client)
	require.True(t, ok)
	assert.Equal(t, "gpt-5-nano", client.model)
}
