package chat

import (
	"context"
	"encoding/json"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of a conversation.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// ToolCall is a model request to run a tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolSpec advertises a tool to the model.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is one completion call.
type Request struct {
	System   string
	Messages []Message
	Tools    []ToolSpec
}

// Response is either a final message or a set of tool calls.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Model produces the next assistant step for a conversation.
type Model interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
