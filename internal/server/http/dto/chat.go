package dto

// ChatRequest carries the conversation so far; the last message must come from the user.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// ChatMessage is one prior message of the conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatResponse is the assistant reply for one turn.
type ChatResponse struct {
	Reply     string   `json:"reply"`
	Rounds    int      `json:"rounds"`
	ToolCalls []string `json:"toolCalls"`
}
