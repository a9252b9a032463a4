package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subediaakash/zomato-mcp/internal/chat"
	"github.com/subediaakash/zomato-mcp/internal/server/http/dto"
)

// ChatHandler runs the assistant for the signed-in user.
type ChatHandler struct {
	facade ChatFacade
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(facade ChatFacade) *ChatHandler {
	return &ChatHandler{facade: facade}
}

// Reply handles POST /api/chat.
func (h *ChatHandler) Reply(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "messages: a non-empty list of user/assistant messages is required")
		return
	}

	history := make([]chat.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, chat.Message{Role: chat.Role(m.Role), Content: m.Content})
	}

	turn, err := h.facade.Chat(c.Request.Context(), CurrentUserID(c), history)
	if err != nil {
		writeError(c, err)
		return
	}

	toolCalls := turn.ToolCalls
	if toolCalls == nil {
		toolCalls = []string{}
	}
	c.JSON(http.StatusOK, dto.ChatResponse{Reply: turn.Reply, Rounds: turn.Rounds, ToolCalls: toolCalls})
}
