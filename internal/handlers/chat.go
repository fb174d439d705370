package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/dto"
	apierrors "github.com/yukikurage/printflow/internal/errors"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/services"
)

type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ListMessages returns the chat history, oldest first
func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.chat.History(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage posts a message as the current profile
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	msg, err := h.chat.Send(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// StreamMessages pushes the full chat history as server-sent events
func (h *ChatHandler) StreamMessages(c *gin.Context) {
	streamSnapshots[models.ChatMessage](c, "chat", h.chat.Subscribe)
}
