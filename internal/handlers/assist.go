package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/printflow/internal/dto"
	apierrors "github.com/yukikurage/printflow/internal/errors"
	"github.com/yukikurage/printflow/internal/services"
)

// AssistHandler exposes the text assistant. Responses always succeed; failures
// come back as fallback text.
type AssistHandler struct {
	ai *services.AIService
}

func NewAssistHandler(ai *services.AIService) *AssistHandler {
	return &AssistHandler{ai: ai}
}

func (h *AssistHandler) GenerateDescription(c *gin.Context) {
	var req dto.DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.AssistResponse{
		Text:       h.ai.GenerateOrderDescription(c.Request.Context(), req.Title, req.ClientName),
		Configured: h.ai.Configured(),
	})
}

func (h *AssistHandler) SuggestSpecs(c *gin.Context) {
	var req dto.SpecsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.AssistResponse{
		Text:       h.ai.SuggestTechSpecs(c.Request.Context(), req.Description),
		Configured: h.ai.Configured(),
	})
}
