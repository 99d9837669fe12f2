package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/ryoptimus/DevStorm-backend/internal/errors"
	"github.com/ryoptimus/DevStorm-backend/internal/logger"
	"github.com/ryoptimus/DevStorm-backend/internal/services"
)

// AIHandler serves the brainstorm endpoint.
type AIHandler struct {
	aiService *services.AIService
}

// NewAIHandler creates a new AIHandler. aiService may be nil when no model
// key is configured.
func NewAIHandler(aiService *services.AIService) *AIHandler {
	return &AIHandler{
		aiService: aiService,
	}
}

// Brainstorm generates a project idea from the caller's roles, technologies,
// and industries.
func (h *AIHandler) Brainstorm(c *gin.Context) {
	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "Idea generation is not configured")
		return
	}

	type BrainstormRequest struct {
		Roles        []string `json:"roles" binding:"required"`
		Technologies []string `json:"technologies" binding:"required"`
		Industries   []string `json:"industries" binding:"required"`
	}

	var req BrainstormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	idea, err := h.aiService.BrainstormIdea(c.Request.Context(), req.Roles, req.Technologies, req.Industries)
	if err != nil {
		logger.L().WithError(err).Error("brainstorm generation failed")
		apierrors.ServiceUnavailable(c, "Failed to generate a project idea")
		return
	}

	c.JSON(http.StatusOK, idea)
}
