package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aipipeline/internal/models"
	"aipipeline/internal/services"
)

type AIHandler struct {
	Service services.AIService // nil when no API key is configured
}

type askRequest struct {
	Prompt string        `json:"prompt" binding:"required"`
	Deals  []models.Deal `json:"deals"`
}

func NewAIHandler(service services.AIService) *AIHandler {
	return &AIHandler{Service: service}
}

// @Summary      Ask the AI assistant
// @Description  Forwards the prompt (plus optional deal context) to the completion API.
// @Tags         AI
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        ask  body      object  true  "Prompt and optional deals"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/ai/ask [post]
func (h *AIHandler) Ask(c *gin.Context) {
	if h.Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	reply, err := h.Service.Ask(c.Request.Context(), req.Prompt, req.Deals)
	if err != nil {
		log.Printf("[ai][ask] completion failed for userID=%d: %v", getUserID(c), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
