package controllers

import (
	"net/http"

	"nutritrack/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Assistant *services.AssistantService
}

func NewChatController(assistant *services.AssistantService) *ChatController {
	return &ChatController{Assistant: assistant}
}

type chatRequest struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context"`
}

// POST /nutrition-chat. Beyond a missing message, this endpoint never fails:
// collaborator trouble is absorbed into the assistant's fixed fallback reply.
func (cc *ChatController) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No message provided"})
		return
	}
	c.JSON(http.StatusOK, cc.Assistant.Ask(req.Message, req.Context))
}
