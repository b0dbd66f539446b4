package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farmkart/farmkart-api/internal/http/middleware"
	"github.com/farmkart/farmkart-api/internal/service"
)

type sendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipientId" binding:"required"`
	Body        string    `json:"body" binding:"required"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Send(c.Request.Context(), service.SendMessageInput{
		RecipientID: req.RecipientID,
		Body:        req.Body,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *Handler) listConversations(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	conversations, err := h.messages.ListConversations(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *Handler) listMessages(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	conversationID, ok := parseID(c, "id")
	if !ok {
		return
	}

	messages, err := h.messages.ListMessages(c.Request.Context(), conversationID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
