package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/internal/infrastructure"
)

// WebhookHandler receives Telegram webhook updates
type WebhookHandler struct {
	transport *infrastructure.TelegramTransport
	handler   infrastructure.UpdateHandler
	logger    *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(transport *infrastructure.TelegramTransport, handler infrastructure.UpdateHandler, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		transport: transport,
		handler:   handler,
		logger:    logger,
	}
}

// Receive handles POST <webhook path>. Telegram expects a fast 200;
// the update is dispatched off the request goroutine.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var update infrastructure.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.Warn("Malformed webhook update", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
		return
	}

	go h.transport.Dispatch(context.Background(), h.handler, update)

	c.Status(http.StatusOK)
}
