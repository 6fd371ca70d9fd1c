package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/api/handlers"
	"github.com/yourusername/media-fetch-go/api/middleware"
	"github.com/yourusername/media-fetch-go/internal/infrastructure"
	"github.com/yourusername/media-fetch-go/internal/session"
)

// SetupRouter sets up the HTTP router with health endpoints and,
// when webhookPath is non-empty, the Telegram webhook receiver
func SetupRouter(
	sessions *session.Store,
	transport *infrastructure.TelegramTransport,
	updateHandler infrastructure.UpdateHandler,
	webhookPath string,
	log *zap.Logger,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(sessions)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	if webhookPath != "" {
		webhookHandler := handlers.NewWebhookHandler(transport, updateHandler, log)
		router.POST(webhookPath, webhookHandler.Receive)
	}

	return router
}
