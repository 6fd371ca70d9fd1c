package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/media-fetch-go/internal/session"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	sessions *session.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions *session.Store) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions struct {
		Active int `json:"active"`
	} `json:"sessions"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}
	response.Sessions.Active = h.sessions.Len()

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
