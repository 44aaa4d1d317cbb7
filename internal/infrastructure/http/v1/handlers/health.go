package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"doccstock/internal/infrastructure/storage/postgres"
)

// DatabaseProbe reports database reachability and pool usage.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Stats() postgres.PoolStats
}

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	db      DatabaseProbe
	app     string
	version string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db DatabaseProbe, app, version string) *HealthHandler {
	return &HealthHandler{db: db, app: app, version: version}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready and GET /api/health
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":      h.app,
		"version":  h.version,
		"database": h.db.Stats(),
	})
}
