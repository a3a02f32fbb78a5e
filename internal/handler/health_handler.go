package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/database"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/redisclient"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/response"
)

// HealthHandler exposes liveness and readiness probes
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redisclient.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.PostgresDB, redis *redisclient.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{"status": "ok"}))
}

// Ready handles GET /ready. It fails when a backing store is unreachable so
// the orchestrator stops routing traffic here.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	checks := gin.H{"postgres": "ok", "redis": "ok"}
	healthy := true

	if err := h.db.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}
	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable,
			response.Error(response.ErrCodeServiceUnavailable, "dependency check failed"))
		return
	}
	c.JSON(http.StatusOK, response.Success(checks))
}
