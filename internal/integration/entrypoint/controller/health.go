package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthCheck
	redis    HealthCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil redis
// check reports the cache as disabled.
func NewHealthController(database, redis HealthCheck) *HealthController {
	return &HealthController{database: database, redis: redis}
}

// Check handles GET /health requests. The API is alive as long as it can
// answer; dependency states are informational.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Database:  probe(ctx, h.database, "connected", "disconnected"),
		Redis:     probe(ctx, h.redis, "connected", "disconnected"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func probe(ctx context.Context, check HealthCheck, up, down string) string {
	if check == nil {
		return "disabled"
	}
	if err := check(ctx); err != nil {
		return down
	}
	return up
}
