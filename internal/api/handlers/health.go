// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/dto"
	"github.com/travelops/console-service/internal/core/audit"
	"github.com/travelops/console-service/internal/core/cache"
	"github.com/travelops/console-service/internal/core/gateway"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	gatewayClient gateway.Client
	cacheClient   cache.Cache
	auditRecorder audit.Recorder
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(gatewayClient gateway.Client, cacheClient cache.Cache, auditRecorder audit.Recorder) *HealthHandler {
	return &HealthHandler{
		gatewayClient: gatewayClient,
		cacheClient:   cacheClient,
		auditRecorder: auditRecorder,
	}
}

// Health handles the /health endpoint.
// @Summary Health check
// @Description Returns the overall health status and component statuses
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Failure 503 {object} dto.HealthResponse "Service unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	components := make(map[string]string)
	healthy := true

	if err := h.gatewayClient.Ping(c.Request.Context()); err != nil {
		components["gateway"] = "unhealthy"
		healthy = false
	} else {
		components["gateway"] = "healthy"
	}

	if err := h.cacheClient.Ping(c.Request.Context()); err != nil {
		components["cache"] = "unhealthy"
		healthy = false
	} else {
		components["cache"] = "healthy"
	}

	// The audit trail is optional; it degrades the status without failing it.
	if h.auditRecorder != nil {
		if err := h.auditRecorder.Ping(c.Request.Context()); err != nil {
			components["audit"] = "unhealthy"
		} else {
			components["audit"] = "healthy"
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:     status,
		Components: components,
	})
}

// Ready handles the /ready endpoint.
// @Summary Readiness check
// @Description Returns 200 if the service is ready to accept traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service ready"
// @Failure 503 {object} map[string]string "Service not ready"
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.gatewayClient.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "gateway unavailable",
		})
		return
	}

	if err := h.cacheClient.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "cache unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Live handles the /live endpoint.
// @Summary Liveness check
// @Description Returns 200 if the service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service alive"
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
