// Package endpoint provides the system HTTP handlers every RescuEdge
// process exposes next to its API routes.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rapidrescue/rescuedge/component"
)

// ServiceInfo identifies the process in endpoint responses.
type ServiceInfo struct {
	Name        string
	Environment string
}

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// Health reports overall health with per-component detail. Unhealthy
// services answer 503.
func Health(info ServiceInfo, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var components []component.Health
		if checker != nil {
			components = checker(c.Request.Context())
		}
		status := component.Overall(components)

		httpStatus := http.StatusOK
		if status == component.StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    info.Name,
			"env":        info.Environment,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}
