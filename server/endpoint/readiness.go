package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rapidrescue/rescuedge/component"
)

// Readiness answers 503 while any component is unhealthy. Degraded
// components still accept traffic.
func Readiness(info ServiceInfo, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ready"
		httpStatus := http.StatusOK

		if checker != nil && component.Overall(checker(c.Request.Context())) == component.StatusUnhealthy {
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   info.Name,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
