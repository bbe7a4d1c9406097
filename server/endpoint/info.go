package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rapidrescue/rescuedge/version"
)

var startTime = time.Now()

// Info reports service identity, build and uptime.
func Info(info ServiceInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service":     info.Name,
			"env":         info.Environment,
			"version":     v.Short(),
			"api_version": v.APIVersion,
			"go_version":  v.GoVersion,
			"uptime":      time.Since(startTime).Round(time.Second).String(),
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
