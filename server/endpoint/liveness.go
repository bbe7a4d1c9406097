package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Liveness confirms the process is alive and able to serve HTTP.
func Liveness(info ServiceInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"service":   info.Name,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
