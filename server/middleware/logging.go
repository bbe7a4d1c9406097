package middleware

import (
	"net/http"
	"time"

	"github.com/rapidrescue/rescuedge/logger"
)

var probePaths = map[string]bool{
	"/health":             true,
	"/liveness":           true,
	"/readiness":          true,
	"/metrics":            true,
	"/metrics/prometheus": true,
}

// RequestLogger logs every request with method, path, status and duration.
// Probe and metrics paths are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if probePaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := map[string]interface{}{
				"method":              r.Method,
				"path":                r.URL.Path,
				"status":              sw.status,
				logger.FieldDuration:  duration.Milliseconds(),
				logger.FieldRequestID: RequestIDFrom(r.Context()),
			}
			if duration > 500*time.Millisecond {
				fields["slow"] = true
			}
			logByStatus(log, fields, sw.status)
		})
	}
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
