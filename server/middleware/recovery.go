package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/rapidrescue/rescuedge/errors"
	"github.com/rapidrescue/rescuedge/logger"
)

// Recovery turns handler panics into a 500 with the standard error body
// and logs the stack.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("Panic recovered", map[string]interface{}{
						logger.FieldError: fmt.Sprintf("%v", rec),
						"stack":           string(debug.Stack()),
						"path":            r.URL.Path,
						"method":          r.Method,
					})
					writeAppError(w, apperrors.Internal(fmt.Errorf("panic: %v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
