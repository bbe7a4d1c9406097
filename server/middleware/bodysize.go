package middleware

import (
	"net/http"

	"github.com/rapidrescue/rescuedge/util"
)

const defaultMaxBodySize = 1 << 20 // 1MB

// BodySizeLimit caps request bodies at maxSize ("64KB", "1MB", ...).
// Unparseable sizes fall back to 1MB.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > size {
				w.Header().Set("Connection", "close")
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
