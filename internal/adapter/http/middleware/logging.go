package middleware

import (
	"net/http"
	"time"
)

// Logging logs the start and the end of every request.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newStatusRecorder(w)

		m.log.Debug(r.Context(), "started",
			"method", r.Method,
			"URL", r.URL.Path,
			"request-host", r.Host,
		)

		next.ServeHTTP(rw, r)

		status := rw.Status()
		args := []any{
			"method", r.Method,
			"URL", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
		}
		if status >= http.StatusInternalServerError {
			m.log.Warn(r.Context(), "completed with server error", args...)
			return
		}
		m.log.Debug(r.Context(), "completed", args...)
	})
}
