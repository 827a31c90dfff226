package middleware

import (
	"authsvc/internal/core/domain/logging"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs every request once it is served.
func RequestLogger(log logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(rw, r.ProtoMajor)

			next.ServeHTTP(wrapped, r)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entries := []logging.LogEntry{
				logging.Entry("method", r.Method),
				logging.Entry("path", r.URL.Path),
				logging.Entry("status", status),
				logging.Entry("durationMs", time.Since(start).Milliseconds()),
			}
			switch {
			case status >= http.StatusInternalServerError:
				log.Error(r.Context(), "Request completed.", entries...)
			case status >= http.StatusBadRequest:
				log.Warning(r.Context(), "Request completed.", entries...)
			default:
				log.Info(r.Context(), "Request completed.", entries...)
			}
		})
	}
}

// SecurityHeaders adds security related headers to all responses.
// Reset pages need inline styles and must post back to this origin.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")
		rw.Header().Set("Referrer-Policy", "no-referrer")
		rw.Header().Set(
			"Content-Security-Policy",
			"default-src 'none'; style-src 'unsafe-inline'; form-action 'self'",
		)
		next.ServeHTTP(rw, r)
	})
}
