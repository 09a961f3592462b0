package middleware

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Logger stores a request-scoped logger in the context so handlers
// and the services below them pick it up through zerolog.Ctx.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			requestLogger := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Logger()

			req = req.WithContext(requestLogger.WithContext(req.Context()))

			next.ServeHTTP(w, req)
		})
	}
}
