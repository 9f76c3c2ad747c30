package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger returns a middleware that logs every HTTP request.
// It logs the method, path, user ID, status and duration.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			userID := GetUserID(r.Context()) // empty if pre-auth
			duration := time.Since(start).Milliseconds()
			status := ww.Status()

			switch {
			case status >= 500:
				logger.Error("request error",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			case status >= 400:
				logger.Warn("request rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			default:
				logger.Info("request ok",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"user_id", userID,
					"duration_ms", duration,
				)
			}
		})
	}
}
