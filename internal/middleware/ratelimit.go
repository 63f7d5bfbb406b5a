package middleware

import (
	"net"
	"net/http"

	"github.com/avc-dev/shortlink/internal/rate"
	"go.uber.org/zap"
)

// RateLimit ограничивает число запросов на один IP.
// Отказ лимитера (например, недоступный Redis) пропускает запрос:
// деградация лимитирования не должна ронять основной путь.
func RateLimit(limiter rate.Limiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				key = r.RemoteAddr
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request",
					zap.String("key", key),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"code":"RATE_LIMITED","message":"too many requests"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
