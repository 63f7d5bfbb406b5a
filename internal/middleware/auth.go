package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/avc-dev/shortlink/internal/service"
	"go.uber.org/zap"
)

// UserIDKey is the key used to store user ID in context
type UserIDKey string

const (
	// UserIDContextKey is the context key for user ID
	UserIDContextKey UserIDKey = "user_id"
)

// AuthMiddleware извлекает владельца из bearer токена.
// Токен опционален: запрос без заголовка Authorization проходит как анонимный.
type AuthMiddleware struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthMiddleware создает новый экземпляр AuthMiddleware
func NewAuthMiddleware(authService *service.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// OptionalAuth пропускает запрос без токена как анонимный,
// предъявленный токен обязан быть валидным
func (am *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		userID, err := am.authService.ValidateJWT(token)
		if err != nil {
			am.logger.Debug("rejected invalid bearer token", zap.Error(err))
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext извлекает user_id из контекста запроса
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok
}
