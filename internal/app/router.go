package app

import (
	"github.com/avc-dev/shortlink/internal/config"
	"github.com/avc-dev/shortlink/internal/handler"
	"github.com/avc-dev/shortlink/internal/middleware"
	"github.com/avc-dev/shortlink/internal/rate"
	"github.com/avc-dev/shortlink/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newRouter создает и настраивает роутер приложения
func newRouter(h *handler.Handler, limiter rate.Limiter, logger *zap.Logger, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Gzip(logger))
	r.Use(middleware.RateLimit(limiter, logger))

	// Auth
	authService := service.NewAuthService(cfg.JWTSecret)
	authMiddleware := middleware.NewAuthMiddleware(authService, logger)

	// Health-check и переход по короткой ссылке не требуют аутентификации
	r.Get("/ping", h.Ping)
	r.Get("/{code}", h.GetURL)

	// Операции над записями идут с опциональной аутентификацией:
	// токен задаёт владельца, его отсутствие означает анонимный доступ
	r.Route("/urls", func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuth)
		r.Post("/", h.CreateURL)
		r.Get("/", h.ListURLs)
		r.Patch("/{code}", h.UpdateURL)
		r.Delete("/{code}", h.DeleteURL)
	})

	return r
}
