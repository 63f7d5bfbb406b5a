package app

import (
	"context"

	"github.com/avc-dev/shortlink/internal/config"
	"go.uber.org/zap"
)

// App представляет сервис коротких ссылок
type App struct {
	config *config.Config
	logger *zap.Logger
	deps   *dependencies
}

// New создает новый экземпляр приложения
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	deps, err := initDependencies(ctx, cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, err
	}

	return &App{
		config: cfg,
		logger: logger,
		deps:   deps,
	}, nil
}

// Run собирает приложение и запускает HTTP сервер
func Run() error {
	app, err := New(context.Background())
	if err != nil {
		return err
	}
	defer app.logger.Sync()

	return app.start()
}
