package app

import (
	"context"
	"fmt"

	"github.com/avc-dev/shortlink/internal/config"
	"github.com/avc-dev/shortlink/internal/connector"
	"github.com/avc-dev/shortlink/internal/handler"
	"github.com/avc-dev/shortlink/internal/migrations"
	"github.com/avc-dev/shortlink/internal/rate"
	"github.com/avc-dev/shortlink/internal/repository"
	"github.com/avc-dev/shortlink/internal/service"
	"github.com/avc-dev/shortlink/internal/store"
	"github.com/avc-dev/shortlink/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// dependencies объединяет собранные компоненты приложения
type dependencies struct {
	handler   *handler.Handler
	connector *connector.Connector // nil при in-memory хранилище
	storage   store.Store
	limiter   rate.Limiter
	redis     *redis.Client // nil, если Redis не сконфигурирован
}

// staticReady подменяет Connector, когда хранилище живёт в памяти процесса
type staticReady struct{}

func (staticReady) Ready() bool            { return true }
func (staticReady) State() connector.State { return connector.Connected }

// initDependencies инициализирует все зависимости приложения
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*dependencies, error) {
	deps := &dependencies{}

	var (
		storage   store.Store
		readiness usecase.Readiness
		health    handler.HealthReporter
	)

	if cfg.DatabaseDSN != "" {
		conn := connector.New(connector.PGDial(cfg.DatabaseDSN), connector.Options{
			MaxRetries:        cfg.Connector.MaxRetries,
			BaseDelay:         cfg.Connector.RetryBaseDelay,
			MaxDelay:          cfg.Connector.RetryMaxDelay,
			HealthCheckPeriod: cfg.Connector.HealthCheckPeriod,
			ConnectTimeout:    cfg.Connector.ConnectTimeout,
		}, logger)

		if err := conn.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to store: %w", err)
		}

		if err := runMigrations(conn, logger); err != nil {
			conn.Close()
			return nil, err
		}

		storage = store.NewPGStore(conn)
		readiness, health = conn, conn
		deps.connector = conn
		logger.Info("Using database storage")
	} else {
		storage = store.NewMemoryStore()
		ready := staticReady{}
		readiness, health = ready, ready
		logger.Info("Using in-memory storage")
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		deps.redis = client
		deps.limiter = rate.NewRedisLimiter(client, cfg.RateLimit.Window, cfg.RateLimit.Max)
		logger.Info("Using redis rate limiter", zap.String("addr", cfg.RedisAddr))
	} else {
		deps.limiter = rate.NewBucketLimiter(cfg.RateLimit.Window, cfg.RateLimit.Max)
		logger.Info("Using in-memory rate limiter")
	}

	deps.storage = storage

	repo := repository.New(storage)
	generator := service.NewCodeGenerator(cfg.Link.CodeLength)
	allocator := service.NewAllocator(repo, generator, cfg.Link.AllocAttempts)
	linkUsecase := usecase.NewLinkUsecase(repo, allocator, readiness, cfg, logger)
	deps.handler = handler.New(linkUsecase, health, cfg, logger)

	return deps, nil
}

// runMigrations применяет схему через текущее подключение
func runMigrations(conn *connector.Connector, logger *zap.Logger) error {
	c, err := conn.Conn()
	if err != nil {
		return fmt.Errorf("failed to get store connection for migrations: %w", err)
	}

	pg, ok := c.(*connector.PGConn)
	if !ok {
		return fmt.Errorf("unexpected connection type %T", c)
	}

	if err := migrations.NewMigrator(pg.SQLDB, logger).RunUp(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
