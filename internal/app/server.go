package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avc-dev/shortlink/internal/store"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// start запускает HTTP сервер и блокируется до сигнала завершения.
// Терминальный отказ подключения к хранилищу завершает процесс так же,
// как внешний сигнал: политика рестарта остаётся за супервизором.
func (a *App) start() error {
	router := newRouter(a.deps.handler, a.deps.limiter, a.logger, a.config)

	server := &http.Server{
		Addr:    a.config.ServerAddress.String(),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", zap.String("address", server.Addr))
		serverErr <- server.ListenAndServe()
	}()

	// фоновая очистка истёкших записей живёт до завершения процесса
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go store.NewJanitor(a.deps.storage, a.config.Link.PurgeInterval, a.logger).Run(janitorCtx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// nil канал блокируется навсегда: при in-memory хранилище коннектора нет
	var storeFailed <-chan struct{}
	if a.deps.connector != nil {
		storeFailed = a.deps.connector.Done()
	}

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Server failed", zap.Error(err))
			return err
		}
		return nil
	case sig := <-stop:
		a.logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case <-storeFailed:
		a.logger.Error("Store connection failed permanently, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	if a.deps.connector != nil {
		a.deps.connector.Close()
	}
	if a.deps.redis != nil {
		a.deps.redis.Close()
	}

	return nil
}
