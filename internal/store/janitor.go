package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Janitor периодически вызывает PurgeExpired, сдерживая рост хранилища.
// Корректность чтений от него не зависит: истёкшие записи и без того
// невидимы, поэтому ошибка очистки логируется и не останавливает цикл.
type Janitor struct {
	store  Store
	period time.Duration
	logger *zap.Logger

	// nowFunc подменяется в тестах для контроля времени
	nowFunc func() time.Time
}

// NewJanitor создает Janitor с данным периодом очистки
func NewJanitor(store Store, period time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:   store,
		period:  period,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Run запускает цикл очистки и блокируется до отмены контекста
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := j.store.PurgeExpired(ctx, j.nowFunc())
			if err != nil {
				j.logger.Warn("failed to purge expired links", zap.Error(err))
				continue
			}
			if purged > 0 {
				j.logger.Info("purged expired links", zap.Int64("count", purged))
			}
		}
	}
}
