package usecase

import (
	"context"
	"time"

	"github.com/avc-dev/shortlink/internal/config"
	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

// LinkRepository определяет интерфейс хранилища ссылок
type LinkRepository interface {
	Resolve(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error)
	Get(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error)
	Update(ctx context.Context, link model.ShortLink, now time.Time) (model.ShortLink, error)
	Delete(ctx context.Context, code model.Code) error
	List(ctx context.Context, filter model.ListFilter, now time.Time) ([]model.ShortLink, int64, error)
}

// Allocator определяет интерфейс выделения коротких кодов
type Allocator interface {
	Allocate(ctx context.Context, target model.URL, customCode model.Code, expiresAt *time.Time, ownerID string, now time.Time) (model.ShortLink, error)
}

// Readiness сообщает о готовности подключения к хранилищу.
// Неготовое подключение означает быстрый отказ, а не ожидание.
type Readiness interface {
	Ready() bool
}

// LinkUsecase содержит бизнес-логику операций над короткими ссылками
type LinkUsecase struct {
	repo      LinkRepository
	allocator Allocator
	readiness Readiness
	cfg       *config.Config
	logger    *zap.Logger

	// nowFunc подменяется в тестах для контроля времени
	nowFunc func() time.Time
}

// NewLinkUsecase создает новый экземпляр LinkUsecase
func NewLinkUsecase(repo LinkRepository, allocator Allocator, readiness Readiness, cfg *config.Config, logger *zap.Logger) *LinkUsecase {
	return &LinkUsecase{
		repo:      repo,
		allocator: allocator,
		readiness: readiness,
		cfg:       cfg,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// storeContext ограничивает операцию хранилища таймаутом из конфигурации,
// чтобы медленное хранилище не копило неограниченное число ожидающих запросов
func (u *LinkUsecase) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, u.cfg.Link.StoreTimeout)
}
