package usecase

import (
	"context"
	"time"

	"github.com/avc-dev/shortlink/internal/config"
	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

// mockRepository реализует LinkRepository через подменяемые функции
type mockRepository struct {
	ResolveFunc func(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error)
	GetFunc     func(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error)
	UpdateFunc  func(ctx context.Context, link model.ShortLink, now time.Time) (model.ShortLink, error)
	DeleteFunc  func(ctx context.Context, code model.Code) error
	ListFunc    func(ctx context.Context, filter model.ListFilter, now time.Time) ([]model.ShortLink, int64, error)
}

func (m *mockRepository) Resolve(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	return m.ResolveFunc(ctx, code, now)
}

func (m *mockRepository) Get(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	return m.GetFunc(ctx, code, now)
}

func (m *mockRepository) Update(ctx context.Context, link model.ShortLink, now time.Time) (model.ShortLink, error) {
	return m.UpdateFunc(ctx, link, now)
}

func (m *mockRepository) Delete(ctx context.Context, code model.Code) error {
	return m.DeleteFunc(ctx, code)
}

func (m *mockRepository) List(ctx context.Context, filter model.ListFilter, now time.Time) ([]model.ShortLink, int64, error) {
	return m.ListFunc(ctx, filter, now)
}

// mockAllocator реализует Allocator через подменяемую функцию
type mockAllocator struct {
	AllocateFunc func(ctx context.Context, target model.URL, customCode model.Code, expiresAt *time.Time, ownerID string, now time.Time) (model.ShortLink, error)
	calls        int
}

func (m *mockAllocator) Allocate(ctx context.Context, target model.URL, customCode model.Code, expiresAt *time.Time, ownerID string, now time.Time) (model.ShortLink, error) {
	m.calls++
	return m.AllocateFunc(ctx, target, customCode, expiresAt, ownerID, now)
}

// staticReadiness сообщает фиксированную готовность хранилища
type staticReadiness struct {
	ready bool
}

func (s staticReadiness) Ready() bool { return s.ready }

// newTestUsecase собирает usecase с дефолтной конфигурацией и готовым хранилищем
func newTestUsecase(repo LinkRepository, allocator Allocator) *LinkUsecase {
	return NewLinkUsecase(repo, allocator, staticReadiness{ready: true}, config.NewDefaultConfig(), zap.NewNop())
}
