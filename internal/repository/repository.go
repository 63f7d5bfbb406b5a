package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
	"github.com/avc-dev/shortlink/internal/store"
)

// Repository оборачивает Store тонкой прослойкой, добавляющей контекст к ошибкам.
// Сентинельные ошибки хранилища проходят сквозь обёртку и остаются
// различимыми через errors.Is.
type Repository struct {
	underlying store.Store
}

// New создает Repository поверх данного хранилища
func New(underlying store.Store) *Repository {
	return &Repository{underlying}
}

func (r *Repository) Create(ctx context.Context, link model.ShortLink) (model.ShortLink, error) {
	created, err := r.underlying.Create(ctx, link)
	if err != nil {
		return model.ShortLink{}, fmt.Errorf("failed to create link: %w", err)
	}
	return created, nil
}

func (r *Repository) Resolve(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	link, err := r.underlying.Resolve(ctx, code, now)
	if err != nil {
		return model.ShortLink{}, fmt.Errorf("failed to resolve link: %w", err)
	}
	return link, nil
}

func (r *Repository) Get(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	link, err := r.underlying.Get(ctx, code, now)
	if err != nil {
		return model.ShortLink{}, fmt.Errorf("failed to get link: %w", err)
	}
	return link, nil
}

func (r *Repository) Update(ctx context.Context, link model.ShortLink, now time.Time) (model.ShortLink, error) {
	updated, err := r.underlying.Update(ctx, link, now)
	if err != nil {
		return model.ShortLink{}, fmt.Errorf("failed to update link: %w", err)
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, code model.Code) error {
	if err := r.underlying.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter model.ListFilter, now time.Time) ([]model.ShortLink, int64, error) {
	links, total, err := r.underlying.List(ctx, filter, now)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}
	return links, total, nil
}
