package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
	"github.com/avc-dev/shortlink/internal/store"
)

// LinkRepository определяет операции хранилища, нужные аллокатору
type LinkRepository interface {
	Create(ctx context.Context, link model.ShortLink) (model.ShortLink, error)
}

// Allocator выделяет короткие коды. Уникальность гарантирует хранилище:
// аллокатор не делает предварительных проверок, а вставляет запись и повторяет
// генерацию только по сигналу о занятом коде. Две конкурирующие вставки одного
// кода разрешаются уникальным ограничением хранилища, не приложением.
type Allocator struct {
	repo        LinkRepository
	generator   Generator
	maxAttempts int
}

// NewAllocator создает Allocator с данным генератором кодов
func NewAllocator(repo LinkRepository, generator Generator, maxAttempts int) *Allocator {
	return &Allocator{
		repo:        repo,
		generator:   generator,
		maxAttempts: maxAttempts,
	}
}

// Allocate сохраняет новую запись с пользовательским или сгенерированным кодом.
// Для пользовательского кода делается ровно одна попытка: выбор другого кода
// остаётся за вызывающим. ExpiresAt вычислен заранее, на момент аллокации.
func (a *Allocator) Allocate(ctx context.Context, target model.URL, customCode model.Code, expiresAt *time.Time, ownerID string, now time.Time) (model.ShortLink, error) {
	link := model.ShortLink{
		TargetURL: target,
		CreatedAt: now,
		ExpiresAt: expiresAt,
		OwnerID:   ownerID,
	}

	if customCode != "" {
		link.Code = customCode
		created, err := a.repo.Create(ctx, link)
		if err != nil {
			return model.ShortLink{}, fmt.Errorf("failed to allocate custom code: %w", err)
		}
		return created, nil
	}

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		link.Code = a.generator.GenerateCode()

		created, err := a.repo.Create(ctx, link)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, store.ErrCodeTaken) {
			// гонка вставки: код заняла конкурирующая запись, пробуем другой
			continue
		}
		return model.ShortLink{}, fmt.Errorf("failed to allocate code: %w", err)
	}

	return model.ShortLink{}, fmt.Errorf("failed to allocate code after %d attempts: %w", a.maxAttempts, ErrAllocationExhausted)
}
