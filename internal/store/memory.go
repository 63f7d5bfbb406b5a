package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
)

// MemoryStore реализует Store в памяти с теми же гарантиями, что и PGStore:
// уникальность кода и инкремент кликов атомарны под общим мьютексом.
// Используется в тестах и при запуске без базы данных.
type MemoryStore struct {
	mu    sync.Mutex
	links map[model.Code]model.ShortLink
}

// NewMemoryStore создает пустое in-memory хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[model.Code]model.ShortLink),
	}
}

// Create сохраняет новую запись; живой конфликт кода даёт ErrCodeTaken,
// истёкшая запись по тому же коду замещается
func (s *MemoryStore) Create(_ context.Context, link model.ShortLink) (model.ShortLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.links[link.Code]; ok && !existing.Expired(link.CreatedAt) {
		return model.ShortLink{}, fmt.Errorf("code %s: %w", link.Code, ErrCodeTaken)
	}

	link.Clicks = 0
	s.links[link.Code] = link

	return link, nil
}

// Resolve возвращает живую запись, атомарно увеличив счётчик кликов
func (s *MemoryStore) Resolve(_ context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[code]
	if !ok || link.Expired(now) {
		return model.ShortLink{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
	}

	link.Clicks++
	s.links[code] = link

	return link, nil
}

// Get возвращает живую запись без побочных эффектов
func (s *MemoryStore) Get(_ context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[code]
	if !ok || link.Expired(now) {
		return model.ShortLink{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
	}

	return link, nil
}

// Update перезаписывает целевой URL и срок жизни живой записи
func (s *MemoryStore) Update(_ context.Context, link model.ShortLink, now time.Time) (model.ShortLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.links[link.Code]
	if !ok || existing.Expired(now) {
		return model.ShortLink{}, fmt.Errorf("code %s: %w", link.Code, ErrNotFound)
	}

	existing.TargetURL = link.TargetURL
	existing.ExpiresAt = link.ExpiresAt
	s.links[link.Code] = existing

	return existing, nil
}

// Delete удаляет запись по коду
func (s *MemoryStore) Delete(_ context.Context, code model.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[code]; !ok {
		return fmt.Errorf("code %s: %w", code, ErrNotFound)
	}

	delete(s.links, code)
	return nil
}

// List возвращает страницу живых записей и общее количество подходящих
// живых записей
func (s *MemoryStore) List(_ context.Context, filter model.ListFilter, now time.Time) ([]model.ShortLink, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []model.ShortLink
	for _, link := range s.links {
		if link.Expired(now) {
			continue
		}
		if filter.OwnerID != "" && link.OwnerID != filter.OwnerID {
			continue
		}
		all = append(all, link)
	}

	sort.Slice(all, func(i, j int) bool {
		var less bool
		if filter.SortField == "clicks" {
			less = all[i].Clicks < all[j].Clicks
		} else {
			less = all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		if filter.SortOrder == "asc" {
			return less
		}
		return !less
	})

	total := int64(len(all))

	start := filter.Offset()
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], total, nil
}

// PurgeExpired удаляет истёкшие записи
func (s *MemoryStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for code, link := range s.links {
		if link.Expired(now) {
			delete(s.links, code)
			purged++
		}
	}

	return purged, nil
}
