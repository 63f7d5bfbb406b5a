package store

import (
	"context"
	"errors"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
)

var (
	ErrNotFound  = errors.New("link not found")
	ErrCodeTaken = errors.New("code already taken")
)

// Store определяет контракт хранилища коротких ссылок.
//
// Гарантии уникальности кода и атомарности счётчика кликов лежат на стороне
// хранилища: Create решает гонку конкурирующих вставок одной операцией,
// Resolve инкрементирует счётчик той же операцией, что возвращает запись.
// Приложение не имеет права эмулировать это через read-modify-write.
type Store interface {
	// Create сохраняет новую запись. Живой конфликт кода возвращает ErrCodeTaken;
	// запись с истёкшим сроком по тому же коду атомарно замещается новой
	// (код переиспользуется).
	Create(ctx context.Context, link model.ShortLink) (model.ShortLink, error)

	// Resolve возвращает живую запись по коду, атомарно увеличив счётчик кликов.
	// Отсутствующая или истёкшая запись даёт ErrNotFound.
	Resolve(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error)

	// Get возвращает живую запись по коду без побочных эффектов
	Get(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error)

	// Update перезаписывает целевой URL и срок жизни живой записи
	Update(ctx context.Context, link model.ShortLink, now time.Time) (model.ShortLink, error)

	// Delete удаляет запись по коду, ErrNotFound если её нет
	Delete(ctx context.Context, code model.Code) error

	// List возвращает страницу живых записей и общее количество подходящих
	// живых записей; истёкшие записи не видны так же, как в Resolve и Get
	List(ctx context.Context, filter model.ListFilter, now time.Time) ([]model.ShortLink, int64, error)

	// PurgeExpired удаляет истёкшие записи; Janitor вызывает его периодически.
	// Оптимизация компактности хранения, корректность от неё не зависит:
	// истёкшие записи игнорируются при чтении
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
