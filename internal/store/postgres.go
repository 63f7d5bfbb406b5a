package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avc-dev/shortlink/internal/connector"
	"github.com/avc-dev/shortlink/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore реализует Store поверх PostgreSQL.
// Пул подключений берётся у Connector на каждую операцию: после реконнекта
// хендл меняется, кешировать его нельзя.
type PGStore struct {
	connector *connector.Connector
}

// NewPGStore создает PGStore, привязанный к данному Connector
func NewPGStore(c *connector.Connector) *PGStore {
	return &PGStore{connector: c}
}

func (s *PGStore) pool() (*pgxpool.Pool, error) {
	conn, err := s.connector.Conn()
	if err != nil {
		return nil, err
	}

	pg, ok := conn.(*connector.PGConn)
	if !ok {
		return nil, fmt.Errorf("unexpected connection type %T", conn)
	}
	return pg.Pool, nil
}

const linkColumns = `code, original_url, clicks, created_at, expires_at, owner_id`

func scanLink(row pgx.Row) (model.ShortLink, error) {
	var (
		link    model.ShortLink
		ownerID *string
	)

	err := row.Scan(&link.Code, &link.TargetURL, &link.Clicks, &link.CreatedAt, &link.ExpiresAt, &ownerID)
	if err != nil {
		return model.ShortLink{}, err
	}

	if ownerID != nil {
		link.OwnerID = *ownerID
	}
	return link, nil
}

func nullableOwner(ownerID string) *string {
	if ownerID == "" {
		return nil
	}
	return &ownerID
}

// Create вставляет запись, полагаясь на уникальный индекс кода.
// Конфликт с истёкшей записью разрешается в той же команде: истёкшая запись
// замещается новой (переиспользование кода), конфликт с живой записью
// не возвращает строк и транслируется в ErrCodeTaken.
func (s *PGStore) Create(ctx context.Context, link model.ShortLink) (model.ShortLink, error) {
	pool, err := s.pool()
	if err != nil {
		return model.ShortLink{}, err
	}

	query := `
		INSERT INTO links (code, original_url, clicks, created_at, expires_at, owner_id)
		VALUES ($1, $2, 0, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE
		SET original_url = EXCLUDED.original_url,
		    clicks       = 0,
		    created_at   = EXCLUDED.created_at,
		    expires_at   = EXCLUDED.expires_at,
		    owner_id     = EXCLUDED.owner_id
		WHERE links.expires_at IS NOT NULL AND links.expires_at <= EXCLUDED.created_at
		RETURNING ` + linkColumns

	row := pool.QueryRow(ctx, query,
		string(link.Code), string(link.TargetURL), link.CreatedAt, link.ExpiresAt, nullableOwner(link.OwnerID),
	)

	created, err := scanLink(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ShortLink{}, fmt.Errorf("code %s: %w", link.Code, ErrCodeTaken)
		}
		return model.ShortLink{}, fmt.Errorf("failed to insert link: %w", err)
	}

	return created, nil
}

// Resolve атомарно инкрементирует счётчик кликов живой записи и возвращает её.
// Инкремент и чтение выполняются одной командой, потерянные обновления исключены.
func (s *PGStore) Resolve(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	pool, err := s.pool()
	if err != nil {
		return model.ShortLink{}, err
	}

	query := `
		UPDATE links
		SET clicks = clicks + 1
		WHERE code = $1 AND (expires_at IS NULL OR expires_at > $2)
		RETURNING ` + linkColumns

	link, err := scanLink(pool.QueryRow(ctx, query, string(code), now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ShortLink{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
		}
		return model.ShortLink{}, fmt.Errorf("failed to resolve link: %w", err)
	}

	return link, nil
}

// Get возвращает живую запись без побочных эффектов
func (s *PGStore) Get(ctx context.Context, code model.Code, now time.Time) (model.ShortLink, error) {
	pool, err := s.pool()
	if err != nil {
		return model.ShortLink{}, err
	}

	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE code = $1 AND (expires_at IS NULL OR expires_at > $2)
	`

	link, err := scanLink(pool.QueryRow(ctx, query, string(code), now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ShortLink{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
		}
		return model.ShortLink{}, fmt.Errorf("failed to get link: %w", err)
	}

	return link, nil
}

// Update перезаписывает целевой URL и срок жизни живой записи
func (s *PGStore) Update(ctx context.Context, link model.ShortLink, now time.Time) (model.ShortLink, error) {
	pool, err := s.pool()
	if err != nil {
		return model.ShortLink{}, err
	}

	query := `
		UPDATE links
		SET original_url = $2, expires_at = $3
		WHERE code = $1 AND (expires_at IS NULL OR expires_at > $4)
		RETURNING ` + linkColumns

	updated, err := scanLink(pool.QueryRow(ctx, query, string(link.Code), string(link.TargetURL), link.ExpiresAt, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ShortLink{}, fmt.Errorf("code %s: %w", link.Code, ErrNotFound)
		}
		return model.ShortLink{}, fmt.Errorf("failed to update link: %w", err)
	}

	return updated, nil
}

// Delete удаляет запись по коду
func (s *PGStore) Delete(ctx context.Context, code model.Code) error {
	pool, err := s.pool()
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM links WHERE code = $1`, string(code))
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("code %s: %w", code, ErrNotFound)
	}
	return nil
}

// List возвращает страницу живых записей с сортировкой и общее количество.
// Поле сортировки валидируется на уровне usecase, сюда приходит
// только createdAt или clicks.
func (s *PGStore) List(ctx context.Context, filter model.ListFilter, now time.Time) ([]model.ShortLink, int64, error) {
	pool, err := s.pool()
	if err != nil {
		return nil, 0, err
	}

	sortColumn := "created_at"
	if filter.SortField == "clicks" {
		sortColumn = "clicks"
	}
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	where := "WHERE (expires_at IS NULL OR expires_at > $3)"
	args := []any{filter.PageSize, filter.Offset(), now}
	if filter.OwnerID != "" {
		where += " AND owner_id = $4"
		args = append(args, filter.OwnerID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM links
		%s
		ORDER BY %s %s
		LIMIT $1 OFFSET $2
	`, linkColumns, where, sortColumn, direction)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var links []model.ShortLink
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate links: %w", err)
	}

	countQuery := `SELECT COUNT(*) FROM links WHERE (expires_at IS NULL OR expires_at > $1)`
	countArgs := []any{now}
	if filter.OwnerID != "" {
		countQuery += ` AND owner_id = $2`
		countArgs = append(countArgs, filter.OwnerID)
	}

	var total int64
	if err := pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count links: %w", err)
	}

	return links, total, nil
}

// PurgeExpired удаляет истёкшие записи
func (s *PGStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	pool, err := s.pool()
	if err != nil {
		return 0, err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM links WHERE expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired links: %w", err)
	}

	return tag.RowsAffected(), nil
}
