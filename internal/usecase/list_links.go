package usecase

import (
	"context"
	"fmt"

	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

const maxPageSize = 100

// ListLinks возвращает страницу записей без побочных эффектов
func (u *LinkUsecase) ListLinks(ctx context.Context, filter model.ListFilter) ([]model.ShortLink, int64, error) {
	if filter.Page < 1 {
		return nil, 0, fmt.Errorf("%w: page must be positive", ErrInvalidInput)
	}
	if filter.PageSize < 1 || filter.PageSize > maxPageSize {
		return nil, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxPageSize)
	}
	if filter.SortField != "createdAt" && filter.SortField != "clicks" {
		return nil, 0, fmt.Errorf("%w: sortBy must be createdAt or clicks", ErrInvalidInput)
	}
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		return nil, 0, fmt.Errorf("%w: sortOrder must be asc or desc", ErrInvalidInput)
	}

	if !u.readiness.Ready() {
		return nil, 0, ErrStoreUnavailable
	}

	storeCtx, cancel := u.storeContext(ctx)
	defer cancel()

	links, total, err := u.repo.List(storeCtx, filter, u.nowFunc())
	if err != nil {
		mapped := mapStoreError(err)
		u.logger.Error("failed to list links",
			zap.String("owner_id", filter.OwnerID),
			zap.Error(err),
		)
		return nil, 0, mapped
	}

	return links, total, nil
}
