package usecase

import (
	"context"

	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

// UpdateLinkRequest описывает частичное обновление записи
type UpdateLinkRequest struct {
	OriginalURL *string
	ExpiresIn   *int
}

// UpdateLink меняет целевой URL и/или срок жизни записи.
// Запись с владельцем может менять только владелец; запись без владельца
// доступна любому вызывающему.
func (u *LinkUsecase) UpdateLink(ctx context.Context, code string, ownerID string, req UpdateLinkRequest) (model.ShortLink, error) {
	if !u.readiness.Ready() {
		return model.ShortLink{}, ErrStoreUnavailable
	}

	now := u.nowFunc()

	storeCtx, cancel := u.storeContext(ctx)
	defer cancel()

	link, err := u.repo.Get(storeCtx, model.Code(code), now)
	if err != nil {
		return model.ShortLink{}, mapStoreError(err)
	}

	if link.OwnerID != "" && link.OwnerID != ownerID {
		return model.ShortLink{}, ErrForbidden
	}

	if req.OriginalURL != nil {
		target, err := u.validateTargetURL(*req.OriginalURL)
		if err != nil {
			return model.ShortLink{}, err
		}
		link.TargetURL = target
	}

	if req.ExpiresIn != nil {
		expiresAt, err := u.computeExpiry(req.ExpiresIn, now)
		if err != nil {
			return model.ShortLink{}, err
		}
		link.ExpiresAt = expiresAt
	}

	updated, err := u.repo.Update(storeCtx, link, now)
	if err != nil {
		mapped := mapStoreError(err)
		u.logger.Error("failed to update link",
			zap.String("code", code),
			zap.Error(err),
		)
		return model.ShortLink{}, mapped
	}

	return updated, nil
}
