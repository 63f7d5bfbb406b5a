package usecase

import (
	"context"

	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

// DeleteLink удаляет запись. Проверка владельца та же, что и при обновлении.
// Удаление отсутствующего кода возвращает ErrNotFound, идемпотентность оставлена клиенту.
func (u *LinkUsecase) DeleteLink(ctx context.Context, code string, ownerID string) error {
	if !u.readiness.Ready() {
		return ErrStoreUnavailable
	}

	storeCtx, cancel := u.storeContext(ctx)
	defer cancel()

	link, err := u.repo.Get(storeCtx, model.Code(code), u.nowFunc())
	if err != nil {
		return mapStoreError(err)
	}

	if link.OwnerID != "" && link.OwnerID != ownerID {
		return ErrForbidden
	}

	if err := u.repo.Delete(storeCtx, model.Code(code)); err != nil {
		mapped := mapStoreError(err)
		if mapped != ErrNotFound {
			u.logger.Error("failed to delete link",
				zap.String("code", code),
				zap.Error(err),
			)
		}
		return mapped
	}

	return nil
}
