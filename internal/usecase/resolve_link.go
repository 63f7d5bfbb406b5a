package usecase

import (
	"context"

	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

// ResolveLink возвращает запись по коду, атомарно учитывая переход.
// Истёкшая запись неотличима от отсутствующей.
func (u *LinkUsecase) ResolveLink(ctx context.Context, code string) (model.ShortLink, error) {
	if !u.readiness.Ready() {
		return model.ShortLink{}, ErrStoreUnavailable
	}

	storeCtx, cancel := u.storeContext(ctx)
	defer cancel()

	link, err := u.repo.Resolve(storeCtx, model.Code(code), u.nowFunc())
	if err != nil {
		mapped := mapStoreError(err)
		if mapped != ErrNotFound {
			u.logger.Error("failed to resolve link",
				zap.String("code", code),
				zap.Error(err),
			)
		}
		return model.ShortLink{}, mapped
	}

	u.logger.Debug("link resolved",
		zap.String("code", code),
		zap.Int64("clicks", link.Clicks),
	)

	return link, nil
}
