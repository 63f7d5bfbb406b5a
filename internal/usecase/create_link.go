package usecase

import (
	"context"
	"net/url"

	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

// CreateLinkRequest описывает параметры создания короткой ссылки
type CreateLinkRequest struct {
	OriginalURL string
	CustomCode  string
	ExpiresIn   *int
	OwnerID     string
}

// CreateLink валидирует запрос и выделяет короткий код.
// При недоступном хранилище отвечает быстрым отказом без обращения к нему.
func (u *LinkUsecase) CreateLink(ctx context.Context, req CreateLinkRequest) (model.ShortLink, string, error) {
	target, err := u.validateTargetURL(req.OriginalURL)
	if err != nil {
		return model.ShortLink{}, "", err
	}

	var customCode model.Code
	if req.CustomCode != "" {
		customCode, err = validateCustomCode(req.CustomCode)
		if err != nil {
			return model.ShortLink{}, "", err
		}
	}

	now := u.nowFunc()
	expiresAt, err := u.computeExpiry(req.ExpiresIn, now)
	if err != nil {
		return model.ShortLink{}, "", err
	}

	if !u.readiness.Ready() {
		return model.ShortLink{}, "", ErrStoreUnavailable
	}

	storeCtx, cancel := u.storeContext(ctx)
	defer cancel()

	link, err := u.allocator.Allocate(storeCtx, target, customCode, expiresAt, req.OwnerID, now)
	if err != nil {
		mapped := mapStoreError(err)
		u.logger.Error("failed to allocate short link",
			zap.String("custom_code", req.CustomCode),
			zap.Error(err),
		)
		return model.ShortLink{}, "", mapped
	}

	shortURL, err := url.JoinPath(u.cfg.BaseURL.String(), string(link.Code))
	if err != nil {
		u.logger.Error("failed to build short URL",
			zap.String("base_url", u.cfg.BaseURL.String()),
			zap.String("code", string(link.Code)),
			zap.Error(err),
		)
		return model.ShortLink{}, "", err
	}

	return link, shortURL, nil
}
