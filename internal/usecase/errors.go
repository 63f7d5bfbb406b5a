package usecase

import (
	"context"
	"errors"

	"github.com/avc-dev/shortlink/internal/connector"
	"github.com/avc-dev/shortlink/internal/service"
	"github.com/avc-dev/shortlink/internal/store"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrCodeConflict        = errors.New("custom code already in use")
	ErrAllocationExhausted = errors.New("code allocation exhausted")
	ErrNotFound            = errors.New("link not found")
	ErrForbidden           = errors.New("operation not allowed for this caller")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrTimeout             = errors.New("store operation timed out")
)

// mapStoreError переводит ошибки нижних слоёв в таксономию usecase.
// Неизвестные ошибки проходят как есть и отображаются в generic internal error.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrCodeTaken):
		return ErrCodeConflict
	case errors.Is(err, service.ErrAllocationExhausted):
		return ErrAllocationExhausted
	case errors.Is(err, connector.ErrNotReady):
		return ErrStoreUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	default:
		return err
	}
}
