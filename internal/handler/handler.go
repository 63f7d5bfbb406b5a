package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc-dev/shortlink/internal/config"
	"github.com/avc-dev/shortlink/internal/connector"
	"github.com/avc-dev/shortlink/internal/middleware"
	"github.com/avc-dev/shortlink/internal/model"
	"github.com/avc-dev/shortlink/internal/usecase"
	"go.uber.org/zap"
)

// LinkUsecase определяет бизнес-операции, доступные HTTP слою
type LinkUsecase interface {
	CreateLink(ctx context.Context, req usecase.CreateLinkRequest) (model.ShortLink, string, error)
	ResolveLink(ctx context.Context, code string) (model.ShortLink, error)
	UpdateLink(ctx context.Context, code string, ownerID string, req usecase.UpdateLinkRequest) (model.ShortLink, error)
	DeleteLink(ctx context.Context, code string, ownerID string) error
	ListLinks(ctx context.Context, filter model.ListFilter) ([]model.ShortLink, int64, error)
}

// HealthReporter отдаёт состояние подключения к хранилищу для health-check
type HealthReporter interface {
	State() connector.State
}

// Handler обрабатывает HTTP запросы сервиса коротких ссылок
type Handler struct {
	usecase LinkUsecase
	health  HealthReporter
	cfg     *config.Config
	logger  *zap.Logger
}

// New создает новый экземпляр Handler
func New(uc LinkUsecase, health HealthReporter, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		usecase: uc,
		health:  health,
		cfg:     cfg,
		logger:  logger,
	}
}

// errorResponse задаёт машиночитаемый конверт ошибки.
// Текст внутренних ошибок наружу не отдаётся.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError отображает ошибку usecase в HTTP статус и стабильный код
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		status int
		code   string
	)

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		status, code = http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, usecase.ErrCodeConflict):
		status, code = http.StatusConflict, "CODE_CONFLICT"
	case errors.Is(err, usecase.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, usecase.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, usecase.ErrAllocationExhausted):
		status, code = http.StatusServiceUnavailable, "ALLOCATION_EXHAUSTED"
	case errors.Is(err, usecase.ErrStoreUnavailable):
		status, code = http.StatusServiceUnavailable, "STORE_UNAVAILABLE"
	case errors.Is(err, usecase.ErrTimeout):
		status, code = http.StatusGatewayTimeout, "TIMEOUT"
	default:
		h.logger.Error("unhandled internal error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "INTERNAL",
			Message: "internal server error",
		})
		return
	}

	h.writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

// ownerID извлекает идентификатор вызывающего из контекста запроса.
// Пустая строка означает анонимного вызывающего.
func ownerID(r *http.Request) string {
	id, _ := middleware.GetUserIDFromContext(r.Context())
	return id
}
