package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avc-dev/shortlink/internal/usecase"
	"go.uber.org/zap"
)

// CreateURLRequest описывает тело запроса POST /urls
type CreateURLRequest struct {
	OriginalURL string `json:"originalUrl"`
	CustomCode  string `json:"customCode,omitempty"`
	ExpiresIn   *int   `json:"expiresIn,omitempty"`
}

// CreateURLResponse описывает тело ответа 201
type CreateURLResponse struct {
	ShortCode string     `json:"shortCode"`
	ShortURL  string     `json:"shortUrl"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// CreateURL обрабатывает POST запрос на создание короткой ссылки
func (h *Handler) CreateURL(w http.ResponseWriter, r *http.Request) {
	var req CreateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode create request",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "INVALID_INPUT",
			Message: "malformed JSON body",
		})
		return
	}

	link, shortURL, err := h.usecase.CreateLink(r.Context(), usecase.CreateLinkRequest{
		OriginalURL: req.OriginalURL,
		CustomCode:  req.CustomCode,
		ExpiresIn:   req.ExpiresIn,
		OwnerID:     ownerID(r),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, CreateURLResponse{
		ShortCode: string(link.Code),
		ShortURL:  shortURL,
		ExpiresAt: link.ExpiresAt,
	})
}
