package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avc-dev/shortlink/internal/usecase"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
)

// UpdateURLRequest описывает тело запроса PATCH /urls/{code}
type UpdateURLRequest struct {
	OriginalURL *string `json:"originalUrl,omitempty"`
	ExpiresIn   *int    `json:"expiresIn,omitempty"`
}

// UpdateURL обрабатывает частичное обновление записи владельцем
func (h *Handler) UpdateURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req UpdateURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode update request",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "INVALID_INPUT",
			Message: "malformed JSON body",
		})
		return
	}

	link, err := h.usecase.UpdateLink(r.Context(), code, ownerID(r), usecase.UpdateLinkRequest{
		OriginalURL: req.OriginalURL,
		ExpiresIn:   req.ExpiresIn,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, link)
}
