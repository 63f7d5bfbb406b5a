package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetURL обрабатывает переход по короткой ссылке.
// Истёкший код отвечает 404 так же, как отсутствующий.
func (h *Handler) GetURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	link, err := h.usecase.ResolveLink(r.Context(), code)
	if err != nil {
		h.writeError(w, err)
		return
	}

	http.Redirect(w, r, link.TargetURL.String(), http.StatusFound)
}
