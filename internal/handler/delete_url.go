package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DeleteURL обрабатывает удаление записи владельцем
func (h *Handler) DeleteURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.usecase.DeleteLink(r.Context(), code, ownerID(r)); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "URL deleted successfully",
	})
}
