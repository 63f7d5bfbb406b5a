package handler

import (
	"net/http"

	"github.com/avc-dev/shortlink/internal/connector"
)

// Ping отвечает на health-check. Любое состояние кроме Connected считается
// нездоровым: решение о перезапуске остаётся за супервизором процесса.
func (h *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	state := h.health.State()

	status := http.StatusOK
	if state != connector.Connected {
		status = http.StatusServiceUnavailable
	}

	h.writeJSON(w, status, map[string]string{
		"store": state.String(),
	})
}
