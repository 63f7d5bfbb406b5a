package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
	"go.uber.org/zap"
)

// ListItem описывает элемент ответа GET /urls
type ListItem struct {
	ShortCode   string     `json:"shortCode"`
	ShortURL    string     `json:"shortUrl"`
	OriginalURL string     `json:"originalUrl"`
	Clicks      int64      `json:"clicks"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// ListResponse описывает тело ответа GET /urls
type ListResponse struct {
	Items []ListItem `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Pages int64      `json:"pages"`
}

func queryInt(values url.Values, key string, def int) (int, bool) {
	raw := values.Get(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func queryString(values url.Values, key, def string) string {
	if raw := values.Get(key); raw != "" {
		return raw
	}
	return def
}

// ListURLs возвращает страницу ссылок вызывающего.
// Анонимный вызывающий видит все записи, аутентифицированный только свои.
func (h *Handler) ListURLs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	page, okPage := queryInt(values, "page", 1)
	limit, okLimit := queryInt(values, "limit", 10)
	if !okPage || !okLimit {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "INVALID_INPUT",
			Message: "page and limit must be integers",
		})
		return
	}

	filter := model.ListFilter{
		OwnerID:   ownerID(r),
		Page:      page,
		PageSize:  limit,
		SortField: queryString(values, "sortBy", "createdAt"),
		SortOrder: queryString(values, "sortOrder", "desc"),
	}

	links, total, err := h.usecase.ListLinks(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	items := make([]ListItem, 0, len(links))
	for _, link := range links {
		shortURL, err := url.JoinPath(h.cfg.BaseURL.String(), string(link.Code))
		if err != nil {
			h.logger.Error("failed to build short URL", zap.Error(err))
			continue
		}
		items = append(items, ListItem{
			ShortCode:   string(link.Code),
			ShortURL:    shortURL,
			OriginalURL: string(link.TargetURL),
			Clicks:      link.Clicks,
			CreatedAt:   link.CreatedAt,
			ExpiresAt:   link.ExpiresAt,
		})
	}

	pages := total / int64(filter.PageSize)
	if total%int64(filter.PageSize) != 0 {
		pages++
	}

	h.writeJSON(w, http.StatusOK, ListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Pages: pages,
	})
}
