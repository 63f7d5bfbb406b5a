package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avc-dev/shortlink/internal/config"
	"github.com/avc-dev/shortlink/internal/connector"
	"github.com/avc-dev/shortlink/internal/model"
	"github.com/avc-dev/shortlink/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockUsecase реализует LinkUsecase через подменяемые функции
type mockUsecase struct {
	CreateLinkFunc  func(ctx context.Context, req usecase.CreateLinkRequest) (model.ShortLink, string, error)
	ResolveLinkFunc func(ctx context.Context, code string) (model.ShortLink, error)
	UpdateLinkFunc  func(ctx context.Context, code string, ownerID string, req usecase.UpdateLinkRequest) (model.ShortLink, error)
	DeleteLinkFunc  func(ctx context.Context, code string, ownerID string) error
	ListLinksFunc   func(ctx context.Context, filter model.ListFilter) ([]model.ShortLink, int64, error)
}

func (m *mockUsecase) CreateLink(ctx context.Context, req usecase.CreateLinkRequest) (model.ShortLink, string, error) {
	return m.CreateLinkFunc(ctx, req)
}

func (m *mockUsecase) ResolveLink(ctx context.Context, code string) (model.ShortLink, error) {
	return m.ResolveLinkFunc(ctx, code)
}

func (m *mockUsecase) UpdateLink(ctx context.Context, code string, ownerID string, req usecase.UpdateLinkRequest) (model.ShortLink, error) {
	return m.UpdateLinkFunc(ctx, code, ownerID, req)
}

func (m *mockUsecase) DeleteLink(ctx context.Context, code string, ownerID string) error {
	return m.DeleteLinkFunc(ctx, code, ownerID)
}

func (m *mockUsecase) ListLinks(ctx context.Context, filter model.ListFilter) ([]model.ShortLink, int64, error) {
	return m.ListLinksFunc(ctx, filter)
}

// mockHealth отдаёт фиксированное состояние подключения
type mockHealth struct {
	state connector.State
}

func (m mockHealth) State() connector.State { return m.state }

// newTestRouter собирает chi роутер с боевой схемой маршрутов поверх мока
func newTestRouter(uc LinkUsecase, health HealthReporter) http.Handler {
	h := New(uc, health, config.NewDefaultConfig(), zap.NewNop())

	r := chi.NewRouter()
	r.Get("/ping", h.Ping)
	r.Get("/{code}", h.GetURL)
	r.Route("/urls", func(r chi.Router) {
		r.Post("/", h.CreateURL)
		r.Get("/", h.ListURLs)
		r.Patch("/{code}", h.UpdateURL)
		r.Delete("/{code}", h.DeleteURL)
	})

	return r
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// TestWriteError проверяет отображение таксономии ошибок в статусы и коды
func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"Invalid input", usecase.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"Code conflict", usecase.ErrCodeConflict, http.StatusConflict, "CODE_CONFLICT"},
		{"Not found", usecase.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"Forbidden", usecase.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"Allocation exhausted", usecase.ErrAllocationExhausted, http.StatusServiceUnavailable, "ALLOCATION_EXHAUSTED"},
		{"Store unavailable", usecase.ErrStoreUnavailable, http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"Timeout", usecase.ErrTimeout, http.StatusGatewayTimeout, "TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(&mockUsecase{}, mockHealth{}, config.NewDefaultConfig(), zap.NewNop())

			rec := httptest.NewRecorder()
			h.writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

// TestWriteError_Internal проверяет, что текст неизвестной ошибки наружу не уходит
func TestWriteError_Internal(t *testing.T) {
	h := New(&mockUsecase{}, mockHealth{}, config.NewDefaultConfig(), zap.NewNop())

	rec := httptest.NewRecorder()
	h.writeError(rec, io.ErrUnexpectedEOF)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "INTERNAL", resp.Code)
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), io.ErrUnexpectedEOF.Error())
}

// TestPing проверяет health-check по состоянию подключения
func TestPing(t *testing.T) {
	tests := []struct {
		name       string
		state      connector.State
		wantStatus int
	}{
		{"Connected is healthy", connector.Connected, http.StatusOK},
		{"Reconnecting is unhealthy", connector.Reconnecting, http.StatusServiceUnavailable},
		{"Failed is unhealthy", connector.Failed, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockUsecase{}, mockHealth{state: tt.state})

			rec := doRequest(t, router, http.MethodGet, "/ping", "")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.state.String(), body["store"])
		})
	}
}
