package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
	"github.com/avc-dev/shortlink/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateURL проверяет создание короткой ссылки через HTTP
func TestCreateURL(t *testing.T) {
	expiresAt := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		createErr  error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Valid request",
			body:       `{"originalUrl":"https://example.com/page","customCode":"my-code","expiresIn":30}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Malformed JSON",
			body:       `{"originalUrl":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "Invalid URL",
			body:       `{"originalUrl":"ftp://example.com"}`,
			createErr:  usecase.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "Custom code conflict",
			body:       `{"originalUrl":"https://example.com","customCode":"taken"}`,
			createErr:  usecase.ErrCodeConflict,
			wantStatus: http.StatusConflict,
			wantCode:   "CODE_CONFLICT",
		},
		{
			name:       "Store unavailable",
			body:       `{"originalUrl":"https://example.com"}`,
			createErr:  usecase.ErrStoreUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "STORE_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUsecase{
				CreateLinkFunc: func(_ context.Context, req usecase.CreateLinkRequest) (model.ShortLink, string, error) {
					if tt.createErr != nil {
						return model.ShortLink{}, "", tt.createErr
					}
					return model.ShortLink{
						Code:      model.Code(req.CustomCode),
						TargetURL: model.URL(req.OriginalURL),
						ExpiresAt: &expiresAt,
					}, "http://localhost:8080/" + req.CustomCode, nil
				},
			}
			router := newTestRouter(uc, mockHealth{})

			rec := doRequest(t, router, http.MethodPost, "/urls", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
				return
			}

			var resp CreateURLResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "my-code", resp.ShortCode)
			assert.Equal(t, "http://localhost:8080/my-code", resp.ShortURL)
			require.NotNil(t, resp.ExpiresAt)
			assert.True(t, expiresAt.Equal(*resp.ExpiresAt))
		})
	}
}
