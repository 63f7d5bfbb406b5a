package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/avc-dev/shortlink/internal/config"
	"github.com/avc-dev/shortlink/internal/model"
	"github.com/avc-dev/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestResolveLink проверяет разрешение кода и отображение ошибок хранилища
func TestResolveLink(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantErr  error
		wantLink model.ShortLink
	}{
		{
			name:     "Existing code",
			wantLink: model.ShortLink{Code: "abc123", TargetURL: "https://example.com", Clicks: 7},
		},
		{
			name:    "Unknown code",
			repoErr: store.ErrNotFound,
			wantErr: ErrNotFound,
		},
		{
			name:    "Storage timeout",
			repoErr: context.DeadlineExceeded,
			wantErr: ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				ResolveFunc: func(_ context.Context, code model.Code, _ time.Time) (model.ShortLink, error) {
					assert.Equal(t, model.Code("abc123"), code)
					if tt.repoErr != nil {
						return model.ShortLink{}, tt.repoErr
					}
					return tt.wantLink, nil
				},
			}
			u := newTestUsecase(repo, &mockAllocator{})

			link, err := u.ResolveLink(context.Background(), "abc123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLink, link)
		})
	}
}

// TestResolveLink_StoreUnavailable проверяет быстрый отказ без похода в хранилище
func TestResolveLink_StoreUnavailable(t *testing.T) {
	repo := &mockRepository{
		ResolveFunc: func(_ context.Context, _ model.Code, _ time.Time) (model.ShortLink, error) {
			t.Fatal("repository must not be called when store is unavailable")
			return model.ShortLink{}, nil
		},
	}
	u := NewLinkUsecase(repo, &mockAllocator{}, staticReadiness{ready: false}, config.NewDefaultConfig(), zap.NewNop())

	_, err := u.ResolveLink(context.Background(), "abc123")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
