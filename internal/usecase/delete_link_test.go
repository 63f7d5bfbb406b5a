package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/avc-dev/shortlink/internal/model"
	"github.com/avc-dev/shortlink/internal/store"
	"github.com/stretchr/testify/assert"
)

// TestDeleteLink проверяет удаление с той же политикой владения, что и обновление
func TestDeleteLink(t *testing.T) {
	tests := []struct {
		name        string
		linkOwner   string
		callerOwner string
		getErr      error
		wantErr     error
		wantDeleted bool
	}{
		{
			name:        "Owner deletes own link",
			linkOwner:   "user-1",
			callerOwner: "user-1",
			wantDeleted: true,
		},
		{
			name:        "Anonymous link deletable by anyone",
			linkOwner:   "",
			callerOwner: "user-2",
			wantDeleted: true,
		},
		{
			name:        "Foreign link is forbidden",
			linkOwner:   "user-1",
			callerOwner: "user-2",
			wantErr:     ErrForbidden,
		},
		{
			name:    "Unknown code",
			getErr:  store.ErrNotFound,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			repo := &mockRepository{
				GetFunc: func(_ context.Context, code model.Code, _ time.Time) (model.ShortLink, error) {
					if tt.getErr != nil {
						return model.ShortLink{}, tt.getErr
					}
					return model.ShortLink{Code: code, TargetURL: "https://example.com", OwnerID: tt.linkOwner}, nil
				},
				DeleteFunc: func(_ context.Context, _ model.Code) error {
					deleted = true
					return nil
				},
			}
			u := newTestUsecase(repo, &mockAllocator{})

			err := u.DeleteLink(context.Background(), "abc123", tt.callerOwner)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantDeleted, deleted)
		})
	}
}
