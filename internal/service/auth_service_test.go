package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthService_TokenRoundTrip проверяет выпуск и валидацию токена
func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")
	userID := auth.GenerateUserID()

	token, err := auth.GenerateJWT(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := auth.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

// TestAuthService_ValidateJWT_Invalid проверяет отклонение чужих и битых токенов
func TestAuthService_ValidateJWT_Invalid(t *testing.T) {
	auth := NewAuthService("test-secret")

	t.Run("Garbage token", func(t *testing.T) {
		_, err := auth.ValidateJWT("not-a-token")
		assert.Error(t, err)
	})

	t.Run("Token signed with different secret", func(t *testing.T) {
		other := NewAuthService("other-secret")
		token, err := other.GenerateJWT("user-1")
		require.NoError(t, err)

		_, err = auth.ValidateJWT(token)
		assert.Error(t, err)
	})
}
