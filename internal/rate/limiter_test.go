package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBucketLimiter проверяет списание burst, отказ и пополнение со временем
func TestBucketLimiter(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	l := NewBucketLimiter(time.Minute, 3)
	l.nowFunc = func() time.Time { return now }

	ctx := context.Background()

	// весь burst доступен сразу
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d within burst must pass", i+1)
	}

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "request above burst must be rejected")

	// токены пополняются со скоростью max/window: 20 секунд дают один токен
	now = now.Add(20 * time.Second)
	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "refill must not exceed elapsed time")
}

// TestBucketLimiter_KeysIsolated проверяет независимость ключей
func TestBucketLimiter_KeysIsolated(t *testing.T) {
	l := NewBucketLimiter(time.Minute, 1)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other keys must not share the bucket")
}

// TestBucketLimiter_RefillCap проверяет, что простой не накапливает
// больше burst токенов
func TestBucketLimiter_RefillCap(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	l := NewBucketLimiter(time.Minute, 2)
	l.nowFunc = func() time.Time { return now }

	ctx := context.Background()

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	// час простоя, но доступно не более burst
	now = now.Add(time.Hour)
	for i := 0; i < 2; i++ {
		ok, err = l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
}
