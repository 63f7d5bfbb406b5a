package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter реализует фиксированное окно на ключ поверх Redis.
// Счётчик инкрементируется атомарно, TTL задаёт границу окна, поэтому лимит
// общий для всех инстансов сервиса.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
	max    int64
	prefix string
}

// NewRedisLimiter создает лимитер с заданным окном и лимитом
func NewRedisLimiter(client *redis.Client, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		window: window,
		max:    int64(max),
		prefix: "ratelimit:",
	}
}

// Allow инкрементирует счётчик окна и сравнивает с лимитом.
// Ошибка Redis отдаётся вызывающему: политику fail-open выбирает миддлвар.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return count.Val() <= l.max, nil
}
