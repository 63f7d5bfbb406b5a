package rate

import (
	"context"
	"sync"
	"time"
)

// Limiter решает, пропускать ли очередной запрос для данного ключа
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// BucketLimiter реализует in-memory token bucket на ключ.
// Используется, когда Redis не сконфигурирован; состояние живёт в процессе.
type BucketLimiter struct {
	mu      sync.Mutex
	rps     float64
	burst   float64
	buckets map[string]*bucket

	// nowFunc подменяется в тестах для контроля времени
	nowFunc func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewBucketLimiter создает лимитер: window и max задают средний темп,
// burst равен max
func NewBucketLimiter(window time.Duration, max int) *BucketLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	return &BucketLimiter{
		rps:     float64(max) / window.Seconds(),
		burst:   float64(max),
		buckets: make(map[string]*bucket),
		nowFunc: time.Now,
	}
}

// Allow списывает один токен для ключа, если он есть
func (l *BucketLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.nowFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{tokens: l.burst - 1, last: now}
		return true, nil
	}

	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens = min(l.burst, b.tokens+elapsed*l.rps)
		b.last = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, nil
	}
	return false, nil
}
