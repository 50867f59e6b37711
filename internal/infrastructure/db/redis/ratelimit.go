package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window counter per key.
// Key format: ratelimit:<scope>:<key>:<window_start_unix>
type RateLimiter struct {
	client *redis.Client
	scope  string
	max    int64
	window time.Duration
}

// NewRateLimiter creates a limiter allowing max hits per window under scope.
func NewRateLimiter(client *redis.Client, scope string, max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimiter{client: client, scope: scope, max: int64(max), window: window}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key, time.Now())

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		// First hit in this window sets the expiry.
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.max, nil
}

func (l *RateLimiter) key(key string, now time.Time) string {
	windowStart := now.Unix() - now.Unix()%int64(l.window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%s:%d", l.scope, key, windowStart)
}
