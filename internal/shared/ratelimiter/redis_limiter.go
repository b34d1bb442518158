package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter shared by every replica through Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter creates a RedisLimiter. Keys are stored as "<prefix>:<key>".
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

func (r *RedisLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// Allow increments the counter for key and starts its window on the first hit.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := r.key(key)

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set rate window: %w", err)
		}
	}
	if n <= int64(r.limit) {
		return true, 0, nil
	}

	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// a counter without expiry would block the key forever
		_ = r.client.Expire(ctx, k, r.window).Err()
		ttl = r.window
	}
	return false, ttl, nil
}
