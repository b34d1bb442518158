// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/shared/ratelimiter"
)

const authLimiterPrefix = "ratelimit:auth"

// NewAuthLimiter creates the limiter guarding signup and signin.
// If Redis is available, it returns a Redis-backed limiter shared by every replica.
// Otherwise, it falls back to an in-process limiter.
func NewAuthLimiter(rdb *redis.Client, rate string) (ratelimiter.Limiter, error) {
	limit, window, err := ratelimiter.Parse(rate)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		slog.Info("auth rate limiter backed by redis", "limit", limit, "window", window)
		return ratelimiter.NewRedisLimiter(rdb, limit, window, authLimiterPrefix), nil
	}
	slog.Info("auth rate limiter backed by memory", "limit", limit, "window", window)
	return ratelimiter.NewMemoryLimiter(limit, window), nil
}
