// Package redis opens the optional Redis connection.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/config"
)

// ErrDisabled is returned when no Redis address is configured.
var ErrDisabled = errors.New("redis is not configured")

const pingTimeout = 3 * time.Second

// NewRedisClient connects to cfg.Addr and pings it. The client is closed when
// the ping fails.
func NewRedisClient(cfg config.Redis) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrDisabled
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr)
	return rdb, nil
}
