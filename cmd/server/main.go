package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"todo_backend/internal/app/di"
	"todo_backend/internal/app/router"
	"todo_backend/internal/config"
	"todo_backend/internal/platform/db"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/platform/logger"
	"todo_backend/internal/platform/password"
	infraredis "todo_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	// db
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}()
	}
	if cfg.Database.RunMigrations {
		if err := db.Migrate(context.Background(), gdb, cfg.Database.Driver, di.Models()...); err != nil {
			return err
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		if !errors.Is(err, infraredis.ErrDisabled) {
			slog.Warn("Redis unavailable. Running without cache; rate limiting falls back to memory.", "error", err)
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	issuer, err := jwtmw.NewIssuer(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.Password.BcryptCost, cfg.Password.AllowFallback)
	limiter, err := di.NewAuthLimiter(rdb, cfg.AuthRateLimit)
	if err != nil {
		return err
	}

	handlers := di.NewHandlers(gdb, rdb, issuer, hasher)
	engine, err := router.NewRouter(router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Verifier:       issuer,
		AuthLimiter:    limiter,
		Ready:          func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	}, handlers.Auth, handlers.Tasks)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
