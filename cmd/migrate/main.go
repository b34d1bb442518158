// Command migrate runs the embedded goose migrations against DATABASE_URL.
//
//	migrate up|down|status|version|redo|reset
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"todo_backend/internal/config"
	"todo_backend/internal/platform/db"
	"todo_backend/internal/platform/logger"
)

var commands = map[string]bool{
	"up": true, "down": true, "status": true, "version": true, "redo": true, "reset": true,
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || !commands[args[0]] {
		return fmt.Errorf("usage: migrate up|down|status|version|redo|reset [args]")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if cfg.Database.Driver != config.DriverPostgres {
		return errors.New("migrations run against postgres only; sqlite is migrated by the server")
	}

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return db.RunGoose(ctx, sqlDB, args[0], args[1:]...)
}
