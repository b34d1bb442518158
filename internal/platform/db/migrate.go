package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"todo_backend/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// gooseRun is a seam for testing goose.RunContext.
var gooseRun = func(ctx context.Context, command string, db *sql.DB, dir string, args ...string) error {
	return goose.RunContext(ctx, command, db, dir, args...)
}

// Migrate brings the schema up to date. Postgres runs the embedded goose
// migrations; sqlite is migrated from the gorm models.
func Migrate(ctx context.Context, gdb *gorm.DB, driver string, models ...any) error {
	switch driver {
	case config.DriverPostgres:
		sqlDB, err := gdb.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		return RunGoose(ctx, sqlDB, "up")
	case config.DriverSQLite:
		if err := gdb.WithContext(ctx).AutoMigrate(models...); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("sqlite schema migrated", "models", len(models))
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

// RunGoose runs a goose command (up, down, status, version...) against the
// embedded postgres migrations.
func RunGoose(ctx context.Context, sqlDB *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := gooseRun(ctx, command, sqlDB, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	slog.Info("goose command completed", "command", command)
	return nil
}
