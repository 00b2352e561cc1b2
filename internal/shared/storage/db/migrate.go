package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

var gooseOnce sync.Once
var gooseErr error

func setupGoose() error {
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrationFiles)
		gooseErr = goose.SetDialect("postgres")
	})
	return gooseErr
}

// RunMigrations brings the schema up to date. A nil database means memory repos and is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	return Migrate(ctx, database, "up")
}

// Migrate runs one goose command against the embedded migrations: up, down, redo, status or version.
func Migrate(ctx context.Context, database *sql.DB, command string) error {
	if err := setupGoose(); err != nil {
		return err
	}
	switch command {
	case "up":
		return goose.UpContext(ctx, database, migrationsDir)
	case "down":
		return goose.DownContext(ctx, database, migrationsDir)
	case "redo":
		return goose.RedoContext(ctx, database, migrationsDir)
	case "status":
		return goose.StatusContext(ctx, database, migrationsDir)
	case "version":
		_, err := goose.GetDBVersionContext(ctx, database)
		return err
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}
