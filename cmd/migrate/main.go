package main

// Apply or inspect database migrations:
//   go run ./cmd/migrate            # up
//   go run ./cmd/migrate -command status

import (
	"context"
	"flag"
	"os"

	"career-backend/internal/shared/config"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
)

func main() {
	command := flag.String("command", "up", "goose command: up, down, redo, status or version")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}

	if err := db.Migrate(ctx, sqlDB, *command); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": *command, "error": err})
		sqlDB.Close()
		os.Exit(1)
	}
	sqlDB.Close()
	telemetry.Info("migrate.done", map[string]any{"command": *command})
}
