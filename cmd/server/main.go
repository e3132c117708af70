// Package main implements the entry point for the einbuerger-api server,
// which manages a German vocabulary collection with spaced-repetition review
// scheduling and citizenship-exam practice questions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dstreit/einbuerger-api/internal/config"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/platform/postgres"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := postgres.RunMigrations(db, appLogger); err != nil {
		appLogger.Error("Failed to run migrations", slog.Any("error", err))
		_ = db.Close()
		os.Exit(1)
	}
	if *migrateOnly {
		appLogger.Info("Migrations applied, exiting")
		_ = db.Close()
		return
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to build application", slog.Any("error", err))
		_ = db.Close()
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("gemini_enabled", cfg.Gemini.APIKey != ""))

	return cfg, appLogger, nil
}
