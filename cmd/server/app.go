package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dstreit/einbuerger-api/internal/config"
	"github.com/dstreit/einbuerger-api/internal/domain/detect"
	"github.com/dstreit/einbuerger-api/internal/domain/srs"
	"github.com/dstreit/einbuerger-api/internal/platform/gemini"
	"github.com/dstreit/einbuerger-api/internal/platform/postgres"
	"github.com/dstreit/einbuerger-api/internal/service"
	"github.com/dstreit/einbuerger-api/internal/service/auth"
	"github.com/dstreit/einbuerger-api/internal/service/review"
	"github.com/dstreit/einbuerger-api/internal/service/scan"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// application holds the shared application dependencies to simplify wiring
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	vocabStore    store.VocabularyStore
	recordStore   store.StudyRecordStore
	questionStore store.QuestionStore

	authService     *auth.Service
	vocabService    service.VocabularyService
	questionService service.QuestionService
	reviewService   review.ReviewService
	scanService     *scan.Service
}

// newApplication creates an application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before wiring: configuration, logger and an open database connection.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.authService = auth.NewService(
		cfg.Auth.JWTSecret,
		cfg.Auth.PasswordHash,
		time.Duration(cfg.Auth.TokenLifetimeHours)*time.Hour,
	)

	app.vocabStore = postgres.NewVocabularyStore(db, logger)
	app.recordStore = postgres.NewStudyRecordStore(db, logger)
	app.questionStore = postgres.NewQuestionStore(db, logger)

	params := &srs.Params{
		Intervals:         cfg.Review.IntervalsDays,
		LapseIntervalDays: cfg.Review.LapseIntervalDays,
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid review configuration: %w", err)
	}

	app.vocabService = service.NewVocabularyService(db, app.vocabStore, logger)
	app.questionService = service.NewQuestionService(app.questionStore, app.recordStore, logger)
	app.reviewService = review.NewReviewService(db, app.vocabStore, app.recordStore, params, logger)

	// The Gemini providers are optional. Without an API key the scan service
	// still runs: recognition reports unavailable and translation falls back
	// to marked passthrough.
	var recognizer scan.TextRecognizer
	var translator scan.Translator
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.Gemini, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		recognizer = client
		translator = client
		logger.Info("Gemini providers initialized", slog.String("model", cfg.Gemini.Model))
	} else {
		logger.Warn("Gemini API key not configured, scan endpoints run in degraded mode")
	}
	app.scanService = scan.NewService(recognizer, translator, detect.New(), app.vocabService, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run builds the router and starts the HTTP server, blocking until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.Any("error", err))
		}
	}
	app.logger.Info("Application shutdown completed")
}
