package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dstreit/einbuerger-api/internal/api"
	apiMiddleware "github.com/dstreit/einbuerger-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authHandler := api.NewAuthHandler(app.authService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authService)

	vocabHandler := api.NewVocabularyHandler(app.vocabService, app.reviewService, app.logger)
	questionHandler := api.NewQuestionHandler(app.questionService, app.logger)
	scanHandler := api.NewScanHandler(app.scanService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoint (public)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Vocabulary endpoints
			r.Get("/vocabulary", vocabHandler.List)
			r.Post("/vocabulary", vocabHandler.Upsert)
			r.Get("/vocabulary/due", vocabHandler.Due)
			r.Get("/vocabulary/stats", vocabHandler.Stats)
			r.Get("/vocabulary/{id}", vocabHandler.Get)
			r.Put("/vocabulary/{id}", vocabHandler.Update)
			r.Delete("/vocabulary/{id}", vocabHandler.Delete)
			r.Post("/vocabulary/{id}/review", vocabHandler.RecordReview)
			r.Get("/vocabulary/{id}/records", vocabHandler.Records)

			// Exam question endpoints
			r.Get("/questions", questionHandler.List)
			r.Post("/questions", questionHandler.Create)
			r.Get("/questions/stats", questionHandler.Stats)
			r.Get("/questions/{id}", questionHandler.Get)
			r.Put("/questions/{id}", questionHandler.Update)
			r.Delete("/questions/{id}", questionHandler.Delete)
			r.Post("/questions/{id}/answer", questionHandler.RecordAnswer)

			// Image scanning endpoints
			r.Post("/scan/image", scanHandler.ScanImage)
			r.Post("/scan/translate", scanHandler.Translate)
			r.Post("/scan/analyze", scanHandler.Analyze)
			r.Post("/scan/save", scanHandler.SaveWords)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
