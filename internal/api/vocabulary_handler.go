package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/api/shared"
	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/service"
	"github.com/dstreit/einbuerger-api/internal/service/review"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// VocabularyRequest is the request body for vocabulary create and update.
type VocabularyRequest struct {
	Word            string `json:"word"`
	Translation     string `json:"translation"`
	PartOfSpeech    string `json:"part_of_speech"`
	ExampleSentence string `json:"example_sentence"`
	Difficulty      string `json:"difficulty" validate:"omitempty,oneof=A1 A2 B1 B2 C1"`
}

// ReviewRequest is the request body for recording a review outcome. The
// pointer distinguishes a missing field from an explicit false.
type ReviewRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// UpsertResponse wraps an upserted entry with whether it was newly created.
type UpsertResponse struct {
	Entry   *domain.VocabularyEntry `json:"entry"`
	Created bool                    `json:"created"`
}

// VocabularyHandler handles vocabulary-related HTTP requests, including the
// review scheduling endpoints.
type VocabularyHandler struct {
	vocabService  service.VocabularyService
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewVocabularyHandler creates a new VocabularyHandler.
func NewVocabularyHandler(
	vocabService service.VocabularyService,
	reviewService review.ReviewService,
	log *slog.Logger,
) *VocabularyHandler {
	if vocabService == nil {
		panic("vocabService cannot be nil")
	}
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &VocabularyHandler{
		vocabService:  vocabService,
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "vocabulary_handler")),
	}
}

// List handles GET /vocabulary requests.
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.VocabularyFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		difficulty := domain.Difficulty(raw)
		if !difficulty.IsValid() {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid difficulty tier")
			return
		}
		filter.Difficulty = &difficulty
	}

	entries, err := h.vocabService.List(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// Due handles GET /vocabulary/due requests, returning entries ready for
// review in scheduling order.
func (h *VocabularyHandler) Due(w http.ResponseWriter, r *http.Request) {
	entries, err := h.reviewService.GetDueEntries(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// Stats handles GET /vocabulary/stats requests.
func (h *VocabularyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.vocabService.Stats(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Get handles GET /vocabulary/{id} requests.
func (h *VocabularyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.vocabService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Upsert handles POST /vocabulary requests. Posting an existing word merges
// the supplied fields instead of replacing the entry; the entry's review
// progress is never reset by this path.
func (h *VocabularyHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req VocabularyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Word == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Word is required")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid difficulty tier")
		return
	}

	entry, created, err := h.vocabService.Upsert(r.Context(), requestToFields(req))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	log.Debug("vocabulary upserted",
		slog.String("word", req.Word),
		slog.Bool("created", created))
	shared.RespondWithJSON(w, r, status, UpsertResponse{Entry: entry, Created: created})
}

// Update handles PUT /vocabulary/{id} requests.
func (h *VocabularyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req VocabularyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid difficulty tier")
		return
	}

	entry, err := h.vocabService.Update(r.Context(), id, requestToFields(req))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Delete handles DELETE /vocabulary/{id} requests.
func (h *VocabularyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.vocabService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordReview handles POST /vocabulary/{id}/review requests. It applies the
// outcome to the entry's schedule and returns the updated entry.
func (h *VocabularyHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "is_correct is required")
		return
	}

	entry, err := h.reviewService.RecordOutcome(r.Context(), id, *req.IsCorrect)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review recorded",
		slog.String("vocabulary_id", id.String()),
		slog.Bool("is_correct", *req.IsCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// Records handles GET /vocabulary/{id}/records requests, returning the
// entry's study history, most recent first.
func (h *VocabularyHandler) Records(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", 50)
	records, err := h.reviewService.History(r.Context(), id, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

func requestToFields(req VocabularyRequest) domain.VocabularyFields {
	return domain.VocabularyFields{
		Word:            req.Word,
		Translation:     req.Translation,
		PartOfSpeech:    req.PartOfSpeech,
		ExampleSentence: req.ExampleSentence,
		Difficulty:      domain.Difficulty(req.Difficulty),
	}
}

// pathID extracts and parses the {id} URL parameter, responding with 400 on
// malformed input.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an integer query parameter, falling back to def on absence
// or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	return value
}
