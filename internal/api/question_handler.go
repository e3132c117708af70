package api

import (
	"log/slog"
	"net/http"

	"github.com/dstreit/einbuerger-api/internal/api/shared"
	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/service"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// QuestionRequest is the request body for question create and update.
type QuestionRequest struct {
	GermanText    string `json:"german_text"`
	Translation   string `json:"translation"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Options       string `json:"options"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// AnswerRequest is the request body for recording a practice answer.
type AnswerRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// QuestionHandler handles exam question HTTP requests.
type QuestionHandler struct {
	questionService service.QuestionService
	logger          *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService service.QuestionService, log *slog.Logger) *QuestionHandler {
	if questionService == nil {
		panic("questionService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &QuestionHandler{
		questionService: questionService,
		logger:          log.With(slog.String("component", "question_handler")),
	}
}

// List handles GET /questions requests.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.QuestionFilter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: domain.QuestionDifficulty(r.URL.Query().Get("difficulty")),
		Limit:      queryInt(r, "limit", 50),
		Offset:     queryInt(r, "offset", 0),
	}
	if filter.Difficulty != "" && !filter.Difficulty.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	questions, err := h.questionService.List(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, questions)
}

// Stats handles GET /questions/stats requests.
func (h *QuestionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.questionService.Stats(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Get handles GET /questions/{id} requests.
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	question, err := h.questionService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, question)
}

// Create handles POST /questions requests.
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GermanText == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "german_text is required")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	question, err := h.questionService.Create(r.Context(), requestToQuestionFields(req))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, question)
}

// Update handles PUT /questions/{id} requests.
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req QuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	question, err := h.questionService.Update(r.Context(), id, requestToQuestionFields(req))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, question)
}

// Delete handles DELETE /questions/{id} requests.
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.questionService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordAnswer handles POST /questions/{id}/answer requests.
func (h *QuestionHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "is_correct is required")
		return
	}

	if err := h.questionService.RecordAnswer(r.Context(), id, *req.IsCorrect); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToQuestionFields(req QuestionRequest) domain.QuestionFields {
	return domain.QuestionFields{
		GermanText:    req.GermanText,
		Translation:   req.Translation,
		Category:      req.Category,
		Difficulty:    domain.QuestionDifficulty(req.Difficulty),
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}
}
