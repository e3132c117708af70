package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/dstreit/einbuerger-api/internal/api/shared"
	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/domain/detect"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/service/scan"
)

// maxImageBytes caps uploaded scan images at 10 MiB.
const maxImageBytes = 10 << 20

// TranslateRequest is the request body for standalone translation.
type TranslateRequest struct {
	Text string `json:"text" validate:"required"`
}

// TranslateResponse carries a translation result.
type TranslateResponse struct {
	GermanText  string `json:"german_text"`
	Translation string `json:"translation"`
}

// AnalyzeRequest is the request body for text difficulty analysis.
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
}

// SaveWordsRequest is the request body for saving detected vocabulary.
type SaveWordsRequest struct {
	Words []scanWord `json:"words" validate:"required,min=1,dive"`
}

type scanWord struct {
	Word                 string `json:"word" validate:"required"`
	Difficulty           string `json:"difficulty" validate:"omitempty,oneof=A1 A2 B1 B2 C1"`
	SuggestedTranslation string `json:"suggested_translation"`
}

// SaveWordsResponse reports how many entries the save created.
type SaveWordsResponse struct {
	Saved   int `json:"saved"`
	Created int `json:"created"`
}

// ScanHandler handles image scanning and translation HTTP requests.
type ScanHandler struct {
	scanService *scan.Service
	logger      *slog.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scanService *scan.Service, log *slog.Logger) *ScanHandler {
	if scanService == nil {
		panic("scanService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ScanHandler{
		scanService: scanService,
		logger:      log.With(slog.String("component", "scan_handler")),
	}
}

// ScanImage handles POST /scan/image requests. It expects a multipart form
// with an "image" file part and responds with the recognized text, its
// translation, and any detected advanced vocabulary.
func (h *ScanHandler) ScanImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid image upload")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read image upload", err)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	result, err := h.scanService.ProcessImage(r.Context(), image, mimeType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("image scanned",
		slog.Int("image_bytes", len(image)),
		slog.Int("vocabulary_words", len(result.VocabularyWords)))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Translate handles POST /scan/translate requests.
func (h *ScanHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TranslateResponse{
		GermanText:  req.Text,
		Translation: h.scanService.Translate(r.Context(), req.Text),
	})
}

// Analyze handles POST /scan/analyze requests, classifying the words of a
// text by difficulty tier without saving anything.
func (h *ScanHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, h.scanService.Analyze(req.Text))
}

// SaveWords handles POST /scan/save requests, upserting detected vocabulary
// into the learner's collection.
func (h *ScanHandler) SaveWords(w http.ResponseWriter, r *http.Request) {
	var req SaveWordsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "At least one word is required")
		return
	}

	candidates := make([]detect.Candidate, 0, len(req.Words))
	for _, word := range req.Words {
		candidates = append(candidates, detect.Candidate{
			Word:                 word.Word,
			Difficulty:           domain.Difficulty(word.Difficulty),
			SuggestedTranslation: word.SuggestedTranslation,
		})
	}

	created, err := h.scanService.SaveCandidates(r.Context(), candidates)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SaveWordsResponse{
		Saved:   len(candidates),
		Created: created,
	})
}
