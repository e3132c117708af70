// Package scan orchestrates the image-to-vocabulary pipeline: text
// recognition, translation, and advanced-word detection. Recognition and
// translation are external collaborators behind interfaces; the detection
// step is the pure engine from internal/domain/detect.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/domain/detect"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
)

// TextRecognizer extracts text from an image. Implementations return an
// empty string, not an error, when the image simply contains no text.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Translator translates text between the given language codes.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// VocabularySaver is the slice of the vocabulary service the scan pipeline
// needs to persist detected candidates.
type VocabularySaver interface {
	Upsert(ctx context.Context, fields domain.VocabularyFields) (*domain.VocabularyEntry, bool, error)
}

// Service-level errors.
var (
	// ErrRecognitionUnavailable indicates no recognition provider is
	// configured.
	ErrRecognitionUnavailable = errors.New("text recognition is not available")

	// ErrRecognitionFailed indicates the recognition provider errored.
	ErrRecognitionFailed = errors.New("text recognition failed")

	// ErrNoTextFound indicates the image contained no recognizable text.
	ErrNoTextFound = errors.New("no text recognized in image")
)

// FallbackPrefix marks translations that could not be performed. Clients
// display the original text with this marker instead of an error.
const FallbackPrefix = "[untranslated] "

// Default language pair for the scan pipeline.
const (
	sourceLanguage = "German"
	targetLanguage = "English"
)

// Result is the outcome of scanning one image.
type Result struct {
	GermanText      string             `json:"german_text"`
	Translation     string             `json:"translation"`
	VocabularyWords []detect.Candidate `json:"vocabulary_words"`
}

// Service runs the scan pipeline. Recognizer and translator may be nil: a
// nil recognizer makes ProcessImage fail with ErrRecognitionUnavailable, a
// nil translator makes every translation fall back to the marked original.
type Service struct {
	recognizer TextRecognizer
	translator Translator
	detector   *detect.Detector
	saver      VocabularySaver
	logger     *slog.Logger
}

// NewService creates a scan Service.
func NewService(
	recognizer TextRecognizer,
	translator Translator,
	detector *detect.Detector,
	saver VocabularySaver,
	log *slog.Logger,
) *Service {
	if detector == nil {
		panic("detector cannot be nil")
	}
	if saver == nil {
		panic("saver cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		recognizer: recognizer,
		translator: translator,
		detector:   detector,
		saver:      saver,
		logger:     log.With(slog.String("component", "scan_service")),
	}
}

// ProcessImage recognizes text in the image, translates it, and detects
// advanced vocabulary. Translation failures degrade to a marked fallback;
// recognition failures are surfaced because without text the pipeline has
// nothing to work on.
func (s *Service) ProcessImage(ctx context.Context, image []byte, mimeType string) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if s.recognizer == nil {
		return nil, ErrRecognitionUnavailable
	}

	text, err := s.recognizer.RecognizeText(ctx, image, mimeType)
	if err != nil {
		log.Error("text recognition failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrRecognitionFailed, err)
	}
	if text == "" {
		return nil, ErrNoTextFound
	}

	result := &Result{
		GermanText:      text,
		Translation:     s.Translate(ctx, text),
		VocabularyWords: s.detector.Detect(text),
	}

	log.Info("image processed",
		slog.Int("text_length", len(text)),
		slog.Int("candidates", len(result.VocabularyWords)))
	return result, nil
}

// Translate translates text to the target language, returning the marked
// original when no translator is configured or the provider fails. It never
// returns an error: a missing translation is a degraded result, not a
// failure.
func (s *Service) Translate(ctx context.Context, text string) string {
	if text == "" {
		return ""
	}
	if s.translator == nil {
		return FallbackPrefix + text
	}

	translated, err := s.translator.Translate(ctx, text, sourceLanguage, targetLanguage)
	if err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Warn("translation failed, using fallback", slog.String("error", err.Error()))
		return FallbackPrefix + text
	}
	return translated
}

// Analyze tokenizes the text and classifies each word against the
// detector's difficulty heuristics. Nothing is persisted; the result is a
// per-tier tally clients use to gauge how hard a text is.
func (s *Service) Analyze(text string) detect.Stats {
	return s.detector.Classify(detect.Tokenize(text))
}

// SaveCandidates upserts the given candidates as vocabulary entries. Already
// known words are merged without disturbing their review progress; the count
// of newly created entries is returned. A failed upsert aborts the batch.
func (s *Service) SaveCandidates(ctx context.Context, candidates []detect.Candidate) (int, error) {
	created := 0
	for _, candidate := range candidates {
		_, isNew, err := s.saver.Upsert(ctx, domain.VocabularyFields{
			Word:        candidate.Word,
			Translation: candidate.SuggestedTranslation,
			Difficulty:  candidate.Difficulty,
		})
		if err != nil {
			return created, fmt.Errorf("failed to save candidate %q: %w", candidate.Word, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}
