// Package service implements the application services that orchestrate
// domain logic and persistence.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// Service-level errors.
var (
	// ErrVocabularyNotFound indicates the referenced vocabulary entry does
	// not exist.
	ErrVocabularyNotFound = errors.New("vocabulary entry not found")

	// ErrQuestionNotFound indicates the referenced question does not exist.
	ErrQuestionNotFound = errors.New("question not found")
)

// VocabularyService manages vocabulary entries: merge-upsert by word, direct
// edits, listing, and stats. The scheduling state of an entry is owned by the
// review service and never touched here.
type VocabularyService interface {
	// Upsert creates an entry for fields.Word or merges the provided fields
	// into the existing one. On merge only non-empty incoming fields are
	// applied, the word itself is never overwritten, and the entry's review
	// progress survives untouched. Returns the stored entry and whether it
	// was newly created.
	Upsert(ctx context.Context, fields domain.VocabularyFields) (*domain.VocabularyEntry, bool, error)

	// Get retrieves an entry by ID. Returns ErrVocabularyNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error)

	// List returns entries matching the filter, newest first.
	List(ctx context.Context, filter store.VocabularyFilter) ([]*domain.VocabularyEntry, error)

	// Update applies a direct partial edit to an entry, including a word
	// rename. Empty fields are left unchanged. This is the administrative
	// edit path, distinct from Upsert's merge.
	Update(ctx context.Context, id uuid.UUID, fields domain.VocabularyFields) (*domain.VocabularyEntry, error)

	// Delete removes an entry. Returns ErrVocabularyNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats returns aggregate vocabulary counts.
	Stats(ctx context.Context) (*store.VocabularyStats, error)
}

type vocabularyService struct {
	vocabStore store.VocabularyStore
	logger     *slog.Logger

	runTx func(ctx context.Context, fn store.TxFn) error
	now   func() time.Time
}

var _ VocabularyService = (*vocabularyService)(nil)

// NewVocabularyService creates a VocabularyService backed by the given
// database and store.
func NewVocabularyService(db *sql.DB, vocabStore store.VocabularyStore, log *slog.Logger) VocabularyService {
	if vocabStore == nil {
		panic("vocabStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &vocabularyService{
		vocabStore: vocabStore,
		logger:     log.With(slog.String("component", "vocabulary_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Upsert implements VocabularyService.Upsert.
func (s *vocabularyService) Upsert(
	ctx context.Context,
	fields domain.VocabularyFields,
) (*domain.VocabularyEntry, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if fields.Word == "" {
		return nil, false, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyWord)
	}

	var result *domain.VocabularyEntry
	var created bool

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		vocabStore := s.vocabStore.WithTx(tx)

		// Lock the row so a review outcome committing between this read and
		// the write below cannot be clobbered with stale scheduling state.
		entry, err := vocabStore.GetByWordForUpdate(ctx, fields.Word)
		switch {
		case err == nil:
			if err := entry.Merge(fields); err != nil {
				return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
			}
			if err := vocabStore.Update(ctx, entry); err != nil {
				return fmt.Errorf("failed to merge vocabulary entry: %w", err)
			}
			result = entry
			return nil

		case errors.Is(err, store.ErrVocabularyNotFound):
			newEntry, err := domain.NewVocabularyEntry(fields)
			if err != nil {
				return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
			}
			if err := vocabStore.Create(ctx, newEntry); err != nil {
				return fmt.Errorf("failed to create vocabulary entry: %w", err)
			}
			result = newEntry
			created = true
			return nil

		default:
			return fmt.Errorf("failed to look up word: %w", err)
		}
	})

	// A concurrent upsert of the same word can slip between our lookup and
	// insert. The merge policy resolves the conflict: retry once against the
	// now-existing row.
	if err != nil && errors.Is(err, store.ErrWordExists) {
		log.Debug("concurrent upsert detected, retrying as merge",
			slog.String("word", fields.Word))
		return s.Upsert(ctx, fields)
	}
	if err != nil {
		log.Error("vocabulary upsert failed",
			slog.String("error", err.Error()),
			slog.String("word", fields.Word))
		return nil, false, err
	}

	log.Debug("vocabulary upsert completed",
		slog.String("word", fields.Word),
		slog.Bool("created", created))
	return result, created, nil
}

// Get implements VocabularyService.Get.
func (s *vocabularyService) Get(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	entry, err := s.vocabStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrVocabularyNotFound) {
			return nil, ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("failed to get vocabulary entry: %w", err)
	}
	return entry, nil
}

// List implements VocabularyService.List.
func (s *vocabularyService) List(ctx context.Context, filter store.VocabularyFilter) ([]*domain.VocabularyEntry, error) {
	entries, err := s.vocabStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	return entries, nil
}

// Update implements VocabularyService.Update.
func (s *vocabularyService) Update(
	ctx context.Context,
	id uuid.UUID,
	fields domain.VocabularyFields,
) (*domain.VocabularyEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *domain.VocabularyEntry
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		vocabStore := s.vocabStore.WithTx(tx)

		entry, err := vocabStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrVocabularyNotFound) {
				return ErrVocabularyNotFound
			}
			return fmt.Errorf("failed to load vocabulary entry: %w", err)
		}

		// Direct edits may rename the word; everything else follows the
		// same skip-on-empty rules as a merge.
		if fields.Word != "" {
			entry.Word = fields.Word
		}
		if err := entry.Merge(fields); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		if err := vocabStore.Update(ctx, entry); err != nil {
			return fmt.Errorf("failed to update vocabulary entry: %w", err)
		}
		result = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrVocabularyNotFound) {
			log.Error("vocabulary update failed",
				slog.String("error", err.Error()),
				slog.String("vocabulary_id", id.String()))
		}
		return nil, err
	}
	return result, nil
}

// Delete implements VocabularyService.Delete.
func (s *vocabularyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vocabStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrVocabularyNotFound) {
			return ErrVocabularyNotFound
		}
		return fmt.Errorf("failed to delete vocabulary entry: %w", err)
	}
	return nil
}

// Stats implements VocabularyService.Stats.
func (s *vocabularyService) Stats(ctx context.Context) (*store.VocabularyStats, error) {
	stats, err := s.vocabStore.Stats(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary stats: %w", err)
	}
	return stats, nil
}
