package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/domain/srs"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// Verify interface compliance at compile time.
var _ ReviewService = (*reviewService)(nil)

type reviewService struct {
	vocabStore  store.VocabularyStore
	recordStore store.StudyRecordStore
	params      *srs.Params
	logger      *slog.Logger

	// runTx and now are swapped out in tests.
	runTx func(ctx context.Context, fn store.TxFn) error
	now   func() time.Time
}

// NewReviewService creates a ReviewService backed by the given database and
// stores. If params is nil the default interval table is used.
func NewReviewService(
	db *sql.DB,
	vocabStore store.VocabularyStore,
	recordStore store.StudyRecordStore,
	params *srs.Params,
	log *slog.Logger,
) ReviewService {
	if vocabStore == nil {
		panic("vocabStore cannot be nil")
	}
	if recordStore == nil {
		panic("recordStore cannot be nil")
	}
	if params == nil {
		params = srs.NewDefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}

	return &reviewService{
		vocabStore:  vocabStore,
		recordStore: recordStore,
		params:      params,
		logger:      log.With(slog.String("component", "review_service")),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// RecordOutcome implements ReviewService.RecordOutcome.
func (s *reviewService) RecordOutcome(
	ctx context.Context,
	vocabularyID uuid.UUID,
	isCorrect bool,
) (*domain.VocabularyEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording review outcome",
		slog.String("vocabulary_id", vocabularyID.String()),
		slog.Bool("is_correct", isCorrect))

	var updated *domain.VocabularyEntry
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		vocabStore := s.vocabStore.WithTx(tx)
		recordStore := s.recordStore.WithTx(tx)

		// The row lock serializes concurrent outcomes against the same entry.
		entry, err := vocabStore.GetByIDForUpdate(ctx, vocabularyID)
		if err != nil {
			if errors.Is(err, store.ErrVocabularyNotFound) {
				return ErrVocabularyNotFound
			}
			return fmt.Errorf("failed to load vocabulary entry: %w", err)
		}

		now := s.now()
		next := srs.Schedule(entry, isCorrect, now, s.params)
		if err := vocabStore.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update scheduling state: %w", err)
		}

		record, err := domain.NewVocabularyStudyRecord(vocabularyID, isCorrect, now)
		if err != nil {
			return fmt.Errorf("failed to build study record: %w", err)
		}
		if err := recordStore.Append(ctx, record); err != nil {
			return fmt.Errorf("failed to append study record: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVocabularyNotFound) {
			log.Warn("vocabulary entry not found for review",
				slog.String("vocabulary_id", vocabularyID.String()))
			return nil, ErrVocabularyNotFound
		}
		log.Error("failed to record review outcome",
			slog.String("error", err.Error()),
			slog.String("vocabulary_id", vocabularyID.String()))
		return nil, err
	}

	log.Info("review outcome recorded",
		slog.String("vocabulary_id", vocabularyID.String()),
		slog.Bool("is_correct", isCorrect),
		slog.Int("review_count", updated.ReviewCount),
		slog.Time("next_review", *updated.NextReview))
	return updated, nil
}

// History implements ReviewService.History.
func (s *reviewService) History(
	ctx context.Context,
	vocabularyID uuid.UUID,
	limit int,
) ([]*domain.StudyRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.vocabStore.GetByID(ctx, vocabularyID); err != nil {
		if errors.Is(err, store.ErrVocabularyNotFound) {
			return nil, ErrVocabularyNotFound
		}
		return nil, fmt.Errorf("failed to load vocabulary entry: %w", err)
	}

	records, err := s.recordStore.ListByVocabulary(ctx, vocabularyID, limit)
	if err != nil {
		log.Error("failed to list study records",
			slog.String("error", err.Error()),
			slog.String("vocabulary_id", vocabularyID.String()))
		return nil, fmt.Errorf("failed to list study records: %w", err)
	}
	return records, nil
}

// GetDueEntries implements ReviewService.GetDueEntries.
func (s *reviewService) GetDueEntries(ctx context.Context, limit int) ([]*domain.VocabularyEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entries, err := s.vocabStore.FindDue(ctx, limit, s.now())
	if err != nil {
		log.Error("failed to find due entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find due entries: %w", err)
	}

	log.Debug("due entries retrieved", slog.Int("count", len(entries)))
	return entries, nil
}
