// Package postgres implements the store contracts on PostgreSQL, accessed
// through database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// PostgreSQL error codes.
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// VocabularyStore implements store.VocabularyStore using a PostgreSQL
// database as the storage backend.
type VocabularyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewVocabularyStore creates a PostgreSQL implementation of the
// VocabularyStore interface. It accepts a database connection or transaction
// managed by the caller. If logger is nil, the default logger is used.
func NewVocabularyStore(db store.DBTX, logger *slog.Logger) *VocabularyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &VocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

var _ store.VocabularyStore = (*VocabularyStore)(nil)

const vocabularyColumns = `id, word, translation, part_of_speech, example_sentence,
	difficulty, created_at, review_count, last_reviewed, next_review`

// Create implements store.VocabularyStore.Create.
// Returns store.ErrWordExists when the word is already taken.
func (s *VocabularyStore) Create(ctx context.Context, entry *domain.VocabularyEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("vocabulary validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word", entry.Word))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO vocabulary (` + vocabularyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Word,
		entry.Translation,
		entry.PartOfSpeech,
		entry.ExampleSentence,
		entry.Difficulty,
		entry.CreatedAt,
		entry.ReviewCount,
		entry.LastReviewed,
		entry.NextReview,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Debug("duplicate word during vocabulary creation",
				slog.String("word", entry.Word))
			return store.ErrWordExists
		}
		log.Error("failed to create vocabulary entry",
			slog.String("error", err.Error()),
			slog.String("word", entry.Word))
		return err
	}

	log.Info("vocabulary entry created",
		slog.String("vocabulary_id", entry.ID.String()),
		slog.String("word", entry.Word),
		slog.String("difficulty", string(entry.Difficulty)))
	return nil
}

// GetByID implements store.VocabularyStore.GetByID.
func (s *VocabularyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE id = $1`
	return s.scanOne(ctx, query, id)
}

// GetByWord implements store.VocabularyStore.GetByWord. The lookup compares
// exact string equality on the stored word.
func (s *VocabularyStore) GetByWord(ctx context.Context, word string) (*domain.VocabularyEntry, error) {
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE word = $1`
	return s.scanOne(ctx, query, word)
}

// GetByIDForUpdate implements store.VocabularyStore.GetByIDForUpdate. The row
// lock serializes concurrent review recordings of the same entry; outside a
// transaction the lock is released immediately and buys nothing.
func (s *VocabularyStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error) {
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE id = $1 FOR UPDATE`
	return s.scanOne(ctx, query, id)
}

// GetByWordForUpdate implements store.VocabularyStore.GetByWordForUpdate.
// The merge-upsert path locks the row here so a review outcome committing
// mid-merge cannot be overwritten with stale scheduling state.
func (s *VocabularyStore) GetByWordForUpdate(ctx context.Context, word string) (*domain.VocabularyEntry, error) {
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE word = $1 FOR UPDATE`
	return s.scanOne(ctx, query, word)
}

func (s *VocabularyStore) scanOne(ctx context.Context, query string, arg any) (*domain.VocabularyEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var entry domain.VocabularyEntry
	var lastReviewed, nextReview sql.NullTime

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&entry.ID,
		&entry.Word,
		&entry.Translation,
		&entry.PartOfSpeech,
		&entry.ExampleSentence,
		&entry.Difficulty,
		&entry.CreatedAt,
		&entry.ReviewCount,
		&lastReviewed,
		&nextReview,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVocabularyNotFound
		}
		log.Error("failed to query vocabulary entry", slog.String("error", err.Error()))
		return nil, err
	}

	if lastReviewed.Valid {
		entry.LastReviewed = &lastReviewed.Time
	}
	if nextReview.Valid {
		entry.NextReview = &nextReview.Time
	}
	return &entry, nil
}

// Update implements store.VocabularyStore.Update. The word column is written
// too: direct edits may rename an entry, the merge path never does (it keeps
// the loaded word, so the write is a no-op there).
func (s *VocabularyStore) Update(ctx context.Context, entry *domain.VocabularyEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE vocabulary
		SET word = $2, translation = $3, part_of_speech = $4, example_sentence = $5,
			difficulty = $6, review_count = $7, last_reviewed = $8, next_review = $9
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Word,
		entry.Translation,
		entry.PartOfSpeech,
		entry.ExampleSentence,
		entry.Difficulty,
		entry.ReviewCount,
		entry.LastReviewed,
		entry.NextReview,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return store.ErrWordExists
		}
		log.Error("failed to update vocabulary entry",
			slog.String("error", err.Error()),
			slog.String("vocabulary_id", entry.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrVocabularyNotFound
	}

	log.Debug("vocabulary entry updated",
		slog.String("vocabulary_id", entry.ID.String()),
		slog.Int("review_count", entry.ReviewCount))
	return nil
}

// Delete implements store.VocabularyStore.Delete.
func (s *VocabularyStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM vocabulary WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete vocabulary entry",
			slog.String("error", err.Error()),
			slog.String("vocabulary_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrVocabularyNotFound
	}

	log.Info("vocabulary entry deleted", slog.String("vocabulary_id", id.String()))
	return nil
}

// List implements store.VocabularyStore.List.
func (s *VocabularyStore) List(ctx context.Context, filter store.VocabularyFilter) ([]*domain.VocabularyEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE ($1::text IS NULL OR difficulty = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var difficulty *string
	if filter.Difficulty != nil {
		d := string(*filter.Difficulty)
		difficulty = &d
	}

	rows, err := s.db.QueryContext(ctx, query, difficulty, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return s.scanRows(ctx, rows)
}

// FindDue implements store.VocabularyStore.FindDue. Entries qualify when they
// were never scheduled or their next review is not in the future; never
// reviewed entries sort before everything else.
func (s *VocabularyStore) FindDue(ctx context.Context, limit int, now time.Time) ([]*domain.VocabularyEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE next_review IS NULL OR next_review <= $1
		ORDER BY last_reviewed ASC NULLS FIRST
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	return s.scanRows(ctx, rows)
}

func (s *VocabularyStore) scanRows(ctx context.Context, rows *sql.Rows) ([]*domain.VocabularyEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	entries := []*domain.VocabularyEntry{}
	for rows.Next() {
		var entry domain.VocabularyEntry
		var lastReviewed, nextReview sql.NullTime

		if err := rows.Scan(
			&entry.ID,
			&entry.Word,
			&entry.Translation,
			&entry.PartOfSpeech,
			&entry.ExampleSentence,
			&entry.Difficulty,
			&entry.CreatedAt,
			&entry.ReviewCount,
			&lastReviewed,
			&nextReview,
		); err != nil {
			log.Error("failed to scan vocabulary row", slog.String("error", err.Error()))
			return nil, err
		}
		if lastReviewed.Valid {
			entry.LastReviewed = &lastReviewed.Time
		}
		if nextReview.Valid {
			entry.NextReview = &nextReview.Time
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats implements store.VocabularyStore.Stats.
func (s *VocabularyStore) Stats(ctx context.Context, now time.Time) (*store.VocabularyStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE difficulty = 'A1'),
			COUNT(*) FILTER (WHERE difficulty = 'A2'),
			COUNT(*) FILTER (WHERE difficulty = 'B1'),
			COUNT(*) FILTER (WHERE difficulty = 'B2'),
			COUNT(*) FILTER (WHERE difficulty = 'C1'),
			COUNT(*) FILTER (WHERE next_review IS NULL OR next_review <= $1)
		FROM vocabulary
	`
	var stats store.VocabularyStats
	err := s.db.QueryRowContext(ctx, query, now).Scan(
		&stats.Total,
		&stats.A1,
		&stats.A2,
		&stats.B1,
		&stats.B2,
		&stats.C1,
		&stats.DueForReview,
	)
	if err != nil {
		log.Error("failed to query vocabulary stats", slog.String("error", err.Error()))
		return nil, err
	}
	return &stats, nil
}

// WithTx implements store.VocabularyStore.WithTx.
func (s *VocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return &VocabularyStore{db: tx, logger: s.logger}
}
