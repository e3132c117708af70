package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// StudyRecordStore implements store.StudyRecordStore using a PostgreSQL
// database as the storage backend.
type StudyRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStudyRecordStore creates a PostgreSQL implementation of the
// StudyRecordStore interface. If logger is nil, the default logger is used.
func NewStudyRecordStore(db store.DBTX, logger *slog.Logger) *StudyRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_record_store")),
	}
}

var _ store.StudyRecordStore = (*StudyRecordStore)(nil)

// Append implements store.StudyRecordStore.Append. Records are insert-only;
// there is no update or delete path.
func (s *StudyRecordStore) Append(ctx context.Context, record *domain.StudyRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_records (id, vocabulary_id, question_id, is_correct, review_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.VocabularyID,
		record.QuestionID,
		record.IsCorrect,
		record.ReviewDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			log.Warn("study record references missing entity",
				slog.String("error", err.Error()),
				slog.String("record_id", record.ID.String()))
			return fmt.Errorf("%w: referenced entity not found", store.ErrInvalidEntity)
		}
		log.Error("failed to append study record",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()))
		return err
	}

	log.Debug("study record appended",
		slog.String("record_id", record.ID.String()),
		slog.Bool("is_correct", record.IsCorrect))
	return nil
}

// ListByVocabulary implements store.StudyRecordStore.ListByVocabulary.
func (s *StudyRecordStore) ListByVocabulary(ctx context.Context, vocabularyID uuid.UUID, limit int) ([]*domain.StudyRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, vocabulary_id, question_id, is_correct, review_date
		FROM study_records
		WHERE vocabulary_id = $1
		ORDER BY review_date DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, vocabularyID, limit)
	if err != nil {
		log.Error("failed to list study records",
			slog.String("error", err.Error()),
			slog.String("vocabulary_id", vocabularyID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	records := []*domain.StudyRecord{}
	for rows.Next() {
		var record domain.StudyRecord
		if err := rows.Scan(
			&record.ID,
			&record.VocabularyID,
			&record.QuestionID,
			&record.IsCorrect,
			&record.ReviewDate,
		); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// WithTx implements store.StudyRecordStore.WithTx.
func (s *StudyRecordStore) WithTx(tx *sql.Tx) store.StudyRecordStore {
	return &StudyRecordStore{db: tx, logger: s.logger}
}
