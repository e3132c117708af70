package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
	"github.com/dstreit/einbuerger-api/internal/platform/logger"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// QuestionStore implements store.QuestionStore using a PostgreSQL database as
// the storage backend.
type QuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewQuestionStore creates a PostgreSQL implementation of the QuestionStore
// interface. If logger is nil, the default logger is used.
func NewQuestionStore(db store.DBTX, logger *slog.Logger) *QuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

var _ store.QuestionStore = (*QuestionStore)(nil)

const questionColumns = `id, german_text, translation, category, difficulty,
	options, correct_answer, explanation, created_at, updated_at`

// Create implements store.QuestionStore.Create.
func (s *QuestionStore) Create(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO questions (` + questionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		question.ID,
		question.GermanText,
		question.Translation,
		question.Category,
		question.Difficulty,
		question.Options,
		question.CorrectAnswer,
		question.Explanation,
		question.CreatedAt,
		question.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return err
	}

	log.Info("question created",
		slog.String("question_id", question.ID.String()),
		slog.String("category", question.Category))
	return nil
}

// GetByID implements store.QuestionStore.GetByID.
func (s *QuestionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	var question domain.Question
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID,
		&question.GermanText,
		&question.Translation,
		&question.Category,
		&question.Difficulty,
		&question.Options,
		&question.CorrectAnswer,
		&question.Explanation,
		&question.CreatedAt,
		&question.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question",
			slog.String("error", err.Error()),
			slog.String("question_id", id.String()))
		return nil, err
	}
	return &question, nil
}

// Update implements store.QuestionStore.Update.
func (s *QuestionStore) Update(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE questions
		SET german_text = $2, translation = $3, category = $4, difficulty = $5,
			options = $6, correct_answer = $7, explanation = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		question.ID,
		question.GermanText,
		question.Translation,
		question.Category,
		question.Difficulty,
		question.Options,
		question.CorrectAnswer,
		question.Explanation,
		question.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update question",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrQuestionNotFound
	}
	return nil
}

// Delete implements store.QuestionStore.Delete.
func (s *QuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete question",
			slog.String("error", err.Error()),
			slog.String("question_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrQuestionNotFound
	}

	log.Info("question deleted", slog.String("question_id", id.String()))
	return nil
}

// List implements store.QuestionStore.List.
func (s *QuestionStore) List(ctx context.Context, filter store.QuestionFilter) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + questionColumns + `
		FROM questions
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR difficulty = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query,
		filter.Category, string(filter.Difficulty), limit, filter.Offset)
	if err != nil {
		log.Error("failed to list questions", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	questions := []*domain.Question{}
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID,
			&question.GermanText,
			&question.Translation,
			&question.Category,
			&question.Difficulty,
			&question.Options,
			&question.CorrectAnswer,
			&question.Explanation,
			&question.CreatedAt,
			&question.UpdatedAt,
		); err != nil {
			return nil, err
		}
		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

// Stats implements store.QuestionStore.Stats.
func (s *QuestionStore) Stats(ctx context.Context) (*store.QuestionStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE category <> ''),
			COUNT(*) FILTER (WHERE difficulty = 'easy'),
			COUNT(*) FILTER (WHERE difficulty = 'medium'),
			COUNT(*) FILTER (WHERE difficulty = 'hard')
		FROM questions
	`
	var stats store.QuestionStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Categorized,
		&stats.Easy,
		&stats.Medium,
		&stats.Hard,
	)
	if err != nil {
		log.Error("failed to query question stats", slog.String("error", err.Error()))
		return nil, err
	}
	return &stats, nil
}

// WithTx implements store.QuestionStore.WithTx.
func (s *QuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &QuestionStore{db: tx, logger: s.logger}
}
