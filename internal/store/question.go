package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

// QuestionFilter narrows question listings. Empty fields match everything.
type QuestionFilter struct {
	Category   string
	Difficulty domain.QuestionDifficulty
	Limit      int
	Offset     int
}

// QuestionStats aggregates question bank counts.
type QuestionStats struct {
	Total       int `json:"total_questions"`
	Categorized int `json:"categorized_questions"`
	Easy        int `json:"easy_questions"`
	Medium      int `json:"medium_questions"`
	Hard        int `json:"hard_questions"`
}

// QuestionStore defines the interface for question bank persistence.
type QuestionStore interface {
	// Create saves a new question.
	Create(ctx context.Context, question *domain.Question) error

	// GetByID retrieves a question by ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)

	// Update persists all mutable fields of the question, keyed by ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	Update(ctx context.Context, question *domain.Question) error

	// Delete removes a question by ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns questions matching the filter, newest first.
	List(ctx context.Context, filter QuestionFilter) ([]*domain.Question, error)

	// Stats returns aggregate counts for the question bank.
	Stats(ctx context.Context) (*QuestionStats, error)

	// WithTx returns a QuestionStore bound to the given transaction.
	WithTx(tx *sql.Tx) QuestionStore
}
