package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

// VocabularyFilter narrows List results. A nil Difficulty matches all tiers.
type VocabularyFilter struct {
	Difficulty *domain.Difficulty
	Limit      int
	Offset     int
}

// VocabularyStats aggregates per-tier entry counts plus the number of entries
// currently due for review.
type VocabularyStats struct {
	Total        int `json:"total_vocabulary"`
	A1           int `json:"a1_words"`
	A2           int `json:"a2_words"`
	B1           int `json:"b1_words"`
	B2           int `json:"b2_words"`
	C1           int `json:"c1_words"`
	DueForReview int `json:"due_for_review"`
}

// VocabularyStore defines the interface for vocabulary entry persistence.
type VocabularyStore interface {
	// Create saves a new vocabulary entry.
	// Returns ErrWordExists if an entry with the same word already exists,
	// and validation errors wrapped in ErrInvalidEntity for bad data.
	Create(ctx context.Context, entry *domain.VocabularyEntry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrVocabularyNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error)

	// GetByWord retrieves an entry by its natural key, comparing exact string
	// equality on the stored word.
	// Returns ErrVocabularyNotFound if no entry carries that word.
	GetByWord(ctx context.Context, word string) (*domain.VocabularyEntry, error)

	// GetByIDForUpdate retrieves an entry by ID while taking a row lock, so
	// concurrent review recordings against the same entry serialize. Must be
	// called within a transaction (via WithTx) to be meaningful.
	// Returns ErrVocabularyNotFound if the entry does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.VocabularyEntry, error)

	// GetByWordForUpdate retrieves an entry by word while taking a row lock,
	// so a merge-upsert cannot write back a snapshot made stale by a
	// concurrent review recording. Must be called within a transaction.
	// Returns ErrVocabularyNotFound if no entry carries that word.
	GetByWordForUpdate(ctx context.Context, word string) (*domain.VocabularyEntry, error)

	// Update persists all mutable fields of the entry, keyed by ID.
	// Returns ErrVocabularyNotFound if the entry does not exist.
	Update(ctx context.Context, entry *domain.VocabularyEntry) error

	// Delete removes an entry by ID. An administrative operation; the review
	// engine itself never deletes.
	// Returns ErrVocabularyNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns entries matching the filter, newest first.
	List(ctx context.Context, filter VocabularyFilter) ([]*domain.VocabularyEntry, error)

	// FindDue returns at most limit entries whose NextReview is null or not
	// after now, ordered ascending by LastReviewed with never-reviewed
	// entries first. An empty result is valid, never an error.
	FindDue(ctx context.Context, limit int, now time.Time) ([]*domain.VocabularyEntry, error)

	// Stats returns aggregate counts for the whole vocabulary.
	Stats(ctx context.Context, now time.Time) (*VocabularyStats, error)

	// WithTx returns a VocabularyStore bound to the given transaction, for
	// composing with other store operations under RunInTransaction.
	WithTx(tx *sql.Tx) VocabularyStore
}
