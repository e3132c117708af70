package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

// StudyRecordStore defines the interface for the append-only study log.
// Records are written once and never updated or deleted.
type StudyRecordStore interface {
	// Append writes a new study record.
	// Returns ErrInvalidEntity if the referenced vocabulary entry or
	// question does not exist.
	Append(ctx context.Context, record *domain.StudyRecord) error

	// ListByVocabulary returns the records for one vocabulary entry, most
	// recent first.
	ListByVocabulary(ctx context.Context, vocabularyID uuid.UUID, limit int) ([]*domain.StudyRecord, error)

	// WithTx returns a StudyRecordStore bound to the given transaction.
	WithTx(tx *sql.Tx) StudyRecordStore
}
