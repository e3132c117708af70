// Package review implements the spaced-repetition review workflow: recording
// review outcomes atomically and retrieving the entries currently due.
package review

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dstreit/einbuerger-api/internal/domain"
)

// ReviewService exposes the review scheduling operations.
type ReviewService interface {
	// RecordOutcome applies a review outcome to a vocabulary entry: it stamps
	// the review time, increments the review counter, computes the next due
	// date from the interval table, and appends a study record, all within a
	// single transaction so a reader never observes a partial update.
	//
	// Returns the updated entry, or ErrVocabularyNotFound when the ID does
	// not resolve. Callers must not retry a not-found outcome.
	RecordOutcome(ctx context.Context, vocabularyID uuid.UUID, isCorrect bool) (*domain.VocabularyEntry, error)

	// GetDueEntries returns at most limit entries due for review, ordered so
	// never-reviewed entries surface before merely-overdue ones. An empty
	// result is valid.
	GetDueEntries(ctx context.Context, limit int) ([]*domain.VocabularyEntry, error)

	// History returns up to limit study records for one vocabulary entry,
	// most recent first. Returns ErrVocabularyNotFound when the ID does not
	// resolve, so an empty history is distinguishable from a bad ID.
	History(ctx context.Context, vocabularyID uuid.UUID, limit int) ([]*domain.StudyRecord, error)
}

// Service-level errors.
var (
	// ErrVocabularyNotFound indicates the referenced vocabulary entry does
	// not exist.
	ErrVocabularyNotFound = errors.New("vocabulary entry not found")
)
