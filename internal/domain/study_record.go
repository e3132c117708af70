package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudyRecord is an append-only audit row describing a single review event.
// It references either a vocabulary entry or a question bank item; the record
// is owned by the log and may outlive the entity it points at. Records are
// never mutated or deleted once written.
type StudyRecord struct {
	ID           uuid.UUID  `json:"id"`
	VocabularyID *uuid.UUID `json:"vocabulary_id,omitempty"`
	QuestionID   *uuid.UUID `json:"question_id,omitempty"`
	IsCorrect    bool       `json:"is_correct"`
	ReviewDate   time.Time  `json:"review_date"`
}

// NewVocabularyStudyRecord creates a study record for a vocabulary review at
// the given time.
func NewVocabularyStudyRecord(vocabularyID uuid.UUID, isCorrect bool, reviewedAt time.Time) (*StudyRecord, error) {
	record := &StudyRecord{
		ID:           uuid.New(),
		VocabularyID: &vocabularyID,
		IsCorrect:    isCorrect,
		ReviewDate:   reviewedAt,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// NewQuestionStudyRecord creates a study record for a question bank answer at
// the given time.
func NewQuestionStudyRecord(questionID uuid.UUID, isCorrect bool, reviewedAt time.Time) (*StudyRecord, error) {
	record := &StudyRecord{
		ID:         uuid.New(),
		QuestionID: &questionID,
		IsCorrect:  isCorrect,
		ReviewDate: reviewedAt,
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// Validate checks if the StudyRecord has valid data.
func (r *StudyRecord) Validate() error {
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	if r.VocabularyID == nil && r.QuestionID == nil {
		return ErrMissingReviewSubject
	}
	if r.ReviewDate.IsZero() {
		return ErrValidation
	}
	return nil
}
