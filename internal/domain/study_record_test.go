package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewVocabularyStudyRecord(t *testing.T) {
	t.Parallel()

	vocabID := uuid.New()
	reviewedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	record, err := NewVocabularyStudyRecord(vocabID, true, reviewedAt)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if record.VocabularyID == nil || *record.VocabularyID != vocabID {
		t.Error("Expected vocabulary ID to be set")
	}
	if record.QuestionID != nil {
		t.Error("Expected question ID to be nil")
	}
	if !record.IsCorrect {
		t.Error("Expected IsCorrect to be true")
	}
	if !record.ReviewDate.Equal(reviewedAt) {
		t.Errorf("Expected review date %v, got %v", reviewedAt, record.ReviewDate)
	}
}

func TestNewQuestionStudyRecord(t *testing.T) {
	t.Parallel()

	questionID := uuid.New()
	record, err := NewQuestionStudyRecord(questionID, false, time.Now().UTC())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if record.QuestionID == nil || *record.QuestionID != questionID {
		t.Error("Expected question ID to be set")
	}
	if record.VocabularyID != nil {
		t.Error("Expected vocabulary ID to be nil")
	}
	if record.IsCorrect {
		t.Error("Expected IsCorrect to be false")
	}
}

func TestStudyRecordValidate(t *testing.T) {
	t.Parallel()

	record := &StudyRecord{ID: uuid.New(), ReviewDate: time.Now().UTC()}
	if err := record.Validate(); !errors.Is(err, ErrMissingReviewSubject) {
		t.Errorf("Expected ErrMissingReviewSubject, got %v", err)
	}

	vocabID := uuid.New()
	record.VocabularyID = &vocabID
	record.ReviewDate = time.Time{}
	if err := record.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for zero review date, got %v", err)
	}
}
