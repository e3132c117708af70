package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Difficulty is a CEFR-style proficiency tier assigned to a vocabulary entry.
type Difficulty string

// The ordered tier set. DifficultyB1 is the default for entries created
// without an explicit tier.
const (
	DifficultyA1 Difficulty = "A1"
	DifficultyA2 Difficulty = "A2"
	DifficultyB1 Difficulty = "B1"
	DifficultyB2 Difficulty = "B2"
	DifficultyC1 Difficulty = "C1"
)

// Difficulties lists all valid tiers in ascending order.
var Difficulties = []Difficulty{DifficultyA1, DifficultyA2, DifficultyB1, DifficultyB2, DifficultyC1}

// IsValid reports whether d is one of the known tiers.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyA1, DifficultyA2, DifficultyB1, DifficultyB2, DifficultyC1:
		return true
	}
	return false
}

// VocabularyEntry represents a single learnable German word together with its
// translation metadata and spaced-repetition scheduling state.
//
// Word is the natural key: no two entries may share the same surface form.
// LastReviewed and NextReview are nil until the entry has been reviewed or
// scheduled; a nil NextReview means the entry is immediately due.
type VocabularyEntry struct {
	ID              uuid.UUID  `json:"id"`
	Word            string     `json:"word"`
	Translation     string     `json:"translation,omitempty"`
	PartOfSpeech    string     `json:"part_of_speech,omitempty"`
	ExampleSentence string     `json:"example_sentence,omitempty"`
	Difficulty      Difficulty `json:"difficulty"`
	CreatedAt       time.Time  `json:"created_at"`
	ReviewCount     int        `json:"review_count"`
	LastReviewed    *time.Time `json:"last_reviewed,omitempty"`
	NextReview      *time.Time `json:"next_review,omitempty"`
}

// VocabularyFields carries the caller-supplied fields for creating or merging
// a vocabulary entry. Empty values mean "not provided" and are skipped during
// a merge, so a merge can never clear a previously set field. This skip-on-empty
// behavior is load-bearing: it is what makes re-detecting a known word a no-op.
type VocabularyFields struct {
	Word            string     `json:"word"`
	Translation     string     `json:"translation,omitempty"`
	PartOfSpeech    string     `json:"part_of_speech,omitempty"`
	ExampleSentence string     `json:"example_sentence,omitempty"`
	Difficulty      Difficulty `json:"difficulty,omitempty"`
}

// NewVocabularyEntry creates a VocabularyEntry from the given fields.
// It generates a new UUID, applies the B1 default difficulty when none is
// supplied, and leaves the scheduling state at its zero values (never
// reviewed, immediately due). Returns an error if validation fails.
func NewVocabularyEntry(fields VocabularyFields) (*VocabularyEntry, error) {
	difficulty := fields.Difficulty
	if difficulty == "" {
		difficulty = DifficultyB1
	}

	entry := &VocabularyEntry{
		ID:              uuid.New(),
		Word:            fields.Word,
		Translation:     fields.Translation,
		PartOfSpeech:    fields.PartOfSpeech,
		ExampleSentence: fields.ExampleSentence,
		Difficulty:      difficulty,
		CreatedAt:       time.Now().UTC(),
		ReviewCount:     0,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Validate checks if the VocabularyEntry has valid data.
func (e *VocabularyEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrInvalidID
	}
	if e.Word == "" {
		return ErrEmptyWord
	}
	if !e.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, e.Difficulty)
	}
	if e.ReviewCount < 0 {
		return fmt.Errorf("%w: negative review count", ErrValidation)
	}
	return nil
}

// Merge folds the non-empty descriptive fields of in into the entry.
// The natural key (Word) and the scheduling state (ReviewCount, LastReviewed,
// NextReview) are never touched; CreatedAt is immutable. Each allow-listed
// field is only overwritten when the incoming value is non-empty, so merging
// the same fields twice is idempotent. Returns an error only when a supplied
// difficulty is not a known tier.
func (e *VocabularyEntry) Merge(in VocabularyFields) error {
	if in.Difficulty != "" && !in.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, in.Difficulty)
	}

	if in.Translation != "" {
		e.Translation = in.Translation
	}
	if in.PartOfSpeech != "" {
		e.PartOfSpeech = in.PartOfSpeech
	}
	if in.ExampleSentence != "" {
		e.ExampleSentence = in.ExampleSentence
	}
	if in.Difficulty != "" {
		e.Difficulty = in.Difficulty
	}
	return nil
}

// IsDue reports whether the entry qualifies for review at the given time.
// A nil NextReview means the entry was never scheduled and is treated as
// overdue.
func (e *VocabularyEntry) IsDue(now time.Time) bool {
	return e.NextReview == nil || !e.NextReview.After(now)
}
