package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionDifficulty grades question bank items, separate from the CEFR tiers
// used for vocabulary.
type QuestionDifficulty string

const (
	QuestionEasy   QuestionDifficulty = "easy"
	QuestionMedium QuestionDifficulty = "medium"
	QuestionHard   QuestionDifficulty = "hard"
)

// IsValid reports whether d is one of the known question difficulties.
func (d QuestionDifficulty) IsValid() bool {
	switch d {
	case QuestionEasy, QuestionMedium, QuestionHard:
		return true
	}
	return false
}

// Question is a citizenship exam practice question. Options holds the answer
// choices as a raw string (the original data ships them newline-separated);
// the question bank does no detection or scheduling logic of its own.
type Question struct {
	ID            uuid.UUID          `json:"id"`
	GermanText    string             `json:"german_text"`
	Translation   string             `json:"translation,omitempty"`
	Category      string             `json:"category,omitempty"`
	Difficulty    QuestionDifficulty `json:"difficulty"`
	Options       string             `json:"options,omitempty"`
	CorrectAnswer string             `json:"correct_answer,omitempty"`
	Explanation   string             `json:"explanation,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// QuestionFields carries caller-supplied fields for creating or updating a
// question. Empty values are treated as "not provided" on update.
type QuestionFields struct {
	GermanText    string             `json:"german_text"`
	Translation   string             `json:"translation,omitempty"`
	Category      string             `json:"category,omitempty"`
	Difficulty    QuestionDifficulty `json:"difficulty,omitempty"`
	Options       string             `json:"options,omitempty"`
	CorrectAnswer string             `json:"correct_answer,omitempty"`
	Explanation   string             `json:"explanation,omitempty"`
}

// NewQuestion creates a Question from the given fields, defaulting the
// difficulty to medium. Returns an error if validation fails.
func NewQuestion(fields QuestionFields) (*Question, error) {
	difficulty := fields.Difficulty
	if difficulty == "" {
		difficulty = QuestionMedium
	}

	now := time.Now().UTC()
	question := &Question{
		ID:            uuid.New(),
		GermanText:    fields.GermanText,
		Translation:   fields.Translation,
		Category:      fields.Category,
		Difficulty:    difficulty,
		Options:       fields.Options,
		CorrectAnswer: fields.CorrectAnswer,
		Explanation:   fields.Explanation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := question.Validate(); err != nil {
		return nil, err
	}
	return question, nil
}

// Validate checks if the Question has valid data.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrInvalidID
	}
	if q.GermanText == "" {
		return ErrEmptyQuestionText
	}
	if !q.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuestionDifficulty, q.Difficulty)
	}
	return nil
}

// Update applies the non-empty fields of in to the question and bumps
// UpdatedAt. Unlike VocabularyEntry.Merge this is a plain partial update with
// no protected fields beyond the ID and CreatedAt.
func (q *Question) Update(in QuestionFields) error {
	if in.Difficulty != "" && !in.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuestionDifficulty, in.Difficulty)
	}

	if in.GermanText != "" {
		q.GermanText = in.GermanText
	}
	if in.Translation != "" {
		q.Translation = in.Translation
	}
	if in.Category != "" {
		q.Category = in.Category
	}
	if in.Difficulty != "" {
		q.Difficulty = in.Difficulty
	}
	if in.Options != "" {
		q.Options = in.Options
	}
	if in.CorrectAnswer != "" {
		q.CorrectAnswer = in.CorrectAnswer
	}
	if in.Explanation != "" {
		q.Explanation = in.Explanation
	}
	q.UpdatedAt = time.Now().UTC()
	return nil
}
