// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidDifficulty is returned when a difficulty tier is outside
	// the known A1..C1 set.
	ErrInvalidDifficulty = errors.New("invalid difficulty tier")

	// ErrEmptyWord is returned when a vocabulary entry has no surface form.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrEmptyQuestionText is returned when a question has no German text.
	ErrEmptyQuestionText = errors.New("question text cannot be empty")

	// ErrInvalidQuestionDifficulty is returned when a question difficulty is
	// not one of easy, medium, hard.
	ErrInvalidQuestionDifficulty = errors.New("invalid question difficulty")

	// ErrMissingReviewSubject is returned when a study record references
	// neither a vocabulary entry nor a question.
	ErrMissingReviewSubject = errors.New("study record must reference a vocabulary entry or a question")
)
