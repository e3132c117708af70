package api

import (
	"errors"
	"net/http"

	"github.com/dstreit/einbuerger-api/internal/service"
	"github.com/dstreit/einbuerger-api/internal/service/auth"
	"github.com/dstreit/einbuerger-api/internal/service/review"
	"github.com/dstreit/einbuerger-api/internal/service/scan"
	"github.com/dstreit/einbuerger-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	case errors.Is(err, review.ErrVocabularyNotFound),
		errors.Is(err, service.ErrVocabularyNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrWordExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, scan.ErrNoTextFound):
		return http.StatusBadRequest

	case errors.Is(err, scan.ErrRecognitionUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, review.ErrVocabularyNotFound),
		errors.Is(err, service.ErrVocabularyNotFound):
		return "Vocabulary entry not found"

	case errors.Is(err, service.ErrQuestionNotFound):
		return "Question not found"

	case errors.Is(err, store.ErrWordExists):
		return "Word already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, scan.ErrNoTextFound):
		return "No text could be recognized in the image"

	case errors.Is(err, scan.ErrRecognitionUnavailable):
		return "Text recognition is not configured"

	case errors.Is(err, scan.ErrRecognitionFailed):
		return "Text recognition failed"

	default:
		return "An unexpected error occurred"
	}
}
