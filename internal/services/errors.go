package services

import (
	"errors"
	"fmt"

	apperrors "github.com/canadaclubjp/quiz-app/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Quiz specific errors
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")

	// Score specific errors
	ErrScoreNotFound = errors.New("score not found")

	// Submission specific errors
	ErrStudentNotInRoster = errors.New("student not registered in this course")
	ErrQuizAlreadyTaken   = errors.New("quiz already taken")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// AlreadyTakenError carries the stored result of the earlier attempt so the
// student sees their recorded score instead of a bare rejection.
type AlreadyTakenError struct {
	Score int
	Total int
}

func (e *AlreadyTakenError) Error() string {
	return fmt.Sprintf("quiz already taken (score %d/%d)", e.Score, e.Total)
}

func (e *AlreadyTakenError) Unwrap() error {
	return ErrQuizAlreadyTaken
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrScoreNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsForbidden checks if error represents a roster or access rejection
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrStudentNotInRoster)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrQuizAlreadyTaken)
}

// AsAlreadyTaken extracts the stored score of a duplicate-attempt rejection.
func AsAlreadyTaken(err error) (*AlreadyTakenError, bool) {
	var ate *AlreadyTakenError
	ok := errors.As(err, &ate)
	return ate, ok
}
