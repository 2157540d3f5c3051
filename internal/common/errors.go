// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Acquisition errors.
	ErrNoImage          = errors.New("no image provided")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrCaptureFailed    = errors.New("camera capture failed")

	// OCR errors.
	ErrOCRUnavailable = errors.New("ocr engine unavailable")

	// Text input errors.
	ErrNoText = errors.New("no text provided")

	// Lexicon errors.
	ErrLexiconNotFound = errors.New("lexicon not found")
	ErrInvalidLexicon  = errors.New("invalid lexicon")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
