package service

import (
	"errors"
	"fmt"
)

// Common service-level errors.
var (
	// ErrInvalidCardCount indicates the requested flashcard count is
	// outside the accepted range.
	ErrInvalidCardCount = errors.New("card count must be between 1 and 10")

	// ErrEmptyQuestion indicates a generation request with no question text.
	ErrEmptyQuestion = errors.New("question cannot be empty")
)

// Card count bounds for a single generation request.
const (
	MinCardCount = 1
	MaxCardCount = 10
)

// GenerationServiceError wraps errors from the generation service with
// context about the operation that failed.
type GenerationServiceError struct {
	// Operation is the name of the operation that failed (e.g. "answer", "persist")
	Operation string

	// Message is a human-readable description of the error
	Message string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface.
func (e *GenerationServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation service %s: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("generation service %s: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GenerationServiceError) Unwrap() error {
	return e.Err
}

// NewGenerationServiceError creates a new GenerationServiceError.
func NewGenerationServiceError(operation, message string, err error) *GenerationServiceError {
	return &GenerationServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
