package helpers

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------
// Data absence (empty filtered set, too few forecast points, unknown tokens
// in free text) is never represented as an error anywhere in the pipeline.
// These types cover genuine contract violations and infrastructure failures.
// -----------------------------------------------------------------------------

type InsightError struct {
	Message string
	Cause   error
}

func (e *InsightError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InsightError) Unwrap() error {
	return e.Cause
}

// Distinct error types for type assertions
type IngestError struct{ InsightError }
type StorageError struct{ InsightError }
type ForecastError struct{ InsightError }

// ValidationError marks a caller contract violation (e.g. missing query
// text on a tool call). Transport layers map it to a client error.
type ValidationError struct{ InsightError }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{InsightError{Message: fmt.Sprintf(format, args...)}}
}

func NewIngestError(msg string, cause error) error {
	return &IngestError{InsightError{Message: msg, Cause: cause}}
}

func NewStorageError(msg string, cause error) error {
	return &StorageError{InsightError{Message: msg, Cause: cause}}
}

func NewForecastError(msg string, cause error) error {
	return &ForecastError{InsightError{Message: msg, Cause: cause}}
}

// -----------------------------------------------------------------------------

// IsValidationError reports whether err is (or wraps) a caller contract violation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsIngestError reports whether err originated in dataset loading.
func IsIngestError(err error) bool {
	var ie *IngestError
	return errors.As(err, &ie)
}
