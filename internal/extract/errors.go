package extract

import (
	"errors"
	"fmt"
)

// Common extraction errors
var (
	// ErrUnsupportedFormat is returned for file types outside the
	// supported allow-list (.txt and .pdf).
	ErrUnsupportedFormat = errors.New("unsupported file format: only .txt and .pdf are supported")

	// ErrExtractionFailed is returned when a document cannot be processed
	// (corrupt file, I/O failure, rasterization failure). The original
	// cause is attached via wrapping.
	ErrExtractionFailed = errors.New("document extraction failed")

	// ErrRasterizerNotFound is returned when the OCR fallback path needs
	// pdftoppm and it is not installed.
	ErrRasterizerNotFound = errors.New("pdftoppm not found in PATH")
)

// ExtractionError wraps errors with context about the failed extraction.
type ExtractionError struct {
	// Op is the operation that failed (e.g., "Load", "RasterizePages").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("extract: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("extract: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *ExtractionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(op string, err error, details string) *ExtractionError {
	return &ExtractionError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapExtractionError wraps an error as an ExtractionError if it isn't already one.
func WrapExtractionError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		return err // Already wrapped
	}

	return NewExtractionError(op, err, details)
}
