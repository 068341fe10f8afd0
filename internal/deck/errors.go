package deck

import (
	"errors"
	"fmt"
)

// Common rendering errors
var (
	// ErrInvalidSlides is returned when the slide list is empty or an
	// element lacks a title or bullets. These are caller errors and are
	// never degraded.
	ErrInvalidSlides = errors.New("invalid slide list")

	// ErrTemplateNotFound is returned when the template reference cannot
	// be resolved in the template store.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRenderFailed is returned when template loading, theming, or
	// serialization fails. The original cause is attached via wrapping.
	ErrRenderFailed = errors.New("presentation rendering failed")

	// ErrBadTemplate is returned when the template asset is not a valid
	// presentation document.
	ErrBadTemplate = errors.New("invalid or corrupted template asset")
)

// RenderError wraps errors with context about the failed render.
type RenderError struct {
	// Op is the operation that failed (e.g., "Render", "loadTemplate").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("deck: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("deck: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *RenderError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewRenderError creates a new RenderError.
func NewRenderError(op string, err error, details string) *RenderError {
	return &RenderError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapRenderError wraps an error as a RenderError if it isn't already one.
func WrapRenderError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return err // Already wrapped
	}

	return NewRenderError(op, err, details)
}
