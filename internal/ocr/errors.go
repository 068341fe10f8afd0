package ocr

import (
	"errors"
	"fmt"
)

// Common OCR processing errors
var (
	// ErrProcessingFailed is returned when the recognition service reports
	// a structured processing error for the submitted image.
	ErrProcessingFailed = errors.New("OCR processing failed")

	// ErrNoParsedResults is returned when the service answered successfully
	// but the response carried no parsed text entries.
	ErrNoParsedResults = errors.New("OCR response contained no parsed results")

	// ErrMissingAPIKey is returned when the ocr.space engine is selected
	// without an API key configured.
	ErrMissingAPIKey = errors.New("missing ocr.space API key: set OCRSPACE_API_KEY")

	// ErrMissingCredentials is returned when a Google engine is selected
	// without Google Cloud credentials configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS")

	// ErrInvalidConfiguration is returned when required engine settings are
	// absent, such as the Document AI project or processor ID.
	ErrInvalidConfiguration = errors.New("invalid OCR engine configuration")

	// ErrUnknownProvider is returned for an unrecognized OCR_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown OCR provider")
)

// OCRError wraps errors with additional context about the recognition failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "Recognize", "NewEngine").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *OCRError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewOCRError creates a new OCRError with the specified operation and underlying error.
func NewOCRError(op string, err error, details string) *OCRError {
	return &OCRError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err // Already wrapped
	}

	return NewOCRError(op, err, details)
}
