package ocr

import (
	"errors"
	"fmt"
)

// Common OCR transport errors
var (
	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrAnnotateFailed is returned when the Vision API call fails or the
	// response is malformed.
	ErrAnnotateFailed = errors.New("vision annotation failed")

	// ErrEmptyText is returned when the service succeeded but recognized no text.
	// Distinguished from ErrAnnotateFailed: it implies a legibility problem,
	// not a connectivity problem.
	ErrEmptyText = errors.New("no text recognized in document")

	// ErrInvalidBlob is returned when the input blob is not a MIME-tagged
	// base64 payload the pipeline understands.
	ErrInvalidBlob = errors.New("invalid document blob: expected data URL with image/* or application/pdf MIME type")

	// ErrFileTooLarge is returned when the document exceeds the Vision API
	// synchronous processing limit.
	ErrFileTooLarge = errors.New("document exceeds the maximum size limit (20MB)")
)

// OCRError wraps errors with additional context about the transport failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "AnnotateImage").
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
