package pipeline

import (
	"errors"
	"fmt"
)

// Pipeline error taxonomy. Every failure crossing the pipeline boundary is
// one of these categories, so callers can render a user-facing message
// without inspecting transport internals. An empty OCR result is not a
// failure: Run maps ocr.ErrEmptyText to StatusTextEmpty with a nil error.
var (
	// ErrMissingCredentials means the OCR credential is absent; not
	// retryable without a configuration change. No network call was made.
	ErrMissingCredentials = errors.New("missing OCR service credentials")

	// ErrTransport covers network failures and malformed responses from the
	// OCR service; retryable by re-running the pipeline on the same blob.
	ErrTransport = errors.New("document processing failed")

	// ErrInvalidInput means the document blob was not a MIME-tagged base64
	// payload the pipeline accepts.
	ErrInvalidInput = errors.New("invalid document input")
)

// PipelineError wraps errors with additional context about the run failure.
type PipelineError struct {
	// Op is the operation that failed (e.g., "Run").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("pipeline: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("pipeline: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewPipelineError creates a new PipelineError.
func NewPipelineError(op string, err error, details string) *PipelineError {
	return &PipelineError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
