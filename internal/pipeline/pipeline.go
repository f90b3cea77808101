// Package pipeline orchestrates the document field extraction run:
// blob decoding, OCR transport, line reconstruction, normalization and
// field extraction, plus the per-slot run bookkeeping that keeps stale
// responses from clobbering newer ones.
//
// The OCR transport is injected as a capability so the extraction stages
// can be exercised against hand-authored fixtures without any network
// dependency.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"docscan/internal/extract"
	"docscan/internal/logger"
	"docscan/internal/ocr"
	"docscan/pkg/models"
)

// Status is the observable state of a pipeline run. The synchronous Run
// returns only terminal statuses; StatusUploading and StatusExtracting are
// part of the vocabulary for frontends that surface per-stage progress.
type Status string

const (
	StatusIdle       Status = "idle"        // no document selected
	StatusUploading  Status = "uploading"   // blob being decoded
	StatusOCRPending Status = "ocr_pending" // network call in flight
	StatusOCRFailed  Status = "ocr_failed"  // transport or malformed-response error
	StatusTextEmpty  Status = "text_empty"  // service returned no text; recoverable
	StatusExtracting Status = "extracting"  // in-memory extraction; never fails
	StatusDone       Status = "done"        // field set available
)

// Request is one document to process.
type Request struct {
	// Blob is the self-describing encoded payload: a data URL carrying an
	// image/* or application/pdf MIME type plus base64 content.
	Blob string

	// DocType selects the field rules to apply.
	DocType models.DocumentType
}

// Result is the pipeline's output contract to the caller: the field set,
// the raw recognized text for diagnostics, and the terminal status.
type Result struct {
	Status   Status                 `json:"status"`
	Fields   *models.DocumentFields `json:"fields"`
	RawText  string                 `json:"raw_text,omitempty"`
	Duration time.Duration          `json:"duration"`
}

// Pipeline runs single-shot field extraction over an injected OCR transport.
type Pipeline struct {
	svc ocr.Service
	th  extract.Thresholds
	log zerolog.Logger
}

// New creates a pipeline with the given transport and geometry thresholds.
func New(svc ocr.Service, th extract.Thresholds) *Pipeline {
	return &Pipeline{
		svc: svc,
		th:  th,
		log: logger.WithComponent("pipeline"),
	}
}

// Run executes one extraction: decode the blob, call the OCR service,
// reconstruct and normalize lines, and extract the field set.
//
// An empty OCR result is not a failure: the returned Result has
// StatusTextEmpty with an all-empty field set and a nil error. Transport
// failures return StatusOCRFailed alongside a categorized error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	const op = "Run"
	start := time.Now()

	p.log.Info().
		Str("doc_type", string(req.DocType)).
		Int("blob_length", len(req.Blob)).
		Msg("Starting pipeline run")

	// Uploading: decode the MIME-tagged blob.
	blob, err := ocr.ParseDataURL(req.Blob)
	if err != nil {
		p.log.Error().Err(err).Msg("Blob decoding failed")
		return &Result{Status: StatusOCRFailed, Fields: &models.DocumentFields{}, Duration: time.Since(start)},
			NewPipelineError(op, ErrInvalidInput, err.Error())
	}

	// OCR pending: one outbound call, no retries.
	var annotation *ocr.Annotation
	if blob.IsPDF() {
		annotation, err = p.svc.AnnotatePDF(ctx, blob.Content)
	} else {
		annotation, err = p.svc.AnnotateImage(ctx, blob.Content)
	}

	if err != nil {
		if errors.Is(err, ocr.ErrEmptyText) {
			p.log.Warn().Msg("OCR service recognized no text")
			return &Result{Status: StatusTextEmpty, Fields: &models.DocumentFields{}, Duration: time.Since(start)}, nil
		}
		if errors.Is(err, ocr.ErrMissingCredentials) {
			return &Result{Status: StatusOCRFailed, Fields: &models.DocumentFields{}, Duration: time.Since(start)},
				NewPipelineError(op, ErrMissingCredentials, "")
		}
		p.log.Error().Err(err).Msg("OCR transport failed")
		return &Result{Status: StatusOCRFailed, Fields: &models.DocumentFields{}, Duration: time.Since(start)},
			NewPipelineError(op, ErrTransport, err.Error())
	}

	// Extracting: synchronous, in-memory; always completes.
	fields := extract.New(annotation, p.th).Extract(req.DocType)

	result := &Result{
		Status:   StatusDone,
		Fields:   fields,
		RawText:  annotation.FullText,
		Duration: time.Since(start),
	}

	p.log.Info().
		Str("doc_type", string(req.DocType)).
		Dur("duration", result.Duration).
		Int("word_count", len(annotation.Words)).
		Strs("empty_fields", fields.EmptyFields()).
		Msg("Pipeline run completed")

	return result, nil
}
