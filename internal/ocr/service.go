// Package ocr provides OCR (Optical Character Recognition) capabilities using Google Cloud Vision API.
//
// This package supports two input paths for scanned Korean business documents:
//   - Images (JPEG/PNG/...): image annotation with document text detection,
//     returning the full recognized text plus word-level bounding boxes.
//   - Single-page PDFs: file annotation restricted to the first page,
//     returning the service's own line-segmented full text (no geometry).
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//
// Cloud Vision API Limitations:
//   - Maximum file size: 20MB for synchronous processing
//   - Supported formats: JPEG, PNG, GIF, BMP, WEBP, PDF, TIFF
package ocr

import (
	"context"

	"docscan/pkg/models"
)

// Service defines the OCR transport used by the extraction pipeline.
// Implementations make exactly one outbound call per invocation and perform
// no retries; failures surface to the caller.
type Service interface {
	// AnnotateImage runs document text detection on raw image bytes.
	// The returned annotation carries word-level bounding boxes.
	AnnotateImage(ctx context.Context, content []byte) (*Annotation, error)

	// AnnotatePDF runs document text detection on the first page of a PDF.
	// Only the full text is populated; Words is empty.
	AnnotatePDF(ctx context.Context, content []byte) (*Annotation, error)
}

// Annotation is the transport stage's output: the service's full recognized
// text plus (for images) the per-token word list. The leading full-text
// entry of the Vision response is excluded from Words.
type Annotation struct {
	// FullText is the complete recognized text, with the service's own
	// line breaks.
	FullText string `json:"full_text"`

	// Words holds the per-token bounding boxes, image path only.
	Words []models.RecognizedWord `json:"words,omitempty"`
}
