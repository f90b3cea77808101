package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"docscan/pkg/models"
)

const (
	// MaxFileSizeBytes is the maximum file size for synchronous processing (20MB)
	MaxFileSizeBytes = 20 * 1024 * 1024
)

// GoogleVisionService implements Service using Google Cloud Vision API.
type GoogleVisionService struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionService creates a new OCR transport with credentials from
// the environment. It fails fast with ErrMissingCredentials before any
// network call when no credentials are configured.
func NewGoogleVisionService(ctx context.Context) (*GoogleVisionService, error) {
	const op = "NewGoogleVisionService"

	var client *vision.ImageAnnotatorClient
	var err error

	// Check for inline credentials first
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		return nil, NewOCRError(op, ErrMissingCredentials, "no credentials found in environment")
	}

	return &GoogleVisionService{client: client}, nil
}

// NewGoogleVisionServiceWithClient creates a transport with an explicit client (for testing).
func NewGoogleVisionServiceWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionService {
	return &GoogleVisionService{client: client}
}

// AnnotateImage runs document text detection on raw image bytes and returns
// the full text plus the per-token word list with bounding boxes.
func (g *GoogleVisionService) AnnotateImage(ctx context.Context, content []byte) (*Annotation, error) {
	const op = "AnnotateImage"

	if len(content) > MaxFileSizeBytes {
		return nil, WrapOCRError(op, ErrFileTooLarge, fmt.Sprintf("image size: %d bytes", len(content)))
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: content},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrAnnotateFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrAnnotateFailed, "no response from Vision API")
	}

	imageResp := resp.Responses[0]
	if imageResp.Error != nil {
		return nil, WrapOCRError(op, ErrAnnotateFailed, fmt.Sprintf("Vision API error: %s", imageResp.Error.Message))
	}

	annotation := &Annotation{}
	if imageResp.FullTextAnnotation != nil {
		annotation.FullText = imageResp.FullTextAnnotation.Text
	}

	// The first entry is the whole-text block; only per-token entries are kept.
	for i, entity := range imageResp.TextAnnotations {
		if i == 0 {
			if annotation.FullText == "" {
				annotation.FullText = entity.Description
			}
			continue
		}
		word, ok := wordFromEntity(entity)
		if !ok {
			continue
		}
		annotation.Words = append(annotation.Words, word)
	}

	if strings.TrimSpace(annotation.FullText) == "" {
		return nil, NewOCRError(op, ErrEmptyText, "")
	}

	return annotation, nil
}

// AnnotatePDF runs document text detection on the first page of a PDF.
// The service's own line segmentation in the full text is trusted as-is;
// no geometry is requested.
func (g *GoogleVisionService) AnnotatePDF(ctx context.Context, content []byte) (*Annotation, error) {
	const op = "AnnotatePDF"

	if len(content) > MaxFileSizeBytes {
		return nil, WrapOCRError(op, ErrFileTooLarge, fmt.Sprintf("file size: %d bytes", len(content)))
	}
	if len(content) < 4 || string(content[:4]) != "%PDF" {
		return nil, WrapOCRError(op, ErrAnnotateFailed, "missing PDF header")
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  content,
					MimeType: "application/pdf",
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				Pages: []int32{1},
			},
		},
	}

	resp, err := g.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrAnnotateFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrAnnotateFailed, "no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, WrapOCRError(op, ErrAnnotateFailed, fmt.Sprintf("Vision API error: %s", fileResp.Error.Message))
	}
	if len(fileResp.Responses) == 0 {
		return nil, NewOCRError(op, ErrEmptyText, "no pages in response")
	}

	pageResp := fileResp.Responses[0]
	if pageResp.Error != nil {
		return nil, WrapOCRError(op, ErrAnnotateFailed, fmt.Sprintf("Vision API page error: %s", pageResp.Error.Message))
	}

	annotation := &Annotation{}
	if pageResp.FullTextAnnotation != nil {
		annotation.FullText = pageResp.FullTextAnnotation.Text
	}
	if strings.TrimSpace(annotation.FullText) == "" {
		return nil, NewOCRError(op, ErrEmptyText, "")
	}

	return annotation, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionService) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// wordFromEntity converts a Vision entity annotation into a RecognizedWord,
// reducing the bounding poly to axis-aligned min/max coordinates.
func wordFromEntity(entity *visionpb.EntityAnnotation) (models.RecognizedWord, bool) {
	if entity == nil || entity.Description == "" || entity.BoundingPoly == nil || len(entity.BoundingPoly.Vertices) == 0 {
		return models.RecognizedWord{}, false
	}

	word := models.RecognizedWord{Text: entity.Description}
	for i, v := range entity.BoundingPoly.Vertices {
		x, y := float64(v.X), float64(v.Y)
		if i == 0 {
			word.XMin, word.XMax = x, x
			word.YMin, word.YMax = y, y
			continue
		}
		if x < word.XMin {
			word.XMin = x
		}
		if x > word.XMax {
			word.XMax = x
		}
		if y < word.YMin {
			word.YMin = y
		}
		if y > word.YMax {
			word.YMax = y
		}
	}
	return word, true
}
