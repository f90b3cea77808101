package ocr

import (
	"encoding/base64"
	"strings"
)

// Blob is a decoded document payload: the MIME type from the data URL prefix
// plus the raw bytes.
type Blob struct {
	MIMEType string
	Content  []byte
}

// IsPDF reports whether the blob should take the PDF annotation path.
func (b Blob) IsPDF() bool {
	return b.MIMEType == "application/pdf"
}

// IsImage reports whether the blob should take the image annotation path.
func (b Blob) IsImage() bool {
	return strings.HasPrefix(b.MIMEType, "image/")
}

// ParseDataURL decodes a self-describing "data:<mime>;base64,<payload>" blob
// into its MIME type and raw bytes. Only image/* and application/pdf MIME
// types are accepted.
func ParseDataURL(dataURL string) (*Blob, error) {
	const op = "ParseDataURL"

	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, NewOCRError(op, ErrInvalidBlob, "missing data: prefix")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, NewOCRError(op, ErrInvalidBlob, "missing payload separator")
	}

	mimeType, found := strings.CutSuffix(meta, ";base64")
	if !found {
		return nil, NewOCRError(op, ErrInvalidBlob, "payload is not base64 encoded")
	}

	if !strings.HasPrefix(mimeType, "image/") && mimeType != "application/pdf" {
		return nil, NewOCRError(op, ErrInvalidBlob, "unsupported MIME type: "+mimeType)
	}

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, WrapOCRError(op, ErrInvalidBlob, "base64 decode failed")
	}
	if len(content) == 0 {
		return nil, NewOCRError(op, ErrInvalidBlob, "empty payload")
	}

	return &Blob{MIMEType: mimeType, Content: content}, nil
}

// EncodeDataURL builds the MIME-tagged base64 blob the pipeline accepts.
func EncodeDataURL(mimeType string, content []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}
