package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURLRoundTrip(t *testing.T) {
	content := []byte("%PDF-1.4 fake document")

	blob, err := ParseDataURL(EncodeDataURL("application/pdf", content))

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.MIMEType)
	assert.Equal(t, content, blob.Content)
	assert.True(t, blob.IsPDF())
	assert.False(t, blob.IsImage())
}

func TestParseDataURLImage(t *testing.T) {
	blob, err := ParseDataURL(EncodeDataURL("image/jpeg", []byte{0xFF, 0xD8, 0xFF}))

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", blob.MIMEType)
	assert.True(t, blob.IsImage())
	assert.False(t, blob.IsPDF())
}

func TestParseDataURLRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing data prefix", "image/png;base64,aGVsbG8="},
		{"missing payload separator", "data:image/png;base64"},
		{"not base64 tagged", "data:image/png,aGVsbG8="},
		{"unsupported mime type", "data:text/plain;base64,aGVsbG8="},
		{"invalid base64 payload", "data:image/png;base64,%%%"},
		{"empty payload", "data:image/png;base64,"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := ParseDataURL(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBlob)
			assert.Nil(t, blob)
		})
	}
}
