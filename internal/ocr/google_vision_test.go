package ocr

import (
	"bytes"
	"context"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoogleVisionServiceMissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_CREDENTIALS", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	svc, err := NewGoogleVisionService(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Nil(t, svc)
}

func TestAnnotateImageRejectsOversizedContent(t *testing.T) {
	svc := NewGoogleVisionServiceWithClient(nil)
	content := bytes.Repeat([]byte{0x42}, MaxFileSizeBytes+1)

	_, err := svc.AnnotateImage(context.Background(), content)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestAnnotatePDFRejectsMissingHeader(t *testing.T) {
	svc := NewGoogleVisionServiceWithClient(nil)

	_, err := svc.AnnotatePDF(context.Background(), []byte("not a pdf at all"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAnnotateFailed)
}

func TestWordFromEntity(t *testing.T) {
	entity := &visionpb.EntityAnnotation{
		Description: "등록번호",
		BoundingPoly: &visionpb.BoundingPoly{
			Vertices: []*visionpb.Vertex{
				{X: 10, Y: 5},
				{X: 90, Y: 5},
				{X: 90, Y: 25},
				{X: 10, Y: 25},
			},
		},
	}

	word, ok := wordFromEntity(entity)

	require.True(t, ok)
	assert.Equal(t, "등록번호", word.Text)
	assert.Equal(t, 10.0, word.XMin)
	assert.Equal(t, 90.0, word.XMax)
	assert.Equal(t, 5.0, word.YMin)
	assert.Equal(t, 25.0, word.YMax)
	assert.Equal(t, 15.0, word.YCenter())
	assert.Equal(t, 20.0, word.Height())
}

func TestWordFromEntitySkipsDegenerateEntities(t *testing.T) {
	_, ok := wordFromEntity(nil)
	assert.False(t, ok)

	_, ok = wordFromEntity(&visionpb.EntityAnnotation{Description: "텍스트"})
	assert.False(t, ok)

	_, ok = wordFromEntity(&visionpb.EntityAnnotation{
		BoundingPoly: &visionpb.BoundingPoly{Vertices: []*visionpb.Vertex{{X: 1, Y: 1}}},
	})
	assert.False(t, ok)
}
