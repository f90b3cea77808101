package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docscan/internal/extract"
	"docscan/internal/ocr"
	"docscan/pkg/models"
)

// fakeOCR is a canned-response transport; it records which annotation path
// was taken.
type fakeOCR struct {
	annotation *ocr.Annotation
	err        error
	imageCalls int
	pdfCalls   int
}

func (f *fakeOCR) AnnotateImage(ctx context.Context, content []byte) (*ocr.Annotation, error) {
	f.imageCalls++
	return f.annotation, f.err
}

func (f *fakeOCR) AnnotatePDF(ctx context.Context, content []byte) (*ocr.Annotation, error) {
	f.pdfCalls++
	return f.annotation, f.err
}

func imageRequest(docType models.DocumentType) Request {
	return Request{
		Blob:    ocr.EncodeDataURL("image/png", []byte("fake image bytes")),
		DocType: docType,
	}
}

func TestRunExtractsFields(t *testing.T) {
	svc := &fakeOCR{annotation: &ocr.Annotation{
		FullText: "사업자등록증\n등록번호 : 123-45-67890\n상호 한빛유통",
	}}
	p := New(svc, extract.DefaultThresholds())

	result, err := p.Run(context.Background(), imageRequest(models.BusinessLicense))

	require.NoError(t, err)
	assert.Equal(t, StatusDone, result.Status)
	assert.Equal(t, "1234567890", result.Fields.BusinessNumber)
	assert.Equal(t, svc.annotation.FullText, result.RawText)
	assert.Equal(t, 1, svc.imageCalls)
	assert.Zero(t, svc.pdfCalls)
}

func TestRunRoutesPDFBlob(t *testing.T) {
	svc := &fakeOCR{annotation: &ocr.Annotation{FullText: "본문"}}
	p := New(svc, extract.DefaultThresholds())

	req := Request{
		Blob:    ocr.EncodeDataURL("application/pdf", []byte("%PDF-1.4 fake")),
		DocType: models.BusinessLicense,
	}
	_, err := p.Run(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, svc.pdfCalls)
	assert.Zero(t, svc.imageCalls)
}

func TestRunEmptyTextIsNotAnError(t *testing.T) {
	// A blank or illegible document is a recoverable outcome, not a failure.
	svc := &fakeOCR{err: ocr.NewOCRError("AnnotateImage", ocr.ErrEmptyText, "")}
	p := New(svc, extract.DefaultThresholds())

	result, err := p.Run(context.Background(), imageRequest(models.BusinessLicense))

	require.NoError(t, err)
	assert.Equal(t, StatusTextEmpty, result.Status)
	require.NotNil(t, result.Fields)
	assert.True(t, result.Fields.IsEmpty())
}

func TestRunTransportFailure(t *testing.T) {
	svc := &fakeOCR{err: ocr.NewOCRError("AnnotateImage", ocr.ErrAnnotateFailed, "connection reset")}
	p := New(svc, extract.DefaultThresholds())

	result, err := p.Run(context.Background(), imageRequest(models.BusinessLicense))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, StatusOCRFailed, result.Status)
}

func TestRunMissingCredentials(t *testing.T) {
	svc := &fakeOCR{err: ocr.NewOCRError("AnnotateImage", ocr.ErrMissingCredentials, "")}
	p := New(svc, extract.DefaultThresholds())

	result, err := p.Run(context.Background(), imageRequest(models.BusinessLicense))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Equal(t, StatusOCRFailed, result.Status)
}

func TestRunRejectsMalformedBlob(t *testing.T) {
	svc := &fakeOCR{}
	p := New(svc, extract.DefaultThresholds())

	result, err := p.Run(context.Background(), Request{Blob: "not a data url"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, StatusOCRFailed, result.Status)
	assert.Zero(t, svc.imageCalls)
	assert.Zero(t, svc.pdfCalls)
}

func TestSlotStaleResponseDiscarded(t *testing.T) {
	slot := NewSlot("license")

	first := slot.Begin()
	second := slot.Begin()

	stale := &Result{Status: StatusDone, Fields: &models.DocumentFields{EntityName: "오래된값"}}
	assert.False(t, slot.Complete(first, stale))
	assert.Nil(t, slot.Result())
	assert.Equal(t, StatusOCRPending, slot.Status())

	fresh := &Result{Status: StatusDone, Fields: &models.DocumentFields{EntityName: "새값"}}
	assert.True(t, slot.Complete(second, fresh))
	assert.Equal(t, StatusDone, slot.Status())
	require.NotNil(t, slot.Result())
	assert.Equal(t, "새값", slot.Result().Fields.EntityName)
}

func TestSlotClearInvalidatesInFlightRun(t *testing.T) {
	slot := NewSlot("bankbook")

	token := slot.Begin()
	assert.True(t, slot.Busy())

	slot.Clear()
	assert.Equal(t, StatusIdle, slot.Status())
	assert.False(t, slot.Busy())

	assert.False(t, slot.Complete(token, &Result{Status: StatusDone}))
	assert.Equal(t, StatusIdle, slot.Status())
	assert.Nil(t, slot.Result())
}

func TestRunSlotCommitsCurrentRun(t *testing.T) {
	svc := &fakeOCR{annotation: &ocr.Annotation{FullText: "등록번호 : 123-45-67890"}}
	p := New(svc, extract.DefaultThresholds())
	slot := NewSlot("license")

	result, err := p.RunSlot(context.Background(), slot, imageRequest(models.BusinessLicense))

	require.NoError(t, err)
	assert.Equal(t, StatusDone, slot.Status())
	assert.Same(t, result, slot.Result())
}

func TestFormApplySkipsUserEditedFields(t *testing.T) {
	form := NewForm()
	form.MarkEdited(models.FieldEntityName, "사용자입력")

	updated := form.Apply(&models.DocumentFields{
		EntityName:     "추출된이름",
		BusinessNumber: "1234567890",
	})

	assert.Equal(t, []string{models.FieldBusinessNumber}, updated)
	fields := form.Fields()
	assert.Equal(t, "사용자입력", fields.EntityName)
	assert.Equal(t, "1234567890", fields.BusinessNumber)
}

func TestFormApplyOverwritesEarlierExtraction(t *testing.T) {
	form := NewForm()
	form.Apply(&models.DocumentFields{Representative: "첫번째"})

	updated := form.Apply(&models.DocumentFields{Representative: "두번째"})

	assert.Equal(t, []string{models.FieldRepresentative}, updated)
	assert.Equal(t, "두번째", form.Fields().Representative)
}

func TestFormApplyIgnoresEmptyValues(t *testing.T) {
	form := NewForm()
	form.Apply(&models.DocumentFields{Phone: "0212345678"})

	updated := form.Apply(&models.DocumentFields{})

	assert.Empty(t, updated)
	assert.Equal(t, "0212345678", form.Fields().Phone)
}

func TestSlotsAreIndependent(t *testing.T) {
	license := NewSlot("license")
	bankbook := NewSlot("bankbook")

	token := license.Begin()
	assert.True(t, license.Busy())
	assert.False(t, bankbook.Busy())

	license.Complete(token, &Result{Status: StatusDone})
	assert.Equal(t, StatusDone, license.Status())
	assert.Equal(t, StatusIdle, bankbook.Status())
}
