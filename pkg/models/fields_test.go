package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentFieldsGetSet(t *testing.T) {
	f := &DocumentFields{}

	f.Set(FieldBusinessNumber, "1234567890")
	assert.Equal(t, "1234567890", f.Get(FieldBusinessNumber))
	assert.Equal(t, "1234567890", f.BusinessNumber)

	f.Set("unknown_field", "value")
	assert.Empty(t, f.Get("unknown_field"))
}

func TestDocumentFieldsIsEmpty(t *testing.T) {
	f := &DocumentFields{}
	assert.True(t, f.IsEmpty())

	f.BankName = "국민은행"
	assert.False(t, f.IsEmpty())
}

func TestDocumentFieldsEmptyFields(t *testing.T) {
	f := &DocumentFields{}
	for _, name := range FieldNames() {
		f.Set(name, "값")
	}
	assert.Empty(t, f.EmptyFields())

	f.Email = ""
	assert.Equal(t, []string{FieldEmail}, f.EmptyFields())
}

func TestDocumentFieldsMergeFillsOnlyEmpty(t *testing.T) {
	f := &DocumentFields{EntityName: "기존값"}
	other := &DocumentFields{EntityName: "새값", Representative: "홍길동"}

	filled := f.Merge(other)

	assert.Equal(t, []string{FieldRepresentative}, filled)
	assert.Equal(t, "기존값", f.EntityName)
	assert.Equal(t, "홍길동", f.Representative)
}

func TestLineText(t *testing.T) {
	line := Line{Words: []RecognizedWord{
		{Text: "등록번호", XMin: 0, XMax: 80, YMin: 0, YMax: 20},
		{Text: "123-45-67890", XMin: 100, XMax: 220, YMin: 0, YMax: 20},
	}}

	assert.Equal(t, "등록번호 123-45-67890", line.Text())
	assert.Equal(t, 10.0, line.YCenter())
}
