package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docscan/internal/ocr"
	"docscan/pkg/models"
)

func word(text string, xMin, yMin, width, height float64) models.RecognizedWord {
	return models.RecognizedWord{
		Text: text,
		XMin: xMin,
		XMax: xMin + width,
		YMin: yMin,
		YMax: yMin + height,
	}
}

func newImageExtractor(t *testing.T, words ...models.RecognizedWord) *Extractor {
	t.Helper()
	annotation := &ocr.Annotation{FullText: "fixture", Words: words}
	return New(annotation, DefaultThresholds())
}

func TestSpatialValueSingleTokenLabel(t *testing.T) {
	// Business-license layout: label and value side by side on one Y band.
	e := newImageExtractor(t,
		word("법인명(단체명)", 0, 0, 110, 20),
		word("㈜한국개발", 120, 0, 100, 20),
	)

	value := e.spatialValue([]string{"법인명", "상호"}, []string{"개업", "연월일"})
	assert.Equal(t, "㈜한국개발", value)
}

func TestSpatialValueSplitLabelEquivalence(t *testing.T) {
	// The label 대표자 split across two word boxes must anchor the same as
	// a single box, and the value to its right must be identical.
	split := newImageExtractor(t,
		word("대표", 0, 0, 40, 20),
		word("자", 44, 0, 20, 20),
		word("홍길동", 130, 0, 60, 20),
	)
	joined := newImageExtractor(t,
		word("대표자", 0, 0, 64, 20),
		word("홍길동", 130, 0, 60, 20),
	)

	fromSplit := split.spatialValue([]string{"대표자"}, nil)
	fromJoined := joined.spatialValue([]string{"대표자"}, nil)

	require.NotEmpty(t, fromJoined)
	assert.Equal(t, fromJoined, fromSplit)
	assert.Equal(t, "홍길동", fromSplit)
}

func TestSpatialValueLeftExtension(t *testing.T) {
	// The label's leading character sits in a degenerate tiny box whose
	// narrow band blocks rightward chaining; anchoring recovers by
	// absorbing leftward from the trailing-character token.
	e := newImageExtractor(t,
		word("대", 0, 0, 20, 4),
		word("표자", 30, 0, 40, 20),
		word("김철수", 140, 0, 60, 20),
	)

	value := e.spatialValue([]string{"대표자"}, nil)
	assert.Equal(t, "김철수", value)
}

func TestSpatialValueChainCompletedMidWord(t *testing.T) {
	// The label's trailing character can sit at the start of an unrelated
	// word: 대표 followed by 자산 spells 대표자 across the word boundary.
	// The first successful absorption chain wins, so the chain anchors on
	// 자산 and whatever follows it is collected as the value.
	e := newImageExtractor(t,
		word("대표", 0, 0, 40, 20),
		word("자산", 50, 0, 40, 20),
		word("오천만원", 150, 0, 80, 20),
	)

	value := e.spatialValue([]string{"대표자"}, nil)
	assert.Equal(t, "오천만원", value)
}

func TestSpatialValueNeighborsNeverSpellingLabel(t *testing.T) {
	// Neighboring words whose concatenation never contains the label must
	// not anchor it, in either absorption direction.
	e := newImageExtractor(t,
		word("대표", 0, 0, 40, 20),
		word("투자", 50, 0, 40, 20),
		word("오천만원", 150, 0, 80, 20),
	)

	assert.Empty(t, e.spatialValue([]string{"대표자"}, nil))
}

func TestSpatialValueStopLabel(t *testing.T) {
	// Collection halts at the next field's column.
	e := newImageExtractor(t,
		word("법인명", 0, 0, 60, 20),
		word("㈜한빛", 80, 0, 60, 20),
		word("개업연월일", 200, 0, 100, 20),
		word("2001", 320, 0, 40, 20),
	)

	value := e.spatialValue([]string{"법인명"}, []string{"개업", "연월일"})
	assert.Equal(t, "㈜한빛", value)
}

func TestSpatialValueSkipsResidualLabelTokens(t *testing.T) {
	e := newImageExtractor(t,
		word("대표자", 0, 0, 60, 20),
		word("(성명)", 70, 0, 50, 20),
		word(":", 125, 0, 5, 20),
		word("홍길동", 150, 0, 60, 20),
	)

	value := e.spatialValue([]string{"대표자"}, nil)
	assert.Equal(t, "홍길동", value)
}

func TestSpatialValueRunOnWordJoining(t *testing.T) {
	// Gap below the join threshold: tokens belong to one run-on word.
	// Gap above it: natural spacing is restored.
	e := newImageExtractor(t,
		word("상호", 0, 0, 40, 20),
		word("한빛", 60, 0, 40, 20),
		word("유통", 102, 0, 40, 20), // gap 2 < 0.7*20
		word("주식회사", 170, 0, 80, 20), // gap 28 > 0.7*20
	)

	value := e.spatialValue([]string{"상호"}, nil)
	assert.Equal(t, "한빛유통 주식회사", value)
}

func TestSpatialValueNoLabel(t *testing.T) {
	e := newImageExtractor(t,
		word("아무", 0, 0, 40, 20),
		word("내용", 60, 0, 40, 20),
	)
	assert.Empty(t, e.spatialValue([]string{"법인명"}, nil))
}

func TestSpatialValueDifferentBandExcluded(t *testing.T) {
	// A word on the next line must not be collected as the value.
	e := newImageExtractor(t,
		word("법인명", 0, 0, 60, 20),
		word("㈜한빛", 80, 0, 60, 20),
		word("다음줄", 80, 60, 60, 20),
	)

	value := e.spatialValue([]string{"법인명"}, nil)
	assert.Equal(t, "㈜한빛", value)
}
