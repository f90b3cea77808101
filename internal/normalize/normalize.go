// Package normalize canonicalizes OCR text lines before field extraction.
//
// OCR output from scanned Korean documents carries full-width punctuation
// variants and spurious spacing inside what is logically a single word
// (a three-syllable label recognized as three separately spaced glyphs).
// Both transforms here are idempotent.
package normalize

import (
	"regexp"
	"strings"
)

var fullWidthReplacer = strings.NewReplacer(
	"（", "(",
	"）", ")",
	"：", ":",
	"﹕", ":",
)

var (
	reSpaceBeforeOpen  = regexp.MustCompile(`\s+\(`)
	reSpaceAfterOpen   = regexp.MustCompile(`\(\s+`)
	reSpaceBeforeClose = regexp.MustCompile(`\s+\)`)
	reHangulGap        = regexp.MustCompile(`([가-힣])\s+([가-힣])`)
)

// Line canonicalizes one text line: full-width parentheses and colon
// variants become ASCII, and whitespace hugging parentheses is collapsed.
func Line(s string) string {
	s = fullWidthReplacer.Replace(s)
	s = reSpaceBeforeOpen.ReplaceAllString(s, "(")
	s = reSpaceAfterOpen.ReplaceAllString(s, "(")
	s = reSpaceBeforeClose.ReplaceAllString(s, ")")
	return strings.TrimSpace(s)
}

// CollapseHangulGaps removes whitespace runs sitting between two Hangul
// syllables. Applied on the image path only, where token-level OCR
// over-spaces characters within a single word. Lines with no Hangul are
// returned unchanged.
func CollapseHangulGaps(s string) string {
	// The regexp consumes the second syllable of each match, so adjacent
	// gaps ("가 나 다") need repeated passes until fixpoint.
	for {
		collapsed := reHangulGap.ReplaceAllString(s, "$1$2")
		if collapsed == s {
			return collapsed
		}
		s = collapsed
	}
}
