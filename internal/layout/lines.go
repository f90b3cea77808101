// Package layout regroups word-level OCR tokens into reading-order lines.
//
// The Vision API's raw token stream is not guaranteed to be in reading
// order. Words are clustered into visual lines by their vertical position
// and sorted left to right within each line.
package layout

import (
	"sort"
	"strings"

	"docscan/pkg/models"
)

// DefaultToleranceRatio is the fraction of the average word height used as
// the vertical tolerance window when deciding line membership. Empirically
// tuned for Korean business registration certificates and bankbooks.
const DefaultToleranceRatio = 0.4

// ReconstructLines groups words into top-to-bottom, left-to-right reading
// order lines. A word joins the current line while its vertical center stays
// within tolerance of the line's running mean center; otherwise a new line
// starts. toleranceRatio <= 0 falls back to DefaultToleranceRatio.
func ReconstructLines(words []models.RecognizedWord, toleranceRatio float64) []models.Line {
	if len(words) == 0 {
		return nil
	}
	if toleranceRatio <= 0 {
		toleranceRatio = DefaultToleranceRatio
	}

	var heightSum float64
	for _, w := range words {
		heightSum += w.Height()
	}
	tolerance := (heightSum / float64(len(words))) * toleranceRatio

	sorted := make([]models.RecognizedWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].YCenter() < sorted[j].YCenter()
	})

	var lines []models.Line
	var bucket []models.RecognizedWord
	var bucketSum float64

	flush := func() {
		if len(bucket) == 0 {
			return
		}
		line := make([]models.RecognizedWord, len(bucket))
		copy(line, bucket)
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].XMin < line[j].XMin
		})
		lines = append(lines, models.Line{Words: line})
		bucket = bucket[:0]
		bucketSum = 0
	}

	for _, w := range sorted {
		if len(bucket) > 0 {
			mean := bucketSum / float64(len(bucket))
			if w.YCenter()-mean > tolerance {
				flush()
			}
		}
		bucket = append(bucket, w)
		bucketSum += w.YCenter()
	}
	flush()

	return lines
}

// SplitRawLines splits a full-text annotation on newlines, trimming each
// line and dropping empty ones. Used for the PDF path and as the fallback
// when no word geometry is available.
func SplitRawLines(fullText string) []string {
	var lines []string
	for _, raw := range strings.Split(fullText, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
