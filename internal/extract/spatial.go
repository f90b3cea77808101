package extract

import (
	"sort"
	"strings"

	"docscan/pkg/models"
)

// spatialValue locates one of the candidate labels among the recognized
// words and returns the value text sitting to its right on the same line
// band. stopLabels mark the start of an unrelated field's column further
// right; collection stops there. Returns "" when no label can be anchored.
func (e *Extractor) spatialValue(labels, stopLabels []string) string {
	if len(e.words) == 0 {
		return ""
	}
	for _, label := range labels {
		if anchor, ok := e.findLabelAnchor(label); ok {
			if value := e.collectValue(anchor, stopLabels); value != "" {
				return value
			}
		}
	}
	return ""
}

// findLabelAnchor locates the word whose right edge marks the boundary
// between a field label and its value. Three tiers, first hit wins:
// an exact token containing the full label; a right-extension chain built
// from the label's first character; a left-extension chain built from the
// label's last character (for labels whose trailing character was
// recognized as an isolated token).
func (e *Extractor) findLabelAnchor(label string) (models.RecognizedWord, bool) {
	runes := []rune(label)
	if len(runes) == 0 {
		return models.RecognizedWord{}, false
	}

	// Tier 1: single token containing the full label.
	for _, w := range e.words {
		if strings.Contains(w.Text, label) {
			return w, true
		}
	}

	maxSteps := len(runes) + 2

	// Tier 2: absorb neighbors to the right from the first character.
	first := string(runes[0])
	for _, w := range e.words {
		if !strings.Contains(w.Text, first) {
			continue
		}
		chain := w.Text
		cur := w
		for step := 0; step < maxSteps; step++ {
			next, ok := e.nearestNeighbor(cur, false)
			if !ok {
				break
			}
			chain += next.Text
			cur = next
			if strings.Contains(chain, label) {
				return cur, true
			}
		}
	}

	// Tier 3: absorb neighbors to the left from the last character. The
	// word holding the label's trailing character stays the anchor since
	// its right edge still bounds the value. First successful absorption
	// chain wins; no further disambiguation is applied.
	last := string(runes[len(runes)-1])
	for _, w := range e.words {
		if !strings.Contains(w.Text, last) {
			continue
		}
		chain := w.Text
		cur := w
		for step := 0; step < maxSteps; step++ {
			prev, ok := e.nearestNeighbor(cur, true)
			if !ok {
				break
			}
			chain = prev.Text + chain
			cur = prev
			if strings.Contains(chain, label) {
				return w, true
			}
		}
	}

	return models.RecognizedWord{}, false
}

// nearestNeighbor finds the closest word to the right (or left) of cur
// within the anchor line band and absorption gap limit.
func (e *Extractor) nearestNeighbor(cur models.RecognizedWord, left bool) (models.RecognizedWord, bool) {
	band := e.th.AnchorBandRatio * cur.Height()
	maxGap := e.th.AbsorbGapRatio * cur.Height()

	var best models.RecognizedWord
	found := false
	for _, w := range e.words {
		if w == cur {
			continue
		}
		dy := w.YCenter() - cur.YCenter()
		if dy < 0 {
			dy = -dy
		}
		if dy > band {
			continue
		}

		var gap float64
		if left {
			gap = cur.XMin - w.XMax
		} else {
			gap = w.XMin - cur.XMax
		}
		if gap < 0 || gap > maxGap {
			continue
		}

		if !found {
			best, found = w, true
			continue
		}
		if left {
			if w.XMax > best.XMax {
				best = w
			}
		} else {
			if w.XMin < best.XMin {
				best = w
			}
		}
	}
	return best, found
}

// collectValue gathers the words on the anchor's line band whose left edge
// lies at or beyond the anchor's right edge, joining them left to right.
// A space is inserted only when the gap between consecutive words exceeds
// the join threshold; smaller gaps are OCR token splits within one word.
func (e *Extractor) collectValue(anchor models.RecognizedWord, stopLabels []string) string {
	band := e.th.LineBandRatio * anchor.Height()

	var collected []models.RecognizedWord
	for _, w := range e.words {
		if w == anchor {
			continue
		}
		dy := w.YCenter() - anchor.YCenter()
		if dy < 0 {
			dy = -dy
		}
		if dy > band {
			continue
		}
		if w.XMin < anchor.XMax {
			continue
		}
		collected = append(collected, w)
	}
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].XMin < collected[j].XMin
	})

	// Skip leading residual label decorations such as "(성명)" or ":".
	for len(collected) > 0 && isResidualLabelToken(collected[0].Text) {
		collected = collected[1:]
	}

	var b strings.Builder
	var prev models.RecognizedWord
	for i, w := range collected {
		if matchesAny(w.Text, stopLabels) {
			break
		}
		if i > 0 {
			if w.XMin-prev.XMax > e.th.WordJoinGapRatio*prev.Height() {
				b.WriteByte(' ')
			}
		}
		b.WriteString(w.Text)
		prev = w
	}

	return strings.TrimSpace(trimLabelResidue(b.String()))
}

// isResidualLabelToken reports whether a token is leftover label punctuation
// rather than value text: a bare colon or a fully parenthesized annotation.
func isResidualLabelToken(s string) bool {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ":")
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	return strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
}

// trimLabelResidue strips leading punctuation left over from the label
// column: colons, closing parens, dots and dashes.
func trimLabelResidue(s string) string {
	return strings.TrimLeft(s, " :.)|-")
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
