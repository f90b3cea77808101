package extract

import (
	"regexp"
	"strings"
)

// maxFlexibleLineLen bounds the lines handed to the whitespace-tolerant
// regex pass; the per-character \s* pattern gets expensive on pathologically
// long lines.
const maxFlexibleLineLen = 300

// keywordValue returns the text following the first occurrence of any
// candidate keyword in the normalized lines. The exact substring pass runs
// first; only when it yields nothing does the flexible pass build
// whitespace-tolerant regexes (handles OCR inserting spurious spaces inside
// a label). When the remainder after a keyword is empty, the entirety of
// the next line is used instead.
func (e *Extractor) keywordValue(keywords []string) string {
	if v := e.exactKeywordValue(keywords); v != "" {
		return v
	}
	return e.flexibleKeywordValue(keywords)
}

func (e *Extractor) exactKeywordValue(keywords []string) string {
	for _, kw := range keywords {
		for i, line := range e.texts {
			idx := strings.Index(line, kw)
			if idx < 0 {
				continue
			}
			rest := trimLabelResidue(line[idx+len(kw):])
			rest = strings.TrimSpace(rest)
			if rest != "" {
				return rest
			}
			if i+1 < len(e.texts) {
				return strings.TrimSpace(e.texts[i+1])
			}
		}
	}
	return ""
}

func (e *Extractor) flexibleKeywordValue(keywords []string) string {
	for _, kw := range keywords {
		runes := []rune(kw)
		if len(runes) < 2 {
			continue
		}
		re := flexibleKeywordPattern(runes)
		first, last := string(runes[0]), string(runes[len(runes)-1])

		for i, line := range e.texts {
			// Cheap pre-filter before touching the regex.
			if len(line) > maxFlexibleLineLen {
				continue
			}
			if !strings.Contains(line, first) || !strings.Contains(line, last) {
				continue
			}
			loc := re.FindStringIndex(line)
			if loc == nil {
				continue
			}
			rest := strings.TrimSpace(trimLabelResidue(line[loc[1]:]))
			if rest != "" {
				return rest
			}
			if i+1 < len(e.texts) {
				return strings.TrimSpace(e.texts[i+1])
			}
		}
	}
	return ""
}

// flexibleKeywordPattern builds a regex matching the keyword with arbitrary
// whitespace between each character.
func flexibleKeywordPattern(runes []rune) *regexp.Regexp {
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = regexp.QuoteMeta(string(r))
	}
	return regexp.MustCompile(strings.Join(parts, `\s*`))
}

// lineIndexContaining returns the index of the first normalized line
// containing s, or -1.
func (e *Extractor) lineIndexContaining(s string) int {
	if s == "" {
		return -1
	}
	for i, line := range e.texts {
		if strings.Contains(line, s) {
			return i
		}
	}
	return -1
}
