package extract

import (
	"regexp"
	"strings"
)

var (
	reUppercaseRun = regexp.MustCompile(`[A-Z]{3,}`)
	reLongDigitRun = regexp.MustCompile(`\d{5,}`)
	reIssuerDomain = regexp.MustCompile(`\S*(?:hometax|go\.kr|nts)\S*`)
	reDigitRun3    = regexp.MustCompile(`\d{3,}`)
	reDigits       = regexp.MustCompile(`\d`)
)

// truncateAtKeyword cuts s at the first occurrence of any keyword. Used to
// stop a value bleeding into the next field's label on the same line.
func truncateAtKeyword(s string, keywords []string) string {
	cut := len(s)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if idx := strings.Index(s, kw); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(strings.TrimRight(s[:cut], " :.,(-"))
}

// stripScanNoise removes scanner-watermark uppercase runs and the issuing
// authority's domain string from a value.
func stripScanNoise(s string) string {
	s = reIssuerDomain.ReplaceAllString(s, "")
	s = reUppercaseRun.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// stripLongDigitRuns removes digit runs of five or more, which in sector and
// type columns are registration-number bleed, not category text.
func stripLongDigitRuns(s string) string {
	s = reLongDigitRun.ReplaceAllString(s, "")
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// dedupCommaList splits a comma list, drops duplicates preserving first
// occurrence order, and rejoins.
func dedupCommaList(s string) string {
	parts := strings.Split(s, ",")
	seen := make(map[string]bool, len(parts))
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// digitsOnly strips everything but digits.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// containsHangul reports whether s contains at least one Hangul syllable.
func containsHangul(s string) bool {
	for _, r := range s {
		if r >= '가' && r <= '힣' {
			return true
		}
	}
	return false
}

// countDigits returns the number of ASCII digits in s.
func countDigits(s string) int {
	return len(reDigits.FindAllString(s, -1))
}
