package extract

import (
	"regexp"
	"strings"

	"docscan/internal/normalize"
	"docscan/pkg/models"
)

var (
	reAccountGrouped = regexp.MustCompile(`\d{2,4}[-. ]\d{2,6}[-. ]\d{2,6}(?:[-. ]\d{1,4})?`)
	reAccountBare    = regexp.MustCompile(`\d{10,16}`)
)

// bankNames are the canonical Korean bank and financial-institution names,
// tried as whole-string containment before the alias table.
var bankNames = []string{
	"국민은행", "신한은행", "우리은행", "하나은행", "기업은행",
	"농협은행", "수협은행", "SC제일은행", "씨티은행", "산업은행",
	"카카오뱅크", "케이뱅크", "토스뱅크",
	"부산은행", "대구은행", "경남은행", "광주은행", "전북은행", "제주은행",
	"새마을금고", "신협", "우체국", "저축은행", "수출입은행",
}

// bankAliases maps frequent short forms and Latin abbreviations to canonical
// names. Order matters: longer, more specific aliases come first.
var bankAliases = []struct {
	alias, name string
}{
	{"카카오", "카카오뱅크"},
	{"토스", "토스뱅크"},
	{"새마을", "새마을금고"},
	{"IBK", "기업은행"},
	{"KEB", "하나은행"},
	{"KDB", "산업은행"},
	{"KB", "국민은행"},
	{"NH", "농협은행"},
	{"MG", "새마을금고"},
	{"SC", "SC제일은행"},
	{"국민", "국민은행"},
	{"신한", "신한은행"},
	{"우리", "우리은행"},
	{"하나", "하나은행"},
	{"기업", "기업은행"},
	{"농협", "농협은행"},
	{"수협", "수협은행"},
	{"씨티", "씨티은행"},
}

// bankName matches the document text against the known institution table:
// canonical names by containment first, then the alias list.
func (e *Extractor) bankName() string {
	joined := e.joinedText()
	if name := matchBankName(joined); name != "" {
		return name
	}
	return ""
}

// matchBankName resolves a text span to a canonical bank name, or "".
func matchBankName(s string) string {
	for _, name := range bankNames {
		if strings.Contains(s, name) {
			return name
		}
	}
	for _, a := range bankAliases {
		if strings.Contains(s, a.alias) {
			return a.name
		}
	}
	return ""
}

// accountNumber returns the digits of the first line matching a grouped
// account-number pattern with at least 10 digits, else the first bare
// 10-16 digit run.
func (e *Extractor) accountNumber() string {
	for _, line := range e.texts {
		if m := reAccountGrouped.FindString(line); m != "" && countDigits(m) >= 10 {
			return digitsOnly(m)
		}
	}
	for _, line := range e.texts {
		if m := reAccountBare.FindString(line); m != "" {
			return m
		}
	}
	return ""
}

// accountNumberLineIndex locates the line the account number was read from,
// used as the anchor for the holder-name fallback.
func (e *Extractor) accountNumberLineIndex() int {
	for i, line := range e.texts {
		if m := reAccountGrouped.FindString(line); m != "" && countDigits(m) >= 10 {
			return i
		}
	}
	for i, line := range e.texts {
		if reAccountBare.MatchString(line) {
			return i
		}
	}
	return -1
}

var holderLabels = []string{"예금주", "성명", "이름"}

// accountHolder extracts the 예금주 field: keyword anchor first, then the
// nearest non-numeric Hangul line above the account-number line, then the
// first Hangul line among the top 5 that is not itself a bank-name match.
func (e *Extractor) accountHolder() string {
	for _, kw := range holderLabels {
		for i, line := range e.texts {
			if strings.Contains(line, kw) {
				if v := e.holderFromLine(i); v != "" {
					return v
				}
			}
		}
	}

	if idx := e.accountNumberLineIndex(); idx > 0 {
		for j := idx - 1; j >= 0; j-- {
			line := e.texts[j]
			if containsHangul(line) && !reDigitRun3.MatchString(line) {
				if v := e.holderFromLine(j); v != "" {
					return v
				}
			}
		}
	}

	for i := 0; i < len(e.texts) && i < 5; i++ {
		line := e.texts[i]
		if containsHangul(line) && matchBankName(line) == "" {
			if v := e.holderFromLine(i); v != "" {
				return v
			}
		}
	}

	return ""
}

// holderFromLine refines one candidate line into a holder name. With
// geometry available, words shorter than half the line's tallest word are
// dropped first (removes small-print decorations such as a printed 님).
// Label tokens and honorific suffixes are stripped unconditionally.
func (e *Extractor) holderFromLine(idx int) string {
	text := e.texts[idx]
	if e.lines != nil && idx < len(e.lines) {
		if filtered := filterLineByWordHeight(e.lines[idx], 0.5); filtered != "" {
			text = normalize.CollapseHangulGaps(normalize.Line(filtered))
		}
	}

	for _, kw := range holderLabels {
		if i := strings.Index(text, kw); i >= 0 {
			text = text[i+len(kw):]
		}
	}
	text = strings.TrimSpace(trimLabelResidue(text))
	return stripHonorifics(text)
}

// filterLineByWordHeight rejoins a line keeping only words whose height is
// at least ratio of the line's max word height.
func filterLineByWordHeight(line models.Line, ratio float64) string {
	var maxHeight float64
	for _, w := range line.Words {
		if w.Height() > maxHeight {
			maxHeight = w.Height()
		}
	}
	if maxHeight == 0 {
		return line.Text()
	}

	var parts []string
	for _, w := range line.Words {
		if w.Height() >= ratio*maxHeight {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}

var honorifics = []string{"님", "귀하", "귀중", "씨"}

// stripHonorifics removes trailing honorific suffixes from a holder name.
func stripHonorifics(s string) string {
	for {
		trimmed := strings.TrimSpace(s)
		before := trimmed
		for _, h := range honorifics {
			trimmed = strings.TrimSuffix(trimmed, h)
		}
		if trimmed == before {
			return trimmed
		}
		s = trimmed
	}
}
