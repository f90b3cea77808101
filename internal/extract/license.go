package extract

import (
	"regexp"
	"strings"
)

var (
	reBizNumber  = regexp.MustCompile(`\d{3}\s*-\s*\d{2}\s*-\s*\d{5}`)
	reBizDigits  = regexp.MustCompile(`\d{10,12}`)
	reCorpNumber = regexp.MustCompile(`\d{6}\s*-\s*\d{7}`)
	reCorpDigits = regexp.MustCompile(`\d{13}`)
	reEmail      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	rePhone      = regexp.MustCompile(`(?i)(?:전화|TEL)\s*[:.]?\s*(0\d{1,2}[\s-]?\d{3,4}[\s-]?\d{4})`)
	reFax        = regexp.MustCompile(`(?i)(?:팩스|FAX)\s*[:.]?\s*(0\d{1,2}[\s-]?\d{3,4}[\s-]?\d{4})`)

	reRepAfterLabel = regexp.MustCompile(`대표자[\s:.)]*(.+)`)
	reRepContinued  = regexp.MustCompile(`^자[\s:.)]*(.+)`)
	reRepFragment   = regexp.MustCompile(`(?:표자|자)\s*:\s*(.+)`)
	reRepTrailing   = regexp.MustCompile(`대표자?\s*[:.]?\s*([가-힣]{2,4})$`)
)

// fieldLabelKeywords are labels of other fields; a value is truncated at the
// first occurrence of any of these, and continuation lines starting with one
// are not absorbed.
var fieldLabelKeywords = []string{
	"사업자등록번호", "법인등록번호", "등록번호",
	"법인명", "상호", "단체명",
	"대표자", "성명", "생년월일",
	"개업연월일", "개업", "연월일",
	"사업장", "본점", "소재지", "주소",
	"업태", "종목", "사업의종류",
	"교부사유", "발급사유", "국세청", "세무서",
	"전화", "팩스",
}

// businessNumber extracts the 사업자등록번호. Located via a line containing
// "등록번호" (but not the corporate variant), falling back to a whole-text
// scan for the NNN-NN-NNNNN shape. Hyphens are stripped only when the
// result is exactly 10 digits.
func (e *Extractor) businessNumber() string {
	for _, line := range e.texts {
		if !strings.Contains(line, "등록번호") || strings.Contains(line, "법인등록번호") {
			continue
		}
		if m := reBizNumber.FindString(line); m != "" {
			return normalizeRegistrationNumber(m, 10)
		}
		if m := reBizDigits.FindString(line); m != "" {
			return normalizeRegistrationNumber(m, 10)
		}
	}
	if m := reBizNumber.FindString(e.joinedText()); m != "" {
		return normalizeRegistrationNumber(m, 10)
	}
	return ""
}

// corporateNumber extracts the 법인등록번호 (NNNNNN-NNNNNNN, 13 digits).
func (e *Extractor) corporateNumber() string {
	for _, line := range e.texts {
		if !strings.Contains(line, "법인등록번호") {
			continue
		}
		if m := reCorpNumber.FindString(line); m != "" {
			return normalizeRegistrationNumber(m, 13)
		}
		if m := reCorpDigits.FindString(line); m != "" {
			return m
		}
	}
	if m := reCorpNumber.FindString(e.joinedText()); m != "" {
		return normalizeRegistrationNumber(m, 13)
	}
	return ""
}

// normalizeRegistrationNumber strips separators only when the digit count
// matches the expected length; otherwise the matched form is kept as-is.
func normalizeRegistrationNumber(m string, want int) string {
	digits := digitsOnly(m)
	if len(digits) == want {
		return digits
	}
	return strings.TrimSpace(m)
}

// entityName extracts the 법인명/상호 field: spatial anchoring first, then
// keyword fallback, then cleanup and wrap-line recovery for names broken
// onto a second line.
func (e *Extractor) entityName() string {
	v := e.spatialValue([]string{"법인명", "상호"}, []string{"개업", "연월일"})
	if v == "" {
		v = e.keywordValue([]string{"법인명(단체명)", "법인명", "상호"})
	}
	if v == "" {
		return ""
	}

	v = truncateAtKeyword(v, fieldLabelKeywords)
	v = stripScanNoise(v)
	if v == "" {
		return ""
	}
	return e.appendWrappedLine(v)
}

// appendWrappedLine recovers names that wrapped onto a second line: the
// following line is appended when it is short, carries no digit run of 3+,
// and does not look like another field's label.
func (e *Extractor) appendWrappedLine(v string) string {
	idx := e.lineIndexContaining(v)
	if idx < 0 {
		if tok, _, found := strings.Cut(v, " "); found {
			idx = e.lineIndexContaining(tok)
		}
	}
	if idx < 0 || idx+1 >= len(e.texts) {
		return v
	}

	next := e.texts[idx+1]
	if len([]rune(next)) > 10 {
		return v
	}
	if reDigitRun3.MatchString(next) {
		return v
	}
	if matchesAny(next, fieldLabelKeywords) {
		return v
	}
	return v + " " + next
}

// representative extracts the 대표자 field through a chain of fallbacks:
// spatial anchoring, keyword lookup, line-level label regexes, a label
// wrapped across two lines ("대표" at end of line, "자..." continuing), and
// isolated label fragments preceded by a 대표-bearing token.
func (e *Extractor) representative() string {
	v := e.spatialValue([]string{"대표자"}, []string{"생년월일", "개업"})
	if v == "" {
		v = e.keywordValue([]string{"대표자(성명)", "대표자"})
	}
	if v == "" {
		v = e.representativeFromLines()
	}
	if v == "" {
		return ""
	}
	v = truncateAtKeyword(v, fieldLabelKeywords)
	return stripScanNoise(v)
}

func (e *Extractor) representativeFromLines() string {
	// Label and value on one line.
	for _, line := range e.texts {
		if m := reRepAfterLabel.FindStringSubmatch(line); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}

	// "대표" ending a line, "자..." continuing on the next.
	for i, line := range e.texts {
		if !strings.HasSuffix(line, "대표") || i+1 >= len(e.texts) {
			continue
		}
		if m := reRepContinued.FindStringSubmatch(e.texts[i+1]); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}

	// Isolated fragments like "표자:" or "자:", valid only when a token
	// containing 대표/법대/표 appeared within the previous 3 lines.
	for i, line := range e.texts {
		m := reRepFragment.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for j := i - 1; j >= 0 && j >= i-3; j-- {
			prev := e.texts[j]
			if strings.Contains(prev, "대표") || strings.Contains(prev, "법대") || strings.Contains(prev, "표") {
				if v := strings.TrimSpace(m[1]); v != "" {
					return v
				}
				break
			}
		}
	}

	// Trailing "대표(자) 이름" anchored at line end.
	for _, line := range e.texts {
		if m := reRepTrailing.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	return ""
}

// address extracts an address field anchored on the co-occurrence of a
// location prefix (사업장 or 본점) and 소재지/주소 on one line. Up to two
// subsequent lines are absorbed as continuations.
func (e *Extractor) address(prefixes []string) string {
	for i, line := range e.texts {
		if !matchesAny(line, prefixes) {
			continue
		}
		idx := strings.Index(line, "소재지")
		kwLen := len("소재지")
		if idx < 0 {
			idx = strings.Index(line, "주소")
			kwLen = len("주소")
		}
		if idx < 0 {
			continue
		}

		value := strings.TrimSpace(trimLabelResidue(line[idx+kwLen:]))
		for j := i + 1; j < len(e.texts) && j <= i+2; j++ {
			next := e.texts[j]
			if len([]rune(next)) <= 2 || matchesAny(next, fieldLabelKeywords) {
				break
			}
			if value != "" {
				value += " "
			}
			value += next
		}
		return value
	}
	return ""
}

var reColumnGap = regexp.MustCompile(`\s{2,}`)

// sectorAndType extracts 업태 (sector) and 종목 (type). When one line holds
// both labels it is split into the span between them and the remainder;
// otherwise independent keyword lookups apply. Up to two continuation lines
// are absorbed and split on runs of 2+ spaces into sector/type pairs.
func (e *Extractor) sectorAndType() (string, string) {
	var sector, typ string
	lineIdx := -1

	for i, line := range e.texts {
		ti := strings.Index(line, "업태")
		ji := strings.Index(line, "종목")
		if ti < 0 || ji < 0 || ji < ti {
			continue
		}
		sector = strings.TrimSpace(trimLabelResidue(line[ti+len("업태") : ji]))
		typ = strings.TrimSpace(trimLabelResidue(line[ji+len("종목"):]))
		lineIdx = i
		break
	}

	if lineIdx < 0 {
		sector = e.keywordValue([]string{"업태"})
		typ = e.keywordValue([]string{"종목"})
		for i, line := range e.texts {
			if strings.Contains(line, "업태") || strings.Contains(line, "종목") {
				lineIdx = i
				break
			}
		}
	}

	if lineIdx >= 0 {
		for j := lineIdx + 1; j < len(e.texts) && j <= lineIdx+2; j++ {
			next := e.texts[j]
			if len([]rune(next)) <= 2 || matchesAny(next, fieldLabelKeywords) {
				break
			}
			parts := reColumnGap.Split(next, 2)
			if len(parts) == 2 {
				sector = appendListItem(sector, parts[0])
				typ = appendListItem(typ, parts[1])
			} else {
				typ = appendListItem(typ, parts[0])
			}
		}
	}

	return cleanCategory(sector), cleanCategory(typ)
}

func appendListItem(list, item string) string {
	item = strings.TrimSpace(item)
	if item == "" {
		return list
	}
	if list == "" {
		return item
	}
	return list + ", " + item
}

// cleanCategory denoises a sector/type value: long digit runs, watermark
// uppercase runs and issuer domains are stripped, then the comma list is
// deduplicated preserving first occurrence.
func cleanCategory(s string) string {
	s = stripLongDigitRuns(s)
	s = stripScanNoise(s)
	return dedupCommaList(s)
}

// email returns the first RFC-shaped address in the normalized text, with
// the raw full text as fallback.
func (e *Extractor) email() string {
	if m := reEmail.FindString(e.joinedText()); m != "" {
		return m
	}
	return reEmail.FindString(e.rawText)
}

// labeledNumber matches an explicitly labeled phone or fax number and
// normalizes it to digits.
func (e *Extractor) labeledNumber(re *regexp.Regexp) string {
	if m := re.FindStringSubmatch(e.joinedText()); m != nil {
		return digitsOnly(m[1])
	}
	return ""
}

func (e *Extractor) joinedText() string {
	return strings.Join(e.texts, "\n")
}
