package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docscan/pkg/models"
)

func TestAccountNumberGrouped(t *testing.T) {
	e := newTextExtractor(t,
		"국민은행",
		"계좌번호 123-456789-01-234",
	)

	got := e.accountNumber()
	assert.Equal(t, "12345678901234", got)
	assert.GreaterOrEqual(t, len(got), 10)
}

func TestAccountNumberGroupedTooShortIgnored(t *testing.T) {
	// Grouped shapes with fewer than 10 digits are dates or codes, not
	// account numbers.
	e := newTextExtractor(t,
		"2024-01-15 발급",
		"계좌 12345678901",
	)
	assert.Equal(t, "12345678901", e.accountNumber())
}

func TestAccountNumberBareRun(t *testing.T) {
	e := newTextExtractor(t, "계좌번호 3521234567890")
	assert.Equal(t, "3521234567890", e.accountNumber())
}

func TestAccountNumberMissing(t *testing.T) {
	e := newTextExtractor(t, "통장 사본")
	assert.Empty(t, e.accountNumber())
}

func TestBankNameCanonical(t *testing.T) {
	e := newTextExtractor(t, "신한은행 통장")
	assert.Equal(t, "신한은행", e.bankName())
}

func TestBankNameAliases(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"KB 스타뱅킹", "국민은행"},
		{"NH 올원뱅크", "농협은행"},
		{"IBK 기업", "기업은행"},
		{"카카오 뱅크", "카카오뱅크"},
		{"토스 계좌", "토스뱅크"},
		{"MG 새마을", "새마을금고"},
	}

	for _, tt := range tests {
		e := newTextExtractor(t, tt.text)
		assert.Equal(t, tt.want, e.bankName(), "text %q", tt.text)
	}
}

func TestBankNameCanonicalBeatsAlias(t *testing.T) {
	// 카카오뱅크 contains the 카카오 alias; the canonical table must win so
	// the result is deterministic.
	e := newTextExtractor(t, "카카오뱅크 입출금통장")
	assert.Equal(t, "카카오뱅크", e.bankName())
}

func TestAccountHolderKeyword(t *testing.T) {
	e := newTextExtractor(t,
		"국민은행",
		"예금주 : 홍길동",
		"123-456789-01-234",
	)
	assert.Equal(t, "홍길동", e.accountHolder())
}

func TestAccountHolderKeywordWithHonorific(t *testing.T) {
	e := newTextExtractor(t,
		"예금주 : 홍길동 님",
	)
	assert.Equal(t, "홍길동", e.accountHolder())
}

func TestAccountHolderAboveAccountLine(t *testing.T) {
	// No holder label anywhere: the nearest non-numeric Hangul line above
	// the account number is taken.
	e := newTextExtractor(t,
		"국민은행",
		"홍길동",
		"123-456789-01-234",
	)
	assert.Equal(t, "홍길동", e.accountHolder())
}

func TestAccountHolderTopLinesFallback(t *testing.T) {
	// No label and no account number: first Hangul line among the top 5
	// that is not itself a bank name.
	e := newTextExtractor(t,
		"카카오뱅크",
		"홍길동",
	)
	assert.Equal(t, "홍길동", e.accountHolder())
}

func TestHolderFromLineHeightFilter(t *testing.T) {
	// Small-print decoration on the holder line sits in a box less than
	// half the tallest word's height and is dropped before label stripping.
	e := newImageExtractor(t,
		word("예금주", 0, 0, 60, 20),
		word("홍길동", 80, 0, 60, 20),
		word("통장", 150, 4, 30, 8),
	)
	assert.Equal(t, "홍길동", e.accountHolder())
}

func TestFilterLineByWordHeight(t *testing.T) {
	line := models.Line{Words: []models.RecognizedWord{
		word("홍길동", 0, 0, 60, 20),
		word("님", 70, 4, 10, 8),
	}}
	assert.Equal(t, "홍길동", filterLineByWordHeight(line, 0.5))
}

func TestExtractBankbookEndToEnd(t *testing.T) {
	e := newTextExtractor(t,
		"KB 통장 사본",
		"예금주 : 홍길동",
		"계좌번호 123-456789-01-234",
	)

	fields := e.Extract(models.Bankbook)

	assert.Equal(t, "국민은행", fields.BankName)
	assert.Equal(t, "12345678901234", fields.AccountNumber)
	assert.Equal(t, "홍길동", fields.AccountHolder)
	assert.Empty(t, fields.BusinessNumber)
}
