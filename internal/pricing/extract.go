package pricing

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	dollarAmountRe = regexp.MustCompile(`\$([0-9]+)`)
	digitRunRe     = regexp.MustCompile(`[0-9]+`)
)

// ExtractReferencePrice returns the digits of the first "$<digits>" token in
// text. Separators and decimals are not part of the token: "$1,200" yields 1.
func ExtractReferencePrice(text string) (decimal.Decimal, bool) {
	m := dollarAmountRe.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	return parseDigits(m[1])
}

// ExtractOffer returns the first run of digits in text, ignoring whatever
// currency symbols or punctuation surround it.
func ExtractOffer(text string) (decimal.Decimal, bool) {
	run := digitRunRe.FindString(text)
	if run == "" {
		return decimal.Zero, false
	}
	return parseDigits(run)
}

func parseDigits(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
