package types

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// leadingNumberRe matches the numeric prefix of a value, the way a lenient
// float parser would ("2 pcs" -> "2", "12.5kg" -> "12.5").
var leadingNumberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount converts spreadsheet text to a decimal. It never fails:
// blank or non-numeric input yields zero. Thousands separators and a
// leading rupee sign are ignored.
func ParseAmount(s string) decimal.Decimal {
	m := numericPrefix(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsNumeric reports whether s has a numeric prefix ParseAmount can use.
func IsNumeric(s string) bool {
	return numericPrefix(s) != ""
}

// numericPrefix is more lenient than parseFloat: thousands separators and a
// leading rupee sign are dropped, so "1,200" reads as 1200.
func numericPrefix(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimSpace(strings.TrimPrefix(s, "₹"))
	return leadingNumberRe.FindString(s)
}
