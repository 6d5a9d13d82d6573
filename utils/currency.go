package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with comma thousand separators and two decimals,
// e.g. 81500 -> "81,500.00".
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + fracPart
	if neg {
		return "-" + out
	}
	return out
}

// FormatNaira prefixes FormatAmount with the currency code, e.g. "NGN 81,500.00". The code
// is used instead of the naira sign because the PDF core fonts cannot draw it.
func FormatNaira(amount decimal.Decimal) string {
	return "NGN " + FormatAmount(amount)
}
