package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a decimal amount as Brazilian currency: R$ 1.234,56.
// Negative amounts keep the sign before the symbol: -R$ 150,00.
func FormatBRL(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := "R$ " + b.String() + "," + fracPart
	if negative {
		return "-" + out
	}
	return out
}
