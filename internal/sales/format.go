package sales

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders value the way the list view shows it, e.g. "R$ 1.234,56".
func FormatBRL(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	neg := d.IsNegative()
	digits := d.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
