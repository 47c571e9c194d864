package sales

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// NextID returns one more than the largest integer id in sales, or "1" when
// no id parses as an integer. Ids are read leniently: leading whitespace and
// an optional sign are accepted and parsing stops at the first non-digit, so
// "12abc" counts as 12 while "abc" is skipped. Ids are compared as arbitrary
// precision integers, so the result never wraps around.
func NextID(sales []Sale) string {
	var (
		max   decimal.Decimal
		found bool
	)
	for _, sale := range sales {
		n, ok := parseIntPrefix(sale.ID)
		if !ok {
			continue
		}
		if !found || n.GreaterThan(max) {
			max = n
			found = true
		}
	}
	return max.Add(decimal.NewFromInt(1)).String()
}

func parseIntPrefix(s string) (decimal.Decimal, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return decimal.Decimal{}, false
	}
	n, err := decimal.NewFromString(s[:end])
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		n = n.Neg()
	}
	return n, true
}
