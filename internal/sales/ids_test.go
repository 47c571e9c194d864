package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	ids := func(values ...string) []Sale {
		sales := make([]Sale, 0, len(values))
		for _, v := range values {
			sales = append(sales, Sale{ID: v})
		}
		return sales
	}

	tests := []struct {
		name  string
		sales []Sale
		want  string
	}{
		{"empty", nil, "1"},
		{"sequential", ids("1", "2"), "3"},
		{"gap", ids("1", "10", "4"), "11"},
		{"non numeric ignored", ids("abc", "2"), "3"},
		{"only non numeric", ids("abc", "x1"), "1"},
		{"numeric prefix", ids("12abc"), "13"},
		{"decimal id", ids("2.9"), "3"},
		{"leading space and sign", ids(" +7"), "8"},
		{"negative only", ids("-5"), "-4"},
		{"leading zeros", ids("007"), "8"},
		{"int64 max", ids("9223372036854775807"), "9223372036854775808"},
		{"beyond int64", ids("99999999999999999999", "3"), "100000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.sales))
		})
	}
}
