package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := map[float64]string{
		0:          "R$ 0,00",
		100:        "R$ 100,00",
		50.5:       "R$ 50,50",
		1234.56:    "R$ 1.234,56",
		1000000:    "R$ 1.000.000,00",
		999.999:    "R$ 1.000,00",
		-1:         "-R$ 1,00",
		-0.001:     "R$ 0,00",
		0.125:      "R$ 0,13",
		123456.789: "R$ 123.456,79",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatBRL(in), "FormatBRL(%v)", in)
	}
}
