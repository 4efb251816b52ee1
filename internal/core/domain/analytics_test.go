package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRate(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  string
	}{
		{"zero denominator", 5, 0, "0.0"},
		{"quarter", 1, 4, "25.0"},
		{"two thirds rounds", 2, 3, "66.7"},
		{"full", 10, 10, "100.0"},
		{"zero part", 0, 8, "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRate(tt.part, tt.total))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "48.00", FormatMoney(48))
	assert.Equal(t, "48.00", FormatMoney(600*8.0/100))
	assert.Equal(t, "0.00", FormatMoney(0))
	assert.Equal(t, "1234.57", FormatMoney(1234.567))
}
