package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{"small", "150", "Rp 150"},
		{"thousands", "150000", "Rp 150.000"},
		{"millions", "12345678", "Rp 12.345.678"},
		{"zero", "0", "Rp 0"},
		{"decimals rounded", "150000.75", "Rp 150.001"},
		{"negative", "-250000", "-Rp 250.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.expected, FormatRupiah(amount))
		})
	}
}

func TestFormatChartLabel(t *testing.T) {
	assert.Equal(t, "02 Jan", FormatChartLabel(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "17 Agu", FormatChartLabel(time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", FormatChartLabel(time.Time{}))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, 12, 31, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "31 Des 2025 09:05", FormatDateTime(ts))
	assert.Equal(t, "-", FormatDateTime(time.Time{}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a very l...", Truncate("a very long description", 11))
	assert.Equal(t, "ab", Truncate("ab", 2))
}
