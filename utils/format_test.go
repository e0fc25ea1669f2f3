package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$12,000", FormatCurrency(12000))
	assert.Equal(t, "$0", FormatCurrency(0))
	assert.Equal(t, "$1,234,568", FormatCurrency(1234567.89))
	assert.Equal(t, "$85,000", FormatCurrency(85000))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50.0%", FormatPercent(50, 100))
	assert.Equal(t, "33.3%", FormatPercent(1, 3))

	// A zero total must never produce NaN% or panic.
	assert.Equal(t, "0.0%", FormatPercent(0, 0))
	assert.Equal(t, "0.0%", FormatPercent(500, 0))
	assert.Equal(t, "0.0%", FormatPercent(500, -1))
}
