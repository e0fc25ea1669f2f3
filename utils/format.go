package utils

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a dollar amount with thousands separators and no
// cents, e.g. 12000 -> "$12,000".
func FormatCurrency(amount float64) string {
	return usPrinter.Sprintf("$%d", int64(math.Round(amount)))
}

// FormatPercent renders a ratio as a one-decimal percentage. A zero or
// negative total always yields "0.0%", never NaN.
func FormatPercent(part, total float64) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", part/total*100)
}
