// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var einPattern = regexp.MustCompile(`^\d{2}-?\d{7}$`)

// ValidateEIN checks the 9-digit employer identification number format,
// with or without the customary hyphen.
func ValidateEIN(ein string) bool {
	return einPattern.MatchString(strings.TrimSpace(ein))
}

// ValidateTaxYear bounds the year to something the calculators support.
func ValidateTaxYear(year int) bool {
	return year >= 1990 && year <= 2100
}
