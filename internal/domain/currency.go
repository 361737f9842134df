package domain

import (
	"fmt"
	"strings"
)

// minorUnitDigits maps ISO 4217 currency codes to their minor-unit precision.
// Amounts converted to a base currency are rounded to this many digits.
var minorUnitDigits = map[string]int32{
	"USD": 2, "EUR": 2, "GBP": 2, "JPY": 0,
	"CNY": 2, "AUD": 2, "CAD": 2, "CHF": 2,
	"SEK": 2, "NZD": 2, "KRW": 0, "SGD": 2,
	"NOK": 2, "MXN": 2, "INR": 2, "BRL": 2,
	"ZAR": 2, "RUB": 2, "TRY": 2, "HKD": 2,
	"AED": 2, "SAR": 2, "AZN": 2, "GEL": 2,
}

// DefaultMinorUnitDigits is used for currencies missing from the table.
const DefaultMinorUnitDigits int32 = 2

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCurrency validates a currency code against the supported set.
func ValidateCurrency(code string) error {
	if _, ok := minorUnitDigits[NormalizeCurrency(code)]; !ok {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 currency code", ErrUnknownCurrency, code)
	}

	return nil
}

// MinorUnitDigits returns the minor-unit precision for a currency code.
func MinorUnitDigits(code string) int32 {
	if digits, ok := minorUnitDigits[NormalizeCurrency(code)]; ok {
		return digits
	}

	return DefaultMinorUnitDigits
}
