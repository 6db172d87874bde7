package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitExponents maps currency codes to their minor-unit exponent.
// Currencies not listed use the common exponent of 2.
var minorUnitExponents = map[string]int32{
	"BHD": 3,
	"JOD": 3,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"VND": 0,
}

// FormatMinorUnits renders an integer minor-unit amount as a major-unit
// decimal string for the given currency. Example: 123456, "USD" -> "1234.56".
func FormatMinorUnits(amount int64, currency string) string {
	exp := int32(2)
	if e, ok := minorUnitExponents[strings.ToUpper(currency)]; ok {
		exp = e
	}
	return decimal.New(amount, -exp).StringFixed(exp)
}
