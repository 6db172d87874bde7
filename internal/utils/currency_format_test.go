package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invoiced-app/invoice_backend/internal/utils"
)

func TestFormatMinorUnits(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{123456, "USD", "1234.56"},
		{123456, "usd", "1234.56"},
		{5, "EUR", "0.05"},
		{0, "USD", "0.00"},
		{-1999, "USD", "-19.99"},
		{123456, "JPY", "123456"},
		{123456, "KRW", "123456"},
		{123456, "BHD", "123.456"},
		{123456, "KWD", "123.456"},
		{123456, "XYZ", "1234.56"}, // unknown currencies default to 2
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, utils.FormatMinorUnits(tc.amount, tc.currency), "%d %s", tc.amount, tc.currency)
	}
}
