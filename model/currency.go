package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

const defaultCurrencyScale int32 = 2

// currencyScales lists the minor-unit digits for currencies that differ from the default of 2.
var currencyScales = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"VND": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

// CurrencyScale returns how many fractional digits amounts in the currency may carry.
func CurrencyScale(code string) int32 {
	if scale, ok := currencyScales[strings.ToUpper(code)]; ok {
		return scale
	}
	return defaultCurrencyScale
}

// FitsCurrency reports whether amount is representable in code without rounding.
func FitsCurrency(amount decimal.Decimal, code string) bool {
	return amount.Equal(amount.Truncate(CurrencyScale(code)))
}
