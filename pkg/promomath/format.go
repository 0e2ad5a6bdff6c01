package promomath

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.AmericanEnglish)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "$",
}

// FormatCurrency renders an amount for display with grouped thousands and no
// decimal places, e.g. 25000 → "$25,000". Unknown currency codes fall back to
// prefixing the code itself.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	rounded, _ := amount.Round(0).Float64()
	if rounded < 0 {
		return displayPrinter.Sprintf("-%s%d", symbol, int64(-rounded))
	}
	return displayPrinter.Sprintf("%s%d", symbol, int64(rounded))
}

// FormatPercent renders a fraction as a whole-number percentage string with the
// given decimal places, e.g. (0.153, 1) → "15.3%".
func FormatPercent(fraction float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, fraction*100)
}

// FormatNumber renders an integer with grouped thousands, e.g. 1000000 → "1,000,000".
func FormatNumber(n int64) string {
	return displayPrinter.Sprintf("%d", n)
}
