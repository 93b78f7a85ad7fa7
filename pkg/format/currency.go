// Package format renders currency and percentage figures for display.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Printers are not safe for concurrent use.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 && math.Abs(amount) >= 0.005 {
		return "-$" + NumericCurrency(math.Abs(amount))
	}
	return "$" + NumericCurrency(math.Abs(amount))
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer().Sprintf("%.2f", amount)
}

// Percent renders a percentage with the given number of decimals (e.g., "3.50%").
func Percent(value float64, places int) string {
	return printer().Sprintf(fmt.Sprintf("%%.%df%%%%", places), value)
}
