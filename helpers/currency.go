package helpers

import "fmt"

// currencySymbols maps ISO-like currency codes to their display symbols.
// Unknown codes fall back to the code itself.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"NZD": "NZ$",
	"CAD": "C$",
	"CHF": "CHF",
	"INR": "₹",
}

// FormatCurrency formats an amount with the symbol of the given currency,
// two decimal places, sign attached to the number.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
