package helpers

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{name: "USD", amount: 10300, currency: "USD", want: "$10300.00"},
		{name: "EUR", amount: 99.5, currency: "EUR", want: "€99.50"},
		{name: "GBP", amount: 0, currency: "GBP", want: "£0.00"},
		{name: "JPY", amount: 150000, currency: "JPY", want: "¥150000.00"},
		{name: "INR", amount: 2500, currency: "INR", want: "₹2500.00"},
		{name: "negative amount keeps sign after symbol", amount: -42.1, currency: "USD", want: "$-42.10"},
		{name: "unknown code falls back to the code", amount: 10, currency: "SEK", want: "SEK10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.amount, tt.currency)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
