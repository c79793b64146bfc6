// Package forex converts price-distance risk on currency pairs into
// account-currency amounts using static pip-location and exchange-rate tables.
package forex

import (
	"math"
	"strings"
)

// Result holds the monetary value of the stop-loss and take-profit distances
// plus the per-pip value, all in the account currency.
type Result struct {
	StopLossValue   float64 `json:"stop_loss_value"`
	TakeProfitValue float64 `json:"take_profit_value"`
	PipValue        float64 `json:"pip_value"`
}

// Pair describes a known forex pair. PipLocation is the decimal position of
// one pip: 4 for most pairs, 2 for JPY-quoted pairs.
type Pair struct {
	Base        string
	Quote       string
	PipLocation int
}

// pairs is the fixed table of known forex pairs, matched case-insensitively.
var pairs = map[string]Pair{
	"EURUSD": {Base: "EUR", Quote: "USD", PipLocation: 4},
	"GBPUSD": {Base: "GBP", Quote: "USD", PipLocation: 4},
	"AUDUSD": {Base: "AUD", Quote: "USD", PipLocation: 4},
	"NZDUSD": {Base: "NZD", Quote: "USD", PipLocation: 4},
	"USDCAD": {Base: "USD", Quote: "CAD", PipLocation: 4},
	"USDCHF": {Base: "USD", Quote: "CHF", PipLocation: 4},
	"USDJPY": {Base: "USD", Quote: "JPY", PipLocation: 2},
	"EURJPY": {Base: "EUR", Quote: "JPY", PipLocation: 2},
	"GBPJPY": {Base: "GBP", Quote: "JPY", PipLocation: 2},
	"AUDJPY": {Base: "AUD", Quote: "JPY", PipLocation: 2},
	"EURGBP": {Base: "EUR", Quote: "GBP", PipLocation: 4},
	"EURAUD": {Base: "EUR", Quote: "AUD", PipLocation: 4},
	"GBPAUD": {Base: "GBP", Quote: "AUD", PipLocation: 4},
}

// RateProvider supplies USD-relative exchange rates for currency conversion.
// The static implementation below backs the default calculator; a live source
// can be substituted without touching the conversion algorithm.
type RateProvider interface {
	Rate(currency string) (float64, bool)
}

// StaticRates is a fixed USD-relative rate table
type StaticRates map[string]float64

// Rate implements RateProvider
func (s StaticRates) Rate(currency string) (float64, bool) {
	r, ok := s[currency]
	return r, ok
}

// DefaultRates approximates spot rates for risk-sizing display. The values
// drift from reality over time; they are not suitable for settlement.
var DefaultRates = StaticRates{
	"USD": 1.0,
	"EUR": 0.85,
	"GBP": 0.73,
	"AUD": 1.52,
	"NZD": 1.64,
	"CAD": 1.35,
	"CHF": 0.88,
	"JPY": 150.0,
}

// Calculator converts price distances into account-currency risk amounts.
// It is stateless and safe for concurrent use.
type Calculator struct {
	rates RateProvider
}

// NewCalculator creates a calculator over the given rate source
func NewCalculator(rates RateProvider) *Calculator {
	return &Calculator{rates: rates}
}

// Calculate returns the account-currency value of the stop-loss and
// take-profit distances for a position.
//
// For INR accounts and symbols outside the known-pairs table (equities,
// crypto, anything unrecognized) it degrades to a linear price-distance
// calculation with a zero pip value. That is an accepted approximation, not
// an error: the function always returns a result.
func (c *Calculator) Calculate(symbol string, entryPrice float64, stopLoss, takeProfit *float64, positionSize float64, accountCurrency string) Result {
	pair, known := pairs[strings.ToUpper(symbol)]
	if accountCurrency == "INR" || !known {
		return linearResult(entryPrice, stopLoss, takeProfit, positionSize)
	}

	pipSize := math.Pow(10, -float64(pair.PipLocation))
	pipValue := pipSize * positionSize

	// Normalize the pip value into the account currency
	switch {
	case pair.Quote == accountCurrency:
		// Already in account currency
	case pair.Base == accountCurrency:
		pipValue = pipValue / entryPrice
	default:
		accountRate, okA := c.rates.Rate(accountCurrency)
		quoteRate, okQ := c.rates.Rate(pair.Quote)
		if !okA || !okQ || quoteRate == 0 {
			// Unsupported currency combination: degrade to the linear path
			// rather than failing.
			return linearResult(entryPrice, stopLoss, takeProfit, positionSize)
		}
		pipValue = pipValue * accountRate / quoteRate
	}

	result := Result{PipValue: pipValue}
	if stopLoss != nil {
		result.StopLossValue = math.Abs(entryPrice-*stopLoss) / pipSize * pipValue
	}
	if takeProfit != nil {
		result.TakeProfitValue = math.Abs(*takeProfit-entryPrice) / pipSize * pipValue
	}
	return result
}

// KnownPair reports whether the symbol is in the pairs table
func KnownPair(symbol string) bool {
	_, ok := pairs[strings.ToUpper(symbol)]
	return ok
}

func linearResult(entryPrice float64, stopLoss, takeProfit *float64, positionSize float64) Result {
	var r Result
	if stopLoss != nil {
		r.StopLossValue = math.Abs(entryPrice-*stopLoss) * positionSize
	}
	if takeProfit != nil {
		r.TakeProfitValue = math.Abs(*takeProfit-entryPrice) * positionSize
	}
	return r
}
