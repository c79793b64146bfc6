package forex

import (
	"math"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalculateKnownPairs(t *testing.T) {
	calc := NewCalculator(DefaultRates)

	tests := []struct {
		name       string
		symbol     string
		entry      float64
		stopLoss   *float64
		takeProfit *float64
		size       float64
		currency   string
		wantSL     float64
		wantTP     float64
		wantPip    float64
	}{
		{
			name:       "USD quote pair into USD account",
			symbol:     "EURUSD",
			entry:      1.1000,
			stopLoss:   floatPtr(1.0950), // 50 pips
			takeProfit: floatPtr(1.1100), // 100 pips
			size:       100000,
			currency:   "USD",
			wantSL:     500,
			wantTP:     1000,
			wantPip:    10,
		},
		{
			name:     "JPY pair uses two-decimal pip location",
			symbol:   "USDJPY",
			entry:    150.00,
			stopLoss: floatPtr(149.00), // 100 pips
			size:     100000,
			currency: "USD",
			wantSL:   100 * (0.01 * 100000 * 1.0 / 150.0),
			wantPip:  0.01 * 100000 * 1.0 / 150.0,
		},
		{
			name:     "base currency account divides by entry price",
			symbol:   "EURUSD",
			entry:    1.1000,
			stopLoss: floatPtr(1.0950),
			size:     100000,
			currency: "EUR",
			wantSL:   50 * 10 / 1.1,
			wantPip:  10 / 1.1,
		},
		{
			name:     "cross pair converts through USD-relative rates",
			symbol:   "EURGBP",
			entry:    0.8600,
			stopLoss: floatPtr(0.8590), // 10 pips
			size:     10000,
			currency: "USD",
			wantSL:   10 * (0.0001 * 10000 * 1.0 / 0.73),
			wantPip:  0.0001 * 10000 * 1.0 / 0.73,
		},
		{
			name:     "lower case symbol still matches",
			symbol:   "eurusd",
			entry:    1.1000,
			stopLoss: floatPtr(1.0950),
			size:     100000,
			currency: "USD",
			wantSL:   500,
			wantPip:  10,
		},
		{
			name:     "nil distances leave values at zero",
			symbol:   "GBPUSD",
			entry:    1.2500,
			size:     100000,
			currency: "USD",
			wantSL:   0,
			wantTP:   0,
			wantPip:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.Calculate(tt.symbol, tt.entry, tt.stopLoss, tt.takeProfit, tt.size, tt.currency)

			if !almostEqual(result.StopLossValue, tt.wantSL) {
				t.Errorf("expected stop loss value %.4f, got %.4f", tt.wantSL, result.StopLossValue)
			}
			if !almostEqual(result.TakeProfitValue, tt.wantTP) {
				t.Errorf("expected take profit value %.4f, got %.4f", tt.wantTP, result.TakeProfitValue)
			}
			if !almostEqual(result.PipValue, tt.wantPip) {
				t.Errorf("expected pip value %.4f, got %.4f", tt.wantPip, result.PipValue)
			}
		})
	}
}

func TestCalculateLinearFallback(t *testing.T) {
	calc := NewCalculator(DefaultRates)

	tests := []struct {
		name       string
		symbol     string
		entry      float64
		stopLoss   *float64
		takeProfit *float64
		size       float64
		currency   string
		wantSL     float64
		wantTP     float64
	}{
		{
			name:       "unknown symbol degrades to linear price distance",
			symbol:     "AAPL",
			entry:      150,
			stopLoss:   floatPtr(145),
			takeProfit: floatPtr(160),
			size:       10,
			currency:   "USD",
			wantSL:     50,
			wantTP:     100,
		},
		{
			name:     "INR account always takes the linear path",
			symbol:   "EURUSD",
			entry:    1.1000,
			stopLoss: floatPtr(1.0950),
			size:     100000,
			currency: "INR",
			wantSL:   0.005 * 100000,
		},
		{
			name:     "crypto symbol",
			symbol:   "BTCUSD",
			entry:    65000,
			stopLoss: floatPtr(64000),
			size:     0.5,
			currency: "USD",
			wantSL:   500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.Calculate(tt.symbol, tt.entry, tt.stopLoss, tt.takeProfit, tt.size, tt.currency)

			if !almostEqual(result.StopLossValue, tt.wantSL) {
				t.Errorf("expected stop loss value %.4f, got %.4f", tt.wantSL, result.StopLossValue)
			}
			if !almostEqual(result.TakeProfitValue, tt.wantTP) {
				t.Errorf("expected take profit value %.4f, got %.4f", tt.wantTP, result.TakeProfitValue)
			}
			if result.PipValue != 0 {
				t.Errorf("linear path must report zero pip value, got %.4f", result.PipValue)
			}
		})
	}
}

func TestCalculateMissingCrossRateDegrades(t *testing.T) {
	// A rate table without the account currency cannot convert a cross pair;
	// the calculator falls back to the linear result instead of failing.
	calc := NewCalculator(StaticRates{"USD": 1.0})

	sl := floatPtr(0.8590)
	result := calc.Calculate("EURGBP", 0.8600, sl, nil, 10000, "CHF")

	if result.PipValue != 0 {
		t.Errorf("expected zero pip value on missing rate, got %.4f", result.PipValue)
	}
	if !almostEqual(result.StopLossValue, 0.001*10000) {
		t.Errorf("expected linear stop loss value %.4f, got %.4f", 0.001*10000, result.StopLossValue)
	}
}

func TestKnownPair(t *testing.T) {
	if !KnownPair("EURUSD") || !KnownPair("usdjpy") {
		t.Error("expected table pairs to be recognized case-insensitively")
	}
	if KnownPair("AAPL") || KnownPair("") {
		t.Error("expected non-forex symbols to be unrecognized")
	}
}
