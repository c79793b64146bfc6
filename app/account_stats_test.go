package app

import (
	"math/rand"
	"testing"

	models "trade-journal/database/models_pkg"
)

func floatPtr(f float64) *float64 { return &f }

func tradeWithPnL(pnl *float64) models.Trade {
	return models.Trade{Symbol: "EURUSD", Side: models.SideLong, EntryPrice: 1.1, Size: 1, PnL: pnl}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name              string
		startingBalance   float64
		manualAdjustments float64
		pnls              []*float64
		wantBalance       float64
		wantPnL           float64
		wantTrades        int
		wantWinRate       int
	}{
		{
			name:            "mixed ledger with open trade",
			startingBalance: 10000,
			pnls:            []*float64{floatPtr(500), floatPtr(-200), nil},
			wantBalance:     10300,
			wantPnL:         300,
			wantTrades:      3,
			wantWinRate:     50, // 1 win of 2 completed; the open trade is excluded
		},
		{
			name:            "empty ledger",
			startingBalance: 5000,
			wantBalance:     5000,
			wantPnL:         0,
			wantTrades:      0,
			wantWinRate:     0,
		},
		{
			name:              "deposit shifts balance but not performance",
			startingBalance:   10000,
			manualAdjustments: 2000,
			pnls:              []*float64{floatPtr(100)},
			wantBalance:       12100,
			wantPnL:           100,
			wantTrades:        1,
			wantWinRate:       100,
		},
		{
			name:              "withdrawal is a negative adjustment",
			startingBalance:   10000,
			manualAdjustments: -1500,
			pnls:              []*float64{floatPtr(-100), floatPtr(300)},
			wantBalance:       8700,
			wantPnL:           200,
			wantTrades:        2,
			wantWinRate:       50,
		},
		{
			name:            "breakeven counts against the win rate",
			startingBalance: 10000,
			pnls:            []*float64{floatPtr(100), floatPtr(0), floatPtr(0)},
			wantBalance:     10100,
			wantPnL:         100,
			wantTrades:      3,
			wantWinRate:     33, // 1/3 completed, not 1/1 decided
		},
		{
			name:            "only open trades leaves win rate at zero",
			startingBalance: 10000,
			pnls:            []*float64{nil, nil},
			wantBalance:     10000,
			wantPnL:         0,
			wantTrades:      2,
			wantWinRate:     0,
		},
		{
			name:            "win rate rounds to nearest integer",
			startingBalance: 10000,
			pnls:            []*float64{floatPtr(50), floatPtr(50), floatPtr(-10)},
			wantBalance:     10090,
			wantPnL:         90,
			wantTrades:      3,
			wantWinRate:     67, // 2/3 = 66.67 rounds up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := make([]models.Trade, 0, len(tt.pnls))
			for _, pnl := range tt.pnls {
				ledger = append(ledger, tradeWithPnL(pnl))
			}

			stats := computeStats(tt.startingBalance, tt.manualAdjustments, ledger)

			if stats.CurrentBalance != tt.wantBalance {
				t.Errorf("expected balance %.2f, got %.2f", tt.wantBalance, stats.CurrentBalance)
			}
			if stats.TotalPnL != tt.wantPnL {
				t.Errorf("expected pnl %.2f, got %.2f", tt.wantPnL, stats.TotalPnL)
			}
			if stats.TotalTrades != tt.wantTrades {
				t.Errorf("expected %d trades, got %d", tt.wantTrades, stats.TotalTrades)
			}
			if stats.WinRate != tt.wantWinRate {
				t.Errorf("expected win rate %d, got %d", tt.wantWinRate, stats.WinRate)
			}
		})
	}
}

func TestComputeStatsBalanceIdentity(t *testing.T) {
	// The current balance always equals starting + adjustments + total pnl,
	// whatever the ledger contains.
	ledger := []models.Trade{
		tradeWithPnL(floatPtr(123.45)),
		tradeWithPnL(nil),
		tradeWithPnL(floatPtr(-67.89)),
		tradeWithPnL(floatPtr(0)),
	}

	stats := computeStats(10000, -250, ledger)
	want := 10000 + -250 + stats.TotalPnL
	if stats.CurrentBalance != want {
		t.Errorf("balance identity broken: expected %.2f, got %.2f", want, stats.CurrentBalance)
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	ledger := []models.Trade{
		tradeWithPnL(floatPtr(500)),
		tradeWithPnL(floatPtr(-200)),
		tradeWithPnL(nil),
	}

	first := computeStats(10000, 0, ledger)
	second := computeStats(10000, 0, ledger)
	if first != second {
		t.Errorf("recompute over the same ledger diverged: %+v vs %+v", first, second)
	}
}

func TestComputeStatsOrderIndependent(t *testing.T) {
	ledger := []models.Trade{
		tradeWithPnL(floatPtr(500)),
		tradeWithPnL(floatPtr(-200)),
		tradeWithPnL(floatPtr(0)),
		tradeWithPnL(nil),
		tradeWithPnL(floatPtr(75)),
	}

	want := computeStats(10000, 0, ledger)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]models.Trade, len(ledger))
		copy(shuffled, ledger)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := computeStats(10000, 0, shuffled)
		if got != want {
			t.Fatalf("shuffle %d changed the result: %+v vs %+v", i, got, want)
		}
	}
}

func TestComputeStatsWinRateBounds(t *testing.T) {
	pnls := [][]*float64{
		{floatPtr(1), floatPtr(1), floatPtr(1)},
		{floatPtr(-1), floatPtr(-1)},
		{floatPtr(0)},
		{floatPtr(1), floatPtr(-1), floatPtr(0), nil},
	}

	for _, set := range pnls {
		ledger := make([]models.Trade, 0, len(set))
		for _, pnl := range set {
			ledger = append(ledger, tradeWithPnL(pnl))
		}
		stats := computeStats(1000, 0, ledger)
		if stats.WinRate < 0 || stats.WinRate > 100 {
			t.Errorf("win rate %d out of bounds for ledger %v", stats.WinRate, set)
		}
	}
}
