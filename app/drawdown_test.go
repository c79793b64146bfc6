package app

import (
	"testing"

	models "trade-journal/database/models_pkg"
)

func trailingCfg(dailyPct, maxPct float64) models.DrawdownConfig {
	return models.DrawdownConfig{Type: models.DrawdownTrailing, DailyPct: dailyPct, MaxPct: maxPct}
}

func TestNextTrailingState(t *testing.T) {
	tests := []struct {
		name            string
		storedPeak      *float64
		startingBalance float64
		currentBalance  float64
		cfg             models.DrawdownConfig
		wantPeak        float64
		wantDaily       float64
		wantMax         float64
	}{
		{
			name:            "first update with no stored peak",
			storedPeak:      nil,
			startingBalance: 10000,
			currentBalance:  10000,
			cfg:             trailingCfg(5, 10),
			wantPeak:        10000,
			wantDaily:       9500,
			wantMax:         9000,
		},
		{
			name:            "new equity high moves peak and limits",
			storedPeak:      floatPtr(10000),
			startingBalance: 10000,
			currentBalance:  10800,
			cfg:             trailingCfg(5, 10),
			wantPeak:        10800,
			wantDaily:       10260,
			wantMax:         9720,
		},
		{
			name:            "drawdown leaves peak and limits untouched",
			storedPeak:      floatPtr(10800),
			startingBalance: 10000,
			currentBalance:  10300,
			cfg:             trailingCfg(5, 10),
			wantPeak:        10800,
			wantDaily:       10260,
			wantMax:         9720,
		},
		{
			name:            "balance below starting keeps starting as peak",
			storedPeak:      nil,
			startingBalance: 10000,
			currentBalance:  9200,
			cfg:             trailingCfg(5, 10),
			wantPeak:        10000,
			wantDaily:       9500,
			wantMax:         9000,
		},
		{
			name:            "unset percentages give limits equal to the peak",
			storedPeak:      floatPtr(11000),
			startingBalance: 10000,
			currentBalance:  10500,
			cfg:             trailingCfg(0, 0),
			wantPeak:        11000,
			wantDaily:       11000,
			wantMax:         11000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := nextTrailingState(tt.storedPeak, tt.startingBalance, tt.currentBalance, tt.cfg)

			if state.Peak != tt.wantPeak {
				t.Errorf("expected peak %.2f, got %.2f", tt.wantPeak, state.Peak)
			}
			if state.DailyLimit != tt.wantDaily {
				t.Errorf("expected daily limit %.2f, got %.2f", tt.wantDaily, state.DailyLimit)
			}
			if state.MaxLimit != tt.wantMax {
				t.Errorf("expected max limit %.2f, got %.2f", tt.wantMax, state.MaxLimit)
			}
		})
	}
}

func TestNextTrailingStatePeakMonotone(t *testing.T) {
	// The peak never decreases across any balance sequence.
	balances := []float64{10000, 10500, 9800, 11200, 10100, 11200, 9000}
	cfg := trailingCfg(5, 10)

	var storedPeak *float64
	prevPeak := 0.0
	for i, balance := range balances {
		state := nextTrailingState(storedPeak, 10000, balance, cfg)
		if state.Peak < prevPeak {
			t.Fatalf("step %d: peak decreased from %.2f to %.2f", i, prevPeak, state.Peak)
		}
		prevPeak = state.Peak
		storedPeak = floatPtr(state.Peak)
	}

	if prevPeak != 11200 {
		t.Errorf("expected final peak 11200, got %.2f", prevPeak)
	}
}

func TestStaticLimits(t *testing.T) {
	// Static accounts derive both limits from the starting balance and never
	// persist tracker state.
	cfg := models.DrawdownConfig{Type: models.DrawdownStatic, DailyPct: 5, MaxPct: 10}

	daily, max := cfg.Limits(10000)
	if daily != 9500 {
		t.Errorf("expected daily limit 9500, got %.2f", daily)
	}
	if max != 9000 {
		t.Errorf("expected max limit 9000, got %.2f", max)
	}
}
