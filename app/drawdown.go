package app

import (
	"trade-journal/database/accounts"
	models "trade-journal/database/models_pkg"
)

// DrawdownTracker maintains trailing-drawdown state for prop-firm accounts
// configured with the trailing policy. Static accounts are not persisted
// here; their limits are derived at display time from the starting balance
// via DrawdownConfig.Limits.
//
// Limits are informational only: nothing in the service blocks trades or
// raises alerts when a balance crosses them.
type DrawdownTracker struct {
	accounts *accounts.Repository
}

// NewDrawdownTracker creates the tracker
func NewDrawdownTracker(accountRepo *accounts.Repository) *DrawdownTracker {
	return &DrawdownTracker{accounts: accountRepo}
}

// trailingState is the recomputed tracker state for one account
type trailingState struct {
	Peak       float64
	DailyLimit float64
	MaxLimit   float64
}

// nextTrailingState advances the tracker. The peak starts at the starting
// balance the first time through, never decreases, and only moves when the
// account makes a new high; a drawdown period leaves peak and limits
// untouched.
func nextTrailingState(storedPeak *float64, startingBalance, currentBalance float64, cfg models.DrawdownConfig) trailingState {
	peak := startingBalance
	if storedPeak != nil {
		peak = *storedPeak
	}
	if currentBalance > peak {
		peak = currentBalance
	}

	daily, max := cfg.Limits(peak)
	return trailingState{
		Peak:       peak,
		DailyLimit: daily,
		MaxLimit:   max,
	}
}

// UpdateTrailingDrawdown recomputes and persists the peak balance and both
// monetary limits for a trailing account. Accounts without a trailing
// configuration are left untouched.
func (t *DrawdownTracker) UpdateTrailingDrawdown(accountID, userID string, currentBalance float64) error {
	account, err := t.accounts.GetByID(accountID, userID)
	if err != nil {
		return err
	}

	cfg, ok := account.DrawdownSettings()
	if !ok || cfg.Type != models.DrawdownTrailing {
		return nil
	}

	state := nextTrailingState(account.PeakBalance, account.StartingBalance, currentBalance, cfg)

	return t.accounts.UpdateStats(accountID, userID, map[string]interface{}{
		"peak_balance":         state.Peak,
		"daily_drawdown_limit": state.DailyLimit,
		"max_drawdown_limit":   state.MaxLimit,
	})
}
