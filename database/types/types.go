// Package types holds derived data shapes shared between the services and
// the API layer, kept separate from the persisted models.
package types

// AccountStats is the authoritative derived summary of one account's ledger:
// always a full recompute over the stored trades, never maintained
// incrementally.
type AccountStats struct {
	CurrentBalance float64 `json:"current_balance"`
	TotalPnL       float64 `json:"total_pnl"`
	TotalTrades    int     `json:"total_trades"`
	WinRate        int     `json:"win_rate"`
}

// DrawdownLimits is the display-time pair of monetary limits for an account
type DrawdownLimits struct {
	DailyLimit float64 `json:"daily_drawdown_limit"`
	MaxLimit   float64 `json:"max_drawdown_limit"`
}
