package models

import (
	"strings"
	"time"
)

// Account represents one tracked trading account.
// An account owns a ledger of trades; its balance and performance fields are
// derived from that ledger and are recomputed in full after every mutation —
// they are never maintained incrementally.
//
// Key Fields:
//   - StartingBalance: set at creation, immutable afterwards
//   - ManualAdjustments: signed accumulator of deposits (+) and withdrawals (-)
//   - CurrentBalance: derived, always StartingBalance + ManualAdjustments + total P&L
//   - IsActive: at most one account per user is marked active (the UI selection)
//
// Drawdown fields are populated only for the two prop-firm account types.
// For trailing accounts PeakBalance and the two limit columns hold persisted
// tracker state; static accounts compute their limits at display time.
type Account struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string    `gorm:"type:uuid;index:idx_accounts_user;not null" json:"user_id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Type              string    `gorm:"size:30;not null" json:"type"`
	Broker            string    `gorm:"size:100" json:"broker"`
	Currency          string    `gorm:"size:5;not null;default:USD" json:"currency"`
	StartingBalance   float64   `gorm:"type:decimal(15,2);not null" json:"starting_balance"`
	ManualAdjustments float64   `gorm:"type:decimal(15,2);not null;default:0" json:"manual_adjustments"`
	CurrentBalance    float64   `gorm:"type:decimal(15,2);not null" json:"current_balance"`
	TotalPnL          float64   `gorm:"column:total_pnl;type:decimal(15,2);not null;default:0" json:"total_pnl"`
	TotalTrades       int       `gorm:"not null;default:0" json:"total_trades"`
	WinRate           int       `gorm:"not null;default:0" json:"win_rate"`
	IsActive          bool      `gorm:"not null;default:false;index:idx_accounts_user" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Prop-firm configuration (nil for Live/Demo/Backtesting accounts)
	DrawdownType  *string  `gorm:"size:10" json:"drawdown_type,omitempty"` // static, trailing
	DailyDrawdown *float64 `gorm:"type:decimal(6,2)" json:"daily_drawdown,omitempty"`
	MaxDrawdown   *float64 `gorm:"type:decimal(6,2)" json:"max_drawdown,omitempty"`
	ProfitTarget  *float64 `gorm:"type:decimal(15,2)" json:"profit_target,omitempty"` // challenge only
	Phase         *int     `json:"phase,omitempty"`                                   // challenge only, 1 or 2

	// Trailing drawdown tracker state (nil until the first trailing update)
	PeakBalance        *float64 `gorm:"type:decimal(15,2)" json:"peak_balance,omitempty"`
	DailyDrawdownLimit *float64 `gorm:"type:decimal(15,2)" json:"daily_drawdown_limit,omitempty"`
	MaxDrawdownLimit   *float64 `gorm:"type:decimal(15,2)" json:"max_drawdown_limit,omitempty"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// DrawdownConfig is the resolved drawdown configuration of a prop-firm account.
// Unset percentages resolve to 0, which yields limits equal to the reference
// balance.
type DrawdownConfig struct {
	Type     string
	DailyPct float64
	MaxPct   float64
}

// Limits derives the monetary drawdown limits from a reference balance: the
// starting balance for static accounts, the peak balance for trailing ones.
func (c DrawdownConfig) Limits(reference float64) (dailyLimit, maxLimit float64) {
	return reference * (1 - c.DailyPct/100), reference * (1 - c.MaxPct/100)
}

// IsPropFirm reports whether the account type carries drawdown rules.
func (a *Account) IsPropFirm() bool {
	return a.Type == AccountTypePropChallenge || a.Type == AccountTypePropFunded
}

// DrawdownSettings returns the account's drawdown configuration. The second
// return value is false for non-prop accounts, which never expose drawdown
// state.
func (a *Account) DrawdownSettings() (DrawdownConfig, bool) {
	if !a.IsPropFirm() {
		return DrawdownConfig{}, false
	}
	cfg := DrawdownConfig{Type: DrawdownStatic}
	if a.DrawdownType != nil && *a.DrawdownType != "" {
		cfg.Type = *a.DrawdownType
	}
	if a.DailyDrawdown != nil {
		cfg.DailyPct = *a.DailyDrawdown
	}
	if a.MaxDrawdown != nil {
		cfg.MaxPct = *a.MaxDrawdown
	}
	return cfg, true
}

// Trade represents one logged position.
//
// PnL is user-supplied or import-derived and is trusted as ground truth for
// aggregation; it is never derived from entry/exit/size by the service. A nil
// PnL marks a still-open trade: it counts toward the trade total but
// contributes nothing to P&L or win rate.
type Trade struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;index:idx_trades_account_user;not null" json:"user_id"`
	AccountID  string    `gorm:"type:uuid;index:idx_trades_account_user;not null" json:"account_id"`
	Symbol     string    `gorm:"size:20;not null" json:"symbol"`
	Side       string    `gorm:"size:5;not null" json:"side"` // Long, Short
	EntryPrice float64   `gorm:"type:decimal(15,5);not null" json:"entry_price"`
	ExitPrice  *float64  `gorm:"type:decimal(15,5)" json:"exit_price,omitempty"`
	StopLoss   *float64  `gorm:"type:decimal(15,5)" json:"stop_loss,omitempty"`
	TakeProfit *float64  `gorm:"type:decimal(15,5)" json:"take_profit,omitempty"`
	Size       float64   `gorm:"type:decimal(15,4);not null" json:"size"`
	PnL        *float64  `gorm:"column:pnl;type:decimal(15,2)" json:"pnl,omitempty"`
	Commission float64   `gorm:"type:decimal(15,2);not null;default:0" json:"commission"`
	InitialR2R *float64  `gorm:"column:initial_r2r;type:decimal(8,2)" json:"initial_r2r,omitempty"`
	ActualR2R  *float64  `gorm:"column:actual_r2r;type:decimal(8,2)" json:"actual_r2r,omitempty"`
	PlaybookID *string   `gorm:"type:uuid;index" json:"playbook_id,omitempty"`
	ExitType   *string   `gorm:"size:30" json:"exit_type,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes"`
	Mistake    *string   `gorm:"size:100" json:"mistake,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"` // trade date, user-editable at entry
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for Trade
func (Trade) TableName() string {
	return "trades"
}

// Completed reports whether the trade has a realized outcome.
func (t *Trade) Completed() bool {
	return t.PnL != nil
}

// Playbook is a named strategy description referenced by trades for grouping.
// It has no computational role.
type Playbook struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	EntryRules     string    `gorm:"type:text" json:"entry_rules"`
	ExitRules      string    `gorm:"type:text" json:"exit_rules"`
	RiskManagement string    `gorm:"type:text" json:"risk_management"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for Playbook
func (Playbook) TableName() string {
	return "playbooks"
}

// Webhook is a user-configured HTTP endpoint notified about journal events.
// Events is a comma-separated list of event types the endpoint subscribes to;
// an empty list means all events.
type Webhook struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	URL       string    `gorm:"size:500;not null" json:"url"`
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	Events    string    `gorm:"size:300" json:"events"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Webhook
func (Webhook) TableName() string {
	return "webhooks"
}

// SubscribedTo reports whether the webhook wants the given event type.
func (w *Webhook) SubscribedTo(eventType string) bool {
	if w.Events == "" {
		return true
	}
	for _, e := range strings.Split(w.Events, ",") {
		if strings.TrimSpace(e) == eventType {
			return true
		}
	}
	return false
}
