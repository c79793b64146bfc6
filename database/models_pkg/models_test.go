package models

import "testing"

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestDrawdownSettings(t *testing.T) {
	tests := []struct {
		name     string
		account  Account
		wantOK   bool
		wantType string
		wantDay  float64
		wantMax  float64
	}{
		{
			name: "live account has no drawdown rules",
			account: Account{
				Type:          AccountTypeLive,
				DrawdownType:  strPtr(DrawdownTrailing),
				DailyDrawdown: floatPtr(5),
			},
			wantOK: false,
		},
		{
			name:     "challenge account defaults to static",
			account:  Account{Type: AccountTypePropChallenge},
			wantOK:   true,
			wantType: DrawdownStatic,
		},
		{
			name: "funded trailing account",
			account: Account{
				Type:          AccountTypePropFunded,
				DrawdownType:  strPtr(DrawdownTrailing),
				DailyDrawdown: floatPtr(5),
				MaxDrawdown:   floatPtr(10),
			},
			wantOK:   true,
			wantType: DrawdownTrailing,
			wantDay:  5,
			wantMax:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := tt.account.DrawdownSettings()
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if cfg.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, cfg.Type)
			}
			if cfg.DailyPct != tt.wantDay || cfg.MaxPct != tt.wantMax {
				t.Errorf("expected pcts %.1f/%.1f, got %.1f/%.1f", tt.wantDay, tt.wantMax, cfg.DailyPct, cfg.MaxPct)
			}
		})
	}
}

func TestWebhookSubscribedTo(t *testing.T) {
	tests := []struct {
		name   string
		events string
		query  string
		want   bool
	}{
		{name: "empty list subscribes to everything", events: "", query: "trade.created", want: true},
		{name: "listed event matches", events: "trade.created,account.updated", query: "account.updated", want: true},
		{name: "unlisted event does not match", events: "trade.created", query: "trade.deleted", want: false},
		{name: "whitespace around entries is ignored", events: " trade.created , trade.deleted ", query: "trade.deleted", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := Webhook{Events: tt.events}
			if got := hook.SubscribedTo(tt.query); got != tt.want {
				t.Errorf("SubscribedTo(%q) with events %q: expected %v, got %v", tt.query, tt.events, got, tt.want)
			}
		})
	}
}

func TestTradeCompleted(t *testing.T) {
	open := Trade{}
	if open.Completed() {
		t.Error("trade without pnl must not be completed")
	}

	breakeven := Trade{PnL: floatPtr(0)}
	if !breakeven.Completed() {
		t.Error("breakeven trade is completed")
	}
}
