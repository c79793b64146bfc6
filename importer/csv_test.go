package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"trade-journal/database"
	models "trade-journal/database/models_pkg"
)

const validCSV = `date,symbol,side,entry_price,exit_price,stop_loss,take_profit,size,pnl,commission,notes
2025-03-01,eurusd,long,1.1000,1.1100,1.0950,1.1100,100000,500,7,clean breakout
2025-03-02,USDJPY,sell,150.00,149.50,,,50000,-120,3.5,
2025-03-03 09:30:00,GBPUSD,buy,1.2500,,,,25000,,,still running
`

func TestParseTradesValidFile(t *testing.T) {
	trades, err := ParseTrades(strings.NewReader(validCSV), "acct-1", "user-1", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}

	first := trades[0]
	if first.Symbol != "EURUSD" {
		t.Errorf("expected upper-cased symbol EURUSD, got %s", first.Symbol)
	}
	if first.Side != models.SideLong {
		t.Errorf("expected side %s, got %s", models.SideLong, first.Side)
	}
	if first.PnL == nil || *first.PnL != 500 {
		t.Errorf("expected pnl 500, got %v", first.PnL)
	}
	if first.Commission != 7 {
		t.Errorf("expected commission 7, got %.2f", first.Commission)
	}
	if first.AccountID != "acct-1" || first.UserID != "user-1" {
		t.Errorf("trade not bound to account/user: %s/%s", first.AccountID, first.UserID)
	}
	wantDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !first.CreatedAt.Equal(wantDate) {
		t.Errorf("expected trade date %v, got %v", wantDate, first.CreatedAt)
	}

	second := trades[1]
	if second.Side != models.SideShort {
		t.Errorf("expected sell to normalize to %s, got %s", models.SideShort, second.Side)
	}

	open := trades[2]
	if open.PnL != nil {
		t.Errorf("expected empty pnl to stay nil, got %v", *open.PnL)
	}
	if open.Notes != "still running" {
		t.Errorf("expected notes preserved, got %q", open.Notes)
	}
}

func TestParseTradesRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "missing symbol",
			csv: `date,symbol,side,entry_price,size,pnl
2025-03-01,,long,1.1,100000,500
`,
		},
		{
			name: "unknown side",
			csv: `date,symbol,side,entry_price,size,pnl
2025-03-01,EURUSD,sideways,1.1,100000,500
`,
		},
		{
			name: "zero entry price",
			csv: `date,symbol,side,entry_price,size,pnl
2025-03-01,EURUSD,long,0,100000,500
`,
		},
		{
			name: "negative size",
			csv: `date,symbol,side,entry_price,size,pnl
2025-03-01,EURUSD,long,1.1,-5,500
`,
		},
		{
			name: "unparseable date",
			csv: `date,symbol,side,entry_price,size,pnl
yesterday,EURUSD,long,1.1,100000,500
`,
		},
		{
			name: "one bad row poisons the whole file",
			csv: `date,symbol,side,entry_price,size,pnl
2025-03-01,EURUSD,long,1.1,100000,500
2025-03-02,EURUSD,upward,1.1,100000,200
`,
		},
		{
			name: "empty file",
			csv: `date,symbol,side,entry_price,size,pnl
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades, err := ParseTrades(strings.NewReader(tt.csv), "acct-1", "user-1", 100)
			if err == nil {
				t.Fatalf("expected error, got %d trades", len(trades))
			}
			if !database.IsValidation(err) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestParseTradesRowLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("date,symbol,side,entry_price,size,pnl\n")
	for i := 0; i < 5; i++ {
		sb.WriteString("2025-03-01,EURUSD,long,1.1,100000,500\n")
	}

	if _, err := ParseTrades(strings.NewReader(sb.String()), "acct-1", "user-1", 3); err == nil {
		t.Error("expected row-limit error")
	}
	if _, err := ParseTrades(strings.NewReader(sb.String()), "acct-1", "user-1", 5); err != nil {
		t.Errorf("expected 5 rows to pass a limit of 5, got %v", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	original, err := ParseTrades(strings.NewReader(validCSV), "acct-1", "user-1", 100)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ledger := make([]models.Trade, 0, len(original))
	for _, trade := range original {
		ledger = append(ledger, *trade)
	}

	var buf bytes.Buffer
	if err := ExportTrades(&buf, ledger); err != nil {
		t.Fatalf("export: %v", err)
	}

	reimported, err := ParseTrades(&buf, "acct-2", "user-1", 100)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if len(reimported) != len(original) {
		t.Fatalf("expected %d trades after round trip, got %d", len(original), len(reimported))
	}

	for i := range original {
		if reimported[i].Symbol != original[i].Symbol {
			t.Errorf("trade %d: symbol %s != %s", i, reimported[i].Symbol, original[i].Symbol)
		}
		if reimported[i].Side != original[i].Side {
			t.Errorf("trade %d: side %s != %s", i, reimported[i].Side, original[i].Side)
		}
		if (reimported[i].PnL == nil) != (original[i].PnL == nil) {
			t.Errorf("trade %d: pnl presence changed", i)
		}
		if reimported[i].PnL != nil && *reimported[i].PnL != *original[i].PnL {
			t.Errorf("trade %d: pnl %.2f != %.2f", i, *reimported[i].PnL, *original[i].PnL)
		}
	}
}
