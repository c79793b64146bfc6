// Package importer parses bulk CSV trade uploads and renders trade exports.
// Imported P&L values are trusted as-is, the same as manually entered ones;
// the stats recompute runs once after the batch insert, not per row.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"trade-journal/database"
	models "trade-journal/database/models_pkg"
)

// TradeRow is one CSV line of a trade import or export.
// Optional columns may be left empty; pnl empty means the trade is still open.
type TradeRow struct {
	Date       string   `csv:"date"`
	Symbol     string   `csv:"symbol"`
	Side       string   `csv:"side"`
	EntryPrice float64  `csv:"entry_price"`
	ExitPrice  *float64 `csv:"exit_price"`
	StopLoss   *float64 `csv:"stop_loss"`
	TakeProfit *float64 `csv:"take_profit"`
	Size       float64  `csv:"size"`
	PnL        *float64 `csv:"pnl"`
	Commission *float64 `csv:"commission"`
	Notes      string   `csv:"notes"`
}

// dateLayouts are accepted trade date formats, tried in order
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseTrades reads CSV rows and converts them into trade records bound to
// the given account and user. The whole file is rejected on the first invalid
// row so a partial import never reaches the ledger.
func ParseTrades(r io.Reader, accountID, userID string, maxRows int) ([]*models.Trade, error) {
	var rows []*TradeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, database.NewValidationError("csv", fmt.Sprintf("unparseable file: %v", err))
	}

	if len(rows) == 0 {
		return nil, database.NewValidationError("csv", "file contains no trade rows")
	}
	if maxRows > 0 && len(rows) > maxRows {
		return nil, database.NewValidationError("csv", fmt.Sprintf("too many rows: %d (limit %d)", len(rows), maxRows))
	}

	trades := make([]*models.Trade, 0, len(rows))
	for i, row := range rows {
		trade, err := rowToTrade(row, accountID, userID)
		if err != nil {
			return nil, database.NewValidationError("csv", fmt.Sprintf("row %d: %v", i+2, err))
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func rowToTrade(row *TradeRow, accountID, userID string) (*models.Trade, error) {
	symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("missing symbol")
	}

	side, err := normalizeSide(row.Side)
	if err != nil {
		return nil, err
	}

	if row.EntryPrice <= 0 {
		return nil, fmt.Errorf("entry price must be positive")
	}
	if row.Size <= 0 {
		return nil, fmt.Errorf("size must be positive")
	}

	tradeDate, err := parseDate(row.Date)
	if err != nil {
		return nil, err
	}

	trade := &models.Trade{
		UserID:     userID,
		AccountID:  accountID,
		Symbol:     symbol,
		Side:       side,
		EntryPrice: row.EntryPrice,
		ExitPrice:  row.ExitPrice,
		StopLoss:   row.StopLoss,
		TakeProfit: row.TakeProfit,
		Size:       row.Size,
		PnL:        row.PnL,
		Notes:      strings.TrimSpace(row.Notes),
		CreatedAt:  tradeDate,
	}
	if row.Commission != nil {
		trade.Commission = *row.Commission
	}
	return trade, nil
}

func normalizeSide(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "long", "buy":
		return models.SideLong, nil
	case "short", "sell":
		return models.SideShort, nil
	case "":
		return "", fmt.Errorf("missing side")
	default:
		return "", fmt.Errorf("unknown side %q", raw)
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// ExportTrades writes trades as CSV in the same column layout the importer
// accepts, so an export can be re-imported.
func ExportTrades(w io.Writer, trades []models.Trade) error {
	rows := make([]*TradeRow, 0, len(trades))
	for i := range trades {
		t := &trades[i]
		commission := t.Commission
		rows = append(rows, &TradeRow{
			Date:       t.CreatedAt.Format(time.RFC3339),
			Symbol:     t.Symbol,
			Side:       t.Side,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			StopLoss:   t.StopLoss,
			TakeProfit: t.TakeProfit,
			Size:       t.Size,
			PnL:        t.PnL,
			Commission: &commission,
			Notes:      t.Notes,
		})
	}
	return gocsv.Marshal(rows, w)
}
