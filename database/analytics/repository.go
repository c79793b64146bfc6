package analytics

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository runs the dashboard grouping queries. These aggregate the raw
// trade ledger for charts (by day, by symbol, by month); they never write
// back the persisted summary fields, which remain owned by the stats service.
//
// Queries run through the raw database/sql connection so the grouping SQL
// stays explicit. Every query is scoped by both account_id and user_id.
type Repository struct {
	conn *sql.DB
}

// NewRepository creates a new analytics repository
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// DailyPnL is the realized P&L of one calendar day
type DailyPnL struct {
	Day        time.Time `json:"day"`
	PnL        float64   `json:"pnl"`
	TradeCount int       `json:"trade_count"`
}

// SymbolPnL aggregates realized P&L per traded symbol
type SymbolPnL struct {
	Symbol     string  `json:"symbol"`
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"trade_count"`
	Wins       int     `json:"wins"`
}

// MonthlySummary aggregates one calendar month of completed trades
type MonthlySummary struct {
	Month      time.Time `json:"month"`
	PnL        float64   `json:"pnl"`
	TradeCount int       `json:"trade_count"`
	Wins       int       `json:"wins"`
	WinRate    int       `json:"win_rate"`
}

// EquityPoint is one step of the cumulative equity curve
type EquityPoint struct {
	Date    time.Time `json:"date"`
	Balance float64   `json:"balance"`
	PnL     float64   `json:"pnl"`
}

// TradeSummary aggregates outcome distribution and quality metrics for one
// account's completed trades.
type TradeSummary struct {
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Breakeven    int     `json:"breakeven"`
	Open         int     `json:"open"`
	GrossProfit  float64 `json:"gross_profit"`
	GrossLoss    float64 `json:"gross_loss"`
	ProfitFactor float64 `json:"profit_factor"`
	AvgWin       float64 `json:"avg_win"`
	AvgLoss      float64 `json:"avg_loss"`
	AvgActualR2R float64 `json:"avg_actual_r2r"`
}

// GetDailyPnL returns per-day realized P&L over the lookback window
func (r *Repository) GetDailyPnL(accountID, userID string, days int) ([]DailyPnL, error) {
	query := `
		SELECT
			DATE_TRUNC('day', created_at) AS day,
			COALESCE(SUM(pnl), 0) AS pnl,
			COUNT(*) AS trade_count
		FROM trades
		WHERE account_id = $1 AND user_id = $2
		AND pnl IS NOT NULL
		AND created_at >= NOW() - INTERVAL '1 day' * $3
		GROUP BY 1
		ORDER BY 1 ASC
	`

	rows, err := r.conn.Query(query, accountID, userID, days)
	if err != nil {
		return nil, fmt.Errorf("GetDailyPnL: %w", err)
	}
	defer rows.Close()

	var points []DailyPnL
	for rows.Next() {
		var p DailyPnL
		if err := rows.Scan(&p.Day, &p.PnL, &p.TradeCount); err != nil {
			return nil, fmt.Errorf("GetDailyPnL scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetPnLBySymbol returns realized P&L grouped by symbol, biggest winners first
func (r *Repository) GetPnLBySymbol(accountID, userID string) ([]SymbolPnL, error) {
	query := `
		SELECT
			symbol,
			COALESCE(SUM(pnl), 0) AS pnl,
			COUNT(*) AS trade_count,
			COUNT(*) FILTER (WHERE pnl > 0) AS wins
		FROM trades
		WHERE account_id = $1 AND user_id = $2
		AND pnl IS NOT NULL
		GROUP BY symbol
		ORDER BY pnl DESC
	`

	rows, err := r.conn.Query(query, accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("GetPnLBySymbol: %w", err)
	}
	defer rows.Close()

	var out []SymbolPnL
	for rows.Next() {
		var s SymbolPnL
		if err := rows.Scan(&s.Symbol, &s.PnL, &s.TradeCount, &s.Wins); err != nil {
			return nil, fmt.Errorf("GetPnLBySymbol scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMonthlySummary returns completed-trade aggregates per calendar month.
// The win rate uses the same definition as the ledger aggregator: wins over
// all completed trades, breakeven included in the denominator.
func (r *Repository) GetMonthlySummary(accountID, userID string) ([]MonthlySummary, error) {
	query := `
		SELECT
			DATE_TRUNC('month', created_at) AS month,
			COALESCE(SUM(pnl), 0) AS pnl,
			COUNT(*) AS trade_count,
			COUNT(*) FILTER (WHERE pnl > 0) AS wins
		FROM trades
		WHERE account_id = $1 AND user_id = $2
		AND pnl IS NOT NULL
		GROUP BY 1
		ORDER BY 1 ASC
	`

	rows, err := r.conn.Query(query, accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("GetMonthlySummary: %w", err)
	}
	defer rows.Close()

	var out []MonthlySummary
	for rows.Next() {
		var m MonthlySummary
		if err := rows.Scan(&m.Month, &m.PnL, &m.TradeCount, &m.Wins); err != nil {
			return nil, fmt.Errorf("GetMonthlySummary scan: %w", err)
		}
		if m.TradeCount > 0 {
			m.WinRate = int(float64(m.Wins)/float64(m.TradeCount)*100 + 0.5)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetEquityCurve returns the running balance after each completed trade,
// ordered by trade date. The base is the account's starting balance plus its
// manual adjustments; the caller reads both off the account row.
func (r *Repository) GetEquityCurve(accountID, userID string, base float64) ([]EquityPoint, error) {
	query := `
		SELECT
			created_at,
			pnl,
			SUM(pnl) OVER (ORDER BY created_at, id) AS cumulative
		FROM trades
		WHERE account_id = $1 AND user_id = $2
		AND pnl IS NOT NULL
		ORDER BY created_at, id
	`

	rows, err := r.conn.Query(query, accountID, userID)
	if err != nil {
		return nil, fmt.Errorf("GetEquityCurve: %w", err)
	}
	defer rows.Close()

	var curve []EquityPoint
	for rows.Next() {
		var date time.Time
		var pnl, cumulative float64
		if err := rows.Scan(&date, &pnl, &cumulative); err != nil {
			return nil, fmt.Errorf("GetEquityCurve scan: %w", err)
		}
		curve = append(curve, EquityPoint{
			Date:    date,
			Balance: base + cumulative,
			PnL:     pnl,
		})
	}
	return curve, rows.Err()
}

// GetTradeSummary returns the outcome distribution and quality metrics for
// one account.
func (r *Repository) GetTradeSummary(accountID, userID string) (*TradeSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE pnl > 0) AS wins,
			COUNT(*) FILTER (WHERE pnl < 0) AS losses,
			COUNT(*) FILTER (WHERE pnl = 0) AS breakeven,
			COUNT(*) FILTER (WHERE pnl IS NULL) AS open,
			COALESCE(SUM(pnl) FILTER (WHERE pnl > 0), 0) AS gross_profit,
			COALESCE(SUM(pnl) FILTER (WHERE pnl < 0), 0) AS gross_loss,
			COALESCE(AVG(pnl) FILTER (WHERE pnl > 0), 0) AS avg_win,
			COALESCE(AVG(pnl) FILTER (WHERE pnl < 0), 0) AS avg_loss,
			COALESCE(AVG(actual_r2r), 0) AS avg_actual_r2r
		FROM trades
		WHERE account_id = $1 AND user_id = $2
	`

	var s TradeSummary
	err := r.conn.QueryRow(query, accountID, userID).Scan(
		&s.Wins, &s.Losses, &s.Breakeven, &s.Open,
		&s.GrossProfit, &s.GrossLoss,
		&s.AvgWin, &s.AvgLoss, &s.AvgActualR2R,
	)
	if err != nil {
		return nil, fmt.Errorf("GetTradeSummary: %w", err)
	}

	// Gross loss is stored signed; profit factor compares magnitudes
	if s.GrossLoss != 0 {
		s.ProfitFactor = s.GrossProfit / -s.GrossLoss
	}
	return &s, nil
}
