package app

import (
	"context"
	"log"
	"math"

	"trade-journal/cache"
	"trade-journal/database/accounts"
	models "trade-journal/database/models_pkg"
	"trade-journal/database/trades"
	"trade-journal/database/types"
	"trade-journal/events"
	"trade-journal/helpers"
)

// StatsService recomputes and persists account summaries. Every recompute
// reads the full trade ledger; there is no incremental maintenance, so a
// concurrent last-writer-wins overwrite still lands on a value consistent
// with the trade table.
type StatsService struct {
	accounts   *accounts.Repository
	trades     *trades.Repository
	drawdown   *DrawdownTracker
	statsCache *cache.StatsCache
	dispatcher *events.Dispatcher
}

// NewStatsService creates the stats service
func NewStatsService(accountRepo *accounts.Repository, tradeRepo *trades.Repository, drawdown *DrawdownTracker, statsCache *cache.StatsCache, dispatcher *events.Dispatcher) *StatsService {
	return &StatsService{
		accounts:   accountRepo,
		trades:     tradeRepo,
		drawdown:   drawdown,
		statsCache: statsCache,
		dispatcher: dispatcher,
	}
}

// ComputeStats derives the current summary for one account from its stored
// state. It performs no writes.
func (s *StatsService) ComputeStats(accountID, userID string) (*types.AccountStats, error) {
	account, err := s.accounts.GetByID(accountID, userID)
	if err != nil {
		return nil, err
	}

	ledger, err := s.trades.ListByAccount(accountID, userID)
	if err != nil {
		return nil, err
	}

	stats := computeStats(account.StartingBalance, account.ManualAdjustments, ledger)
	return &stats, nil
}

// computeStats is the pure derivation over a fetched ledger.
//
// Open trades (nil pnl) count toward the trade total but contribute nothing
// to P&L. The win rate denominator is all completed trades: a breakeven
// trade is completed but not a win, so it lowers the rate relative to a
// wins/(wins+losses) definition. That is deliberate.
func computeStats(startingBalance, manualAdjustments float64, ledger []models.Trade) types.AccountStats {
	var totalPnL float64
	completed, wins := 0, 0

	for i := range ledger {
		if ledger[i].PnL == nil {
			continue
		}
		completed++
		totalPnL += *ledger[i].PnL
		if *ledger[i].PnL > 0 {
			wins++
		}
	}

	winRate := 0
	if completed > 0 {
		winRate = int(math.Round(float64(wins) / float64(completed) * 100))
	}

	return types.AccountStats{
		CurrentBalance: startingBalance + manualAdjustments + totalPnL,
		TotalPnL:       totalPnL,
		TotalTrades:    len(ledger),
		WinRate:        winRate,
	}
}

// GetStats returns the summary for display reads, serving a cached snapshot
// when one is fresh.
func (s *StatsService) GetStats(ctx context.Context, accountID, userID string) (*types.AccountStats, error) {
	var cached types.AccountStats
	if s.statsCache.Get(ctx, userID, accountID, &cached) {
		return &cached, nil
	}

	stats, err := s.ComputeStats(accountID, userID)
	if err != nil {
		return nil, err
	}
	s.statsCache.Set(ctx, userID, accountID, *stats)
	return stats, nil
}

// UpdateStats recomputes the summary and persists it onto the account row.
// For trailing-drawdown accounts the drawdown tracker runs as part of the
// same logical operation (a second write; the two are not atomic with each
// other). Called after every trade mutation and every deposit or withdrawal.
func (s *StatsService) UpdateStats(ctx context.Context, accountID, userID string) error {
	account, err := s.accounts.GetByID(accountID, userID)
	if err != nil {
		return err
	}

	ledger, err := s.trades.ListByAccount(accountID, userID)
	if err != nil {
		return err
	}

	stats := computeStats(account.StartingBalance, account.ManualAdjustments, ledger)

	err = s.accounts.UpdateStats(accountID, userID, map[string]interface{}{
		"current_balance": stats.CurrentBalance,
		"total_pnl":       stats.TotalPnL,
		"total_trades":    stats.TotalTrades,
		"win_rate":        stats.WinRate,
	})
	if err != nil {
		return err
	}

	if cfg, ok := account.DrawdownSettings(); ok && cfg.Type == models.DrawdownTrailing {
		if err := s.drawdown.UpdateTrailingDrawdown(accountID, userID, stats.CurrentBalance); err != nil {
			return err
		}
	}

	log.Printf("📊 Stats updated for %s: %s, %d trades, %d%% win rate",
		account.Name, helpers.FormatCurrency(stats.CurrentBalance, account.Currency), stats.TotalTrades, stats.WinRate)

	s.dispatcher.Dispatch(events.Event{
		Type:      events.AccountUpdated,
		UserID:    userID,
		AccountID: accountID,
		Payload:   stats,
	})
	return nil
}
