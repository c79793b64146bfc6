package api

import (
	"fmt"
	"net/http"
	"time"

	models "trade-journal/database/models_pkg"
	"trade-journal/events"
	"trade-journal/importer"
)

type tradeRequest struct {
	AccountID  string   `json:"account_id"`
	Symbol     string   `json:"symbol"`
	Side       string   `json:"side"`
	EntryPrice float64  `json:"entry_price"`
	ExitPrice  *float64 `json:"exit_price"`
	StopLoss   *float64 `json:"stop_loss"`
	TakeProfit *float64 `json:"take_profit"`
	Size       float64  `json:"size"`
	PnL        *float64 `json:"pnl"`
	Commission float64  `json:"commission"`
	InitialR2R *float64 `json:"initial_r2r"`
	ActualR2R  *float64 `json:"actual_r2r"`
	PlaybookID *string  `json:"playbook_id"`
	ExitType   *string  `json:"exit_type"`
	Notes      string   `json:"notes"`
	Mistake    *string  `json:"mistake"`
	Date       *string  `json:"date"`
}

func (req *tradeRequest) validate() error {
	if req.AccountID == "" {
		return fmt.Errorf("account_id is required")
	}
	if req.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if !models.ValidSide(req.Side) {
		return fmt.Errorf("invalid side: %s", req.Side)
	}
	if req.EntryPrice <= 0 {
		return fmt.Errorf("entry_price must be positive")
	}
	if req.Size <= 0 {
		return fmt.Errorf("size must be positive")
	}
	return nil
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request, userID string) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		respondWithError(w, http.StatusBadRequest, "account_id query parameter is required", nil)
		return
	}

	trades, err := s.tradeRepo.ListByAccount(accountID, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trades)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request, userID string) {
	var req tradeRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	// Trades only attach to accounts the requesting user owns
	if _, err := s.accountRepo.GetByID(req.AccountID, userID); err != nil {
		respondRepoError(w, err)
		return
	}

	trade := &models.Trade{
		UserID:     userID,
		AccountID:  req.AccountID,
		Symbol:     req.Symbol,
		Side:       req.Side,
		EntryPrice: req.EntryPrice,
		ExitPrice:  req.ExitPrice,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Size:       req.Size,
		PnL:        req.PnL,
		Commission: req.Commission,
		InitialR2R: req.InitialR2R,
		ActualR2R:  req.ActualR2R,
		PlaybookID: req.PlaybookID,
		ExitType:   req.ExitType,
		Notes:      req.Notes,
		Mistake:    req.Mistake,
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "date must be RFC3339", nil)
			return
		}
		trade.CreatedAt = date
	}

	if err := s.tradeRepo.Create(trade); err != nil {
		respondRepoError(w, err)
		return
	}

	s.afterTradeMutation(r, events.TradeCreated, trade.AccountID, userID, trade)
	respondJSON(w, http.StatusCreated, trade)
}

func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request, userID string) {
	var updates map[string]interface{}
	if err := decodeBody(r, &updates); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if side, ok := updates["side"].(string); ok && !models.ValidSide(side) {
		respondWithError(w, http.StatusBadRequest, "invalid side", nil)
		return
	}
	// The trade stays bound to its account for life
	delete(updates, "account_id")
	delete(updates, "user_id")

	id := r.PathValue("id")
	existing, err := s.tradeRepo.GetByID(id, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	if err := s.tradeRepo.Update(id, userID, updates); err != nil {
		respondRepoError(w, err)
		return
	}

	trade, err := s.tradeRepo.GetByID(id, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	s.afterTradeMutation(r, events.TradeUpdated, existing.AccountID, userID, trade)
	respondJSON(w, http.StatusOK, trade)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")
	existing, err := s.tradeRepo.GetByID(id, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	if err := s.tradeRepo.Delete(id, userID); err != nil {
		respondRepoError(w, err)
		return
	}

	s.afterTradeMutation(r, events.TradeDeleted, existing.AccountID, userID, map[string]string{"id": id})
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// afterTradeMutation runs the shared post-mutation sequence: emit the trade
// event, then recompute the owning account's stats (which emits its own
// account.updated event). A stats failure is logged by the service path but
// does not fail the request; the next mutation heals the summary.
func (s *Server) afterTradeMutation(r *http.Request, eventType, accountID, userID string, payload interface{}) {
	s.dispatch.Dispatch(events.Event{
		Type:      eventType,
		UserID:    userID,
		AccountID: accountID,
		Payload:   payload,
	})
	if err := s.stats.UpdateStats(r.Context(), accountID, userID); err != nil {
		respondLog(eventType, err)
	}
}

func (s *Server) handleImportTrades(w http.ResponseWriter, r *http.Request, userID string) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		respondWithError(w, http.StatusBadRequest, "account_id query parameter is required", nil)
		return
	}
	if _, err := s.accountRepo.GetByID(accountID, userID); err != nil {
		respondRepoError(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		// Also accept a raw CSV body
		trades, parseErr := importer.ParseTrades(r.Body, accountID, userID, s.importMaxRows)
		if parseErr != nil {
			respondRepoError(w, parseErr)
			return
		}
		s.finishImport(w, r, accountID, userID, trades)
		return
	}
	defer file.Close()

	trades, err := importer.ParseTrades(file, accountID, userID, s.importMaxRows)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	s.finishImport(w, r, accountID, userID, trades)
}

func (s *Server) finishImport(w http.ResponseWriter, r *http.Request, accountID, userID string, trades []*models.Trade) {
	if err := s.tradeRepo.BatchCreate(trades); err != nil {
		respondRepoError(w, err)
		return
	}

	// One recompute for the whole batch
	s.afterTradeMutation(r, events.TradeCreated, accountID, userID, map[string]interface{}{
		"imported": len(trades),
	})
	respondJSON(w, http.StatusCreated, map[string]int{"imported": len(trades)})
}

func (s *Server) handleExportTrades(w http.ResponseWriter, r *http.Request, userID string) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		respondWithError(w, http.StatusBadRequest, "account_id query parameter is required", nil)
		return
	}

	trades, err := s.tradeRepo.ListByAccount(accountID, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=trades.csv")
	if err := importer.ExportTrades(w, trades); err != nil {
		respondLog("trades.export", err)
	}
}
