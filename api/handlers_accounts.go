package api

import (
	"fmt"
	"net/http"

	models "trade-journal/database/models_pkg"
	"trade-journal/database/types"
)

// accountView is an account plus its display-time drawdown limits. Static
// prop accounts derive limits from the starting balance on every read;
// trailing accounts serve the persisted tracker columns on the row itself.
type accountView struct {
	models.Account
	DrawdownLimits *types.DrawdownLimits `json:"drawdown_limits,omitempty"`
}

func newAccountView(a models.Account) accountView {
	view := accountView{Account: a}
	if cfg, ok := a.DrawdownSettings(); ok && cfg.Type == models.DrawdownStatic {
		daily, max := cfg.Limits(a.StartingBalance)
		view.DrawdownLimits = &types.DrawdownLimits{DailyLimit: daily, MaxLimit: max}
	}
	return view
}

type accountRequest struct {
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	Broker          string   `json:"broker"`
	Currency        string   `json:"currency"`
	StartingBalance float64  `json:"starting_balance"`
	DrawdownType    *string  `json:"drawdown_type"`
	DailyDrawdown   *float64 `json:"daily_drawdown"`
	MaxDrawdown     *float64 `json:"max_drawdown"`
	ProfitTarget    *float64 `json:"profit_target"`
	Phase           *int     `json:"phase"`
}

func (req *accountRequest) validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !models.ValidAccountType(req.Type) {
		return fmt.Errorf("invalid account type: %s", req.Type)
	}
	if req.StartingBalance <= 0 {
		return fmt.Errorf("starting_balance must be positive")
	}
	if req.DrawdownType != nil && !models.ValidDrawdownType(*req.DrawdownType) {
		return fmt.Errorf("invalid drawdown_type: %s", *req.DrawdownType)
	}
	if req.Phase != nil && (*req.Phase < 1 || *req.Phase > 2) {
		return fmt.Errorf("phase must be 1 or 2")
	}
	return nil
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request, userID string) {
	accounts, err := s.accountRepo.List(userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, newAccountView(a))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request, userID string) {
	var req accountRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	account := &models.Account{
		UserID:          userID,
		Name:            req.Name,
		Type:            req.Type,
		Broker:          req.Broker,
		Currency:        currency,
		StartingBalance: req.StartingBalance,
	}
	if account.IsPropFirm() {
		account.DrawdownType = req.DrawdownType
		account.DailyDrawdown = req.DailyDrawdown
		account.MaxDrawdown = req.MaxDrawdown
		account.ProfitTarget = req.ProfitTarget
		account.Phase = req.Phase
	}

	if err := s.accountRepo.Create(account); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newAccountView(*account))
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request, userID string) {
	account, err := s.accountRepo.GetByID(r.PathValue("id"), userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newAccountView(*account))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request, userID string) {
	var updates map[string]interface{}
	if err := decodeBody(r, &updates); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if name, ok := updates["name"].(string); ok && name == "" {
		respondWithError(w, http.StatusBadRequest, "name cannot be empty", nil)
		return
	}
	if t, ok := updates["type"].(string); ok && !models.ValidAccountType(t) {
		respondWithError(w, http.StatusBadRequest, "invalid account type", nil)
		return
	}
	if dt, ok := updates["drawdown_type"].(string); ok && !models.ValidDrawdownType(dt) {
		respondWithError(w, http.StatusBadRequest, "invalid drawdown_type", nil)
		return
	}

	id := r.PathValue("id")
	if err := s.accountRepo.Update(id, userID, updates); err != nil {
		respondRepoError(w, err)
		return
	}

	account, err := s.accountRepo.GetByID(id, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newAccountView(*account))
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")
	if err := s.accountRepo.Delete(id, userID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (s *Server) handleActivateAccount(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")
	if err := s.accountRepo.SetActive(id, userID); err != nil {
		respondRepoError(w, err)
		return
	}

	account, err := s.accountRepo.GetByID(id, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newAccountView(*account))
}

type adjustmentRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request, userID string) {
	s.applyAdjustment(w, r, userID, 1)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request, userID string) {
	s.applyAdjustment(w, r, userID, -1)
}

// applyAdjustment handles both deposit and withdrawal; sign is +1 or -1.
// Withdrawals cannot take the balance below zero.
func (s *Server) applyAdjustment(w http.ResponseWriter, r *http.Request, userID string, sign float64) {
	var req adjustmentRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Amount <= 0 {
		respondWithError(w, http.StatusBadRequest, "amount must be positive", nil)
		return
	}

	id := r.PathValue("id")
	if sign < 0 {
		account, err := s.accountRepo.GetByID(id, userID)
		if err != nil {
			respondRepoError(w, err)
			return
		}
		if req.Amount > account.CurrentBalance {
			respondWithError(w, http.StatusBadRequest, "withdrawal exceeds current balance", nil)
			return
		}
	}

	if err := s.accountRepo.ApplyAdjustment(id, userID, sign*req.Amount); err != nil {
		respondRepoError(w, err)
		return
	}
	if err := s.stats.UpdateStats(r.Context(), id, userID); err != nil {
		respondRepoError(w, err)
		return
	}

	stats, err := s.stats.GetStats(r.Context(), id, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAccountStats(w http.ResponseWriter, r *http.Request, userID string) {
	stats, err := s.stats.GetStats(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
