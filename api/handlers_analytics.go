package api

import (
	"net/http"
)

// requireAccount pulls the account_id query parameter and confirms ownership.
// Every analytics query is account-scoped.
func (s *Server) requireAccount(w http.ResponseWriter, r *http.Request, userID string) (string, bool) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		respondWithError(w, http.StatusBadRequest, "account_id query parameter is required", nil)
		return "", false
	}
	if _, err := s.accountRepo.GetByID(accountID, userID); err != nil {
		respondRepoError(w, err)
		return "", false
	}
	return accountID, true
}

func (s *Server) handleDailyPnL(w http.ResponseWriter, r *http.Request, userID string) {
	accountID, ok := s.requireAccount(w, r, userID)
	if !ok {
		return
	}

	days := queryInt(r, "days", s.dailyPnLDays)
	points, err := s.analyticsRepo.GetDailyPnL(accountID, userID, days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load daily pnl", err)
		return
	}
	respondJSON(w, http.StatusOK, points)
}

func (s *Server) handlePnLBySymbol(w http.ResponseWriter, r *http.Request, userID string) {
	accountID, ok := s.requireAccount(w, r, userID)
	if !ok {
		return
	}

	out, err := s.analyticsRepo.GetPnLBySymbol(accountID, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load pnl by symbol", err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request, userID string) {
	accountID, ok := s.requireAccount(w, r, userID)
	if !ok {
		return
	}

	out, err := s.analyticsRepo.GetMonthlySummary(accountID, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load monthly summary", err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleEquityCurve(w http.ResponseWriter, r *http.Request, userID string) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		respondWithError(w, http.StatusBadRequest, "account_id query parameter is required", nil)
		return
	}

	account, err := s.accountRepo.GetByID(accountID, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	base := account.StartingBalance + account.ManualAdjustments
	curve, err := s.analyticsRepo.GetEquityCurve(accountID, userID, base)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load equity curve", err)
		return
	}
	respondJSON(w, http.StatusOK, curve)
}

func (s *Server) handleTradeSummary(w http.ResponseWriter, r *http.Request, userID string) {
	accountID, ok := s.requireAccount(w, r, userID)
	if !ok {
		return
	}

	summary, err := s.analyticsRepo.GetTradeSummary(accountID, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load trade summary", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
