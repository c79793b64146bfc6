package api

import (
	"net/http"
	"strings"
)

// handlePipValue converts a position's stop-loss and take-profit distances
// into account-currency amounts.
//
// Query parameters: symbol, entry_price, size (required); stop_loss,
// take_profit, currency (optional; currency defaults to USD).
func (s *Server) handlePipValue(w http.ResponseWriter, r *http.Request, userID string) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		respondWithError(w, http.StatusBadRequest, "symbol query parameter is required", nil)
		return
	}

	entryPrice, ok := queryFloat(r, "entry_price")
	if !ok || entryPrice <= 0 {
		respondWithError(w, http.StatusBadRequest, "entry_price must be a positive number", nil)
		return
	}

	size, ok := queryFloat(r, "size")
	if !ok || size <= 0 {
		respondWithError(w, http.StatusBadRequest, "size must be a positive number", nil)
		return
	}

	currency := strings.ToUpper(r.URL.Query().Get("currency"))
	if currency == "" {
		currency = "USD"
	}

	stopLoss := queryFloatPtr(r, "stop_loss")
	takeProfit := queryFloatPtr(r, "take_profit")

	result := s.pipCalc.Calculate(symbol, entryPrice, stopLoss, takeProfit, size, currency)
	respondJSON(w, http.StatusOK, result)
}
