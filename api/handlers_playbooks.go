package api

import (
	"net/http"

	models "trade-journal/database/models_pkg"
)

type playbookRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	EntryRules     string `json:"entry_rules"`
	ExitRules      string `json:"exit_rules"`
	RiskManagement string `json:"risk_management"`
}

func (s *Server) handleListPlaybooks(w http.ResponseWriter, r *http.Request, userID string) {
	playbooks, err := s.playbookRepo.List(userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, playbooks)
}

func (s *Server) handleCreatePlaybook(w http.ResponseWriter, r *http.Request, userID string) {
	var req playbookRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	playbook := &models.Playbook{
		UserID:         userID,
		Name:           req.Name,
		Description:    req.Description,
		EntryRules:     req.EntryRules,
		ExitRules:      req.ExitRules,
		RiskManagement: req.RiskManagement,
	}
	if err := s.playbookRepo.Create(playbook); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, playbook)
}

func (s *Server) handleUpdatePlaybook(w http.ResponseWriter, r *http.Request, userID string) {
	var updates map[string]interface{}
	if err := decodeBody(r, &updates); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if name, ok := updates["name"].(string); ok && name == "" {
		respondWithError(w, http.StatusBadRequest, "name cannot be empty", nil)
		return
	}

	id := r.PathValue("id")
	if err := s.playbookRepo.Update(id, userID, updates); err != nil {
		respondRepoError(w, err)
		return
	}

	playbook, err := s.playbookRepo.GetByID(id, userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, playbook)
}

// handleDeletePlaybook detaches the playbook's trades before removing it so
// no trade is left pointing at a missing strategy.
func (s *Server) handleDeletePlaybook(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")

	if err := s.tradeRepo.ClearPlaybook(id, userID); err != nil {
		respondRepoError(w, err)
		return
	}
	if err := s.playbookRepo.Delete(id, userID); err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
