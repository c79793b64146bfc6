package api

import (
	"net/http"
	"net/url"

	models "trade-journal/database/models_pkg"
)

type webhookRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled *bool  `json:"enabled"`
	Events  string `json:"events"`
}

func validWebhookURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *Server) handleListWebhooks(w http.ResponseWriter, r *http.Request, userID string) {
	hooks, err := s.webhookRepo.List(userID)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, hooks)
}

func (s *Server) handleCreateWebhook(w http.ResponseWriter, r *http.Request, userID string) {
	var req webhookRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if !validWebhookURL(req.URL) {
		respondWithError(w, http.StatusBadRequest, "url must be a valid http(s) URL", nil)
		return
	}

	hook := &models.Webhook{
		UserID:  userID,
		Name:    req.Name,
		URL:     req.URL,
		Enabled: true,
		Events:  req.Events,
	}
	if req.Enabled != nil {
		hook.Enabled = *req.Enabled
	}

	if err := s.webhookRepo.Create(hook); err != nil {
		respondRepoError(w, err)
		return
	}

	s.webhookMgr.RefreshCache(userID)
	respondJSON(w, http.StatusCreated, hook)
}

func (s *Server) handleUpdateWebhook(w http.ResponseWriter, r *http.Request, userID string) {
	var updates map[string]interface{}
	if err := decodeBody(r, &updates); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if raw, ok := updates["url"].(string); ok && !validWebhookURL(raw) {
		respondWithError(w, http.StatusBadRequest, "url must be a valid http(s) URL", nil)
		return
	}

	id := r.PathValue("id")
	if err := s.webhookRepo.Update(id, userID, updates); err != nil {
		respondRepoError(w, err)
		return
	}

	s.webhookMgr.RefreshCache(userID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated", "id": id})
}

func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")
	if err := s.webhookRepo.Delete(id, userID); err != nil {
		respondRepoError(w, err)
		return
	}

	s.webhookMgr.RefreshCache(userID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
