package api

import (
	"net/http"
)

type sessionRequest struct {
	ServiceKey string `json:"service_key"`
	UserID     string `json:"user_id"`
}

// handleCreateSession exchanges the shared service key plus a user id for an
// opaque session token. The fronting identity provider calls this after it
// has authenticated the user.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Enabled() {
		respondWithError(w, http.StatusNotFound, "sessions are disabled", nil)
		return
	}

	var req sessionRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}
	if !s.sessions.VerifyServiceKey(req.ServiceKey) {
		respondWithError(w, http.StatusUnauthorized, "invalid service key", nil)
		return
	}

	token, err := s.sessions.CreateSession(r.Context(), req.UserID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to create session", err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request, userID string) {
	s.broker.ServeSSE(w, r, userID)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request, userID string) {
	s.hub.ServeWS(w, r, userID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
