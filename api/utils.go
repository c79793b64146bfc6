package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"trade-journal/database"
)

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("❌ Failed to encode response: %v", err)
		}
	}
}

// respondWithError writes a JSON error response
func respondWithError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("❌ %s: %v", message, err)
	}
	respondJSON(w, status, map[string]string{"error": message})
}

// respondLog records a post-response failure that no longer has a writer to
// report into
func respondLog(operation string, err error) {
	log.Printf("❌ %s: %v", operation, err)
}

// respondRepoError maps storage errors onto HTTP statuses
func respondRepoError(w http.ResponseWriter, err error) {
	switch {
	case database.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, err.Error(), nil)
	case database.IsValidation(err):
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error", err)
	}
}

// decodeBody decodes a JSON request body into dest
func decodeBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dest)
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryFloat reads a required float query parameter
func queryFloat(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// queryFloatPtr reads an optional float query parameter as a pointer
func queryFloatPtr(r *http.Request, name string) *float64 {
	if v, ok := queryFloat(r, name); ok {
		return &v
	}
	return nil
}
