package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// jsonError is the standard shape of API error responses.
type jsonError struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response, falling back to plain text if
// encoding fails.
func writeError(w http.ResponseWriter, status int, message string) {
	if err := writeJSON(w, status, jsonError{Message: message, Code: status}); err != nil {
		log.Printf("ERROR: failed to write JSON error response: %v", err)
		http.Error(w, message, status)
	}
}
