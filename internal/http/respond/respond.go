// Package respond writes sandbox API responses. Errors use the {"detail": ...}
// shape the client reads its messages from.
package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorBody is the error payload.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes payload with status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

// Error writes {"detail": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Detail: message})
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
