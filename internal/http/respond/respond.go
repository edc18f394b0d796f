// Package respond writes the API's uniform JSON envelope. Every endpoint,
// success or failure, answers with {code, message, data}; failures carry the
// caller-visible taxonomy (401 unauthenticated, 403 forbidden, 404 not found,
// 409 conflict, 400 invalid input) in the code and a short message only.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the wire shape of every response. Code mirrors the HTTP status
// so clients reading the body alone see the same outcome.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a success response carrying data.
func JSON(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Code: status, Message: message, Data: data})
}

// Error writes a failure response. Only the short human-readable message
// crosses the wire; internal error detail stays in the server log.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Code: status, Message: message})
}

func write(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode response payload failed", slog.String("error", err.Error()))
	}
}
