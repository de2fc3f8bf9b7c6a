package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response shape. Success responses carry data and
// optionally a message; failures carry a message only.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respondWithJSON writes a success envelope.
func respondWithJSON(w http.ResponseWriter, code int, data interface{}) {
	writeEnvelope(w, code, Envelope{Success: true, Data: data})
}

// respondWithMessage writes a success envelope with both data and a message.
func respondWithMessage(w http.ResponseWriter, code int, data interface{}, message string) {
	writeEnvelope(w, code, Envelope{Success: true, Data: data, Message: message})
}

// respondWithError writes a failure envelope.
func respondWithError(w http.ResponseWriter, code int, message string) {
	writeEnvelope(w, code, Envelope{Success: false, Message: message})
}

// respondStorageError logs the real failure and hands the client a generic
// 500. Storage detail never reaches the response body.
func respondStorageError(w http.ResponseWriter, operation string, err error) {
	slog.Error("Storage operation failed", "operation", operation, "error", err)
	respondWithError(w, http.StatusInternalServerError, ErrMsgInternalServer)
}

func writeEnvelope(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// decodeJSON decodes the request body into dst, rejecting unknown shapes the
// way the rest of the API reports invalid payloads.
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
