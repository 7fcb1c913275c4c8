// Package httpapi carries the JSON envelope shared by every API namespace.
// Success bodies are endpoint-specific; failures always serialize as
// ErrorEnvelope so clients switch on Code instead of parsing message text.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the uniform failure body. Code is a stable machine token
// such as CONTRACT_NOT_FOUND; Message is for humans and may change freely.
// Meta carries correlation data, typically the request id.
type ErrorEnvelope struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// WriteJSON serializes payload with JSON headers already set. A nil payload
// writes the status line only; StatusNoContent responses rely on that.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteError emits the standard failure envelope.
func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
