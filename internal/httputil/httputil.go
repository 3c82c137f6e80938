package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the shape of every error response. Error is the status text,
// a human label rather than a machine code.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: http.StatusText(status), Message: message})
}

// WriteErrorDetails is WriteError with a details payload.
func WriteErrorDetails(w http.ResponseWriter, status int, message string, details any) {
	WriteJSON(w, status, ErrorBody{Error: http.StatusText(status), Message: message, Details: details})
}
