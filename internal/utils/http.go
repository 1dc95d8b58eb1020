package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON shape of every API error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON marshals data and writes it with statusCode. A marshal failure
// is answered with 500 and returned to the caller.
//
//	WriteJSON(w, creds, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes an ErrorBody. code is a stable machine-readable tag
// such as "vault_locked".
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	_, _ = WriteJSON(w, ErrorBody{Error: message, Code: code}, statusCode)
}
