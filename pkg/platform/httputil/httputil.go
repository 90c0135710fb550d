// Package httputil centralizes JSON response and error envelope writing so
// every handler returns the same shapes.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope. Description is omitted when
// empty so internal details never leak by accident.
func WriteError(w http.ResponseWriter, status int, code, description string) {
	body := map[string]string{"error": code}
	if description != "" {
		body["error_description"] = description
	}
	WriteJSON(w, status, body)
}
