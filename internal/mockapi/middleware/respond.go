package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError writes the API's {"status_code", "error"} error body
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status_code": status,
		"error":       message,
	})
}
