package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/maumercado/scaleapi-go/internal/logger"
)

// ErrorResponse is the error body served by the API
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      message,
	})
}

// NotFound answers unknown routes in the API's error shape
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "Not found: "+r.URL.Path)
}

// MethodNotAllowed answers known routes called with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed")
}

// decodeObject reads a JSON object body. An empty body decodes to an empty
// object. Numbers are kept as json.Number.
func decodeObject(r *http.Request) (map[string]any, error) {
	body := make(map[string]any)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return body, nil
}
