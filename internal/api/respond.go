// Package api holds helpers shared by every resource handler: JSON
// responses, the stable error shape, and request logging.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// ExposeDetail controls whether internal error detail is serialized.
// Set once at startup from the environment; true outside production.
var ExposeDetail = true

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

// WriteError writes err in the stable error shape. Unrecognized errors
// become internal errors; storage.ErrNotFound maps to not_found.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *models.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, storage.ErrNotFound):
		apiErr = models.NewNotFound("resource")
	default:
		apiErr = models.NewInternal(err)
	}
	if !ExposeDetail {
		apiErr = &models.APIError{Kind: apiErr.Kind, Message: apiErr.Message}
	}
	WriteJSON(w, apiErr.Status(), map[string]interface{}{"error": apiErr})
}

// Logged wraps a handler with the per-request access log line.
func Logged(tag string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[%s] %s %s", tag, r.Method, r.URL.Path)
		h(w, r)
	}
}

// Decode parses the JSON request body into dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidation("invalid request body")
	}
	return nil
}
