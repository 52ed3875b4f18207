package streams

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
)

// RegisterRoutes attaches the stream endpoints. All require auth.
func RegisterRoutes(protected *mux.Router, h *StreamHandler) {
	protected.HandleFunc("/streams", api.Logged("Streams", h.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/streams", api.Logged("Streams", h.List)).Methods(http.MethodGet)
	protected.HandleFunc("/streams/{id}", api.Logged("Streams", h.Get)).Methods(http.MethodGet)
	protected.HandleFunc("/streams/{id}/like", api.Logged("Streams", h.ToggleLike)).Methods(http.MethodPost)
	protected.HandleFunc("/streams/{id}", api.Logged("Streams", h.Delete)).Methods(http.MethodDelete)
}
