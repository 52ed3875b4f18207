package events

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
)

// RegisterRoutes attaches the event endpoints. All require auth.
func RegisterRoutes(protected *mux.Router, h *EventHandler) {
	protected.HandleFunc("/events", api.Logged("Events", h.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/events", api.Logged("Events", h.List)).Methods(http.MethodGet)
	protected.HandleFunc("/events/{id}", api.Logged("Events", h.Get)).Methods(http.MethodGet)
	protected.HandleFunc("/events/{id}/like", api.Logged("Events", h.ToggleLike)).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id}", api.Logged("Events", h.Delete)).Methods(http.MethodDelete)
}
