package collabs

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
)

// RegisterRoutes attaches the collaboration endpoints. All require auth.
func RegisterRoutes(protected *mux.Router, h *CollabHandler) {
	protected.HandleFunc("/collabs", api.Logged("Collabs", h.Create)).Methods(http.MethodPost)
	protected.HandleFunc("/collabs", api.Logged("Collabs", h.List)).Methods(http.MethodGet)
	protected.HandleFunc("/collabs/{id}", api.Logged("Collabs", h.Get)).Methods(http.MethodGet)
	protected.HandleFunc("/collabs/{id}/join", api.Logged("Collabs", h.Join)).Methods(http.MethodPost)
	protected.HandleFunc("/collabs/{id}/messages", api.Logged("Collabs", h.SendMessage)).Methods(http.MethodPost)
	protected.HandleFunc("/collabs/{id}/close", api.Logged("Collabs", h.Close)).Methods(http.MethodPost)
}
