package chats

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
)

// RegisterRoutes attaches the direct-message endpoints. All require auth.
func RegisterRoutes(protected *mux.Router, h *ChatHandler) {
	protected.HandleFunc("/chats/start", api.Logged("Chats", h.Start)).Methods(http.MethodPost)
	protected.HandleFunc("/chats", api.Logged("Chats", h.List)).Methods(http.MethodGet)
	protected.HandleFunc("/chats/{id}/messages", api.Logged("Chats", h.Messages)).Methods(http.MethodGet)
	protected.HandleFunc("/chats/{id}/messages", api.Logged("Chats", h.Send)).Methods(http.MethodPost)
}
