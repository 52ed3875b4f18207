package notifications

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
)

// RegisterRoutes attaches the notification endpoints. All require auth.
func RegisterRoutes(protected *mux.Router, h *NotificationHandler) {
	protected.HandleFunc("/notifications", api.Logged("Notifs", h.List)).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", api.Logged("Notifs", h.MarkAllRead)).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id}/read", api.Logged("Notifs", h.MarkRead)).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id}", api.Logged("Notifs", h.Delete)).Methods(http.MethodDelete)
}
