package notifications

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/notify"
)

// NotificationHandler serves the authenticated user's notifications.
type NotificationHandler struct {
	Notifier *notify.Notifier
}

// List handles GET /notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	notifications, err := h.Notifier.List(r.Context(), identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	api.WriteJSON(w, http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	notification, err := h.Notifier.MarkRead(r.Context(), mux.Vars(r)["id"], identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "notification marked as read",
		"notification": notification,
	})
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	updated, err := h.Notifier.MarkAllRead(r.Context(), identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "all notifications marked as read",
		"updated": updated,
	})
}

// Delete handles DELETE /notifications/{id}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	if err := h.Notifier.Delete(r.Context(), mux.Vars(r)["id"], identity.UserID); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}
