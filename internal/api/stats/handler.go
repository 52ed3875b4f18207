package stats

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// StatsHandler serves per-user platform metrics.
type StatsHandler struct {
	Users   storage.UserStore
	Streams storage.StreamStore
	Collabs storage.CollabStore
}

// Me handles GET /metrics/me: total stream views, follower count and
// the number of collaborations the user participates in.
func (h *StatsHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)

	user, err := h.Users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("user"))
			return
		}
		api.WriteError(w, err)
		return
	}
	streams, err := h.Streams.ListByCreator(r.Context(), identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	collabs, err := h.Collabs.ListByParticipant(r.Context(), identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	views := 0
	for _, s := range streams {
		views += s.Views
	}
	api.WriteJSON(w, http.StatusOK, map[string]int{
		"plays":     views,
		"followers": len(user.Followers),
		"collabs":   len(collabs),
	})
}

// RegisterRoutes attaches the stats endpoint. Requires auth.
func RegisterRoutes(protected *mux.Router, h *StatsHandler) {
	protected.HandleFunc("/metrics/me", api.Logged("Stats", h.Me)).Methods(http.MethodGet)
}
