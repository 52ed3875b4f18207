package recommendations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/recommend"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// RecommendationHandler serves personalized recommendations and the
// saved-recommendation ledger.
type RecommendationHandler struct {
	Engine *recommend.Engine
	Users  storage.UserStore
	Events storage.EventStore
}

// Get handles GET /recommendations for the authenticated user.
func (h *RecommendationHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	recs, err := h.Engine.Recommend(r.Context(), identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, recs)
}

// Save handles POST /recommendations/saved. Idempotent per
// (kind, id); unknown kinds are rejected at this boundary.
func (h *RecommendationHandler) Save(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	var req struct {
		Kind string `json:"kind"`
		ID   string `json:"id"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if !models.ValidRecommendationKind(req.Kind) {
		api.WriteError(w, models.NewValidation("kind must be event or musician"))
		return
	}
	if req.ID == "" {
		api.WriteError(w, models.NewValidation("id is required"))
		return
	}

	ref := models.SavedRecommendation{Kind: req.Kind, ItemID: req.ID}
	if _, err := h.Users.SaveRecommendation(r.Context(), identity.UserID, ref); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("user"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "recommendation saved"})
}

// ListSaved handles GET /recommendations/saved, resolving each entry
// against its referenced entity. A dangling reference yields a null
// item rather than failing the whole list.
func (h *RecommendationHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	saved, err := h.Users.ListSaved(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("user"))
			return
		}
		api.WriteError(w, err)
		return
	}

	resolved := make([]models.ResolvedRecommendation, 0, len(saved))
	for _, ref := range saved {
		entry := models.ResolvedRecommendation{Kind: ref.Kind, ItemID: ref.ItemID}
		switch ref.Kind {
		case models.RecommendationEvent:
			if event, err := h.Events.GetByID(r.Context(), ref.ItemID); err == nil {
				entry.Item = event
			}
		case models.RecommendationMusician:
			if user, err := h.Users.GetByID(r.Context(), ref.ItemID); err == nil {
				entry.Item = user.Public()
			}
		}
		resolved = append(resolved, entry)
	}
	api.WriteJSON(w, http.StatusOK, resolved)
}

// DeleteSaved handles DELETE /recommendations/saved/{id}. Deleting an
// absent entry succeeds.
func (h *RecommendationHandler) DeleteSaved(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	if err := h.Users.DeleteSaved(r.Context(), identity.UserID, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("user"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "recommendation removed"})
}
