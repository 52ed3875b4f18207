package events

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/notify"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// EventHandler serves event CRUD and likes.
type EventHandler struct {
	Store    storage.EventStore
	Notifier *notify.Notifier
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	var req struct {
		Title    string    `json:"title"`
		Location string    `json:"location"`
		Date     time.Time `json:"date"`
		Price    float64   `json:"price"`
		Genres   []string  `json:"genres"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Title == "" || req.Location == "" || req.Date.IsZero() {
		api.WriteError(w, models.NewValidation("title, location and date are required"))
		return
	}

	event := &models.Event{
		Title:     req.Title,
		Location:  req.Location,
		Date:      req.Date,
		Price:     req.Price,
		Genres:    req.Genres,
		CreatorID: identity.UserID,
	}
	if err := h.Store.Create(r.Context(), event); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "event created",
		"event":   event,
	})
}

// List returns upcoming events, optionally filtered by ?location=.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.ListUpcoming(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if events == nil {
		events = []*models.Event{}
	}
	api.WriteJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.Store.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("event"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, event)
}

// ToggleLike adds or removes the caller's like and notifies the event
// creator when a like is added.
func (h *EventHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]

	event, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("event"))
			return
		}
		api.WriteError(w, err)
		return
	}

	liked, total, err := h.Store.ToggleLike(r.Context(), id, identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if liked && event.CreatorID != identity.UserID {
		// Best-effort; a failed notification must not fail the like.
		if _, err := h.Notifier.Notify(r.Context(), event.CreatorID,
			fmt.Sprintf("%s liked your event %q", identity.Name, event.Title)); err != nil {
			log.Printf("[Events] Failed to notify creator %s: %v", event.CreatorID, err)
		}
	}
	message := "like removed"
	if liked {
		message = "like added"
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"likes":   total,
	})
}

// Delete removes an event. Owner only.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]

	event, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("event"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if event.CreatorID != identity.UserID {
		api.WriteError(w, models.NewForbidden("you do not own this event"))
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}
