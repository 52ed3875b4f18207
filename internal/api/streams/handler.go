package streams

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

// StreamHandler serves streaming-session endpoints. Like updates are
// broadcast live to everyone watching the stream's room.
type StreamHandler struct {
	Store storage.StreamStore
	Hub   *ws.Hub
}

func (h *StreamHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Date        time.Time `json:"date"`
		URL         string    `json:"url"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Title == "" || req.URL == "" {
		api.WriteError(w, models.NewValidation("title and url are required"))
		return
	}

	stream := &models.Stream{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		URL:         req.URL,
		CreatorID:   identity.UserID,
	}
	if err := h.Store.Create(r.Context(), stream); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "stream created",
		"stream":  stream,
	})
}

func (h *StreamHandler) List(w http.ResponseWriter, r *http.Request) {
	streams, err := h.Store.List(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if streams == nil {
		streams = []*models.Stream{}
	}
	api.WriteJSON(w, http.StatusOK, streams)
}

func (h *StreamHandler) Get(w http.ResponseWriter, r *http.Request) {
	stream, err := h.Store.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("stream"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, stream)
}

// ToggleLike flips the caller's like and pushes the new count to the
// stream's room as stream:likeUpdate.
func (h *StreamHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]

	liked, total, err := h.Store.ToggleLike(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("stream"))
			return
		}
		api.WriteError(w, err)
		return
	}

	h.Hub.Publish(ws.StreamRoom(id), ws.Marshal("stream:likeUpdate", map[string]interface{}{
		"streamId": id,
		"likes":    total,
	}))

	message := "like removed"
	if liked {
		message = "like added"
	}
	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"likes":   total,
	})
}

// Delete removes a stream. Owner only.
func (h *StreamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]

	stream, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("stream"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if stream.CreatorID != identity.UserID {
		api.WriteError(w, models.NewForbidden("you do not own this stream"))
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "stream deleted"})
}
