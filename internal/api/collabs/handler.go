package collabs

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/notify"
	"github.com/vibratto/vibratto-backend/internal/storage"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

// CollabHandler serves collaboration endpoints. Joins and chat messages
// are both persisted and broadcast to the collab's room.
type CollabHandler struct {
	Store    storage.CollabStore
	Notifier *notify.Notifier
	Hub      *ws.Hub
}

func (h *CollabHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	var req struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Genre        string   `json:"genre"`
		Tags         []string `json:"tags"`
		Location     string   `json:"location"`
		Requirements string   `json:"requirements"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Title == "" || req.Description == "" || req.Genre == "" {
		api.WriteError(w, models.NewValidation("title, description and genre are required"))
		return
	}

	collab := &models.Collab{
		Title:        req.Title,
		CreatorID:    identity.UserID,
		Description:  req.Description,
		Genre:        req.Genre,
		Tags:         req.Tags,
		Location:     req.Location,
		Requirements: req.Requirements,
		Participants: []models.Participant{{UserID: identity.UserID, Role: "Creador"}},
	}
	if err := h.Store.Create(r.Context(), collab); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "collaboration created",
		"collab":  collab,
	})
}

func (h *CollabHandler) List(w http.ResponseWriter, r *http.Request) {
	collabs, err := h.Store.ListOpen(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if collabs == nil {
		collabs = []*models.Collab{}
	}
	api.WriteJSON(w, http.StatusOK, collabs)
}

func (h *CollabHandler) Get(w http.ResponseWriter, r *http.Request) {
	collab, err := h.Store.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("collaboration"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, collab)
}

// Join adds the caller as a participant, notifies the creator and
// announces the new participant to the room.
func (h *CollabHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]
	var req struct {
		Role string `json:"role"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Role == "" {
		api.WriteError(w, models.NewValidation("role is required"))
		return
	}

	collab, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("collaboration"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if collab.State != models.CollabOpen {
		api.WriteError(w, models.NewValidation("collaboration is not open"))
		return
	}

	participant := models.Participant{UserID: identity.UserID, Role: req.Role}
	if err := h.Store.AddParticipant(r.Context(), id, participant); err != nil {
		api.WriteError(w, err)
		return
	}

	if _, err := h.Notifier.Notify(r.Context(), collab.CreatorID,
		fmt.Sprintf("%s joined your collaboration %q", identity.Name, collab.Title)); err != nil {
		api.WriteError(w, err)
		return
	}
	h.Hub.Publish(ws.CollabRoom(id), ws.Marshal("nuevoParticipante", participant))

	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "joined collaboration"})
}

// SendMessage appends a chat message and broadcasts it to the room.
// Participants only.
func (h *CollabHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]
	var req struct {
		Text string `json:"text"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Text == "" {
		api.WriteError(w, models.NewValidation("text is required"))
		return
	}

	collab, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("collaboration"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if !collab.HasParticipant(identity.UserID) {
		api.WriteError(w, models.NewForbidden("you are not a participant of this collaboration"))
		return
	}

	message := models.CollabMessage{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Text:      req.Text,
		Timestamp: time.Now(),
	}
	if err := h.Store.AddMessage(r.Context(), id, message); err != nil {
		api.WriteError(w, err)
		return
	}

	if collab.CreatorID != identity.UserID {
		if _, err := h.Notifier.Notify(r.Context(), collab.CreatorID,
			fmt.Sprintf("%s sent a message in %q", identity.Name, collab.Title)); err != nil {
			api.WriteError(w, err)
			return
		}
	}
	h.Hub.Publish(ws.CollabRoom(id), ws.Marshal("chat:message", message))

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "message sent",
		"chat":    message,
	})
}

// Close sets the collaboration state to closed. Owner only.
func (h *CollabHandler) Close(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]

	collab, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("collaboration"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if collab.CreatorID != identity.UserID {
		api.WriteError(w, models.NewForbidden("only the creator can close this collaboration"))
		return
	}
	if err := h.Store.SetState(r.Context(), id, models.CollabClosed); err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "collaboration closed"})
}
