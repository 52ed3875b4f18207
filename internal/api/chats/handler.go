package chats

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/vibratto/vibratto-backend/internal/api"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

// ChatHandler serves the REST side of direct messages. Live delivery
// happens over the socket; these endpoints cover history and polling
// clients.
type ChatHandler struct {
	Store storage.ChatStore
	Hub   *ws.Hub
}

// Start handles POST /chats/start: opens (or returns) the conversation
// with another user.
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	var req struct {
		UserID string `json:"userId"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.UserID == "" || req.UserID == identity.UserID {
		api.WriteError(w, models.NewValidation("a different userId is required"))
		return
	}
	conv, err := h.Store.StartOrGet(r.Context(), identity.UserID, req.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, conv)
}

// List handles GET /chats: every conversation of the caller.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	convs, err := h.Store.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if convs == nil {
		convs = []*models.ChatConversation{}
	}
	api.WriteJSON(w, http.StatusOK, convs)
}

// Messages handles GET /chats/{id}/messages.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Store.Messages(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("conversation"))
			return
		}
		api.WriteError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, msgs)
}

// Send handles POST /chats/{id}/messages and mirrors the message to
// both private channels so connected clients see it immediately.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	id := mux.Vars(r)["id"]
	var req struct {
		Content string `json:"content"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.WriteError(w, err)
		return
	}
	if req.Content == "" {
		api.WriteError(w, models.NewValidation("content is required"))
		return
	}

	conv, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			api.WriteError(w, models.NewNotFound("conversation"))
			return
		}
		api.WriteError(w, err)
		return
	}
	if conv.Participants[0] != identity.UserID && conv.Participants[1] != identity.UserID {
		api.WriteError(w, models.NewForbidden("you are not part of this conversation"))
		return
	}

	msg, err := h.Store.AddMessage(r.Context(), id, identity.UserID, req.Content)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	recipient := conv.Participants[0]
	if recipient == identity.UserID {
		recipient = conv.Participants[1]
	}
	h.Hub.Publish(ws.UserChannel(recipient), ws.Marshal("mensaje:recibido", msg))
	h.Hub.Publish(ws.UserChannel(identity.UserID), ws.Marshal("mensaje:confirmado", msg))
	api.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "message sent",
		"chat":    msg,
	})
}
