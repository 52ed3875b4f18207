package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/vibratto/vibratto-backend/internal/auth"
	"github.com/vibratto/vibratto-backend/internal/middleware"
	"github.com/vibratto/vibratto-backend/internal/storage"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Cross-origin policy is enforced by the HTTP layer.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WSHandler upgrades authenticated connections and dispatches inbound
// socket events: room membership changes and direct messages.
type WSHandler struct {
	Hub      *ws.Hub
	Verifier *auth.Verifier
	Chats    storage.ChatStore
	// Connected/Disconnected track the live-connection gauge. May be nil.
	Connected    func()
	Disconnected func()
}

// ServeWS performs the handshake. The bearer credential is checked
// before the upgrade: a missing or invalid token is rejected with 401
// and the connection never reaches the hub.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		http.Error(w, "access denied, no token provided", http.StatusUnauthorized)
		return
	}
	identity, err := h.Verifier.Verify(token)
	if err != nil {
		log.Printf("[WS] Rejected handshake: %v", err)
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := ws.NewClient(identity.UserID, conn)
	h.Hub.Register <- client
	if h.Connected != nil {
		h.Connected()
	}

	go client.WritePump()
	go func() {
		defer func() {
			if h.Disconnected != nil {
				h.Disconnected()
			}
		}()
		client.ReadPump(h.Hub, func(event string, data json.RawMessage) {
			h.dispatch(client, identity, event, data)
		})
	}()
}

func (h *WSHandler) dispatch(client *ws.Client, identity *auth.Identity, event string, data json.RawMessage) {
	switch event {
	case "room:join":
		var req struct {
			Room string `json:"room"`
		}
		if err := json.Unmarshal(data, &req); err != nil || req.Room == "" {
			return
		}
		h.Hub.Join <- ws.Subscription{Client: client, Channel: req.Room}

	case "room:leave":
		var req struct {
			Room string `json:"room"`
		}
		if err := json.Unmarshal(data, &req); err != nil || req.Room == "" {
			return
		}
		h.Hub.Leave <- ws.Subscription{Client: client, Channel: req.Room}

	case "mensaje:nuevo":
		h.directMessage(client, identity, data)

	default:
		log.Printf("[WS] Ignoring unknown event %q from user %s", event, identity.UserID)
	}
}

// directMessage persists the message, delivers it to the recipient's
// private channel as mensaje:recibido and confirms it back to the
// sender as mensaje:confirmado.
func (h *WSHandler) directMessage(client *ws.Client, identity *auth.Identity, data json.RawMessage) {
	var req struct {
		RecipientID string `json:"recipientId"`
		Content     string `json:"content"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.RecipientID == "" || req.Content == "" {
		return
	}

	ctx := context.Background()
	conv, err := h.Chats.StartOrGet(ctx, identity.UserID, req.RecipientID)
	if err != nil {
		log.Printf("[WS] Failed to open conversation for user %s: %v", identity.UserID, err)
		return
	}
	msg, err := h.Chats.AddMessage(ctx, conv.ID, identity.UserID, req.Content)
	if err != nil {
		log.Printf("[WS] Failed to persist message for user %s: %v", identity.UserID, err)
		return
	}

	h.Hub.Publish(ws.UserChannel(req.RecipientID), ws.Marshal("mensaje:recibido", msg))
	h.Hub.Publish(ws.UserChannel(identity.UserID), ws.Marshal("mensaje:confirmado", msg))
	log.Printf("[WS] Message from %s to %s", identity.UserID, req.RecipientID)
}
