package realtime

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes attaches the websocket endpoint. Authentication is
// part of the handshake itself, so it sits outside the HTTP auth chain.
func RegisterRoutes(r *mux.Router, h *WSHandler) {
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		log.Printf("[WS] Handshake from %s", req.RemoteAddr)
		h.ServeWS(w, req)
	})
}
