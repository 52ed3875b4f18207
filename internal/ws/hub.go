package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Channel name prefixes. Every authenticated connection gets a private
// user channel; rooms are joined explicitly.
const (
	userPrefix   = "user:"
	collabPrefix = "collab:"
	streamPrefix = "stream:"
)

func UserChannel(userID string) string  { return userPrefix + userID }
func CollabRoom(collabID string) string { return collabPrefix + collabID }
func StreamRoom(streamID string) string { return streamPrefix + streamID }

// Event is the wire envelope for every realtime payload.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Marshal encodes an event envelope, returning nil on failure (the
// payloads are our own structs, so failure means a programming error).
func Marshal(event string, data interface{}) []byte {
	b, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("[WS] Failed to marshal event %q: %v", event, err)
		return nil
	}
	return b
}

// Subscription pairs a client with a channel name for join/leave.
type Subscription struct {
	Client  *Client
	Channel string
}

// BroadcastMessage carries a payload to every member of a channel.
// Remote marks messages that arrived via the relay so they are not
// published back to it.
type BroadcastMessage struct {
	Channel string
	Data    []byte
	Remote  bool
}

// Relay forwards broadcasts to other server instances. Optional.
type Relay interface {
	Publish(channel string, data []byte)
}

// Hub maintains one addressable channel per authenticated connection
// (keyed by user id) and per collaboration/stream room. The run loop is
// the only writer of the subscription table, so a connection's
// memberships appear and disappear atomically relative to broadcasts.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Join       chan Subscription
	Leave      chan Subscription
	Broadcast  chan BroadcastMessage

	mu       sync.RWMutex
	channels map[string]map[*Client]bool // channel name -> clients
	members  map[*Client]map[string]bool // client -> channel names
	relay    Relay
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Join:       make(chan Subscription),
		Leave:      make(chan Subscription),
		Broadcast:  make(chan BroadcastMessage, 256),
		channels:   make(map[string]map[*Client]bool),
		members:    make(map[*Client]map[string]bool),
	}
}

// SetRelay attaches the cross-instance relay. Must be called before Run.
func (h *Hub) SetRelay(r Relay) {
	h.relay = r
}

// Run processes registrations, room membership changes and broadcasts
// until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			// Auto-subscribe to the private channel, exactly once.
			h.subscribe(client, UserChannel(client.UserID))
			log.Printf("[WS] Client connected: user=%s", client.UserID)

		case client := <-h.Unregister:
			h.removeAll(client)
			log.Printf("[WS] Client disconnected: user=%s", client.UserID)

		case sub := <-h.Join:
			h.subscribe(sub.Client, sub.Channel)
			log.Printf("[WS] User %s joined %s", sub.Client.UserID, sub.Channel)

		case sub := <-h.Leave:
			h.unsubscribe(sub.Client, sub.Channel)
			log.Printf("[WS] User %s left %s", sub.Client.UserID, sub.Channel)

		case msg := <-h.Broadcast:
			h.deliver(msg)
		}
	}
}

// Publish queues a fire-and-forget broadcast to every member of the
// channel. It never blocks on delivery and never reports failure: a
// closed connection simply misses messages sent after closure.
func (h *Hub) Publish(channel string, data []byte) {
	if data == nil {
		return
	}
	h.Broadcast <- BroadcastMessage{Channel: channel, Data: data}
}

// PublishRemote injects a broadcast received from another instance.
func (h *Hub) PublishRemote(channel string, data []byte) {
	if data == nil {
		return
	}
	h.Broadcast <- BroadcastMessage{Channel: channel, Data: data, Remote: true}
}

// Count returns the number of live connections on a channel.
func (h *Hub) Count(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) subscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true
	if h.members[client] == nil {
		h.members[client] = make(map[string]bool)
	}
	h.members[client][channel] = true
}

func (h *Hub) unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}
	if m, ok := h.members[client]; ok {
		delete(m, channel)
	}
}

// removeAll releases every membership of the client in one locked
// section, so no broadcast can observe a partially removed connection,
// and closes its send channel exactly once.
func (h *Hub) removeAll(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.members[client]
	if !ok {
		return
	}
	for channel := range m {
		if clients, ok := h.channels[channel]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}
	}
	delete(h.members, client)
	close(client.Send)
}

func (h *Hub) deliver(msg BroadcastMessage) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.channels[msg.Channel] {
		select {
		case client.Send <- msg.Data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Evict clients whose send buffer is full; they reconnect rather
	// than stall the whole channel.
	for _, client := range slow {
		log.Printf("[WS] Evicting slow client: user=%s", client.UserID)
		h.removeAll(client)
	}

	if h.relay != nil && !msg.Remote {
		h.relay.Publish(msg.Channel, msg.Data)
	}
}
