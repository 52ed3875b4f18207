package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

// relayTopic is the single valkey pub/sub channel all instances share.
const relayTopic = "vibratto:broadcast"

// envelope is the relay wire format. Origin filters out our own
// messages when they come back around.
type envelope struct {
	Origin  string          `json:"origin"`
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// ValkeyRelay mirrors hub broadcasts across server instances through a
// valkey pub/sub channel, so a message published on one process reaches
// clients attached to another. Delivery stays fire-and-forget: relay
// errors are logged, never surfaced to publishers.
type ValkeyRelay struct {
	client valkey.Client
	origin string
	hub    *Hub
}

// NewValkeyRelay connects to valkey and wires the relay into the hub.
func NewValkeyRelay(addr string, hub *Hub) (*ValkeyRelay, error) {
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	r := &ValkeyRelay{
		client: client,
		origin: uuid.NewString(),
		hub:    hub,
	}
	hub.SetRelay(r)
	return r, nil
}

// Publish forwards a local broadcast to the other instances.
func (r *ValkeyRelay) Publish(channel string, data []byte) {
	payload, err := json.Marshal(envelope{Origin: r.origin, Channel: channel, Data: data})
	if err != nil {
		return
	}
	cmd := r.client.B().Publish().Channel(relayTopic).Message(string(payload)).Build()
	if err := r.client.Do(context.Background(), cmd).Error(); err != nil {
		log.Printf("[Relay] Publish failed: %v", err)
	}
}

// Listen subscribes to the relay topic and re-broadcasts foreign
// messages locally. Blocks until ctx is done or the connection drops.
func (r *ValkeyRelay) Listen(ctx context.Context) error {
	cmd := r.client.B().Subscribe().Channel(relayTopic).Build()
	return r.client.Receive(ctx, cmd, func(msg valkey.PubSubMessage) {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Message), &env); err != nil {
			log.Printf("[Relay] Dropping malformed relay message: %v", err)
			return
		}
		if env.Origin == r.origin {
			return // our own broadcast echoed back
		}
		r.hub.PublishRemote(env.Channel, env.Data)
	})
}

// Close releases the valkey connection.
func (r *ValkeyRelay) Close() {
	r.client.Close()
}
