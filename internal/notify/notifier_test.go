package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage/memory"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

type capturePublisher struct {
	channels []string
	payloads [][]byte
}

func (p *capturePublisher) Publish(channel string, data []byte) {
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, data)
}

func TestNotifyPersistsThenPushes(t *testing.T) {
	store := memory.NewNotificationStore()
	pub := &capturePublisher{}
	n := NewNotifier(store, pub)

	notification, err := n.Notify(context.Background(), "u1", "alguien se unio a tu colaboracion")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if notification.ID == "" {
		t.Error("notification not assigned an ID")
	}

	// Persisted regardless of delivery.
	stored, err := store.GetByID(context.Background(), notification.ID)
	if err != nil {
		t.Fatalf("notification not persisted: %v", err)
	}
	if stored.Read {
		t.Error("new notification should start unread")
	}

	if len(pub.channels) != 1 || pub.channels[0] != ws.UserChannel("u1") {
		t.Fatalf("expected push on %q, got %v", ws.UserChannel("u1"), pub.channels)
	}
	var frame struct {
		Event string               `json:"event"`
		Data  *models.Notification `json:"data"`
	}
	if err := json.Unmarshal(pub.payloads[0], &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if frame.Event != "nuevaNotificacion" || frame.Data.ID != notification.ID {
		t.Fatalf("unexpected frame: %+v", frame)
	}
}

func TestNotifyWithoutHubStillPersists(t *testing.T) {
	store := memory.NewNotificationStore()
	n := NewNotifier(store, nil)

	notification, err := n.Notify(context.Background(), "u1", "hola")
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if _, err := store.GetByID(context.Background(), notification.ID); err != nil {
		t.Fatalf("notification not persisted without hub: %v", err)
	}
}

func TestNotifyPushCallback(t *testing.T) {
	store := memory.NewNotificationStore()
	n := NewNotifier(store, &capturePublisher{})
	calls := 0
	n.Pushed = func() { calls++ }

	n.Notify(context.Background(), "u1", "uno")
	n.Notify(context.Background(), "u1", "dos")
	if calls != 2 {
		t.Fatalf("expected 2 push callbacks, got %d", calls)
	}

	// No hub, no push attempt.
	offline := NewNotifier(memory.NewNotificationStore(), nil)
	offline.Pushed = func() { calls++ }
	offline.Notify(context.Background(), "u1", "tres")
	if calls != 2 {
		t.Fatal("push callback fired without a hub")
	}
}

func TestMarkReadOwnerOnly(t *testing.T) {
	store := memory.NewNotificationStore()
	n := NewNotifier(store, nil)
	ctx := context.Background()

	created, _ := n.Notify(ctx, "owner", "tu evento recibio un me gusta")

	_, err := n.MarkRead(ctx, created.ID, "intruder")
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != models.ErrKindForbidden {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	stored, _ := store.GetByID(ctx, created.ID)
	if stored.Read {
		t.Error("read flag flipped by a rejected request")
	}

	updated, err := n.MarkRead(ctx, created.ID, "owner")
	if err != nil {
		t.Fatalf("owner MarkRead: %v", err)
	}
	if !updated.Read {
		t.Error("read flag not set for owner")
	}
}

func TestMarkReadUnknownNotification(t *testing.T) {
	n := NewNotifier(memory.NewNotificationStore(), nil)
	_, err := n.MarkRead(context.Background(), "missing", "u1")
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != models.ErrKindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDeleteOwnerOnly(t *testing.T) {
	store := memory.NewNotificationStore()
	n := NewNotifier(store, nil)
	ctx := context.Background()
	created, _ := n.Notify(ctx, "owner", "m")

	err := n.Delete(ctx, created.ID, "intruder")
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != models.ErrKindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := n.Delete(ctx, created.ID, "owner"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if list, _ := n.List(ctx, "owner"); len(list) != 0 {
		t.Fatalf("notification survived delete: %v", list)
	}
}
