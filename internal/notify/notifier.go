// Package notify creates persisted notifications and pushes them to
// connected clients. Durability comes first: the record is always
// written before any realtime delivery is attempted.
package notify

import (
	"context"
	"errors"
	"log"

	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
	"github.com/vibratto/vibratto-backend/internal/ws"
)

// Publisher is the realtime side of the fan-out. Satisfied by *ws.Hub.
type Publisher interface {
	Publish(channel string, data []byte)
}

// Notifier persists notifications and performs best-effort realtime
// delivery over the target user's private channel.
type Notifier struct {
	Store storage.NotificationStore
	Hub   Publisher
	// Pushed is called after each realtime push attempt. The hub does
	// not report whether anyone was listening, so this counts attempts,
	// not confirmed deliveries. May be nil.
	Pushed func()
}

func NewNotifier(store storage.NotificationStore, hub Publisher) *Notifier {
	return &Notifier{Store: store, Hub: hub}
}

// Notify persists a notification for the user, then pushes it on the
// user's private channel if one is live. Delivery is fire-and-forget
// and never rolls back or fails persistence.
func (n *Notifier) Notify(ctx context.Context, userID, message string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := n.Store.Create(ctx, notification); err != nil {
		return nil, models.NewInternal(err)
	}

	if n.Hub != nil {
		n.Hub.Publish(ws.UserChannel(userID), ws.Marshal("nuevaNotificacion", notification))
		if n.Pushed != nil {
			n.Pushed()
		}
	}

	log.Printf("[Notify] Notification created for user %s: %s", userID, message)
	return notification, nil
}

// MarkRead flips one record to read. Only the owner may do it, and the
// transition is one-way.
func (n *Notifier) MarkRead(ctx context.Context, notificationID, requesterID string) (*models.Notification, error) {
	notification, err := n.Store.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, models.NewNotFound("notification")
		}
		return nil, models.NewInternal(err)
	}
	if notification.UserID != requesterID {
		return nil, models.NewForbidden("you do not own this notification")
	}
	if err := n.Store.MarkRead(ctx, notificationID); err != nil {
		return nil, models.NewInternal(err)
	}
	notification.Read = true
	return notification, nil
}

// MarkAllRead marks every unread record of the user as read. Records
// are updated individually; the caller sees one aggregate outcome.
func (n *Notifier) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated, err := n.Store.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, models.NewInternal(err)
	}
	return updated, nil
}

// Delete removes a notification. Owner only.
func (n *Notifier) Delete(ctx context.Context, notificationID, requesterID string) error {
	notification, err := n.Store.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewNotFound("notification")
		}
		return models.NewInternal(err)
	}
	if notification.UserID != requesterID {
		return models.NewForbidden("you do not own this notification")
	}
	if err := n.Store.Delete(ctx, notificationID); err != nil {
		return models.NewInternal(err)
	}
	return nil
}

// List returns the user's notifications, newest first.
func (n *Notifier) List(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := n.Store.ListByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternal(err)
	}
	return notifications, nil
}
