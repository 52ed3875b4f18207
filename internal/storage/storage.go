// Package storage defines the persistence interfaces consumed by the
// handlers and the recommendation core. Two backends exist: the
// in-memory maps under storage/memory (default, also the test double)
// and the PostgreSQL implementation under storage/postgres.
package storage

import (
	"context"
	"errors"

	"github.com/vibratto/vibratto-backend/internal/models"
)

// ErrNotFound is returned by every store when the requested record
// does not exist. Dangling references resolve to this, never a panic.
var ErrNotFound = errors.New("record not found")

// UserStore persists accounts, profiles and the saved-recommendation
// ledger that lives on the user record.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	// ListMusicians returns every musician profile except excludeID.
	ListMusicians(ctx context.Context, excludeID string) ([]*models.User, error)

	// SaveRecommendation appends the reference unless the (kind, item)
	// pair is already saved. It reports whether anything was added.
	SaveRecommendation(ctx context.Context, userID string, ref models.SavedRecommendation) (bool, error)
	ListSaved(ctx context.Context, userID string) ([]models.SavedRecommendation, error)
	// DeleteSaved removes the entry with the given item ID. Deleting an
	// absent entry is a no-op, not an error.
	DeleteSaved(ctx context.Context, userID, itemID string) error
}

// EventStore persists event listings.
type EventStore interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// ListUpcoming returns future-dated events, optionally restricted
	// to a location (empty string means no location filter).
	ListUpcoming(ctx context.Context, location string) ([]*models.Event, error)
	// ToggleLike adds userID to the like list, or removes it if already
	// present. Returns the new liked state and total count.
	ToggleLike(ctx context.Context, eventID, userID string) (bool, int, error)
	Delete(ctx context.Context, id string) error
}

// CollabStore persists collaborations, their participants and chat.
type CollabStore interface {
	Create(ctx context.Context, c *models.Collab) error
	GetByID(ctx context.Context, id string) (*models.Collab, error)
	ListOpen(ctx context.Context) ([]*models.Collab, error)
	ListByParticipant(ctx context.Context, userID string) ([]*models.Collab, error)
	AddParticipant(ctx context.Context, collabID string, p models.Participant) error
	AddMessage(ctx context.Context, collabID string, m models.CollabMessage) error
	SetState(ctx context.Context, collabID, state string) error
	Delete(ctx context.Context, id string) error
}

// StreamStore persists streaming sessions.
type StreamStore interface {
	Create(ctx context.Context, s *models.Stream) error
	GetByID(ctx context.Context, id string) (*models.Stream, error)
	List(ctx context.Context) ([]*models.Stream, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Stream, error)
	ToggleLike(ctx context.Context, streamID, userID string) (bool, int, error)
	Delete(ctx context.Context, id string) error
}

// NotificationStore persists per-user notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead flips every unread record for the user and returns
	// how many were updated.
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Delete(ctx context.Context, id string) error
}

// ChatStore persists direct-message conversations.
type ChatStore interface {
	StartOrGet(ctx context.Context, user1, user2 string) (*models.ChatConversation, error)
	Get(ctx context.Context, conversationID string) (*models.ChatConversation, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ChatConversation, error)
	AddMessage(ctx context.Context, conversationID, senderID, content string) (*models.ChatMessage, error)
	Messages(ctx context.Context, conversationID string) ([]models.ChatMessage, error)
}
