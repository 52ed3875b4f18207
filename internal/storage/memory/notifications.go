package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// NotificationStore manages persisted notifications in memory. Records
// are copied on the way in and out, so callers never share memory with
// the store.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]*models.Notification
	userIndex     map[string][]string // userID -> []notificationID, oldest first
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		notifications: make(map[string]*models.Notification),
		userIndex:     make(map[string][]string),
	}
}

func (s *NotificationStore) Create(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.notifications[n.ID] = n.Clone()
	s.userIndex[n.UserID] = append(s.userIndex[n.UserID], n.ID)
	return nil
}

func (s *NotificationStore) GetByID(_ context.Context, id string) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return n.Clone(), nil
}

// ListByUser returns the user's notifications, newest first.
func (s *NotificationStore) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.userIndex[userID]
	out := make([]*models.Notification, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if n, ok := s.notifications[ids[i]]; ok {
			out = append(out, n.Clone())
		}
	}
	return out, nil
}

func (s *NotificationStore) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return storage.ErrNotFound
	}
	n.Read = true
	return nil
}

// MarkAllRead flips every unread record for the user. Each record is
// updated individually; concurrent callers race with last-writer-wins.
func (s *NotificationStore) MarkAllRead(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, id := range s.userIndex[userID] {
		if n, ok := s.notifications[id]; ok && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (s *NotificationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return storage.ErrNotFound
	}
	ids := s.userIndex[n.UserID]
	for i, nid := range ids {
		if nid == id {
			s.userIndex[n.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(s.notifications, id)
	return nil
}
