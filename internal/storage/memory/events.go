package memory

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// EventStore manages event listings in memory. Records are copied on
// the way in and out, so callers never share memory with the store.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]*models.Event
	order  []string // insertion order, keeps scans deterministic
}

func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]*models.Event)}
}

func (s *EventStore) Create(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.LikeCount = len(e.Likes)
	s.events[e.ID] = e.Clone()
	s.order = append(s.order, e.ID)

	log.Printf("[Events] Created event: ID=%s, Title=%s, CreatorID=%s", e.ID, e.Title, e.CreatorID)
	return nil
}

func (s *EventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return e.Clone(), nil
}

// ListUpcoming returns future-dated events in insertion order. A
// non-empty location restricts the pool to that location.
func (s *EventStore) ListUpcoming(_ context.Context, location string) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	var out []*models.Event
	for _, id := range s.order {
		e, ok := s.events[id]
		if !ok {
			continue
		}
		if !e.Upcoming(now) {
			continue
		}
		if location != "" && e.Location != location {
			continue
		}
		out = append(out, e.Clone())
	}
	return out, nil
}

// ToggleLike adds or removes userID from the like list and returns the
// new liked state plus the updated count.
func (s *EventStore) ToggleLike(_ context.Context, eventID, userID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[eventID]
	if !ok {
		return false, 0, storage.ErrNotFound
	}
	for i, id := range e.Likes {
		if id == userID {
			e.Likes = append(e.Likes[:i], e.Likes[i+1:]...)
			e.LikeCount = len(e.Likes)
			return false, e.LikeCount, nil
		}
	}
	e.Likes = append(e.Likes, userID)
	e.LikeCount = len(e.Likes)
	return true, e.LikeCount, nil
}

func (s *EventStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.events, id)
	for idx, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:idx], s.order[idx+1:]...)
			break
		}
	}
	return nil
}
