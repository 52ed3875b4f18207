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

// CollabStore manages collaborations in memory. Records are copied on
// the way in and out, so callers never share memory with the store.
type CollabStore struct {
	mu        sync.RWMutex
	collabs   map[string]*models.Collab
	order     []string            // insertion order
	userIndex map[string][]string // userID -> []collabID (participant)
}

func NewCollabStore() *CollabStore {
	return &CollabStore{
		collabs:   make(map[string]*models.Collab),
		userIndex: make(map[string][]string),
	}
}

func (s *CollabStore) Create(_ context.Context, c *models.Collab) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.State == "" {
		c.State = models.CollabOpen
	}
	s.collabs[c.ID] = c.Clone()
	s.order = append(s.order, c.ID)
	for _, p := range c.Participants {
		s.userIndex[p.UserID] = append(s.userIndex[p.UserID], c.ID)
	}

	log.Printf("[Collabs] Created collab: ID=%s, Title=%s, CreatorID=%s", c.ID, c.Title, c.CreatorID)
	return nil
}

func (s *CollabStore) GetByID(_ context.Context, id string) (*models.Collab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collabs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *CollabStore) ListOpen(_ context.Context) ([]*models.Collab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Collab
	for _, id := range s.order {
		if c, ok := s.collabs[id]; ok && c.State == models.CollabOpen {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// ListByParticipant returns every collaboration the user participates in.
func (s *CollabStore) ListByParticipant(_ context.Context, userID string) ([]*models.Collab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Collab
	for _, id := range s.userIndex[userID] {
		if c, ok := s.collabs[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (s *CollabStore) AddParticipant(_ context.Context, collabID string, p models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collabs[collabID]
	if !ok {
		return storage.ErrNotFound
	}
	if c.HasParticipant(p.UserID) {
		return models.NewValidation("already a participant of this collaboration")
	}
	c.Participants = append(c.Participants, p)
	s.userIndex[p.UserID] = append(s.userIndex[p.UserID], collabID)
	return nil
}

func (s *CollabStore) AddMessage(_ context.Context, collabID string, m models.CollabMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collabs[collabID]
	if !ok {
		return storage.ErrNotFound
	}
	c.Chat = append(c.Chat, m)
	return nil
}

func (s *CollabStore) SetState(_ context.Context, collabID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collabs[collabID]
	if !ok {
		return storage.ErrNotFound
	}
	c.State = state
	return nil
}

func (s *CollabStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collabs[id]
	if !ok {
		return storage.ErrNotFound
	}
	for _, p := range c.Participants {
		ids := s.userIndex[p.UserID]
		for i, cid := range ids {
			if cid == id {
				s.userIndex[p.UserID] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	delete(s.collabs, id)
	for idx, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:idx], s.order[idx+1:]...)
			break
		}
	}
	return nil
}
