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

// StreamStore manages streaming sessions in memory. Records are copied
// on the way in and out, so callers never share memory with the store.
type StreamStore struct {
	mu           sync.RWMutex
	streams      map[string]*models.Stream
	order        []string
	creatorIndex map[string][]string // creatorID -> []streamID
}

func NewStreamStore() *StreamStore {
	return &StreamStore{
		streams:      make(map[string]*models.Stream),
		creatorIndex: make(map[string][]string),
	}
}

func (s *StreamStore) Create(_ context.Context, st *models.Stream) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now()
	}
	st.LikeCount = len(st.Likes)
	s.streams[st.ID] = st.Clone()
	s.order = append(s.order, st.ID)
	s.creatorIndex[st.CreatorID] = append(s.creatorIndex[st.CreatorID], st.ID)

	log.Printf("[Streams] Created stream: ID=%s, Title=%s, CreatorID=%s", st.ID, st.Title, st.CreatorID)
	return nil
}

func (s *StreamStore) GetByID(_ context.Context, id string) (*models.Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.streams[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return st.Clone(), nil
}

func (s *StreamStore) List(_ context.Context) ([]*models.Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Stream
	for _, id := range s.order {
		if st, ok := s.streams[id]; ok {
			out = append(out, st.Clone())
		}
	}
	return out, nil
}

func (s *StreamStore) ListByCreator(_ context.Context, creatorID string) ([]*models.Stream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Stream
	for _, id := range s.creatorIndex[creatorID] {
		if st, ok := s.streams[id]; ok {
			out = append(out, st.Clone())
		}
	}
	return out, nil
}

// ToggleLike adds or removes userID from the like list and returns the
// new liked state plus the updated count.
func (s *StreamStore) ToggleLike(_ context.Context, streamID, userID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.streams[streamID]
	if !ok {
		return false, 0, storage.ErrNotFound
	}
	for i, id := range st.Likes {
		if id == userID {
			st.Likes = append(st.Likes[:i], st.Likes[i+1:]...)
			st.LikeCount = len(st.Likes)
			return false, st.LikeCount, nil
		}
	}
	st.Likes = append(st.Likes, userID)
	st.LikeCount = len(st.Likes)
	return true, st.LikeCount, nil
}

func (s *StreamStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.streams[id]
	if !ok {
		return storage.ErrNotFound
	}
	ids := s.creatorIndex[st.CreatorID]
	for i, sid := range ids {
		if sid == id {
			s.creatorIndex[st.CreatorID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	delete(s.streams, id)
	for idx, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:idx], s.order[idx+1:]...)
			break
		}
	}
	return nil
}
