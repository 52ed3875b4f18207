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

// UserStore manages user accounts and their saved-recommendation
// ledger in memory. Records are copied on the way in and out, so
// callers never share memory with the store.
type UserStore struct {
	mu         sync.RWMutex
	users      map[string]*models.User                   // userID -> user
	order      []string                                  // insertion order, keeps scans deterministic
	emailIndex map[string]string                         // email -> userID
	saved      map[string][]models.SavedRecommendation   // userID -> ledger
}

// NewUserStore creates and returns a new instance of UserStore.
func NewUserStore() *UserStore {
	return &UserStore{
		users:      make(map[string]*models.User),
		emailIndex: make(map[string]string),
		saved:      make(map[string][]models.SavedRecommendation),
	}
}

// Create stores a new user. The email must be unique.
func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emailIndex[u.Email]; exists {
		return models.NewValidation("a user with that email already exists")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = u.Clone()
	s.order = append(s.order, u.ID)
	s.emailIndex[u.Email] = u.ID

	log.Printf("[Users] Created user: ID=%s, Email=%s, Type=%s", u.ID, u.Email, u.Type)
	return nil
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u.Clone(), nil
}

// GetByEmail retrieves a user by email address.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emailIndex[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.users[id].Clone(), nil
}

// Update replaces the stored record for u.ID.
func (s *UserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.users[u.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if old.Email != u.Email {
		delete(s.emailIndex, old.Email)
		s.emailIndex[u.Email] = u.ID
	}
	s.users[u.ID] = u.Clone()
	return nil
}

// ListMusicians returns every musician profile except excludeID.
func (s *UserStore) ListMusicians(_ context.Context, excludeID string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var musicians []*models.User
	for _, id := range s.order {
		u, ok := s.users[id]
		if !ok {
			continue
		}
		if u.Type == models.UserTypeMusician && u.ID != excludeID {
			musicians = append(musicians, u.Clone())
		}
	}
	return musicians, nil
}

// SaveRecommendation appends the reference to the user's ledger unless
// the (kind, item) pair is already saved.
func (s *UserStore) SaveRecommendation(_ context.Context, userID string, ref models.SavedRecommendation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false, storage.ErrNotFound
	}
	for _, existing := range s.saved[userID] {
		if existing.Kind == ref.Kind && existing.ItemID == ref.ItemID {
			return false, nil // already saved, idempotent
		}
	}
	s.saved[userID] = append(s.saved[userID], ref)
	log.Printf("[Users] Saved recommendation for user %s: %s/%s", userID, ref.Kind, ref.ItemID)
	return true, nil
}

// ListSaved returns the user's saved recommendations in save order.
func (s *UserStore) ListSaved(_ context.Context, userID string) ([]models.SavedRecommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]models.SavedRecommendation, len(s.saved[userID]))
	copy(out, s.saved[userID])
	return out, nil
}

// DeleteSaved removes the ledger entry referencing itemID. Removing an
// absent entry is a no-op.
func (s *UserStore) DeleteSaved(_ context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return storage.ErrNotFound
	}
	entries := s.saved[userID]
	for i, ref := range entries {
		if ref.ItemID == itemID {
			s.saved[userID] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	return nil
}
