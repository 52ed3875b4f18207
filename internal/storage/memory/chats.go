package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vibratto/vibratto-backend/internal/models"
	"github.com/vibratto/vibratto-backend/internal/storage"
)

// ChatStore manages direct-message conversations in memory. Records are
// copied on the way in and out, so callers never share memory with the
// store.
type ChatStore struct {
	mu            sync.RWMutex
	conversations map[string]*models.ChatConversation // conversationID -> conversation
	userIndex     map[string][]string                 // userID -> []conversationID
}

func NewChatStore() *ChatStore {
	return &ChatStore{
		conversations: make(map[string]*models.ChatConversation),
		userIndex:     make(map[string][]string),
	}
}

// StartOrGet returns the conversation between the two users, creating
// it if none exists yet.
func (s *ChatStore) StartOrGet(_ context.Context, user1, user2 string) (*models.ChatConversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Check if a conversation already exists
	for _, id := range s.userIndex[user1] {
		conv := s.conversations[id]
		if (conv.Participants[0] == user1 && conv.Participants[1] == user2) ||
			(conv.Participants[0] == user2 && conv.Participants[1] == user1) {
			return conv.Clone(), nil
		}
	}
	conv := &models.ChatConversation{
		ID:           uuid.NewString(),
		Participants: [2]string{user1, user2},
		Messages:     []models.ChatMessage{},
	}
	s.conversations[conv.ID] = conv
	s.userIndex[user1] = append(s.userIndex[user1], conv.ID)
	s.userIndex[user2] = append(s.userIndex[user2], conv.ID)
	return conv.Clone(), nil
}

func (s *ChatStore) Get(_ context.Context, conversationID string) (*models.ChatConversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return conv.Clone(), nil
}

func (s *ChatStore) ListByUser(_ context.Context, userID string) ([]*models.ChatConversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*models.ChatConversation
	for _, id := range s.userIndex[userID] {
		result = append(result, s.conversations[id].Clone())
	}
	return result, nil
}

func (s *ChatStore) AddMessage(_ context.Context, conversationID, senderID, content string) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	msg := models.ChatMessage{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().Unix(),
	}
	conv.Messages = append(conv.Messages, msg)
	return &msg, nil
}

func (s *ChatStore) Messages(_ context.Context, conversationID string) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]models.ChatMessage, len(conv.Messages))
	copy(out, conv.Messages)
	return out, nil
}
