package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore holds the chat history for one session.
type ConversationStore struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
}

// NewConversationStore creates an empty conversation.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// Append adds a message to the end of the conversation.
func (s *ConversationStore) Append(_ context.Context, msg domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

// List returns a copy of the conversation in order.
func (s *ConversationStore) List(_ context.Context) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// Clear drops every message.
func (s *ConversationStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	return nil
}

// Len returns the number of messages.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
