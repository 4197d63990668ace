package driven

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// ConversationStore holds the chat history for the current session.
// Messages are append-only and are never persisted across sessions.
type ConversationStore interface {
	// Append adds a message to the end of the conversation.
	Append(ctx context.Context, msg domain.ChatMessage) error

	// List returns a copy of the conversation in order.
	List(ctx context.Context) ([]domain.ChatMessage, error)

	// Clear drops every message.
	Clear(ctx context.Context) error
}
