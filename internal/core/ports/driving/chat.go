package driving

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// ChatService answers questions grounded on the knowledge base.
type ChatService interface {
	// Respond produces one assistant message for query and appends it to the conversation.
	// Generation failures become an error-provenance message, not an error.
	Respond(ctx context.Context, query string) (domain.ChatMessage, error)

	// Ask appends the user message, then responds.
	Ask(ctx context.Context, query string) (domain.ChatMessage, error)

	// History returns the conversation so far.
	History(ctx context.Context) ([]domain.ChatMessage, error)

	// Reset clears the conversation.
	Reset(ctx context.Context) error
}
