package driven

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// KnowledgeSource fetches the knowledge document once at startup.
type KnowledgeSource interface {
	// Fetch reads and decodes the document.
	// It does not validate slices; that is the caller's job.
	Fetch(ctx context.Context) (*domain.KnowledgeDocument, error)

	// Location describes where the document is read from.
	Location() string
}
