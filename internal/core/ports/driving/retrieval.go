package driving

import (
	"context"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

// RetrievalService finds the sections most relevant to a query.
type RetrievalService interface {
	// Retrieve returns at most topK sections ordered by decreasing relevance.
	// It never fails; a missing index or embedding failure falls back to keyword matching.
	Retrieve(ctx context.Context, query string, topK int) domain.Retrieval
}
