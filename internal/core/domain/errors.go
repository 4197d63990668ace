package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The assistant answers with a fixed "not configured" message.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Retrieval falls back to keyword matching without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrKnowledgeUnavailable indicates the knowledge document could not be loaded.
	// Lookups and retrieval return empty results.
	ErrKnowledgeUnavailable = errors.New("knowledge document unavailable")

	// ErrMalformedSlice indicates one slice of the knowledge document is missing
	// a required field. Only that slice is skipped.
	ErrMalformedSlice = errors.New("malformed knowledge slice")

	// ErrUnsupportedFormat indicates an unknown knowledge document encoding.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
