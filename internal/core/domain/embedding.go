package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// EmbeddingKey identifies a cached section vector.
// A change of model or content produces a different key.
type EmbeddingKey struct {
	Model       string
	SectionID   string
	ContentHash string
}

// NewEmbeddingKey derives the cache key for a section under a model.
func NewEmbeddingKey(model string, s Section) EmbeddingKey {
	sum := sha256.Sum256([]byte(s.Content))
	return EmbeddingKey{
		Model:       model,
		SectionID:   s.ID,
		ContentHash: hex.EncodeToString(sum[:]),
	}
}

// String renders the key as a single token suitable for key-value stores.
func (k EmbeddingKey) String() string {
	return k.Model + ":" + k.SectionID + ":" + k.ContentHash
}
