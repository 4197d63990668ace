package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// embeddingCache implements driven.EmbeddingCache.
type embeddingCache struct {
	store *Store
	owned bool
}

var _ driven.EmbeddingCache = (*embeddingCache)(nil)

// Get returns the cached vector for key.
func (c *embeddingCache) Get(ctx context.Context, key domain.EmbeddingKey) ([]float32, bool, error) {
	var (
		dims int
		blob []byte
	)
	err := c.store.db.QueryRowContext(ctx, `
		SELECT dimensions, vector FROM embeddings
		WHERE model = ? AND section_id = ? AND content_hash = ?
	`, key.Model, key.SectionID, key.ContentHash).Scan(&dims, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting embedding: %w", err)
	}

	vector := bytesToFloat32Slice(blob)
	if len(vector) != dims {
		// A truncated row is treated as a miss and overwritten on the next Put.
		return nil, false, nil
	}
	return vector, true, nil
}

// Put stores the vector for key, replacing any previous value.
func (c *embeddingCache) Put(ctx context.Context, key domain.EmbeddingKey, vector []float32) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO embeddings (model, section_id, content_hash, dimensions, vector)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(model, section_id, content_hash) DO UPDATE SET
			dimensions = excluded.dimensions,
			vector = excluded.vector,
			created_at = CURRENT_TIMESTAMP
	`, key.Model, key.SectionID, key.ContentHash, len(vector), float32SliceToBytes(vector))
	if err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}
	return nil
}

// Close closes the database if the cache was opened with OpenEmbeddingCache.
func (c *embeddingCache) Close() error {
	if !c.owned {
		return nil
	}
	return c.store.Close()
}
