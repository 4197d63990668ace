// Package storage selects the embedding cache backend.
package storage

import (
	"context"
	"fmt"

	"github.com/custodia-labs/bumpbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bumpbook/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/bumpbook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// NewEmbeddingCache opens the backend named by settings.
// CacheBackendNone returns a nil cache and no error.
func NewEmbeddingCache(ctx context.Context, settings domain.CacheSettings, dataDir string) (driven.EmbeddingCache, error) {
	switch settings.Backend {
	case domain.CacheBackendNone:
		return nil, nil

	case domain.CacheBackendMemory:
		return memory.NewEmbeddingCache(settings.MemoryEntries), nil

	case domain.CacheBackendSQLite:
		cache, err := sqlite.OpenEmbeddingCache(dataDir)
		if err != nil {
			return nil, fmt.Errorf("sqlite cache: %w", err)
		}
		return cache, nil

	case domain.CacheBackendRedis:
		cache, err := redis.NewEmbeddingCache(ctx, redis.Config{Addr: settings.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache, nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q: %w", settings.Backend, domain.ErrInvalidInput)
	}
}
