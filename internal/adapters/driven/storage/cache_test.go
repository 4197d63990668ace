package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

func TestNewEmbeddingCache(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		cache, err := NewEmbeddingCache(ctx, domain.CacheSettings{Backend: domain.CacheBackendNone}, "")
		require.NoError(t, err)
		assert.Nil(t, cache)
	})

	t.Run("memory", func(t *testing.T) {
		cache, err := NewEmbeddingCache(ctx, domain.CacheSettings{Backend: domain.CacheBackendMemory, MemoryEntries: 4}, "")
		require.NoError(t, err)
		require.NotNil(t, cache)
		assert.NoError(t, cache.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		cache, err := NewEmbeddingCache(ctx, domain.CacheSettings{Backend: domain.CacheBackendSQLite}, t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, cache)

		key := domain.NewEmbeddingKey("m", domain.Section{ID: "s", Content: "c"})
		require.NoError(t, cache.Put(ctx, key, []float32{1, 2}))
		got, ok, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []float32{1, 2}, got)
		assert.NoError(t, cache.Close())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cache, err := NewEmbeddingCache(ctx, domain.CacheSettings{Backend: domain.CacheBackendRedis, RedisAddr: "127.0.0.1:1"}, "")
		assert.Error(t, err)
		assert.Nil(t, cache)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewEmbeddingCache(ctx, domain.CacheSettings{Backend: "memcached"}, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
