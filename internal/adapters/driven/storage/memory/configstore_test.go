package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("preferences.due_date", "2026-12-25"))

	val, ok := store.Get("preferences.due_date")
	assert.True(t, ok)
	assert.Equal(t, "2026-12-25", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("llm.provider", "openai")
	_ = store.Set("index.concurrency", int64(4))
	_ = store.Set("index.requests_per_second", 2.5)
	_ = store.Set("cache.memory_entries", 512)

	assert.Equal(t, "openai", store.GetString("llm.provider"))
	assert.Equal(t, 4, store.GetInt("index.concurrency"))
	assert.InDelta(t, 2.5, store.GetFloat("index.requests_per_second"), 1e-9)
	assert.InDelta(t, 512.0, store.GetFloat("cache.memory_entries"), 1e-9)
	assert.Equal(t, 2, store.GetInt("index.requests_per_second"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("llm.provider", 42)
	_ = store.Set("index.concurrency", "four")

	assert.Empty(t, store.GetString("llm.provider"))
	assert.Zero(t, store.GetInt("index.concurrency"))
	assert.Zero(t, store.GetFloat("index.concurrency"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_NoOpPersistence(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("index.concurrency", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("index.concurrency")
		}()
	}
	wg.Wait()

	_, ok := store.Get("index.concurrency")
	assert.True(t, ok)
}
