package memory

import (
	"container/list"
	"context"
	"sync"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Ensure EmbeddingCache implements the interface.
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

// DefaultCacheEntries is the capacity used when none is given.
const DefaultCacheEntries = 1024

// EmbeddingCache is a bounded least-recently-used vector cache.
// Vectors are copied on the way in and out.
type EmbeddingCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type cacheEntry struct {
	key    string
	vector []float32
}

// NewEmbeddingCache creates a cache holding at most capacity vectors.
func NewEmbeddingCache(capacity int) *EmbeddingCache {
	if capacity <= 0 {
		capacity = DefaultCacheEntries
	}
	return &EmbeddingCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the vector for key and marks it recently used.
func (c *EmbeddingCache) Get(_ context.Context, key domain.EmbeddingKey) ([]float32, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key.String()]
	if !ok {
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	return cloneVector(el.Value.(*cacheEntry).vector), true, nil
}

// Put stores the vector for key, evicting the least recently used entry when full.
func (c *EmbeddingCache) Put(_ context.Context, key domain.EmbeddingKey, vector []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key.String()
	if el, ok := c.items[k]; ok {
		el.Value.(*cacheEntry).vector = cloneVector(vector)
		c.order.MoveToFront(el)
		return nil
	}

	c.items[k] = c.order.PushFront(&cacheEntry{key: k, vector: cloneVector(vector)})
	if c.order.Len() > c.capacity {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(*cacheEntry).key)
		}
	}
	return nil
}

// Len returns the number of cached vectors.
func (c *EmbeddingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Close drops every entry.
func (c *EmbeddingCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
	return nil
}

func cloneVector(v []float32) []float32 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
