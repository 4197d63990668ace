package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func schemaVersion(t *testing.T, s *Store) int {
	t.Helper()
	var v int
	require.NoError(t, s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v))
	return v
}

func testKey(id, content string) domain.EmbeddingKey {
	return domain.NewEmbeddingKey("test-model", domain.Section{ID: id, Content: content})
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "cache.db"), store.Path())
	assert.Equal(t, 1, schemaVersion(t, store))
}

func TestNewStore_ReopenDoesNotReapplyMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.EmbeddingCache().Put(context.Background(), testKey("a", "x"), []float32{1}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, 1, schemaVersion(t, second))
	_, ok, err := second.EmbeddingCache().Get(context.Background(), testKey("a", "x"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewStore_InvalidDir(t *testing.T) {
	_, err := NewStore("/dev/null/cannot/create")
	assert.Error(t, err)
}

func TestMigrate_AppliesInOrderAndSkipsUnnumbered(t *testing.T) {
	store := newTestStore(t)

	fsys := fstest.MapFS{
		"002_second.up.sql":  {Data: []byte("CREATE TABLE second_tbl (id INTEGER);")},
		"003_third.up.sql":   {Data: []byte("CREATE TABLE third_tbl (id INTEGER);")},
		"003_third.down.sql": {Data: []byte("DROP TABLE third_tbl;")},
		"notes.up.sql":       {Data: []byte("this is not sql")},
	}

	require.NoError(t, store.migrate(fsys))
	assert.Equal(t, 3, schemaVersion(t, store))

	_, err := store.db.Exec("INSERT INTO third_tbl (id) VALUES (1)")
	assert.NoError(t, err)
}

func TestMigrate_FailureRollsBack(t *testing.T) {
	store := newTestStore(t)

	fsys := fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE ok_tbl (id INTEGER); NOT SQL;")},
	}

	assert.Error(t, store.migrate(fsys))
	assert.Equal(t, 1, schemaVersion(t, store))
}

func TestEmbeddingCache_PutGet(t *testing.T) {
	cache := newTestStore(t).EmbeddingCache()
	ctx := context.Background()
	key := testKey("nutrition-daily", "Protein: 71 g")

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, key, []float32{0.25, -1.5, 3}))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float32{0.25, -1.5, 3}, got)
}

func TestEmbeddingCache_KeyedByContentAndModel(t *testing.T) {
	cache := newTestStore(t).EmbeddingCache()
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, testKey("s", "old text"), []float32{1}))

	_, ok, err := cache.Get(ctx, testKey("s", "new text"))
	require.NoError(t, err)
	assert.False(t, ok)

	other := domain.NewEmbeddingKey("other-model", domain.Section{ID: "s", Content: "old text"})
	_, ok, err = cache.Get(ctx, other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmbeddingCache_PutReplaces(t *testing.T) {
	cache := newTestStore(t).EmbeddingCache()
	ctx := context.Background()
	key := testKey("s", "text")

	require.NoError(t, cache.Put(ctx, key, []float32{1, 2}))
	require.NoError(t, cache.Put(ctx, key, []float32{3, 4, 5}))

	got, _, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 4, 5}, got)
	assert.NoError(t, cache.Close())
}

func TestEmbeddingCache_ConcurrentPuts(t *testing.T) {
	cache := newTestStore(t).EmbeddingCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := testKey(string(rune('a'+i)), "content")
			assert.NoError(t, cache.Put(ctx, key, []float32{float32(i)}))
		}()
	}
	wg.Wait()

	got, ok, err := cache.Get(ctx, testKey("c", "content"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float32{2}, got)
}

func TestFloat32Conversion(t *testing.T) {
	in := []float32{0, 1, -1, 3.14159, 1e-7}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Empty(t, bytesToFloat32Slice(nil))
}

func TestOpenEmbeddingCache_ClosesStore(t *testing.T) {
	cache, err := OpenEmbeddingCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cache.Put(context.Background(), testKey("a", "x"), []float32{1}))
	require.NoError(t, cache.Close())

	_, _, err = cache.Get(context.Background(), testKey("a", "x"))
	assert.Error(t, err)
}
