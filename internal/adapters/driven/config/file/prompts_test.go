package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

func testDefaults() map[string]string {
	return map[string]string{
		driven.PromptPersona:   "You are a pregnancy assistant.",
		driven.PromptContext:   "Context:\n\n{{context}}",
		driven.PromptGrounding: "Say where the answer came from.",
	}
}

func newTestPromptStore(t *testing.T) (*PromptStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)
	return store, dir
}

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	store, dir := newTestPromptStore(t)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_CopiesDefaults(t *testing.T) {
	defaults := testDefaults()
	store, err := NewPromptStore(t.TempDir(), defaults)
	require.NoError(t, err)

	defaults[driven.PromptPersona] = "changed"

	got, err := store.Load(driven.PromptPersona)
	require.NoError(t, err)
	assert.Equal(t, "You are a pregnancy assistant.", got)
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	store, dir := newTestPromptStore(t)

	_, err := store.Load(driven.PromptPersona)
	require.NoError(t, err)

	for _, f := range []string{"persona.txt", "context.txt", "grounding.txt", "README.md"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	store, dir := newTestPromptStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "persona.txt"), []byte("  You are a doula.\n"), 0600))

	got, err := store.Load(driven.PromptPersona)

	require.NoError(t, err)
	assert.Equal(t, "You are a doula.", got)
}

func TestPromptStore_Load_FallsBackToDefault(t *testing.T) {
	store, dir := newTestPromptStore(t)
	_, _ = store.Load(driven.PromptPersona)

	require.NoError(t, os.Remove(filepath.Join(dir, "grounding.txt")))
	got, err := store.Load(driven.PromptGrounding)
	require.NoError(t, err)
	assert.Equal(t, "Say where the answer came from.", got)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "context.txt"), []byte("   \n"), 0600))
	got, err = store.Load(driven.PromptContext)
	require.NoError(t, err)
	assert.Equal(t, "Context:\n\n{{context}}", got)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, _ := newTestPromptStore(t)

	_, err := store.Load("nonexistent")

	assert.Error(t, err)
}

func TestPromptStore_Load_InitFailureUsesDefaults(t *testing.T) {
	store, err := NewPromptStore("/dev/null/prompts", testDefaults())
	require.NoError(t, err)

	got, err := store.Load(driven.PromptPersona)
	require.NoError(t, err)
	assert.Equal(t, "You are a pregnancy assistant.", got)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	store, dir := newTestPromptStore(t)
	path := filepath.Join(dir, "persona.txt")

	first, err := store.Load(driven.PromptPersona)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("Updated persona"), 0600))
	cached, _ := store.Load(driven.PromptPersona)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, _ := store.Load(driven.PromptPersona)
	assert.Equal(t, "Updated persona", fresh)
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "persona.txt"), []byte("Mine"), 0600))

	store, err := NewPromptStore(dir, testDefaults())
	require.NoError(t, err)

	got, _ := store.Load(driven.PromptPersona)
	assert.Equal(t, "Mine", got)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, _ := newTestPromptStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := store.Load(driven.PromptContext)
			assert.NoError(t, err)
			assert.NotEmpty(t, got)
			if i%5 == 0 {
				store.Reload()
			}
		}()
	}
	wg.Wait()
}
