package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/bumpbook/internal/logger"
)

// PromptWatcher reloads a PromptStore whenever a prompt file changes.
type PromptWatcher struct {
	store   *PromptStore
	watcher *fsnotify.Watcher
}

// NewPromptWatcher starts watching the store's directory.
// The directory is created if it does not exist.
func NewPromptWatcher(store *PromptStore) (*PromptWatcher, error) {
	store.initOnce.Do(store.initialise)
	if store.initErr != nil {
		return nil, store.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(store.Dir()); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	return &PromptWatcher{store: store, watcher: watcher}, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
// The reloaded callback, if set, is called after each reload.
func (w *PromptWatcher) Run(ctx context.Context, reloaded func(name string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if name, changed := w.handleEvent(event); changed {
				logger.Debug("Prompt %s changed, reloading", name)
				w.store.Reload()
				if reloaded != nil {
					reloaded(name)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Prompt watcher: %v", err)
		}
	}
}

// handleEvent reports which prompt an event touches, if any.
func (w *PromptWatcher) handleEvent(event fsnotify.Event) (string, bool) {
	if filepath.Ext(event.Name) != ".txt" {
		return "", false
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	name := filepath.Base(event.Name)
	return name[:len(name)-len(".txt")], true
}

// Close stops watching.
func (w *PromptWatcher) Close() error {
	return w.watcher.Close()
}
