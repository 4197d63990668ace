// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the bumpbook home directory.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable prompt templates
//   - PromptWatcher: reloads prompts when their files change
package file

import (
	"os"
	"path/filepath"
)

// DefaultDir returns ~/.bumpbook.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".bumpbook"), nil
}
