// Package localcache persists the user's analysis history and folder list
// as two JSON files under the application state directory. A corrupt or
// missing file is treated as an empty collection so offline startup never
// fails on bad state.
package localcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

const (
	historyFile = "history.json"
	foldersFile = "folders.json"
)

// Cache is a file-backed store for the two named collections.
type Cache struct {
	dir  string
	logf func(format string, args ...any)
}

// New creates a cache rooted at dir. The directory is created lazily on
// first Save.
func New(dir string) *Cache {
	return &Cache{
		dir: dir,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SetLogf overrides where parse warnings are reported.
func (c *Cache) SetLogf(logf func(format string, args ...any)) {
	c.logf = logf
}

// DefaultDir returns the state directory used when none is configured,
// following the ~/.local/state convention.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lingoscope"
	}
	return filepath.Join(home, ".local", "state", "lingoscope")
}

// Load reads both collections. Parse failures and missing files yield empty
// slices; they are logged, never returned as errors. Array order is
// whatever Save last wrote.
func (c *Cache) Load() ([]vocab.SavedAnalysis, []vocab.AnalysisFolder) {
	analyses := []vocab.SavedAnalysis{}
	if data, ok := c.readEntry(historyFile); ok {
		if err := json.Unmarshal(data, &analyses); err != nil {
			c.logf("Warning: corrupt cache entry %s, starting empty: %v", historyFile, err)
			analyses = []vocab.SavedAnalysis{}
		}
	}

	folders := []vocab.AnalysisFolder{}
	if data, ok := c.readEntry(foldersFile); ok {
		if err := json.Unmarshal(data, &folders); err != nil {
			c.logf("Warning: corrupt cache entry %s, starting empty: %v", foldersFile, err)
			folders = []vocab.AnalysisFolder{}
		}
	}

	return analyses, folders
}

// Save writes both collections, replacing any previous contents.
func (c *Cache) Save(analyses []vocab.SavedAnalysis, folders []vocab.AnalysisFolder) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := c.saveEntry(historyFile, analyses); err != nil {
		return err
	}
	return c.saveEntry(foldersFile, folders)
}

func (c *Cache) readEntry(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			c.logf("Warning: failed to read %s: %v", name, err)
		}
		return nil, false
	}
	return data, true
}

func (c *Cache) saveEntry(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
