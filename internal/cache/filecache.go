package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Filecache stores one JSON file per key inside a data directory.
type Filecache struct {
	mu      sync.Mutex
	dataDir string
}

// NewFilecache creates the data directory if needed.
func NewFilecache(dataDir string) (*Filecache, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Filecache{dataDir: dataDir}, nil
}

func (f *Filecache) path(key string) string {
	// Keys are internal constants, but keep the filename safe anyway.
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(f.dataDir, name+".json")
}

func (f *Filecache) Load(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, nil
}

func (f *Filecache) Store(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

func (f *Filecache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}

func (f *Filecache) Close() error {
	return nil
}
