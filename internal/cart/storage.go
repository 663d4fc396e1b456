// internal/cart/storage.go
//
// Storage implementations: an in-memory map for tests and the validation
// endpoint, and a JSON file mirroring a browser's local storage for the
// validate-cart developer command.

package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// MemoryStorage is the map-backed Storage.
type MemoryStorage struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{m: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// FileStorage keeps the whole key space as one JSON object on disk, read on
// every access.  Writes go through a temp file and rename so a crash never
// leaves a half-written store.
type FileStorage struct {
	path string
}

// NewFileStorage wraps path.  The file need not exist yet.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) GetItem(key string) (string, bool) {
	m, err := s.read()
	if err != nil {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

func (s *FileStorage) SetItem(key, value string) error {
	m, err := s.read()
	if err != nil {
		return err
	}
	m[key] = value

	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("cart: marshal storage: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("cart: write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStorage) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	m := make(map[string]string)
	if err := json.Unmarshal(raw, &m); err != nil {
		// A mangled store behaves like an empty one; the reconciler
		// fails soft on cart corruption either way.
		return map[string]string{}, nil
	}
	return m, nil
}
