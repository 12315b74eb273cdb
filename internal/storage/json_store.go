package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore persists a single value of type T as an indented JSON file.
// Writes go to a temp file in the same directory and are renamed into place.
type JSONStore[T any] struct {
	mu       sync.RWMutex
	filePath string
}

// NewJSONStore creates dataDir if needed and returns a store for dataDir/filename.
func NewJSONStore[T any](dataDir, filename string) (*JSONStore[T], error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore[T]{filePath: filepath.Join(dataDir, filename)}, nil
}

func (s *JSONStore[T]) Path() string {
	return s.filePath
}

// Load returns the stored value. A missing file yields the zero value.
func (s *JSONStore[T]) Load() (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out T
	file, err := os.Open(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", filepath.Base(s.filePath), err)
	}
	return out, nil
}

func (s *JSONStore[T]) Save(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), filepath.Base(s.filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.filePath)
}

func (s *JSONStore[T]) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.filePath)
	return err == nil
}
