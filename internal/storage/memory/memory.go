package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// Storage is an in-memory media store used in tests.
type Storage struct {
	mu      sync.RWMutex
	files   map[string][]byte
	baseURL string
}

// New creates an empty in-memory storage.
func New(baseURL string) *Storage {
	return &Storage{
		files:   make(map[string][]byte),
		baseURL: baseURL,
	}
}

// Save stores the file contents in memory.
func (s *Storage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	stored := uuid.NewString() + "-" + name

	s.mu.Lock()
	s.files[stored] = data
	s.mu.Unlock()

	return stored, nil
}

// Delete removes a stored file. Missing files are ignored.
func (s *Storage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.files, path)
	s.mu.Unlock()

	return nil
}

// URL resolves a stored path to its public URL.
func (s *Storage) URL(path string) string {
	return s.baseURL + "/" + path
}

// Get returns the stored contents, for test assertions.
func (s *Storage) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[path]
	return data, ok
}

// Len returns the number of stored files.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}
