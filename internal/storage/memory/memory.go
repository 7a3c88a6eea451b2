// Package memory implements storage.Storage with an in-memory map. It keeps
// metadata only (no file bytes) and exists for tests and local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/utafrali/ShopReviews/internal/storage"
)

type objectEntry struct {
	Key         string
	ContentType string
	Size        int64
	URL         string
}

// Storage implements storage.Storage using an in-memory map.
type Storage struct {
	mu      sync.RWMutex
	objects map[string]*objectEntry
	baseURL string
}

// New creates a new in-memory storage instance.
func New(baseURL string) *Storage {
	return &Storage{
		objects: make(map[string]*objectEntry),
		baseURL: baseURL,
	}
}

// Upload records object metadata and returns the generated URL. Matching the
// real backend, an existing key fails rather than being replaced.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[input.Key]; exists {
		return nil, fmt.Errorf("object %q already exists", input.Key)
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, input.Key)
	s.objects[input.Key] = &objectEntry{
		Key:         input.Key,
		ContentType: input.ContentType,
		Size:        input.Size,
		URL:         url,
	}

	return &storage.UploadResult{Key: input.Key, URL: url}, nil
}

// Ping always succeeds.
func (s *Storage) Ping(context.Context) error {
	return nil
}

// Has reports whether an object was stored under key. Test helper.
func (s *Storage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}
