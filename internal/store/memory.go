package store

import (
	"context"
	"sync"

	"github.com/tagwatch/tagwatch/internal/models"
)

// MemoryStore is an in-process Store for tests and standalone development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.ImageRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.ImageRecord)}
}

func (s *MemoryStore) Put(ctx context.Context, rec *models.ImageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ImageTag] = *rec
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, imageTag string) (*models.ImageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[imageTag]
	if !ok {
		return nil, ErrRecordNotFound
	}
	out := rec
	return &out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
