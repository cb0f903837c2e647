package userdata

import (
	"context"
	"sync"
)

// MemoryStore is a Store for tests and for running without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, userID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[userID+"/"+key]
	if !ok {
		return nil, ErrNoData
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Put(_ context.Context, userID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID+"/"+key] = append([]byte(nil), value...)
	return nil
}
