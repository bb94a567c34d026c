package store

import (
	"sync"

	"github.com/MihkelHunter/mkTasks/internal/todo"
)

// MemoryStore is a map-backed todo.Repository. Stored values are copied in
// and out.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{m: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *MemoryStore) Put(records ...todo.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.m[r.Key] = append([]byte(nil), r.Value...)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ todo.Repository = (*MemoryStore)(nil)
