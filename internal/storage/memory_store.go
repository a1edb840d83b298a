package storage

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. Values are copied on the way in and
// out so callers cannot alias stored bytes.
type MemoryStore struct {
	mu     sync.Mutex
	items  map[string][]byte
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("get", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, storeErr("get", key, ErrClosed)
	}
	value, ok := s.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return storeErr("set", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storeErr("set", key, ErrClosed)
	}
	s.items[key] = append([]byte{}, value...)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
