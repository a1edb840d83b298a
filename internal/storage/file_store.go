package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps one file per key under Dir. Writes go through a temp file
// and a rename so a crash never leaves a truncated snapshot behind.
type FileStore struct {
	Dir string

	mu     sync.Mutex
	closed bool
}

func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: file store dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storeErr("open", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.check(ctx, "get", key); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get", key, err)
	}
	return raw, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.check(ctx, "set", key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return storeErr("set", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return storeErr("set", key, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) check(ctx context.Context, op, key string) error {
	if err := validKey(key); err != nil {
		return storeErr(op, key, err)
	}
	if err := ctx.Err(); err != nil {
		return storeErr(op, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storeErr(op, key, ErrClosed)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return errors.New("key must not contain path separators")
	}
	return nil
}
