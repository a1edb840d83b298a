package storage

import (
	"context"
	"errors"
	"fmt"
)

// DefaultKey holds the whole task list. Bump the suffix when the snapshot
// format changes incompatibly.
const DefaultKey = "TASKS_V1"

var (
	ErrNotFound = errors.New("storage: not found")
	ErrClosed   = errors.New("storage: store closed")
)

// Store is a durable byte store addressed by key. Get returns ErrNotFound
// when the key was never written; every other failure is a *StoreError.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Key: key, Err: err}
}
