package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/tasklist/internal/storage"
)

type recordingStore struct {
	mu     sync.Mutex
	writes []string
	fail   error
	gate   chan struct{}
}

func (s *recordingStore) Get(context.Context, string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

func (s *recordingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return &storage.StoreError{Op: "set", Key: key, Err: s.fail}
	}
	s.writes = append(s.writes, string(value))
	return nil
}

func (s *recordingStore) Close() error { return nil }

func (s *recordingStore) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

func TestWriterFlushPersistsLatestSnapshot(t *testing.T) {
	store := &recordingStore{}
	w := NewWriter(store, storage.DefaultKey)
	w.Start()
	defer w.Stop()

	w.Save([]byte("one"))
	w.Save([]byte("two"))
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	writes := store.snapshot()
	if len(writes) == 0 || writes[len(writes)-1] != "two" {
		t.Fatalf("expected last write to be latest snapshot, got %v", writes)
	}
	if w.Failed() != 0 {
		t.Fatalf("unexpected failures: %d", w.Failed())
	}
}

func TestWriterCoalescesWhileStoreIsBusy(t *testing.T) {
	store := &recordingStore{gate: make(chan struct{})}
	w := NewWriter(store, storage.DefaultKey)
	w.Start()
	defer w.Stop()

	w.Save([]byte("first"))
	// Give the loop time to pick up "first" and block inside Set.
	time.Sleep(20 * time.Millisecond)
	w.Save([]byte("second"))
	w.Save([]byte("third"))
	close(store.gate)

	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	writes := store.snapshot()
	if len(writes) != 2 || writes[0] != "first" || writes[1] != "third" {
		t.Fatalf("unexpected writes: %v", writes)
	}
	if w.Coalesced() != 1 {
		t.Fatalf("expected 1 coalesced snapshot, got %d", w.Coalesced())
	}
	if w.Written() != 2 {
		t.Fatalf("expected 2 writes, got %d", w.Written())
	}
}

func TestWriterReportsFailures(t *testing.T) {
	store := &recordingStore{fail: errors.New("disk full")}
	w := NewWriter(store, storage.DefaultKey, WithErrorBuffer(1))
	w.Start()
	defer w.Stop()

	w.Save([]byte("a"))
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	w.Save([]byte("b"))
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if w.Failed() != 2 {
		t.Fatalf("expected 2 failures, got %d", w.Failed())
	}
	select {
	case err := <-w.Errors():
		var se *storage.StoreError
		if !errors.As(err, &se) {
			t.Fatalf("expected StoreError, got %v", err)
		}
	default:
		t.Fatal("expected a reported error")
	}
	select {
	case err := <-w.Errors():
		t.Fatalf("expected second error to be dropped, got %v", err)
	default:
	}
}

func TestWriterStopDrainsPending(t *testing.T) {
	store := &recordingStore{}
	w := NewWriter(store, storage.DefaultKey)
	w.Start()
	w.Save([]byte("final"))
	w.Stop()

	writes := store.snapshot()
	if len(writes) == 0 || writes[len(writes)-1] != "final" {
		t.Fatalf("expected pending snapshot written on stop, got %v", writes)
	}

	w.Save([]byte("ignored"))
	if got := store.snapshot(); len(got) != len(writes) {
		t.Fatalf("save after stop should be ignored, got %v", got)
	}
	if err := w.Flush(context.Background()); err != ErrNotRunning {
		t.Fatalf("expected ErrNotRunning after stop, got %v", err)
	}
}

func TestWriterTimesOutSlowStore(t *testing.T) {
	store := &recordingStore{gate: make(chan struct{})}
	w := NewWriter(store, storage.DefaultKey, WithWriteTimeout(10*time.Millisecond))
	w.Start()
	defer w.Stop()

	w.Save([]byte("slow"))
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if w.Failed() != 1 {
		t.Fatalf("expected timed out write to count as failure, got %d", w.Failed())
	}
	select {
	case err := <-w.Errors():
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	default:
		t.Fatal("expected a reported error")
	}
}

func TestFlushBeforeStartFails(t *testing.T) {
	w := NewWriter(&recordingStore{}, "")
	if err := w.Flush(context.Background()); err != ErrNotRunning {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}
