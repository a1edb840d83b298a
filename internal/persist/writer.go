// Package persist writes task list snapshots to a storage.Store off the
// caller's goroutine.
package persist

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

var ErrNotRunning = errors.New("persist: writer not running")

const DefaultWriteTimeout = 5 * time.Second

type Option func(*Writer)

func WithLogger(logger *log.Logger) Option {
	return func(w *Writer) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(w *Writer) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithErrorBuffer sets how many unread write failures Errors() holds before
// further ones are dropped.
func WithErrorBuffer(n int) Option {
	return func(w *Writer) {
		if n > 0 {
			w.errs = make(chan error, n)
		}
	}
}

// Writer persists the most recent snapshot handed to Save. Only the latest
// pending snapshot is kept: every snapshot is the full list, so an older one
// that was never written carries nothing the newer one lacks.
type Writer struct {
	store   storage.Store
	key     string
	logger  *log.Logger
	timeout time.Duration

	mu         sync.Mutex
	pending    []byte
	hasPending bool
	started    bool
	stopped    bool

	wakeup  chan struct{}
	flushCh chan chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	errs    chan error

	written   uint64
	coalesced uint64
	failed    uint64
}

func NewWriter(store storage.Store, key string, opts ...Option) *Writer {
	if key == "" {
		key = storage.DefaultKey
	}
	w := &Writer{
		store:   store,
		key:     key,
		logger:  log.New(io.Discard),
		timeout: DefaultWriteTimeout,
		wakeup:  make(chan struct{}, 1),
		flushCh: make(chan chan struct{}),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		errs:    make(chan error, 8),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Errors delivers write failures. Reading it is optional.
func (w *Writer) Errors() <-chan error {
	return w.errs
}

func (w *Writer) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.loop()
}

// Stop writes any pending snapshot and waits for the loop to exit.
func (w *Writer) Stop() {
	w.mu.Lock()
	if !w.started || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()
	<-w.doneCh
}

// Save queues payload for writing and returns immediately.
func (w *Writer) Save(payload []byte) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		w.logger.Debug("save after stop ignored", "key", w.key)
		return
	}
	if w.hasPending {
		atomic.AddUint64(&w.coalesced, 1)
	}
	w.pending = append([]byte(nil), payload...)
	w.hasPending = true
	w.mu.Unlock()
	w.signalWakeup()
}

// Flush blocks until every snapshot saved before the call was attempted.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	running := w.started && !w.stopped
	w.mu.Unlock()
	if !running {
		return ErrNotRunning
	}

	done := make(chan struct{})
	select {
	case w.flushCh <- done:
	case <-w.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) Written() uint64 {
	return atomic.LoadUint64(&w.written)
}

func (w *Writer) Coalesced() uint64 {
	return atomic.LoadUint64(&w.coalesced)
}

func (w *Writer) Failed() uint64 {
	return atomic.LoadUint64(&w.failed)
}

func (w *Writer) loop() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.wakeup:
			w.drain()
		case done := <-w.flushCh:
			w.drain()
			close(done)
		case <-w.stopCh:
			w.drain()
			return
		}
	}
}

func (w *Writer) drain() {
	for {
		payload, ok := w.takePending()
		if !ok {
			return
		}
		w.write(payload)
	}
}

func (w *Writer) takePending() ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.hasPending {
		return nil, false
	}
	payload := w.pending
	w.pending = nil
	w.hasPending = false
	return payload, true
}

func (w *Writer) write(payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if err := w.store.Set(ctx, w.key, payload); err != nil {
		atomic.AddUint64(&w.failed, 1)
		w.logger.Warn("save task list failed", "key", w.key, "bytes", len(payload), "err", err)
		select {
		case w.errs <- err:
		default:
		}
		return
	}
	atomic.AddUint64(&w.written, 1)
	w.logger.Debug("task list saved", "key", w.key, "bytes", len(payload))
}

func (w *Writer) signalWakeup() {
	select {
	case w.wakeup <- struct{}{}:
	default:
	}
}
