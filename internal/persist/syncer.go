// Package persist provides debounced write-behind persistence for
// application state snapshots.
package persist

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is how long the syncer waits after the last mutation
// before writing. Rapid mutations within the window coalesce into a
// single write of the newest snapshot.
const DefaultDelay = 1200 * time.Millisecond

// WriteFunc performs the actual write of a snapshot
type WriteFunc func(ctx context.Context, data []byte) error

// Syncer debounces snapshot writes. At most one write is in flight at a
// time; the last scheduled snapshot always wins. Background write
// failures are logged and swallowed so a flaky backend never blocks the
// caller.
type Syncer struct {
	write WriteFunc
	delay time.Duration
	log   *zap.Logger

	mu      sync.Mutex
	pending []byte
	dirty   bool
	writing bool
	closed  bool
	timer   *time.Timer
	wg      sync.WaitGroup
}

// NewSyncer creates a Syncer. A non-positive delay falls back to
// DefaultDelay; a nil logger is replaced with a no-op one.
func NewSyncer(write WriteFunc, delay time.Duration, log *zap.Logger) *Syncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{write: write, delay: delay, log: log}
}

// Schedule queues a snapshot for writing after the debounce window.
// Calling it again before the window elapses replaces the snapshot and
// restarts the window.
func (s *Syncer) Schedule(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.pending = data
	s.dirty = true

	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.fire)
	} else {
		s.timer.Reset(s.delay)
	}
}

func (s *Syncer) fire() {
	s.mu.Lock()
	if s.writing || !s.dirty {
		s.mu.Unlock()
		return
	}
	s.writing = true
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	s.drain()
}

// drain writes snapshots until nothing dirty remains. Mutations that
// arrive while a write is in flight are picked up on the next loop.
func (s *Syncer) drain() {
	for {
		s.mu.Lock()
		if !s.dirty {
			s.writing = false
			s.mu.Unlock()
			return
		}
		data := s.pending
		s.dirty = false
		s.mu.Unlock()

		if err := s.write(context.Background(), data); err != nil {
			s.log.Warn("state persistence deferred", zap.Error(err))
		}
	}
}

// Flush writes any pending snapshot immediately, bypassing the debounce
// window. It first waits for any in-flight background write, so an older
// snapshot can never land after the one flushed here. Unlike background
// writes, the error is returned to the caller.
func (s *Syncer) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	data := s.pending
	s.dirty = false
	s.mu.Unlock()

	return s.write(ctx, data)
}

// Close stops the syncer and flushes whatever is still pending
func (s *Syncer) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	return s.Flush(ctx)
}
