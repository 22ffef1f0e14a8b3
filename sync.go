package glyphatlas

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// RenderFunc produces the bitmap and metrics for a code that is not yet
// cached. The bitmap must use the atlas format.
type RenderFunc func(code uint32) (Bitmap, Metrics, error)

// SyncAtlas is an Atlas guarded by a read-write mutex.
//
// Lookups of cached codes take the read lock only. A miss renders and
// inserts under the write lock, so each code is rendered at most once.
//
// SyncAtlas is safe for concurrent use.
type SyncAtlas struct {
	mu    sync.RWMutex
	atlas *Atlas

	// Statistics (atomic for lock-free reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewSync creates a locked atlas.
func NewSync(cfg Config) (*SyncAtlas, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &SyncAtlas{atlas: a}, nil
}

// GetOrInsert returns the entry for code, calling render and inserting
// the result on a miss.
func (s *SyncAtlas) GetOrInsert(code uint32, render RenderFunc) (Entry, error) {
	// Fast path: check if already cached (read lock)
	s.mu.RLock()
	if e, ok := s.atlas.Get(code); ok {
		s.mu.RUnlock()
		s.hits.Add(1)
		return e, nil
	}
	s.mu.RUnlock()

	s.misses.Add(1)

	// Slow path: render and insert (write lock)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.atlas.closed {
		return Entry{}, ErrAtlasClosed
	}

	// Double-check after acquiring write lock
	if e, ok := s.atlas.Get(code); ok {
		return e, nil
	}

	bmp, m, err := render(code)
	if err != nil {
		return Entry{}, fmt.Errorf("glyphatlas: render code %d: %w", code, err)
	}
	return s.atlas.Insert(code, bmp, m)
}

// Get returns the entry recorded for code.
func (s *SyncAtlas) Get(code uint32) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.atlas.Get(code)
}

// Exists reports whether code is cached.
func (s *SyncAtlas) Exists(code uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.atlas.Exists(code)
}

// Remove forgets code. See Atlas.Remove.
func (s *SyncAtlas) Remove(code uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.atlas.Remove(code)
}

// Stats returns cache statistics.
func (s *SyncAtlas) Stats() (hits, misses uint64, glyphs int) {
	s.mu.RLock()
	glyphs = s.atlas.Len()
	s.mu.RUnlock()
	return s.hits.Load(), s.misses.Load(), glyphs
}

// View calls fn with the underlying atlas while holding the write lock.
// Use it to upload the texture and clear the dirty region in one step.
// fn must not retain the atlas and must not call back into s; any
// SyncAtlas method called from fn deadlocks. Query the *Atlas instead.
func (s *SyncAtlas) View(fn func(a *Atlas)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.atlas)
}

// Close closes the underlying atlas.
func (s *SyncAtlas) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.atlas.Close()
}
