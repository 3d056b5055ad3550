// Package dedupe tracks events with a refresh already in flight, so a
// burst of edits to one event enqueues a single job.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 50000

// Deduper records pending IDs to keep refresh jobs at most once per event.
type Deduper interface {
	// SeenAndRecord atomically checks whether id is pending and records
	// it if not. Returns true if id was already pending.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord frees a pending slot. Workers call it once a job is
	// processed, and the producer calls it when an enqueue is refused.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper implements Deduper with a bounded pending set.
// When the bound is hit the oldest entry is evicted; a refresh whose
// slot was evicted may run twice, never zero times.
type inMemoryDeduper struct {
	mu      sync.Mutex
	pending map[string]struct{}
	order   []string
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.pending = make(map[string]struct{})
	return d
}

// SeenAndRecord atomically checks whether id is pending and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.pending[id]; exists {
		return true
	}

	if d.maxSize > 0 && len(d.pending) >= d.maxSize {
		d.evictOldest()
	}

	d.pending[id] = struct{}{}
	d.order = append(d.order, id)
	d.size.Add(1)
	return false
}

// Unrecord frees the pending slot for id.
func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.pending[id]; !exists {
		return
	}
	delete(d.pending, id)
	d.removeFromOrder(id)
	d.size.Add(-1)
}

// Size returns the current number of pending entries.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// evictOldest drops the oldest pending entry. Caller holds d.mu.
func (d *inMemoryDeduper) evictOldest() {
	for len(d.order) > 0 {
		oldest := d.order[0]
		d.order = d.order[1:]
		if _, exists := d.pending[oldest]; exists {
			delete(d.pending, oldest)
			d.size.Add(-1)
			return
		}
	}
}

// removeFromOrder drops id from the insertion order. Caller holds d.mu.
func (d *inMemoryDeduper) removeFromOrder(id string) {
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			return
		}
	}
}
