package index

import "sync/atomic"

// Holder publishes the active index to concurrent readers. Rebuilds swap the
// pointer atomically so in-flight queries finish against a consistent
// snapshot while new queries see the replacement.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder wraps an already-built index.
func NewHolder(idx *Index) *Holder {
	h := &Holder{}
	h.current.Store(idx)
	return h
}

// Get returns the active index.
func (h *Holder) Get() *Index {
	return h.current.Load()
}

// Swap publishes a rebuilt index and returns the previous one.
func (h *Holder) Swap(idx *Index) *Index {
	return h.current.Swap(idx)
}
