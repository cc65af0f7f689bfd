// Package container implements container data structures.
package container

import "sync/atomic"

const (
	// segmentBits determines the size of each segment.
	// 12 bits = 4096 items per segment.
	segmentBits = 12
	segmentSize = 1 << segmentBits
	segmentMask = segmentSize - 1
)

// Segmented is an append-only segmented array with lock-free reads.
// Items are stored in fixed-size segments that are never reallocated,
// so an item's slot never moves once written; growth only replaces the
// table of segment pointers. The published length is the visibility
// barrier: Get only returns items whose append completed.
//
// Appends must be serialized by the caller; Get and Len are safe from
// any goroutine concurrently with an appender.
type Segmented[T any] struct {
	segments atomic.Pointer[[]*segment[T]]
	length   atomic.Int64
}

type segment[T any] struct {
	items [segmentSize]T
}

// Get returns the item at the given index, or false if the index has
// not been published yet.
func (s *Segmented[T]) Get(index int) (T, bool) {
	if index < 0 || int64(index) >= s.length.Load() {
		var zero T
		return zero, false
	}
	// The length load above synchronizes with the length store in
	// Append, so the segment table and the item write are visible.
	segs := *s.segments.Load()
	return segs[index>>segmentBits].items[index&segmentMask], true
}

// Len returns the number of published items.
func (s *Segmented[T]) Len() int {
	return int(s.length.Load())
}

// Append stores v at the next index and returns that index. The item
// is written before the new length is published, so a concurrent Get
// either misses the item entirely or sees it fully stored.
func (s *Segmented[T]) Append(v T) int {
	n := s.length.Load()
	segIdx := int(n >> segmentBits)

	var segs []*segment[T]
	if p := s.segments.Load(); p != nil {
		segs = *p
	}
	if segIdx >= len(segs) {
		grown := make([]*segment[T], segIdx+1)
		copy(grown, segs)
		grown[segIdx] = &segment[T]{}
		s.segments.Store(&grown)
		segs = grown
	}

	segs[segIdx].items[n&segmentMask] = v
	s.length.Store(n + 1)
	return int(n)
}
