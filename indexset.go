package frozen

import "iter"

// IndexSet is an append-only interning set for single-goroutine use.
// Each distinct value is stored exactly once and assigned a dense index
// in insertion order. Insert returns a pointer to the canonical stored
// value, so repeated inserts of equal values always yield the same
// pointer. Typical use is string or struct interning where the interned
// pointer doubles as a cheap identity.
type IndexSet[T comparable] struct {
	guard   reentrancyGuard
	index   map[T]int
	handles []*T
}

// NewIndexSet creates an empty IndexSet. WithCapacity pre-sizes it.
func NewIndexSet[T comparable](opts ...Option) *IndexSet[T] {
	o := applyOptions(opts)
	return &IndexSet[T]{
		index:   make(map[T]int, o.capacity),
		handles: make([]*T, 0, o.capacity),
	}
}

// Insert interns value and returns a pointer to the canonical stored
// copy, valid for the set's lifetime.
func (s *IndexSet[T]) Insert(value T) *T {
	_, stored := s.InsertFull(value)
	return stored
}

// InsertFull is Insert plus the value's index: freshly assigned for a
// new value, the original index when an equal value was interned
// before.
func (s *IndexSet[T]) InsertFull(value T) (int, *T) {
	s.guard.enter()
	defer s.guard.leave()
	if i, ok := s.index[value]; ok {
		return i, s.handles[i]
	}
	handle := &value
	i := len(s.handles)
	s.index[value] = i
	s.handles = append(s.handles, handle)
	return i, handle
}

// Get returns the canonical pointer for value if it has been interned.
func (s *IndexSet[T]) Get(value T) (*T, bool) {
	i, ok := s.index[value]
	if !ok {
		return nil, false
	}
	return s.handles[i], true
}

// GetFull returns the index and canonical pointer for value.
func (s *IndexSet[T]) GetFull(value T) (int, *T, bool) {
	i, ok := s.index[value]
	if !ok {
		return -1, nil, false
	}
	return i, s.handles[i], true
}

// At returns the value interned at index i.
func (s *IndexSet[T]) At(i int) (*T, bool) {
	if i < 0 || i >= len(s.handles) {
		return nil, false
	}
	return s.handles[i], true
}

// Len returns the number of interned values.
func (s *IndexSet[T]) Len() int { return len(s.handles) }

// IsEmpty reports whether the set has no entries.
func (s *IndexSet[T]) IsEmpty() bool { return len(s.handles) == 0 }

// All returns an iterator over (index, value) pairs in insertion
// order. The sequence is lazy and restartable; values interned
// mid-iteration are not visited.
func (s *IndexSet[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		n := len(s.handles)
		for i := 0; i < n; i++ {
			if !yield(i, s.handles[i]) {
				return
			}
		}
	}
}
