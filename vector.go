package frozen

import "iter"

// Vector is an append-only ordinal container for single-goroutine use.
// Append assigns dense indices starting at 0; entries are addressed by
// that index and never move or disappear, so pointers returned by
// Append and Get stay valid for the vector's lifetime.
//
// Use SyncVector when the vector is shared across goroutines.
type Vector[V any] struct {
	guard   reentrancyGuard
	handles []*V
}

// NewVector creates an empty Vector. WithCapacity pre-sizes it.
func NewVector[V any](opts ...Option) *Vector[V] {
	o := applyOptions(opts)
	return &Vector[V]{handles: make([]*V, 0, o.capacity)}
}

// Append stores value at the next index and returns the assigned index
// together with a pointer to the stored value. The index equals Len()
// prior to the call; there is no duplicate case, every append creates
// a new entry.
func (v *Vector[V]) Append(value V) (int, *V) {
	v.guard.enter()
	defer v.guard.leave()
	handle := &value
	i := len(v.handles)
	v.handles = append(v.handles, handle)
	return i, handle
}

// Get returns a pointer to the value at index i. The pointer stays
// valid for the vector's lifetime.
func (v *Vector[V]) Get(i int) (*V, bool) {
	if i < 0 || i >= len(v.handles) {
		return nil, false
	}
	return v.handles[i], true
}

// Len returns the number of entries.
func (v *Vector[V]) Len() int { return len(v.handles) }

// IsEmpty reports whether the vector has no entries.
func (v *Vector[V]) IsEmpty() bool { return len(v.handles) == 0 }

// All returns an iterator over (index, value) pairs in index order.
// The sequence is lazy and restartable; entries appended mid-iteration
// are not visited.
func (v *Vector[V]) All() iter.Seq2[int, *V] {
	return func(yield func(int, *V) bool) {
		n := len(v.handles)
		for i := 0; i < n; i++ {
			if !yield(i, v.handles[i]) {
				return
			}
		}
	}
}
