package frozen

import (
	"iter"

	"github.com/hupe1980/frozen/internal/container"
)

// SyncVector is the thread-safe variant of Vector. Appends are
// serialized by a lock; reads are lock-free. Entries live in fixed-size
// segments that are never reallocated, and an entry becomes visible
// only after its append fully completed, so readers never observe a
// half-constructed entry.
//
// A panic unwinding out of a held mutation poisons the vector: every
// later append panics with ErrPoisoned, while reads of entries
// published before the panic keep working.
type SyncVector[V any] struct {
	gate lockGate
	arr  container.Segmented[*V]
}

// NewSyncVector creates an empty SyncVector.
func NewSyncVector[V any]() *SyncVector[V] {
	return &SyncVector[V]{}
}

// Append stores value at the next index and returns the assigned index
// together with a pointer to the stored value. Indices are dense and
// strictly increasing from 0.
func (v *SyncVector[V]) Append(value V) (int, *V) {
	v.gate.lock()
	completed := false
	defer v.gate.unlock(&completed)
	handle := &value
	i := v.arr.Append(handle)
	completed = true
	return i, handle
}

// Get returns a pointer to the value at index i. Get never blocks, not
// even against an append in progress; an entry whose append has not
// completed is simply not visible yet.
func (v *SyncVector[V]) Get(i int) (*V, bool) {
	handle, ok := v.arr.Get(i)
	if !ok {
		return nil, false
	}
	return handle, true
}

// Len returns the number of published entries.
func (v *SyncVector[V]) Len() int { return v.arr.Len() }

// IsEmpty reports whether the vector has no entries.
func (v *SyncVector[V]) IsEmpty() bool { return v.arr.Len() == 0 }

// Poisoned reports whether an append panicked while the lock was held.
// A poisoned vector accepts no further appends.
func (v *SyncVector[V]) Poisoned() bool { return v.gate.poisoned.Load() }

// All returns an iterator over (index, value) pairs in index order.
// The bound is taken once at range start; entries appended while the
// iteration runs are not visited.
func (v *SyncVector[V]) All() iter.Seq2[int, *V] {
	return func(yield func(int, *V) bool) {
		n := v.arr.Len()
		for i := 0; i < n; i++ {
			handle, ok := v.arr.Get(i)
			if !ok {
				return
			}
			if !yield(i, handle) {
				return
			}
		}
	}
}
