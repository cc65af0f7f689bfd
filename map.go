package frozen

import "iter"

// Map is an append-only map for single-goroutine use. Insertion works
// through a shared handle: callers may hold pointers into the map while
// other call sites keep inserting. Entries can never be removed or
// overwritten, which is what makes the returned pointers safe to keep
// for the map's whole lifetime.
//
// Use SyncMap when the map is shared across goroutines.
type Map[K comparable, V any] struct {
	guard reentrancyGuard
	store store[K, V]
}

// NewMap creates an empty Map. WithOrdered selects the
// insertion-ordered backing store, WithCapacity pre-sizes it.
func NewMap[K comparable, V any](opts ...Option) *Map[K, V] {
	return &Map[K, V]{store: newStore[K, V](applyOptions(opts))}
}

// Insert stores value under key and returns a pointer to the stored
// value, valid for the map's lifetime. If key is already present the
// map is unchanged and the pointer to the first-inserted value is
// returned; the new value is discarded.
func (m *Map[K, V]) Insert(key K, value V) *V {
	m.guard.enter()
	defer m.guard.leave()
	_, stored, _ := m.store.insert(key, &value)
	return stored
}

// Get returns a pointer to the value stored under key. The pointer
// stays valid for the map's lifetime.
func (m *Map[K, V]) Get(key K) (*V, bool) {
	return m.store.lookup(key)
}

// GetOrInsertWith returns the value stored under key, calling produce
// for the value to insert when the key is absent. The producer runs
// under the mutation gate: inserting into m from inside produce panics
// with ErrReentrantMutation.
func (m *Map[K, V]) GetOrInsertWith(key K, produce func() V) *V {
	if stored, ok := m.store.lookup(key); ok {
		return stored
	}
	m.guard.enter()
	defer m.guard.leave()
	value := produce()
	_, stored, _ := m.store.insert(key, &value)
	return stored
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.store.len() }

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.store.len() == 0 }

// All returns an iterator over the map's entries. The sequence is lazy
// and restartable; for the default backing store the order is
// unspecified, with WithOrdered it is insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, *V] {
	return m.store.all()
}
