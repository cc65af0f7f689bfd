package frozen

import "iter"

// IndexMap is an append-only, insertion-ordered map with positional
// access, for single-goroutine use. Every entry gets a dense index
// assigned at insertion time; both the index and the returned pointers
// stay valid for the map's lifetime.
type IndexMap[K comparable, V any] struct {
	guard reentrancyGuard
	store *orderedStore[K, V]
}

// NewIndexMap creates an empty IndexMap. WithCapacity pre-sizes it.
func NewIndexMap[K comparable, V any](opts ...Option) *IndexMap[K, V] {
	o := applyOptions(opts)
	return &IndexMap[K, V]{store: newOrderedStore[K, V](o.capacity)}
}

// Insert stores value under key and returns a pointer to the stored
// value. If key is already present the map is unchanged and the
// first-inserted value's pointer is returned.
func (m *IndexMap[K, V]) Insert(key K, value V) *V {
	_, stored := m.InsertFull(key, value)
	return stored
}

// InsertFull is Insert plus the entry's index: the freshly assigned
// index on a new insert, the original index when key was already
// present.
func (m *IndexMap[K, V]) InsertFull(key K, value V) (int, *V) {
	m.guard.enter()
	defer m.guard.leave()
	i, stored, _ := m.store.insert(key, &value)
	return i, stored
}

// Get returns a pointer to the value stored under key.
func (m *IndexMap[K, V]) Get(key K) (*V, bool) {
	return m.store.lookup(key)
}

// GetFull returns the index and value stored under key.
func (m *IndexMap[K, V]) GetFull(key K) (int, *V, bool) {
	return m.store.lookupFull(key)
}

// GetAt returns the entry at index i in insertion order.
func (m *IndexMap[K, V]) GetAt(i int) (K, *V, bool) {
	return m.store.at(i)
}

// GetOrInsertWith returns the value stored under key, calling produce
// for the value to insert when the key is absent. The producer runs
// under the mutation gate: inserting into m from inside produce panics
// with ErrReentrantMutation.
func (m *IndexMap[K, V]) GetOrInsertWith(key K, produce func() V) *V {
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
func (m *IndexMap[K, V]) Len() int { return m.store.len() }

// IsEmpty reports whether the map has no entries.
func (m *IndexMap[K, V]) IsEmpty() bool { return m.store.len() == 0 }

// All returns an iterator over the entries in insertion order. The
// sequence is lazy and restartable; entries appended mid-iteration are
// not visited.
func (m *IndexMap[K, V]) All() iter.Seq2[K, *V] {
	return m.store.all()
}
