package frozen

import "iter"

// SyncMap is the thread-safe variant of Map. Mutations are serialized
// by a lock; reads take a shared lock, so any number of readers proceed
// in parallel and pointers handed out earlier can be dereferenced
// without any synchronization at all.
//
// A panic unwinding out of a held mutation poisons the map: every later
// mutation panics with ErrPoisoned, while reads of entries published
// before the panic keep working.
type SyncMap[K comparable, V any] struct {
	gate  lockGate
	store store[K, V]
}

// NewSyncMap creates an empty SyncMap. WithOrdered selects the
// insertion-ordered backing store, WithCapacity pre-sizes it.
func NewSyncMap[K comparable, V any](opts ...Option) *SyncMap[K, V] {
	return &SyncMap[K, V]{store: newStore[K, V](applyOptions(opts))}
}

// Insert stores value under key and returns a pointer to the stored
// value, valid for the map's lifetime. If key is already present the
// map is unchanged and the pointer to the first-inserted value is
// returned; the new value is discarded.
func (m *SyncMap[K, V]) Insert(key K, value V) *V {
	return m.insert(key, &value)
}

func (m *SyncMap[K, V]) insert(key K, handle *V) *V {
	m.gate.lock()
	completed := false
	defer m.gate.unlock(&completed)
	_, stored, _ := m.store.insert(key, handle)
	completed = true
	return stored
}

// Get returns a pointer to the value stored under key. The pointer
// stays valid for the map's lifetime and may be dereferenced freely
// after Get returns.
func (m *SyncMap[K, V]) Get(key K) (*V, bool) {
	m.gate.rlock()
	defer m.gate.runlock()
	return m.store.lookup(key)
}

// GetOrInsertWith returns the value stored under key, calling produce
// for the value to insert when the key is absent.
//
// The producer runs outside the mutation lock, so two goroutines racing
// on the same absent key may both run it; exactly one result is kept
// and returned to every caller, the loser's value is computed but
// discarded. Producers must not rely on running exactly once.
func (m *SyncMap[K, V]) GetOrInsertWith(key K, produce func() V) *V {
	if stored, ok := m.Get(key); ok {
		return stored
	}
	value := produce()
	return m.insert(key, &value)
}

// Len returns the number of entries.
func (m *SyncMap[K, V]) Len() int {
	m.gate.rlock()
	defer m.gate.runlock()
	return m.store.len()
}

// IsEmpty reports whether the map has no entries.
func (m *SyncMap[K, V]) IsEmpty() bool { return m.Len() == 0 }

// Poisoned reports whether a mutation panicked while the lock was
// held. A poisoned map accepts no further mutations.
func (m *SyncMap[K, V]) Poisoned() bool { return m.gate.poisoned.Load() }

// All returns an iterator over the map's entries. Each range captures a
// consistent snapshot of the entries present when iteration starts;
// concurrent inserts are simply not visible to an iteration already in
// flight. For the default backing store the order is unspecified, with
// WithOrdered it is insertion order.
func (m *SyncMap[K, V]) All() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		m.gate.rlock()
		keys := make([]K, 0, m.store.len())
		handles := make([]*V, 0, m.store.len())
		for key, handle := range m.store.all() {
			keys = append(keys, key)
			handles = append(handles, handle)
		}
		m.gate.runlock()

		for i, key := range keys {
			if !yield(key, handles[i]) {
				return
			}
		}
	}
}
