package frozen

import "iter"

// store is the backing structure behind the map-shaped containers. It
// owns the per-entry heap handles and only ever grows: insert is the
// single mutating operation, and it never displaces an existing entry.
//
// Which store backs a container is chosen at construction time; the
// gate and lifetime logic in the containers is identical for all
// implementations.
type store[K comparable, V any] interface {
	// insert stores handle under key if the key is absent and reports
	// whether it did. The returned handle is the stored one: the
	// argument on a fresh insert, the pre-existing handle otherwise.
	// The returned index is the entry's position for ordered stores
	// and -1 for unordered ones.
	insert(key K, handle *V) (index int, stored *V, inserted bool)

	lookup(key K) (*V, bool)
	lookupFull(key K) (index int, handle *V, ok bool)
	at(index int) (K, *V, bool)
	len() int

	// all yields the current entries. The sequence is lazy and
	// restartable; every range starts over from the store's contents
	// at that moment.
	all() iter.Seq2[K, *V]
}

func newStore[K comparable, V any](o options) store[K, V] {
	if o.ordered {
		return newOrderedStore[K, V](o.capacity)
	}
	return newHashStore[K, V](o.capacity)
}

// hashStore is the default backing store: a plain Go map from key to
// handle. Rehashing moves the map's buckets, never the handles'
// targets.
type hashStore[K comparable, V any] struct {
	m map[K]*V
}

func newHashStore[K comparable, V any](capacity int) *hashStore[K, V] {
	return &hashStore[K, V]{m: make(map[K]*V, capacity)}
}

func (s *hashStore[K, V]) insert(key K, handle *V) (int, *V, bool) {
	if existing, ok := s.m[key]; ok {
		return -1, existing, false
	}
	s.m[key] = handle
	return -1, handle, true
}

func (s *hashStore[K, V]) lookup(key K) (*V, bool) {
	handle, ok := s.m[key]
	return handle, ok
}

func (s *hashStore[K, V]) lookupFull(key K) (int, *V, bool) {
	handle, ok := s.m[key]
	if !ok {
		return -1, nil, false
	}
	return -1, handle, true
}

func (s *hashStore[K, V]) at(int) (K, *V, bool) {
	var zero K
	return zero, nil, false
}

func (s *hashStore[K, V]) len() int { return len(s.m) }

func (s *hashStore[K, V]) all() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		for key, handle := range s.m {
			if !yield(key, handle) {
				return
			}
		}
	}
}

// orderedStore keeps entries in insertion order and supports positional
// access. Indices are assigned densely at insertion time and never
// change. Growing the key/handle slices relocates the slice headers and
// the handle pointers themselves, but never the values the handles
// point to.
type orderedStore[K comparable, V any] struct {
	index   map[K]int
	keys    []K
	handles []*V
}

func newOrderedStore[K comparable, V any](capacity int) *orderedStore[K, V] {
	return &orderedStore[K, V]{
		index:   make(map[K]int, capacity),
		keys:    make([]K, 0, capacity),
		handles: make([]*V, 0, capacity),
	}
}

func (s *orderedStore[K, V]) insert(key K, handle *V) (int, *V, bool) {
	if i, ok := s.index[key]; ok {
		return i, s.handles[i], false
	}
	i := len(s.handles)
	s.index[key] = i
	s.keys = append(s.keys, key)
	s.handles = append(s.handles, handle)
	return i, handle, true
}

func (s *orderedStore[K, V]) lookup(key K) (*V, bool) {
	i, ok := s.index[key]
	if !ok {
		return nil, false
	}
	return s.handles[i], true
}

func (s *orderedStore[K, V]) lookupFull(key K) (int, *V, bool) {
	i, ok := s.index[key]
	if !ok {
		return -1, nil, false
	}
	return i, s.handles[i], true
}

func (s *orderedStore[K, V]) at(i int) (K, *V, bool) {
	if i < 0 || i >= len(s.handles) {
		var zero K
		return zero, nil, false
	}
	return s.keys[i], s.handles[i], true
}

func (s *orderedStore[K, V]) len() int { return len(s.handles) }

func (s *orderedStore[K, V]) all() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		// Entries appended mid-iteration are not visited; the bound is
		// taken once at range start.
		n := len(s.handles)
		for i := 0; i < n; i++ {
			if !yield(s.keys[i], s.handles[i]) {
				return
			}
		}
	}
}
