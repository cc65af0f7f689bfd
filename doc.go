// Package frozen provides append-only collections that hand out stable
// references to their entries.
//
// Once a value is inserted, the pointer returned for it stays valid for
// the life of the container: entries are never removed, overwritten, or
// mutated in place, and every value is stored behind its own heap
// allocation, so internal growth of the backing structures never moves
// the data a caller holds a pointer to. This makes the containers a good
// fit for caches, interners, and arena-like structures where entries are
// produced once and referenced many times afterward.
//
// # Quick Start
//
//	m := frozen.NewMap[string, string]()
//	apple := m.Insert("a", "apple")   // *string, valid for the map's lifetime
//	m.Insert("b", "banana")
//
//	v := m.GetOrInsertWith("c", func() string { return "cherry" })
//	fmt.Println(*apple, *v)
//
// # Container Family
//
//   - [Map]: hash-keyed map; WithOrdered selects an insertion-ordered
//     backing store.
//   - [IndexMap]: insertion-ordered map with positional access.
//   - [IndexSet]: interning set assigning dense indices to values.
//   - [Vector]: ordinal container, append returns the assigned index.
//   - [SyncMap], [SyncVector]: thread-safe variants of Map and Vector.
//
// # Insertion Semantics
//
// Duplicate inserts are a silent no-op: the first writer wins, the
// pointer to the already-stored value is returned, and the new value is
// discarded. GetOrInsertWith calls its producer only when the key is
// absent; in the synchronized variants two racing callers may both run
// the producer for the same key, and exactly one result is kept.
// Producers must not rely on running exactly once.
//
// # Mutation Through Shared Handles
//
// Insertion requires no exclusive access: many readers may hold the
// container and references into it while another call site inserts.
// The single-goroutine containers guard against re-entrant mutation (a
// producer inserting into the container it is being computed for) by
// panicking with [ErrReentrantMutation]. The synchronized containers
// serialize mutations with a lock; a panic unwinding out of a held
// mutation poisons the container, and every later mutation panics with
// [ErrPoisoned].
//
// Serialization of completed containers lives in the snapshot package;
// snapshot blobs can be kept in any blobstore backend.
package frozen
