package frozen

import (
	"sync"
	"sync/atomic"
)

// The mutation gates below are the only components allowed to let a
// freshly stored handle escape as a long-lived pointer. The soundness
// argument is a standing invariant of this package:
//
//  1. every stored value sits behind its own heap allocation, whose
//     address the runtime never changes, and
//  2. entries are never removed or overwritten, so a published handle
//     stays reachable for the container's whole lifetime.
//
// Both conditions must be re-checked whenever a backing store
// implementation changes.

// reentrancyGuard serializes mutations on the single-goroutine
// containers. It exists to catch a GetOrInsertWith producer that
// inserts into the very container it is being computed for; reads
// never consult the guard.
type reentrancyGuard struct {
	inUse bool
}

func (g *reentrancyGuard) enter() {
	if g.inUse {
		panic(ErrReentrantMutation)
	}
	g.inUse = true
}

func (g *reentrancyGuard) leave() {
	g.inUse = false
}

// lockGate serializes mutations on the synchronized containers and
// carries the poison flag. A mutation that panics while the gate is
// held leaves the backing store in an unknown state; the gate then
// rejects all further mutations instead of silently proceeding.
type lockGate struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
}

func (g *lockGate) lock() {
	g.mu.Lock()
	if g.poisoned.Load() {
		g.mu.Unlock()
		panic(ErrPoisoned)
	}
}

// unlock releases the gate. completed must point to a flag the caller
// sets after its mutation finished; when unlock runs with the flag
// still false the mutation is unwinding from a panic and the container
// is poisoned. The panic itself propagates unchanged.
func (g *lockGate) unlock(completed *bool) {
	if !*completed {
		g.poisoned.Store(true)
	}
	g.mu.Unlock()
}

func (g *lockGate) rlock()   { g.mu.RLock() }
func (g *lockGate) runlock() { g.mu.RUnlock() }
