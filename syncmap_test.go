package frozen

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSyncMapInsertAndGet(t *testing.T) {
	m := NewSyncMap[string, int]()

	p := m.Insert("a", 1)
	assert.Equal(t, 1, *p)

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Same(t, p, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestSyncMapFirstWriterWins(t *testing.T) {
	m := NewSyncMap[string, int]()

	first := m.Insert("a", 1)
	second := m.Insert("a", 99)

	assert.Same(t, first, second)
	assert.Equal(t, 1, *second)
	assert.Equal(t, 1, m.Len())
}

func TestSyncMapConcurrentInserts(t *testing.T) {
	m := NewSyncMap[int, int]()

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := 0; i < 1000; i++ {
				p := m.Insert(i, i)
				if *p != i {
					return fmt.Errorf("key %d: got %d", i, *p)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1000, m.Len())
	for i := 0; i < 1000; i++ {
		p, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, *p)
	}
}

func TestSyncMapConcurrentInsertsOneHandlePerKey(t *testing.T) {
	m := NewSyncMap[string, int]()

	handles := make([]*int, 16)
	var g errgroup.Group
	for w := 0; w < len(handles); w++ {
		g.Go(func() error {
			handles[w] = m.Insert("contested", w)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Every racer gets the same handle regardless of who won.
	for _, h := range handles[1:] {
		assert.Same(t, handles[0], h)
	}
}

func TestSyncMapGetOrInsertWithRacingProducers(t *testing.T) {
	m := NewSyncMap[string, int]()

	var calls atomic.Int32
	handles := make([]*int, 16)

	var g errgroup.Group
	for w := 0; w < len(handles); w++ {
		g.Go(func() error {
			handles[w] = m.GetOrInsertWith("key", func() int {
				return int(calls.Add(1))
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Racing producers may run more than once, but exactly one result
	// is kept and every caller sees it.
	for _, h := range handles[1:] {
		assert.Same(t, handles[0], h)
	}
	assert.Equal(t, 1, m.Len())
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestSyncMapConcurrentReadersDuringInserts(t *testing.T) {
	m := NewSyncMap[int, string]()
	stable := m.Insert(-1, "stable")

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < 2000; i++ {
			m.Insert(i, "value")
		}
		return nil
	})
	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for i := 0; i < 2000; i++ {
				if *stable != "stable" {
					return fmt.Errorf("handle changed: %q", *stable)
				}
				if p, ok := m.Get(-1); !ok || p != stable {
					return fmt.Errorf("lookup returned a different handle")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestSyncMapPoisoning(t *testing.T) {
	m := NewSyncMap[string, int]()
	before := m.Insert("before", 1)

	// Simulate a mutation unwinding from a panic while the gate is
	// held.
	func() {
		defer func() { _ = recover() }()
		m.gate.lock()
		completed := false
		defer m.gate.unlock(&completed)
		panic("mutation failed")
	}()

	require.True(t, m.Poisoned())

	assert.PanicsWithValue(t, ErrPoisoned, func() {
		m.Insert("after", 2)
	})
	assert.PanicsWithValue(t, ErrPoisoned, func() {
		m.GetOrInsertWith("after", func() int { return 2 })
	})

	// Entries published before the panic remain readable.
	got, ok := m.Get("before")
	require.True(t, ok)
	assert.Same(t, before, got)
	assert.Equal(t, 1, m.Len())
}

func TestSyncMapAllSnapshot(t *testing.T) {
	m := NewSyncMap[string, int](WithOrdered())
	m.Insert("a", 1)
	m.Insert("b", 2)

	var keys []string
	for key := range m.All() {
		keys = append(keys, key)
		if len(keys) == 1 {
			// Lands in the map but not in the running iteration.
			m.Insert("c", 3)
		}
	}
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, 3, m.Len())
}

func TestSyncMapOrdered(t *testing.T) {
	m := NewSyncMap[string, int](WithOrdered())
	m.Insert("zebra", 1)
	m.Insert("apple", 2)

	var keys []string
	for key := range m.All() {
		keys = append(keys, key)
	}
	assert.Equal(t, []string{"zebra", "apple"}, keys)
}
