package frozen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexMapInsertAssignsDenseIndices(t *testing.T) {
	m := NewIndexMap[string, int]()

	i0, p := m.InsertFull("a", 1)
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, *p)

	i1, _ := m.InsertFull("b", 2)
	assert.Equal(t, 1, i1)

	i2, _ := m.InsertFull("c", 3)
	assert.Equal(t, 2, i2)
}

func TestIndexMapDuplicateKeepsIndexAndValue(t *testing.T) {
	m := NewIndexMap[string, int]()
	first := m.Insert("a", 1)
	m.Insert("b", 2)

	idx, again := m.InsertFull("a", 99)
	assert.Equal(t, 0, idx)
	assert.Same(t, first, again)
	assert.Equal(t, 1, *again)
	assert.Equal(t, 2, m.Len())
}

func TestIndexMapGetFull(t *testing.T) {
	m := NewIndexMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	idx, p, ok := m.GetFull("b")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, *p)

	_, _, ok = m.GetFull("missing")
	assert.False(t, ok)
}

func TestIndexMapGetAt(t *testing.T) {
	m := NewIndexMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	key, p, ok := m.GetAt(1)
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, 2, *p)

	_, _, ok = m.GetAt(2)
	assert.False(t, ok)
	_, _, ok = m.GetAt(-1)
	assert.False(t, ok)
}

func TestIndexMapHandleStableUnderGrowth(t *testing.T) {
	m := NewIndexMap[int, string]()
	_, p := m.InsertFull(0, "keep")

	for i := 1; i <= 5000; i++ {
		m.Insert(i, "filler")
	}

	assert.Equal(t, "keep", *p)
	idx, got, ok := m.GetFull(0)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Same(t, p, got)
}

func TestIndexMapGetOrInsertWith(t *testing.T) {
	m := NewIndexMap[string, int]()

	p := m.GetOrInsertWith("a", func() int { return 7 })
	assert.Equal(t, 7, *p)

	q := m.GetOrInsertWith("a", func() int {
		t.Fatal("producer ran for a present key")
		return 0
	})
	assert.Same(t, p, q)
}

func TestIndexMapReentrantProducerPanics(t *testing.T) {
	m := NewIndexMap[string, int]()

	assert.PanicsWithValue(t, ErrReentrantMutation, func() {
		m.GetOrInsertWith("a", func() int {
			m.Insert("b", 2)
			return 1
		})
	})
}

func TestIndexMapAllInInsertionOrder(t *testing.T) {
	m := NewIndexMap[string, int]()
	for i, key := range []string{"zebra", "apple", "mango"} {
		m.Insert(key, i)
	}

	var keys []string
	for key := range m.All() {
		keys = append(keys, key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
}

func TestIndexMapManyEntries(t *testing.T) {
	m := NewIndexMap[string, int](WithCapacity(1000))
	for i := 0; i < 1000; i++ {
		idx, _ := m.InsertFull(fmt.Sprintf("key-%d", i), i)
		assert.Equal(t, i, idx)
	}

	for i := 0; i < 1000; i++ {
		key, p, ok := m.GetAt(i)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("key-%d", i), key)
		assert.Equal(t, i, *p)
	}
}
