package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(4711)
	b := NewRNG(4711)

	assert.Equal(t, a.Keys(10), b.Keys(10))
	assert.Equal(t, a.Ints(10, 100), b.Ints(10, 100))
}

func TestRNGReset(t *testing.T) {
	r := NewRNG(42)
	first := r.Keys(5)

	r.Reset()
	assert.Equal(t, first, r.Keys(5))
	assert.Equal(t, int64(42), r.Seed())
}

func TestKeysDistinct(t *testing.T) {
	r := NewRNG(1)
	keys := r.Keys(1000)

	seen := map[string]bool{}
	for _, k := range keys {
		require.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestWordsDrawFromPool(t *testing.T) {
	r := NewRNG(1)
	words := r.Words(1000, 10)

	distinct := map[string]bool{}
	for _, w := range words {
		distinct[w] = true
	}
	assert.LessOrEqual(t, len(distinct), 10)
	assert.Greater(t, len(distinct), 1)
}

func TestShuffleKeepsElements(t *testing.T) {
	r := NewRNG(7)
	s := []int{1, 2, 3, 4, 5}
	Shuffle(r, s)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, s)
}
