package integration_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/frozen"
	"github.com/hupe1980/frozen/blobstore"
	"github.com/hupe1980/frozen/snapshot"
	"github.com/hupe1980/frozen/testutil"
)

// TestSnapshotLifecycle fills containers, publishes them to a local
// blob store through a read-through cache, and restores them.
func TestSnapshotLifecycle(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(4711)

	store := blobstore.NewCachingStore(blobstore.NewLocalStore(t.TempDir()))

	keys := rng.Keys(500)
	m := frozen.NewIndexMap[string, uint64]()
	for _, key := range keys {
		m.Insert(key, rng.Uint64())
	}

	err := snapshot.Publish(ctx, store, "state/index.snap", func(w io.Writer) error {
		return snapshot.WriteMap(w, m, snapshot.WithCompression(snapshot.Zstd))
	})
	require.NoError(t, err)

	var restored *frozen.IndexMap[string, uint64]
	err = snapshot.Fetch(ctx, store, "state/index.snap", func(r io.Reader) error {
		var err error
		restored, err = snapshot.ReadIndexMap[string, uint64](r)
		return err
	})
	require.NoError(t, err)

	require.Equal(t, m.Len(), restored.Len())
	for i, key := range keys {
		wantIdx, want, ok := m.GetFull(key)
		require.True(t, ok)
		assert.Equal(t, i, wantIdx)

		gotIdx, got, ok := restored.GetFull(key)
		require.True(t, ok)
		assert.Equal(t, wantIdx, gotIdx)
		assert.Equal(t, *want, *got)
	}
}

// TestInterningUnderLoad drives a SyncMap the way a string interner is
// used: many goroutines interning from a small shared pool, all
// agreeing on one handle per distinct value.
func TestInterningUnderLoad(t *testing.T) {
	rng := testutil.NewRNG(42)
	words := rng.Words(10_000, 32)

	interner := frozen.NewSyncMap[string, string]()

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for _, word := range words {
				interner.GetOrInsertWith(word, func() string { return word })
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.LessOrEqual(t, interner.Len(), 32)
	for _, word := range words[:100] {
		a, ok := interner.Get(word)
		require.True(t, ok)
		b, _ := interner.Get(word)
		assert.Same(t, a, b)
	}
}

// TestRestoreThenKeepAppending checks a restored container behaves
// like a live one: new inserts extend it and old handles stay put.
func TestRestoreThenKeepAppending(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	v := frozen.NewVector[string]()
	v.Append("a")
	v.Append("b")

	err := snapshot.Publish(ctx, store, "v.snap", func(w io.Writer) error {
		return snapshot.WriteVector[string](w, v)
	})
	require.NoError(t, err)

	var restored *frozen.Vector[string]
	err = snapshot.Fetch(ctx, store, "v.snap", func(r io.Reader) error {
		var err error
		restored, err = snapshot.ReadVector[string](r)
		return err
	})
	require.NoError(t, err)

	b, ok := restored.Get(1)
	require.True(t, ok)

	idx, _ := restored.Append("c")
	assert.Equal(t, 2, idx)
	assert.Equal(t, "b", *b)
}
