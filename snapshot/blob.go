package snapshot

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/frozen/blobstore"
)

// Publish writes a snapshot to a named blob. The write callback
// receives the blob as its destination, typically a closure over one
// of the Write functions:
//
//	err := snapshot.Publish(ctx, store, "users.snap", func(w io.Writer) error {
//		return snapshot.WriteMap(w, m)
//	})
//
// The blob becomes visible under its final name only after the write
// callback succeeds and the blob is closed.
func Publish(ctx context.Context, store blobstore.BlobStore, name string, write func(w io.Writer) error) error {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create blob %q: %w", name, err)
	}

	if err := write(blob); err != nil {
		// Close may still publish the partial blob; remove it so a
		// failed write never leaves a readable snapshot behind.
		_ = blob.Close()
		_ = store.Delete(ctx, name)
		return fmt.Errorf("write blob %q: %w", name, err)
	}
	if err := blob.Close(); err != nil {
		return fmt.Errorf("close blob %q: %w", name, err)
	}
	return nil
}

// Fetch opens a named blob and hands it to the read callback as a
// stream, typically a closure over one of the Read functions:
//
//	var m *frozen.Map[string, int]
//	err := snapshot.Fetch(ctx, store, "users.snap", func(r io.Reader) error {
//		var err error
//		m, err = snapshot.ReadMap[string, int](r)
//		return err
//	})
func Fetch(ctx context.Context, store blobstore.BlobStore, name string, read func(r io.Reader) error) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open blob %q: %w", name, err)
	}
	defer blob.Close()

	rc, err := blobstore.Reader(ctx, blob)
	if err != nil {
		return fmt.Errorf("read blob %q: %w", name, err)
	}
	defer rc.Close()

	if err := read(rc); err != nil {
		return fmt.Errorf("read blob %q: %w", name, err)
	}
	return nil
}
