package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hupe1980/frozen"
	"github.com/hupe1980/frozen/blobstore"
	"github.com/hupe1980/frozen/snapshot"
)

func main() {
	size := 100_000

	interner := frozen.NewIndexSet[string]()

	fmt.Println("--- Intern ---")
	fmt.Println("Size:", size)

	start := time.Now()

	first, _ := interner.InsertFull("label-0")
	for i := 0; i < size; i++ {
		interner.Insert(fmt.Sprintf("label-%d", i%1000))
	}

	fmt.Println("Duration:", time.Since(start))
	fmt.Println("Distinct:", interner.Len())

	// Handles survive all the growth above.
	p, _ := interner.At(first)
	fmt.Println("First handle still reads:", *p)

	fmt.Println("--- Snapshot ---")

	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	err := snapshot.Publish(ctx, store, "labels.snap", func(w io.Writer) error {
		return snapshot.WriteVector[string](w, interner, snapshot.WithCompression(snapshot.Zstd))
	})
	if err != nil {
		log.Fatal(err)
	}

	var restored *frozen.IndexSet[string]
	err = snapshot.Fetch(ctx, store, "labels.snap", func(r io.Reader) error {
		var err error
		restored, err = snapshot.ReadIndexSet[string](r)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Restored:", restored.Len())
	idx, _, _ := restored.GetFull("label-0")
	fmt.Println("Index of label-0:", idx)
}
