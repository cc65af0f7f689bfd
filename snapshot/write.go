package snapshot

import (
	"bufio"
	"io"
	"iter"
	"time"
)

// KeyedSource is any keyed container a snapshot can be taken of:
// frozen.Map, frozen.IndexMap, frozen.SyncMap.
type KeyedSource[K comparable, V any] interface {
	All() iter.Seq2[K, *V]
	Len() int
}

// OrdinalSource is any ordinal container a snapshot can be taken of:
// frozen.Vector, frozen.SyncVector, frozen.IndexSet.
type OrdinalSource[V any] interface {
	All() iter.Seq2[int, *V]
	Len() int
}

// WriteMap writes a keyed snapshot of src to w. Pairs are written in
// the container's iteration order; rebuilding replays them in that
// order, so an insertion-ordered container round-trips with its order
// intact.
func WriteMap[K comparable, V any](w io.Writer, src KeyedSource[K, V], opts ...Option) error {
	o := applyOptions(opts)
	start := time.Now()
	cw := &countingWriter{w: w}

	// Capture the pair set once so the header count and the stream
	// agree even if src is a synchronized container being inserted
	// into concurrently.
	keys := make([]K, 0, src.Len())
	handles := make([]*V, 0, src.Len())
	for key, handle := range src.All() {
		keys = append(keys, key)
		handles = append(handles, handle)
	}

	err := func() error {
		if err := writeHeader(cw, header{
			kind:        kindKeyed,
			compression: o.compression,
			codecName:   o.codec.Name(),
			count:       uint64(len(keys)),
		}); err != nil {
			return err
		}

		cmp, err := compressWriter(cw, o.compression)
		if err != nil {
			return err
		}
		bw := bufio.NewWriter(cmp)

		for i, key := range keys {
			kb, err := o.codec.Marshal(key)
			if err != nil {
				return err
			}
			if err := writeBlock(bw, kb); err != nil {
				return err
			}
			vb, err := o.codec.Marshal(*handles[i])
			if err != nil {
				return err
			}
			if err := writeBlock(bw, vb); err != nil {
				return err
			}
		}

		if err := bw.Flush(); err != nil {
			return err
		}
		return cmp.Close()
	}()

	o.metrics.RecordWrite(len(keys), cw.n, time.Since(start), err)
	if err != nil {
		o.logger.Error("snapshot write failed", "kind", "keyed", "error", err)
		return err
	}
	o.logger.Debug("snapshot written",
		"kind", "keyed",
		"entries", len(keys),
		"bytes", cw.n,
		"codec", o.codec.Name(),
		"duration", time.Since(start),
	)
	return nil
}

// WriteVector writes an ordinal snapshot of src to w. Values are
// written in index order; indices themselves are implicit since they
// are dense.
func WriteVector[V any](w io.Writer, src OrdinalSource[V], opts ...Option) error {
	o := applyOptions(opts)
	start := time.Now()
	cw := &countingWriter{w: w}

	handles := make([]*V, 0, src.Len())
	for _, handle := range src.All() {
		handles = append(handles, handle)
	}

	err := func() error {
		if err := writeHeader(cw, header{
			kind:        kindOrdinal,
			compression: o.compression,
			codecName:   o.codec.Name(),
			count:       uint64(len(handles)),
		}); err != nil {
			return err
		}

		cmp, err := compressWriter(cw, o.compression)
		if err != nil {
			return err
		}
		bw := bufio.NewWriter(cmp)

		for _, handle := range handles {
			vb, err := o.codec.Marshal(*handle)
			if err != nil {
				return err
			}
			if err := writeBlock(bw, vb); err != nil {
				return err
			}
		}

		if err := bw.Flush(); err != nil {
			return err
		}
		return cmp.Close()
	}()

	o.metrics.RecordWrite(len(handles), cw.n, time.Since(start), err)
	if err != nil {
		o.logger.Error("snapshot write failed", "kind", "ordinal", "error", err)
		return err
	}
	o.logger.Debug("snapshot written",
		"kind", "ordinal",
		"entries", len(handles),
		"bytes", cw.n,
		"codec", o.codec.Name(),
		"duration", time.Since(start),
	)
	return nil
}
