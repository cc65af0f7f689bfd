package snapshot

import (
	"bufio"
	"io"
	"time"

	"github.com/hupe1980/frozen"
	"github.com/hupe1980/frozen/codec"
)

// ReadMap rebuilds a frozen.Map from a keyed snapshot by replaying the
// recorded pairs through Insert in their stored order.
func ReadMap[K comparable, V any](r io.Reader, opts ...Option) (*frozen.Map[K, V], error) {
	o := applyOptions(opts)

	keys, values, err := readKeyed[K, V](r, o)
	if err != nil {
		return nil, err
	}
	m := frozen.NewMap[K, V](containerOpts(o, len(keys))...)
	for i, key := range keys {
		m.Insert(key, values[i])
	}
	return m, nil
}

// ReadIndexMap rebuilds a frozen.IndexMap from a keyed snapshot.
// Indices are reassigned by replay order, which matches the original
// assignment since IndexMap snapshots are written in insertion order.
func ReadIndexMap[K comparable, V any](r io.Reader, opts ...Option) (*frozen.IndexMap[K, V], error) {
	o := applyOptions(opts)

	keys, values, err := readKeyed[K, V](r, o)
	if err != nil {
		return nil, err
	}
	m := frozen.NewIndexMap[K, V](containerOpts(o, len(keys))...)
	for i, key := range keys {
		m.Insert(key, values[i])
	}
	return m, nil
}

// ReadSyncMap rebuilds a frozen.SyncMap from a keyed snapshot.
func ReadSyncMap[K comparable, V any](r io.Reader, opts ...Option) (*frozen.SyncMap[K, V], error) {
	o := applyOptions(opts)

	keys, values, err := readKeyed[K, V](r, o)
	if err != nil {
		return nil, err
	}
	m := frozen.NewSyncMap[K, V](containerOpts(o, len(keys))...)
	for i, key := range keys {
		m.Insert(key, values[i])
	}
	return m, nil
}

// ReadVector rebuilds a frozen.Vector from an ordinal snapshot.
func ReadVector[V any](r io.Reader, opts ...Option) (*frozen.Vector[V], error) {
	o := applyOptions(opts)

	values, err := readOrdinal[V](r, o)
	if err != nil {
		return nil, err
	}
	v := frozen.NewVector[V](containerOpts(o, len(values))...)
	for _, value := range values {
		v.Append(value)
	}
	return v, nil
}

// ReadSyncVector rebuilds a frozen.SyncVector from an ordinal
// snapshot.
func ReadSyncVector[V any](r io.Reader, opts ...Option) (*frozen.SyncVector[V], error) {
	o := applyOptions(opts)

	values, err := readOrdinal[V](r, o)
	if err != nil {
		return nil, err
	}
	v := frozen.NewSyncVector[V]()
	for _, value := range values {
		v.Append(value)
	}
	return v, nil
}

// ReadIndexSet rebuilds a frozen.IndexSet from an ordinal snapshot.
// Replaying in stored order reproduces the original index assignment.
func ReadIndexSet[T comparable](r io.Reader, opts ...Option) (*frozen.IndexSet[T], error) {
	o := applyOptions(opts)

	values, err := readOrdinal[T](r, o)
	if err != nil {
		return nil, err
	}
	s := frozen.NewIndexSet[T](containerOpts(o, len(values))...)
	for _, value := range values {
		s.Insert(value)
	}
	return s, nil
}

func containerOpts(o options, count int) []frozen.Option {
	return append([]frozen.Option{frozen.WithCapacity(count)}, o.containerOpts...)
}

func readKeyed[K comparable, V any](r io.Reader, o options) ([]K, []V, error) {
	start := time.Now()
	cr := &countingReader{r: r}

	keys, values, err := decodeKeyed[K, V](cr)
	o.metrics.RecordRead(len(keys), cr.n, time.Since(start), err)
	if err != nil {
		o.logger.Error("snapshot read failed", "kind", "keyed", "error", err)
		return nil, nil, err
	}
	o.logger.Debug("snapshot read",
		"kind", "keyed",
		"entries", len(keys),
		"bytes", cr.n,
		"duration", time.Since(start),
	)
	return keys, values, nil
}

func readOrdinal[V any](r io.Reader, o options) ([]V, error) {
	start := time.Now()
	cr := &countingReader{r: r}

	values, err := decodeOrdinal[V](cr)
	o.metrics.RecordRead(len(values), cr.n, time.Since(start), err)
	if err != nil {
		o.logger.Error("snapshot read failed", "kind", "ordinal", "error", err)
		return nil, err
	}
	o.logger.Debug("snapshot read",
		"kind", "ordinal",
		"entries", len(values),
		"bytes", cr.n,
		"duration", time.Since(start),
	)
	return values, nil
}

func decodeKeyed[K comparable, V any](r io.Reader) ([]K, []V, error) {
	h, c, body, closeBody, err := openPayload(r, kindKeyed)
	if err != nil {
		return nil, nil, err
	}
	defer closeBody()

	keys := make([]K, 0, allocHint(h.count))
	values := make([]V, 0, allocHint(h.count))
	for i := uint64(0); i < h.count; i++ {
		kb, err := readBlock(body)
		if err != nil {
			return nil, nil, err
		}
		var key K
		if err := c.Unmarshal(kb, &key); err != nil {
			return nil, nil, err
		}

		vb, err := readBlock(body)
		if err != nil {
			return nil, nil, err
		}
		var value V
		if err := c.Unmarshal(vb, &value); err != nil {
			return nil, nil, err
		}

		keys = append(keys, key)
		values = append(values, value)
	}
	return keys, values, nil
}

func decodeOrdinal[V any](r io.Reader) ([]V, error) {
	h, c, body, closeBody, err := openPayload(r, kindOrdinal)
	if err != nil {
		return nil, err
	}
	defer closeBody()

	values := make([]V, 0, allocHint(h.count))
	for i := uint64(0); i < h.count; i++ {
		vb, err := readBlock(body)
		if err != nil {
			return nil, err
		}
		var value V
		if err := c.Unmarshal(vb, &value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func openPayload(r io.Reader, wantKind uint8) (header, codec.Codec, *bufio.Reader, func(), error) {
	h, err := readHeader(r)
	if err != nil {
		return h, nil, nil, nil, err
	}
	if h.kind != wantKind {
		return h, nil, nil, nil, &ErrKindMismatch{Expected: wantKind, Actual: h.kind}
	}
	c, ok := codec.ByName(h.codecName)
	if !ok {
		return h, nil, nil, nil, &ErrUnknownCodec{Name: h.codecName}
	}
	body, closeBody, err := decompressReader(r, h.compression)
	if err != nil {
		return h, nil, nil, nil, err
	}
	return h, c, bufio.NewReader(body), closeBody, nil
}

// allocHint caps the initial slice allocation so a corrupt count can
// not trigger a huge up-front allocation; slices still grow to the
// real size.
func allocHint(count uint64) int {
	const maxHint = 1 << 20
	if count > maxHint {
		return maxHint
	}
	return int(count)
}
