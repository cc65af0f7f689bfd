package snapshot

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/frozen"
	"github.com/hupe1980/frozen/codec"
)

type record struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestMapRoundTrip(t *testing.T) {
	codecs := map[string]codec.Codec{
		"json":    codec.JSON{},
		"go-json": codec.GoJSON{},
		"cbor":    codec.CBOR{},
	}
	compressions := map[string]Compression{
		"none": None,
		"zstd": Zstd,
		"lz4":  LZ4,
	}

	for cn, c := range codecs {
		for zn, z := range compressions {
			t.Run(fmt.Sprintf("%s_%s", cn, zn), func(t *testing.T) {
				m := frozen.NewMap[string, record]()
				for i := 0; i < 100; i++ {
					m.Insert(fmt.Sprintf("key-%03d", i), record{Name: fmt.Sprintf("n%d", i), Score: i})
				}

				var buf bytes.Buffer
				require.NoError(t, WriteMap(&buf, m, WithCodec(c), WithCompression(z)))

				got, err := ReadMap[string, record](&buf)
				require.NoError(t, err)

				require.Equal(t, m.Len(), got.Len())
				for i := 0; i < 100; i++ {
					key := fmt.Sprintf("key-%03d", i)
					v, ok := got.Get(key)
					require.True(t, ok, "missing %s", key)
					assert.Equal(t, record{Name: fmt.Sprintf("n%d", i), Score: i}, *v)
				}
			})
		}
	}
}

func TestReadSelectsCodecFromHeader(t *testing.T) {
	m := frozen.NewMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, m, WithCodec(codec.CBOR{})))

	// Reader options deliberately name a different codec; the header
	// wins.
	got, err := ReadMap[string, int](&buf, WithCodec(codec.JSON{}))
	require.NoError(t, err)

	v, ok := got.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, *v)
}

func TestIndexMapRoundTripPreservesIndices(t *testing.T) {
	m := frozen.NewIndexMap[string, int]()
	m.Insert("zebra", 1)
	m.Insert("apple", 2)
	m.Insert("mango", 3)

	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, m))

	got, err := ReadIndexMap[string, int](&buf)
	require.NoError(t, err)

	for want, key := range []string{"zebra", "apple", "mango"} {
		idx, _, ok := got.GetFull(key)
		require.True(t, ok)
		assert.Equal(t, want, idx, "index of %s", key)
	}
}

func TestIndexSetRoundTripPreservesIndices(t *testing.T) {
	s := frozen.NewIndexSet[string]()
	s.Insert("c")
	s.Insert("a")
	s.Insert("b")

	var buf bytes.Buffer
	require.NoError(t, WriteVector[string](&buf, s))

	got, err := ReadIndexSet[string](&buf)
	require.NoError(t, err)

	require.Equal(t, 3, got.Len())
	for want, value := range []string{"c", "a", "b"} {
		idx, _, ok := got.GetFull(value)
		require.True(t, ok)
		assert.Equal(t, want, idx)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	v := frozen.NewVector[record]()
	for i := 0; i < 50; i++ {
		v.Append(record{Name: fmt.Sprintf("n%d", i), Score: i})
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVector[record](&buf, v, WithCompression(Zstd)))

	got, err := ReadVector[record](&buf)
	require.NoError(t, err)

	require.Equal(t, 50, got.Len())
	for i := 0; i < 50; i++ {
		p, ok := got.Get(i)
		require.True(t, ok)
		assert.Equal(t, i, p.Score)
	}
}

func TestSyncContainersRoundTrip(t *testing.T) {
	m := frozen.NewSyncMap[int, string]()
	m.Insert(1, "one")
	m.Insert(2, "two")

	v := frozen.NewSyncVector[string]()
	v.Append("a")
	v.Append("b")

	var mbuf, vbuf bytes.Buffer
	require.NoError(t, WriteMap(&mbuf, m))
	require.NoError(t, WriteVector[string](&vbuf, v))

	gm, err := ReadSyncMap[int, string](&mbuf)
	require.NoError(t, err)
	s, ok := gm.Get(2)
	require.True(t, ok)
	assert.Equal(t, "two", *s)

	gv, err := ReadSyncVector[string](&vbuf)
	require.NoError(t, err)
	require.Equal(t, 2, gv.Len())
	p, ok := gv.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", *p)
}

func TestKindMismatch(t *testing.T) {
	m := frozen.NewMap[string, int]()
	m.Insert("a", 1)

	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, m))

	_, err := ReadVector[int](&buf)
	var mismatch *ErrKindMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, kindOrdinal, mismatch.Expected)
	assert.Equal(t, kindKeyed, mismatch.Actual)
}

func TestInvalidFormat(t *testing.T) {
	_, err := ReadMap[string, int](bytes.NewReader([]byte("not a snapshot at all")))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestUnknownCodec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHeader(&buf, header{
		kind:        kindKeyed,
		compression: None,
		codecName:   "no-such-codec",
		count:       0,
	}))

	_, err := ReadMap[string, int](&buf)
	var unknown *ErrUnknownCodec
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "no-such-codec", unknown.Name)
}

func TestTruncatedPayload(t *testing.T) {
	m := frozen.NewMap[string, int]()
	for i := 0; i < 20; i++ {
		m.Insert(fmt.Sprintf("k%d", i), i)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, m))

	_, err := ReadMap[string, int](bytes.NewReader(buf.Bytes()[:buf.Len()-5]))
	require.Error(t, err)
}

func TestWriteBlockRejectsOversized(t *testing.T) {
	var buf bytes.Buffer
	// Only the length is inspected; the pages stay untouched.
	data := make([]byte, maxBlockLen+1)

	err := writeBlock(&buf, data)
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "nothing may reach the stream")
}

func TestMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	m := frozen.NewMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	var buf bytes.Buffer
	require.NoError(t, WriteMap(&buf, m, WithMetricsCollector(mc)))

	_, err := ReadMap[string, int](&buf, WithMetricsCollector(mc))
	require.NoError(t, err)

	assert.Equal(t, int64(2), mc.WriteEntries.Load())
	assert.Equal(t, int64(2), mc.ReadEntries.Load())
	assert.Positive(t, mc.WriteBytes.Load())
	assert.Equal(t, mc.WriteBytes.Load(), mc.ReadBytes.Load())
	assert.Zero(t, mc.WriteErrors.Load())
	assert.Zero(t, mc.ReadErrors.Load())
}

func TestMetricsRecordsReadError(t *testing.T) {
	mc := &BasicMetricsCollector{}

	_, err := ReadMap[string, int](bytes.NewReader(nil), WithMetricsCollector(mc))
	require.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, int64(1), mc.ReadErrors.Load())
}
