package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Binary layout:
//
//	[8]byte  magic "FRZSNAP1"
//	uint8    format version
//	uint8    container kind (keyed | ordinal)
//	uint8    compression
//	uint8    codec name length, followed by the name bytes
//	uint64   entry count (little endian)
//	...      pair stream, possibly compressed: length-prefixed
//	         codec-encoded key and value blocks (keyed), value blocks
//	         only (ordinal)

const (
	magic   = "FRZSNAP1"
	version = 1

	kindKeyed   uint8 = 1
	kindOrdinal uint8 = 2

	// maxBlockLen bounds a single encoded key or value. Guards against
	// allocating huge buffers from a corrupt length prefix.
	maxBlockLen = 1 << 30
)

// ErrInvalidFormat indicates data that is not a snapshot or is
// corrupt.
var ErrInvalidFormat = errors.New("snapshot: invalid format")

// ErrUnsupportedVersion indicates a snapshot written by a newer format
// version.
type ErrUnsupportedVersion struct {
	Version uint8
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("snapshot: unsupported format version %d", e.Version)
}

// ErrUnknownCodec indicates a snapshot whose codec is not registered
// under codec.ByName.
type ErrUnknownCodec struct {
	Name string
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("snapshot: unknown codec %q", e.Name)
}

// ErrKindMismatch indicates reading a snapshot with a reader for the
// wrong container shape, e.g. ReadVector on a map snapshot.
type ErrKindMismatch struct {
	Expected, Actual uint8
}

func (e *ErrKindMismatch) Error() string {
	return fmt.Sprintf("snapshot: container kind mismatch: expected %s, got %s",
		kindName(e.Expected), kindName(e.Actual))
}

func kindName(k uint8) string {
	switch k {
	case kindKeyed:
		return "keyed"
	case kindOrdinal:
		return "ordinal"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

type header struct {
	kind        uint8
	compression Compression
	codecName   string
	count       uint64
}

func writeHeader(w io.Writer, h header) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if len(h.codecName) > 255 {
		return fmt.Errorf("snapshot: codec name too long: %q", h.codecName)
	}
	fixed := []byte{version, h.kind, byte(h.compression), byte(len(h.codecName))}
	if _, err := w.Write(fixed); err != nil {
		return err
	}
	if _, err := w.Write([]byte(h.codecName)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, h.count)
}

func readHeader(r io.Reader) (header, error) {
	var h header

	buf := make([]byte, len(magic))
	if _, err := io.ReadFull(r, buf); err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if string(buf) != magic {
		return h, fmt.Errorf("%w: bad magic", ErrInvalidFormat)
	}

	fixed := make([]byte, 4)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if fixed[0] != version {
		return h, &ErrUnsupportedVersion{Version: fixed[0]}
	}
	h.kind = fixed[1]
	h.compression = Compression(fixed[2])

	name := make([]byte, fixed[3])
	if _, err := io.ReadFull(r, name); err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	h.codecName = string(name)

	if err := binary.Read(r, binary.LittleEndian, &h.count); err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return h, nil
}

// compressWriter wraps w according to the configured compression.
// The returned WriteCloser must be closed to flush; closing it does
// not close w.
func compressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Zstd:
		return zstd.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("snapshot: unknown compression %d", c)
	}
}

// decompressReader wraps r according to the compression recorded in
// the header. The returned closer releases decoder resources.
func decompressReader(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case None:
		return r, func() {}, nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case LZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("snapshot: unknown compression %d", c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func writeBlock(w io.Writer, data []byte) error {
	if len(data) > maxBlockLen {
		return fmt.Errorf("snapshot: encoded block too large: %d bytes", len(data))
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readBlock(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	if n > maxBlockLen {
		return nil, fmt.Errorf("%w: block length %d", ErrInvalidFormat, n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// countingWriter tracks bytes written through it for metrics.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// countingReader tracks bytes read through it for metrics.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
