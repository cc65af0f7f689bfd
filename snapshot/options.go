package snapshot

import (
	"github.com/hupe1980/frozen"
	"github.com/hupe1980/frozen/codec"
)

// Compression selects how a snapshot's pair stream is compressed.
// The choice is recorded in the header; readers never need to know it
// up front.
type Compression uint8

const (
	// None stores the pair stream uncompressed.
	None Compression = iota
	// Zstd compresses with Zstandard. Good default for snapshots kept
	// in object storage.
	Zstd
	// LZ4 compresses with LZ4. Faster than Zstd at a lower ratio.
	LZ4
)

type options struct {
	codec         codec.Codec
	compression   Compression
	logger        *frozen.Logger
	metrics       MetricsCollector
	containerOpts []frozen.Option
}

// Option configures snapshot writing and reading.
type Option func(*options)

// WithCodec configures the codec used to encode keys and values.
//
// If nil is passed, codec.Default is used. Reading always selects the
// codec by the name stored in the snapshot header.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures compression of the pair stream.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures a logger for snapshot operations.
// If nil is passed, logging is disabled.
func WithLogger(l *frozen.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for snapshot
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

// WithContainerOptions passes construction options (frozen.WithOrdered,
// frozen.WithCapacity) to the container a reader rebuilds. A capacity
// hint is applied automatically from the header's entry count.
func WithContainerOptions(opts ...frozen.Option) Option {
	return func(o *options) {
		o.containerOpts = opts
	}
}

func applyOptions(opts []Option) options {
	o := options{
		codec:   codec.Default,
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = frozen.NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = NoopMetricsCollector{}
	}
	return o
}
