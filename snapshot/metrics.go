package snapshot

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting snapshot
// operation metrics. Implement this interface to integrate with
// monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordWrite is called after each snapshot write.
	// entries is the number of pairs written, bytes the encoded size
	// including the header, duration the total time taken, err nil on
	// success.
	RecordWrite(entries int, bytes int64, duration time.Duration, err error)

	// RecordRead is called after each snapshot read.
	RecordRead(entries int, bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordWrite(int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordRead(int, int64, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	WriteCount      atomic.Int64
	WriteErrors     atomic.Int64
	WriteEntries    atomic.Int64
	WriteBytes      atomic.Int64
	WriteTotalNanos atomic.Int64

	ReadCount      atomic.Int64
	ReadErrors     atomic.Int64
	ReadEntries    atomic.Int64
	ReadBytes      atomic.Int64
	ReadTotalNanos atomic.Int64
}

func (c *BasicMetricsCollector) RecordWrite(entries int, bytes int64, duration time.Duration, err error) {
	c.WriteCount.Add(1)
	if err != nil {
		c.WriteErrors.Add(1)
		return
	}
	c.WriteEntries.Add(int64(entries))
	c.WriteBytes.Add(bytes)
	c.WriteTotalNanos.Add(duration.Nanoseconds())
}

func (c *BasicMetricsCollector) RecordRead(entries int, bytes int64, duration time.Duration, err error) {
	c.ReadCount.Add(1)
	if err != nil {
		c.ReadErrors.Add(1)
		return
	}
	c.ReadEntries.Add(int64(entries))
	c.ReadBytes.Add(bytes)
	c.ReadTotalNanos.Add(duration.Nanoseconds())
}
