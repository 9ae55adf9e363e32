// Package ring provides bounded buffering primitives used to fan
// characteristic value updates out to subscribers without ever blocking the
// writer side of the attribute table.
package ring

import "sync/atomic"

// Channel is a bounded channel-like buffer with overwrite-oldest semantics.
//
// It wraps a buffered channel and ensures producers never block indefinitely:
// if the buffer is full, the oldest element is discarded. Readers can range
// over C() like a normal Go channel, or use Receive/TryReceive for metrics
// tracking.
type Channel[T any] struct {
	ch      chan T
	metrics Metrics
}

// NewChannel creates a Channel with the given capacity.
func NewChannel[T any](capacity int) *Channel[T] {
	if capacity <= 0 {
		panic("ring: capacity must be > 0")
	}
	return &Channel[T]{ch: make(chan T, capacity)}
}

// C returns the underlying receive-only channel. Consumers can range over
// this until it's closed. Reads via C() bypass the Processed metric.
func (c *Channel[T]) C() <-chan T {
	return c.ch
}

// Send inserts an item, discarding the oldest when the buffer is full.
// It never blocks indefinitely.
func (c *Channel[T]) Send(v T) {
	select {
	case c.ch <- v:
		c.metrics.addWritten(1)
	default:
		<-c.ch // drop oldest
		c.metrics.addOverwritten(1)
		c.ch <- v
		c.metrics.addWritten(1)
	}
}

// TrySend attempts to insert without blocking.
// Returns true if successful, false if the buffer is full.
func (c *Channel[T]) TrySend(v T) bool {
	select {
	case c.ch <- v:
		c.metrics.addWritten(1)
		return true
	default:
		return false
	}
}

// ForceSend always succeeds immediately, discarding the oldest if needed.
// The result reports whether an element was dropped.
func (c *Channel[T]) ForceSend(v T) bool {
	dropped := false

	select {
	case c.ch <- v:
		c.metrics.addWritten(1)
	default:
		select {
		case <-c.ch: // drop oldest
			c.metrics.addOverwritten(1)
			dropped = true
		default:
		}
		c.ch <- v
		c.metrics.addWritten(1)
	}

	return dropped
}

// Receive blocks until a value is available or the channel is closed.
// The ok result is false if the channel is closed.
func (c *Channel[T]) Receive() (v T, ok bool) {
	v, ok = <-c.ch
	if ok {
		c.metrics.addProcessed(1)
	}
	return
}

// TryReceive attempts a non-blocking receive.
// Returns (zero, false) if no value is ready.
func (c *Channel[T]) TryReceive() (v T, ok bool) {
	select {
	case v, ok = <-c.ch:
		if ok {
			c.metrics.addProcessed(1)
		}
		return
	default:
		var zero T
		return zero, false
	}
}

// Len returns the number of buffered elements.
func (c *Channel[T]) Len() int {
	return len(c.ch)
}

// Cap returns the channel capacity.
func (c *Channel[T]) Cap() int {
	return cap(c.ch)
}

// Close closes the underlying channel. After this, Send/ForceSend panics.
func (c *Channel[T]) Close() {
	close(c.ch)
}

// GetMetrics returns a snapshot of current metrics values.
// All reads are atomic and thread-safe.
func (c *Channel[T]) GetMetrics() Metrics {
	return Metrics{
		Processed:   atomic.LoadInt64(&c.metrics.Processed),
		Written:     atomic.LoadInt64(&c.metrics.Written),
		Overwritten: atomic.LoadInt64(&c.metrics.Overwritten),
	}
}

// Metrics provides lock-free counters for a Channel.
type Metrics struct {
	Processed   int64
	Written     int64
	Overwritten int64
}

func (m *Metrics) addProcessed(n int) {
	atomic.AddInt64(&m.Processed, int64(n))
}

func (m *Metrics) addWritten(n int) {
	atomic.AddInt64(&m.Written, int64(n))
}

func (m *Metrics) addOverwritten(n int) {
	atomic.AddInt64(&m.Overwritten, int64(n))
}
