package gatt

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hedzr/go-ringbuf/v2/mpmc"
)

// CollectorMetrics provides lock-free counters for a ValueCollector.
type CollectorMetrics struct {
	UpdatesProcessed   int64 // updates successfully buffered
	UpdatesOverwritten int64 // updates lost to buffer overflow
	ErrorsOccurred     int64
}

func (m *CollectorMetrics) incrementProcessed() {
	atomic.AddInt64(&m.UpdatesProcessed, 1)
}

func (m *CollectorMetrics) incrementOverwritten(count uint32) {
	atomic.AddInt64(&m.UpdatesOverwritten, int64(count))
}

func (m *CollectorMetrics) incrementErrors() {
	atomic.AddInt64(&m.ErrorsOccurred, 1)
}

// Collector lifecycle states.
const (
	collectorNotRunning uint32 = iota
	collectorRunning
	collectorStopping

	// MaxCollectorBuffer guards against accidental misconfiguration.
	MaxCollectorBuffer uint32 = 1024 * 1024
)

// ValueCollector drains characteristic value updates from a subscription
// channel into an overlapped MPMC ring buffer, overwriting the oldest
// updates on overflow and accounting for the loss.
//
// All methods are thread-safe.
type ValueCollector struct {
	updates <-chan ValueUpdate
	buffer  mpmc.RichOverlappedRingBuffer[ValueUpdate]
	stop    chan struct{}
	done    chan struct{}
	onError func(error)
	metrics CollectorMetrics
	state   uint32
}

// NewValueCollector creates a collector over a subscription channel.
// bufferSize sets the ring capacity; onError is called on unexpected buffer
// errors and defaults to panic when nil.
func NewValueCollector(updates <-chan ValueUpdate, bufferSize uint32, onError func(error)) (*ValueCollector, error) {
	if updates == nil {
		return nil, fmt.Errorf("updates channel cannot be nil")
	}
	if bufferSize == 0 {
		return nil, fmt.Errorf("buffer size must be > 0")
	}
	if bufferSize > MaxCollectorBuffer {
		return nil, fmt.Errorf("buffer size %d exceeds maximum %d", bufferSize, MaxCollectorBuffer)
	}
	if onError == nil {
		onError = func(err error) {
			panic(fmt.Sprintf("ValueCollector: %v", err))
		}
	}

	return &ValueCollector{
		updates: updates,
		buffer:  mpmc.NewOverlappedRingBuffer[ValueUpdate](bufferSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		onError: onError,
	}, nil
}

// Start begins collecting. Blocks until the collector goroutine is running
// or times out. Returns an error if already started.
func (c *ValueCollector) Start() error {
	if !atomic.CompareAndSwapUint32(&c.state, collectorNotRunning, collectorRunning) {
		switch atomic.LoadUint32(&c.state) {
		case collectorRunning:
			return fmt.Errorf("collector is already running")
		case collectorStopping:
			return fmt.Errorf("collector is stopping, wait for it to finish")
		default:
			return fmt.Errorf("collector is in unknown state")
		}
	}

	// Fresh channels per start cycle to prevent close-of-closed panics.
	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	started := make(chan struct{}, 1)

	go func() {
		started <- struct{}{}

		defer func() {
			close(c.done)
			atomic.StoreUint32(&c.state, collectorNotRunning)
		}()
		for {
			select {
			case <-c.stop:
				return
			case update, ok := <-c.updates:
				if !ok {
					return // subscription closed
				}
				overwrites, err := c.buffer.EnqueueM(update)
				if err != nil {
					c.metrics.incrementErrors()
					c.onError(fmt.Errorf("unexpected buffer enqueue error: %w", err))
					return
				}
				c.metrics.incrementOverwritten(overwrites)
				c.metrics.incrementProcessed()
			}
		}
	}()

	select {
	case <-started:
		return nil
	case <-time.After(1 * time.Second):
		close(c.stop)
		<-c.done
		return fmt.Errorf("collector failed to start within 1s timeout")
	}
}

// Stop stops collection and waits for the goroutine to exit.
func (c *ValueCollector) Stop() error {
	if !atomic.CompareAndSwapUint32(&c.state, collectorRunning, collectorStopping) {
		if atomic.LoadUint32(&c.state) == collectorNotRunning {
			return nil // already stopped
		}
	}

	select {
	case <-c.stop:
		// already closed
	default:
		close(c.stop)
	}

	select {
	case <-c.done:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("collector failed to stop within 5s timeout")
	}
}

// Drain dequeues all buffered updates in arrival order.
func (c *ValueCollector) Drain() []ValueUpdate {
	var updates []ValueUpdate
	for !c.buffer.IsEmpty() {
		update, err := c.buffer.Dequeue()
		if err != nil {
			break
		}
		updates = append(updates, update)
	}
	return updates
}

// Metrics returns a snapshot of the collector's counters.
func (c *ValueCollector) Metrics() CollectorMetrics {
	return CollectorMetrics{
		UpdatesProcessed:   atomic.LoadInt64(&c.metrics.UpdatesProcessed),
		UpdatesOverwritten: atomic.LoadInt64(&c.metrics.UpdatesOverwritten),
		ErrorsOccurred:     atomic.LoadInt64(&c.metrics.ErrorsOccurred),
	}
}
