package gatt

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/smallnest/ringbuffer"
)

// DefaultStreamCapacity is the default byte capacity of a ValueStream.
const DefaultStreamCapacity = 4096

// ValueStream exposes successive characteristic value updates as one byte
// stream: each pushed payload is appended to a bounded ring buffer and read
// back through the io.Reader interface. Writers never block; when the buffer
// is full the overflowing bytes are dropped and counted.
type ValueStream struct {
	buf    *ringbuffer.RingBuffer
	logger *logrus.Logger

	pushed  uint64
	dropped uint64
	closed  uint32
}

// NewValueStream creates a byte stream with the given capacity
// (0 uses DefaultStreamCapacity).
func NewValueStream(capacity int, logger *logrus.Logger) *ValueStream {
	if capacity <= 0 {
		capacity = DefaultStreamCapacity
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &ValueStream{
		buf:    ringbuffer.New(capacity),
		logger: logger,
	}
}

// Push appends a value payload to the stream. Returns the number of bytes
// queued; when the buffer is full the remainder is dropped and accounted in
// Dropped(). Push never blocks.
func (s *ValueStream) Push(data []byte) (int, error) {
	if atomic.LoadUint32(&s.closed) == 1 {
		return 0, io.ErrClosedPipe
	}
	if len(data) == 0 {
		return 0, nil
	}

	// Write returns how many bytes actually fit; overflow surfaces as
	// ErrIsFull (nothing fit) or ErrTooMuchDataToWrite (partial).
	written, err := s.buf.Write(data)
	if err != nil && !errors.Is(err, ringbuffer.ErrIsFull) && !errors.Is(err, ringbuffer.ErrTooMuchDataToWrite) {
		return written, err
	}

	if written < len(data) {
		dropped := len(data) - written
		atomic.AddUint64(&s.dropped, uint64(dropped))
		s.logger.WithFields(logrus.Fields{
			"dropped": dropped,
			"queued":  written,
		}).Warn("Value stream overflow, dropping bytes")
	}

	atomic.AddUint64(&s.pushed, uint64(written))
	return written, nil
}

// Read drains buffered bytes into p. Returns ErrNoData when the stream is
// open but empty, and io.EOF once the stream is closed and drained.
func (s *ValueStream) Read(p []byte) (int, error) {
	n, err := s.buf.Read(p)
	if err != nil && errors.Is(err, ringbuffer.ErrIsEmpty) {
		if atomic.LoadUint32(&s.closed) == 1 {
			return 0, io.EOF
		}
		return 0, ErrNoData
	}
	return n, err
}

// Buffered returns the number of bytes currently queued.
func (s *ValueStream) Buffered() int {
	return s.buf.Length()
}

// Pushed returns the total number of bytes queued so far.
func (s *ValueStream) Pushed() uint64 {
	return atomic.LoadUint64(&s.pushed)
}

// Dropped returns the total number of bytes lost to overflow.
func (s *ValueStream) Dropped() uint64 {
	return atomic.LoadUint64(&s.dropped)
}

// Close marks the stream closed. Buffered bytes remain readable; a drained
// closed stream reads io.EOF.
func (s *ValueStream) Close() error {
	atomic.StoreUint32(&s.closed, 1)
	return nil
}
