// Package codec implements fixed-width little-endian integer codecs and
// compound record serialization for multi-field attribute values.
//
// Widths that are not native machine sizes (24-bit, 40-bit) are handled by
// packing into the next larger native width and keeping only the low bytes,
// so all widths share one code path.
package codec

import (
	"encoding/binary"
	"fmt"
)

// TruncatedStreamError reports a decode attempted past the end of the
// available bytes.
type TruncatedStreamError struct {
	Needed    int // bytes the field required
	Remaining int // bytes left in the stream
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("truncated stream: need %d bytes, %d remaining", e.Needed, e.Remaining)
}

// SchemaMismatchError reports an encode called with the wrong number of
// values for the record's field schema.
type SchemaMismatchError struct {
	Want int // schema length
	Got  int // values supplied
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: record has %d fields, got %d values", e.Want, e.Got)
}

// Field is a fixed-width unsigned integer codec. The value is the field's
// width in bits.
type Field int

// Supported field widths.
const (
	U8  Field = 8
	U16 Field = 16
	U24 Field = 24
	U32 Field = 32
	U40 Field = 40
)

// Size returns the number of bytes the field occupies on the wire.
func (f Field) Size() int {
	return (int(f) + 7) / 8
}

// Max returns the largest value representable in the field's width.
func (f Field) Max() uint64 {
	if int(f) >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(f)) - 1
}

// AppendUint appends exactly Size() little-endian bytes of v to dst.
// Values wider than the field are truncated to the field's width.
func (f Field) AppendUint(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:f.Size()]...)
}

// ConsumeUint consumes exactly Size() bytes from the front of stream,
// zero-extends them to a native width, and returns the value along with the
// remaining stream. Returns a TruncatedStreamError when fewer bytes remain.
func (f Field) ConsumeUint(stream []byte) (uint64, []byte, error) {
	n := f.Size()
	if len(stream) < n {
		return 0, stream, &TruncatedStreamError{Needed: n, Remaining: len(stream)}
	}
	var buf [8]byte
	copy(buf[:n], stream[:n])
	return binary.LittleEndian.Uint64(buf[:]), stream[n:], nil
}
