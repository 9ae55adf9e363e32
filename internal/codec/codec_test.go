package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFieldWidthFidelity verifies every field always emits exactly its wire
// size, regardless of input magnitude.
func TestFieldWidthFidelity(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		size  int
	}{
		{"u8", U8, 1},
		{"u16", U16, 2},
		{"u24", U24, 3},
		{"u32", U32, 4},
		{"u40", U40, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.size, tt.field.Size())

			// Zero, max-in-range, and oversized inputs all emit Size() bytes.
			for _, v := range []uint64{0, 1, tt.field.Max(), ^uint64(0)} {
				out := tt.field.AppendUint(nil, v)
				assert.Len(t, out, tt.size, "value %#x", v)
			}
		})
	}
}

// TestFieldLittleEndian verifies byte order on the wire.
func TestFieldLittleEndian(t *testing.T) {
	out := U16.AppendUint(nil, 0x0201)
	assert.Equal(t, []byte{0x01, 0x02}, out)

	out = U24.AppendUint(nil, 0x030201)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, out)

	out = U40.AppendUint(nil, 0x0504030201)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, out)
}

// TestFieldRoundTrip verifies decode(encode(v)) == v for values within each
// field's range, with nothing left over.
func TestFieldRoundTrip(t *testing.T) {
	fields := []Field{U8, U16, U24, U32, U40}

	for _, f := range fields {
		for _, v := range []uint64{0, 1, 0x7f, f.Max() >> 1, f.Max()} {
			encoded := f.AppendUint(nil, v)

			got, rest, err := f.ConsumeUint(encoded)
			require.NoError(t, err)
			assert.Equal(t, v, got, "field %d bits, value %#x", f, v)
			assert.Empty(t, rest)
		}
	}
}

// TestFieldTruncation verifies oversized values keep only the low bytes.
func TestFieldTruncation(t *testing.T) {
	out := U24.AppendUint(nil, 0xAABBCCDDEE)
	assert.Equal(t, []byte{0xEE, 0xDD, 0xCC}, out)

	got, rest, err := U24.ConsumeUint(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xCCDDEE), got)
	assert.Empty(t, rest)
}

// TestFieldTruncatedStream verifies a decode past the end of the stream fails
// with TruncatedStreamError.
func TestFieldTruncatedStream(t *testing.T) {
	_, rest, err := U16.ConsumeUint([]byte{0x01})
	require.Error(t, err)

	var trunc *TruncatedStreamError
	require.ErrorAs(t, err, &trunc)
	assert.Equal(t, 2, trunc.Needed)
	assert.Equal(t, 1, trunc.Remaining)

	// The stream is returned untouched on failure.
	assert.Equal(t, []byte{0x01}, rest)
}

// TestFieldConsumeLeavesRemainder verifies only Size() bytes are consumed.
func TestFieldConsumeLeavesRemainder(t *testing.T) {
	stream := []byte{0x01, 0x02, 0x03, 0x04}

	v, rest, err := U16.ConsumeUint(stream)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0201), v)
	assert.Equal(t, []byte{0x03, 0x04}, rest)
}
