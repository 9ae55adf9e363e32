package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecordEncode verifies field concatenation in schema order.
func TestRecordEncode(t *testing.T) {
	r := NewRecord(U8, U16, U16, U16)
	assert.Equal(t, 7, r.Size())
	assert.Equal(t, 4, r.Fields())

	out, err := r.Encode(0x01, 0x0058, 0x0002, 0x0013)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x58, 0x00, 0x02, 0x00, 0x13, 0x00}, out)
}

// TestRecordEncodeArity verifies a wrong number of values fails with
// SchemaMismatchError.
func TestRecordEncodeArity(t *testing.T) {
	r := NewRecord(U8, U16)

	for _, values := range [][]uint64{nil, {1}, {1, 2, 3}} {
		_, err := r.Encode(values...)
		require.Error(t, err, "values %v", values)

		var mismatch *SchemaMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 2, mismatch.Want)
		assert.Equal(t, len(values), mismatch.Got)
	}
}

// TestRecordRoundTrip verifies decode(encode(v)) == (v, empty) across
// schemas mixing native and non-native widths.
func TestRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		record *Record
		values []uint64
	}{
		{"pnp id shape", NewRecord(U8, U16, U16, U16), []uint64{1, 0x0058, 0x0002, 0x0013}},
		{"system id shape", NewRecord(U40, U24), []uint64{0x0102030405, 0x060708}},
		{"single field", NewRecord(U32), []uint64{0xDEADBEEF}},
		{"all widths", NewRecord(U8, U16, U24, U32, U40), []uint64{0xFF, 0xFFFF, 0xFFFFFF, 0xFFFFFFFF, 0xFFFFFFFFFF}},
		{"zeros", NewRecord(U24, U40), []uint64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := tt.record.Encode(tt.values...)
			require.NoError(t, err)
			assert.Len(t, encoded, tt.record.Size())

			decoded, rest, err := tt.record.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.values, decoded)
			assert.Empty(t, rest, "a stream holding exactly one record decodes with no remainder")
		})
	}
}

// TestRecordDecodeTrailingBytes verifies the remaining stream is handed back
// so callers can detect trailing bytes.
func TestRecordDecodeTrailingBytes(t *testing.T) {
	r := NewRecord(U16)

	values, rest, err := r.Decode([]byte{0x01, 0x02, 0xAA, 0xBB})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0x0201}, values)
	assert.Equal(t, []byte{0xAA, 0xBB}, rest)
}

// TestRecordDecodeTruncated verifies truncation mid-record fails with
// TruncatedStreamError and leaves the input stream intact.
func TestRecordDecodeTruncated(t *testing.T) {
	r := NewRecord(U8, U40)
	stream := []byte{0x01, 0x02, 0x03} // u40 needs 5 bytes, only 2 remain

	_, rest, err := r.Decode(stream)
	require.Error(t, err)

	var trunc *TruncatedStreamError
	require.ErrorAs(t, err, &trunc)
	assert.Equal(t, 5, trunc.Needed)
	assert.Equal(t, 2, trunc.Remaining)
	assert.Equal(t, stream, rest)
}

// TestRecordSystemIDVector pins the 8-byte System ID wire layout.
func TestRecordSystemIDVector(t *testing.T) {
	r := NewRecord(U40, U24)

	encoded, err := r.Encode(0x0102030405, 0x060708)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05, 0x04, 0x03, 0x02, 0x01, 0x08, 0x07, 0x06}, encoded)

	decoded, rest, err := r.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0x0102030405, 0x060708}, decoded)
	assert.Empty(t, rest)
}
