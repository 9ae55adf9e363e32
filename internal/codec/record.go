package codec

// Record serializes a tuple of unsigned integers as the concatenation of its
// fields, in schema order. The schema is fixed for the record's lifetime.
type Record struct {
	fields []Field
	size   int
}

// NewRecord builds a record codec from an ordered field schema.
func NewRecord(fields ...Field) *Record {
	r := &Record{fields: fields}
	for _, f := range fields {
		r.size += f.Size()
	}
	return r
}

// Fields returns the number of fields in the schema.
func (r *Record) Fields() int {
	return len(r.fields)
}

// Size returns the encoded record length in bytes.
func (r *Record) Size() int {
	return r.size
}

// Encode serializes values in schema order. The number of values must equal
// the schema length; otherwise a SchemaMismatchError is returned.
func (r *Record) Encode(values ...uint64) ([]byte, error) {
	if len(values) != len(r.fields) {
		return nil, &SchemaMismatchError{Want: len(r.fields), Got: len(values)}
	}
	out := make([]byte, 0, r.size)
	for i, f := range r.fields {
		out = f.AppendUint(out, values[i])
	}
	return out, nil
}

// Decode consumes one record from the front of stream, invoking each field
// codec in schema order against the shrinking stream. The remaining stream is
// returned so callers can detect trailing bytes. Returns a
// TruncatedStreamError when the stream ends before the schema does.
func (r *Record) Decode(stream []byte) ([]uint64, []byte, error) {
	values := make([]uint64, 0, len(r.fields))
	rest := stream
	for _, f := range r.fields {
		var v uint64
		var err error
		v, rest, err = f.ConsumeUint(rest)
		if err != nil {
			return nil, stream, err
		}
		values = append(values, v)
	}
	return values, rest, nil
}
