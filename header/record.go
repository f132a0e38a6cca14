package header

// Record supplies one value per header field name for a single frame. The
// upstream endpoint presents a Record together with the start-of-frame word;
// the encoder reads it exactly once per frame.
type Record interface {
	// Field returns the value for the named field and whether the record
	// carries that field at all.
	Field(name string) (uint64, bool)
}

// MapRecord is a Record backed by a plain map. The zero value is usable and
// reports every field as missing.
type MapRecord map[string]uint64

// Field implements Record.
func (m MapRecord) Field(name string) (uint64, bool) {
	v, ok := m[name]
	return v, ok
}
