// Package layout defines header field layouts: the static mapping from named
// fields to bit positions inside a fixed-length header.
//
// A Layout is validated once at construction and immutable afterwards. The
// validation guarantees that fields do not overlap and that together they
// cover the header span exactly, so encoders built on top of a Layout never
// need to re-check field geometry per frame.
package layout

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/streamframe/errs"
)

// Field describes one named bit field of a header layout.
//
// The field occupies WidthBits bits starting at bit ByteOffset*8 + BitOffset
// of the header bit vector. Widths above 8 bits must be byte multiples;
// network byte order is undefined for a multi-byte field with a partial byte.
type Field struct {
	Name       string
	ByteOffset int
	BitOffset  int
	WidthBits  int
}

// firstBit returns the field's starting position in the header bit vector.
func (f Field) firstBit() int {
	return f.ByteOffset*8 + f.BitOffset
}

// Layout is a validated set of header fields, ordered by ascending
// (ByteOffset, BitOffset). It is immutable after New returns.
type Layout struct {
	fields []Field
	bits   int
}

// New validates the given fields and builds a Layout.
//
// Validation rules:
//   - at least one field, each with a unique non-empty name
//   - ByteOffset >= 0, BitOffset in [0, 7]
//   - WidthBits in [1, 64]; widths above 8 must be multiples of 8
//   - no two fields overlap
//   - the union of all fields covers bits [0, Bits()) exactly, and the total
//     is a whole number of bytes
//
// Returns an error wrapping one of the errs sentinels when a rule is
// violated.
func New(fields []Field) (*Layout, error) {
	if len(fields) == 0 {
		return nil, errs.ErrLayoutEmpty
	}

	ordered := make([]Field, len(fields))
	copy(ordered, fields)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ByteOffset != ordered[j].ByteOffset {
			return ordered[i].ByteOffset < ordered[j].ByteOffset
		}
		return ordered[i].BitOffset < ordered[j].BitOffset
	})

	total := 0
	names := make(map[string]struct{}, len(ordered))
	for _, f := range ordered {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: empty name", errs.ErrInvalidFieldName)
		}
		if _, ok := names[f.Name]; ok {
			return nil, fmt.Errorf("field %q: %w", f.Name, errs.ErrDuplicateField)
		}
		names[f.Name] = struct{}{}

		if f.ByteOffset < 0 || f.BitOffset < 0 || f.BitOffset > 7 {
			return nil, fmt.Errorf("field %q: %w", f.Name, errs.ErrInvalidFieldOffset)
		}
		if f.WidthBits < 1 || f.WidthBits > 64 || (f.WidthBits > 8 && f.WidthBits%8 != 0) {
			return nil, fmt.Errorf("field %q: %w", f.Name, errs.ErrInvalidFieldWidth)
		}

		total += f.WidthBits
	}

	if total%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits is not a whole number of bytes", errs.ErrLayoutCoverage, total)
	}

	// With the widths summing to the span, in-range non-overlapping fields
	// imply exact coverage.
	occupied := make([]bool, total)
	for _, f := range ordered {
		for j := 0; j < f.WidthBits; j++ {
			pos := f.firstBit() + j
			if pos >= total {
				return nil, fmt.Errorf("field %q: %w", f.Name, errs.ErrLayoutCoverage)
			}
			if occupied[pos] {
				return nil, fmt.Errorf("field %q: %w", f.Name, errs.ErrFieldOverlap)
			}
			occupied[pos] = true
		}
	}

	return &Layout{fields: ordered, bits: total}, nil
}

// MustNew is like New but panics on validation errors. Intended for layouts
// declared as package-level variables.
func MustNew(fields []Field) *Layout {
	l, err := New(fields)
	if err != nil {
		panic(err)
	}

	return l
}

// Fields returns the fields in encoding order. The returned slice is a copy.
func (l *Layout) Fields() []Field {
	fields := make([]Field, len(l.fields))
	copy(fields, l.fields)

	return fields
}

// Bits returns the total header length in bits.
func (l *Layout) Bits() int {
	return l.bits
}

// LengthBytes returns the total header length in bytes.
func (l *Layout) LengthBytes() int {
	return l.bits / 8
}

// Fingerprint returns an xxHash64 of the canonical field list. Two layouts
// with the same fields produce the same fingerprint regardless of the order
// the fields were passed to New.
func (l *Layout) Fingerprint() uint64 {
	digest := xxhash.New()

	var buf [8]byte
	for _, f := range l.fields {
		_, _ = digest.WriteString(f.Name)
		_, _ = digest.Write([]byte{0})
		binary.LittleEndian.PutUint32(buf[0:4], uint32(f.ByteOffset))
		binary.LittleEndian.PutUint16(buf[4:6], uint16(f.BitOffset))
		binary.LittleEndian.PutUint16(buf[6:8], uint16(f.WidthBits))
		_, _ = digest.Write(buf[:])
	}

	return digest.Sum64()
}
