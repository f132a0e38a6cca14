// Package header encodes per-frame metadata records into fixed-length,
// bit-packed header values according to a validated layout.
package header

import (
	"fmt"

	"github.com/arloliu/streamframe/errs"
	"github.com/arloliu/streamframe/layout"
)

// Value is an encoded header bit vector. Bit i lives in byte i/8 at bit
// position i%8, so byte k carries vector bits [8k, 8k+8) and the byte order
// of the slice matches the order the header leaves on the wire.
type Value []byte

// Word returns vector bits [i*wordBits, (i+1)*wordBits) packed with the
// low-order byte lane first. wordBits must be a multiple of 8 no larger
// than 64; the framer validates this at construction.
func (v Value) Word(i, wordBits int) uint64 {
	base := i * wordBits / 8

	var w uint64
	for b := 0; b < wordBits/8; b++ {
		w |= uint64(v[base+b]) << (8 * b)
	}

	return w
}

// setBits writes the low width bits of val into the vector starting at
// bitOff.
func (v Value) setBits(bitOff, width int, val uint64) {
	for j := 0; j < width; j++ {
		if val>>uint(j)&1 == 1 {
			pos := bitOff + j
			v[pos/8] |= 1 << (pos % 8)
		}
	}
}

// Encoder maps metadata records into header values for one layout.
//
// Encoding is pure and stateless: the encoder holds only the immutable
// layout, and Encode allocates a fresh Value per call. One Encoder may be
// shared by any number of goroutines.
type Encoder struct {
	fields      []layout.Field
	lengthBytes int
}

// NewEncoder creates an encoder for the given layout.
func NewEncoder(l *layout.Layout) *Encoder {
	return &Encoder{
		fields:      l.Fields(),
		lengthBytes: l.LengthBytes(),
	}
}

// Encode produces the header value for one frame.
//
// For each field, in ascending (byte, bit) offset order, the record's value
// is masked to the field width and written at the field's bit position.
// Values wider than the field are truncated silently; this is deliberate, so
// callers can pass counters or flags without pre-masking. Multi-byte values
// are emitted most-significant byte first (network byte order) irrespective
// of the host byte order.
//
// Returns an error wrapping errs.ErrMissingField when the record lacks a
// value for one of the layout's fields.
func (e *Encoder) Encode(rec Record) (Value, error) {
	v := make(Value, e.lengthBytes)
	for _, f := range e.fields {
		raw, ok := rec.Field(f.Name)
		if !ok {
			return nil, fmt.Errorf("field %q: %w", f.Name, errs.ErrMissingField)
		}

		v.setBits(f.ByteOffset*8+f.BitOffset, f.WidthBits, fieldBits(raw, f.WidthBits))
	}

	return v, nil
}

// fieldBits masks val to the field width and, for multi-byte fields, swaps
// the value into network byte order so the most-significant byte lands at
// the lowest bit offset.
func fieldBits(val uint64, width int) uint64 {
	if width < 64 {
		val &= (1 << uint(width)) - 1
	}

	if width <= 8 {
		return val
	}

	var out uint64
	for b := 0; b < width/8; b++ {
		out = out<<8 | (val>>(8*b))&0xFF
	}

	return out
}
