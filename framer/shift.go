package framer

import "github.com/arloliu/streamframe/header"

// shiftReg holds the encoded header while it streams out one word at a
// time. count tracks how many shifts have happened since the last load; the
// state machine compares it against headerWords-2 to find the final header
// word.
type shiftReg struct {
	buf       []byte
	wordBytes int
	count     int
}

func newShiftReg(lengthBytes, wordBits int) *shiftReg {
	return &shiftReg{
		buf:       make([]byte, lengthBytes),
		wordBytes: wordBits / 8,
	}
}

// load replaces the register contents and resets the shift count.
func (r *shiftReg) load(v header.Value) {
	copy(r.buf, v)
	r.count = 0
}

// shift discards the low word and zero-fills the vacated high bytes.
func (r *shiftReg) shift() {
	n := copy(r.buf, r.buf[r.wordBytes:])
	for i := n; i < len(r.buf); i++ {
		r.buf[i] = 0
	}
	r.count++
}

// peek returns word i of the current register without mutating it.
func (r *shiftReg) peek(i int) uint64 {
	base := i * r.wordBytes

	var w uint64
	for b := 0; b < r.wordBytes; b++ {
		w |= uint64(r.buf[base+b]) << (8 * b)
	}

	return w
}

// reset clears the register and the shift count.
func (r *shiftReg) reset() {
	for i := range r.buf {
		r.buf[i] = 0
	}
	r.count = 0
}
