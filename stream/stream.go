// Package stream defines the transport word and the endpoint interfaces the
// framer talks to.
//
// The model is a single discrete tick: every tick the framer samples one
// pending upstream word (if any) and the downstream readiness, and either a
// transfer happens on that tick or nothing moves. Endpoints must hold a
// pending word stable until it is consumed.
package stream

import (
	"fmt"

	"github.com/arloliu/streamframe/errs"
	"github.com/arloliu/streamframe/header"
)

// Word is one W-bit transport unit. The word width is a property of the
// framer instance, not of the word itself; Data carries the word in its low
// W bits with byte lane k at bits [8k, 8k+8). Lanes are emitted
// low-lane-first, so a word sequence maps to a byte stream directly.
type Word struct {
	Data  uint64
	Start bool
	End   bool
	Error bool
}

// Source supplies upstream words.
//
// Implementations must honor hold-stable semantics: once Word reports a
// pending word, the same word must be reported every tick until Advance is
// called.
type Source interface {
	// Word returns the pending word and whether one is available this tick.
	Word() (Word, bool)

	// Meta returns the metadata record for the pending frame. It is only
	// meaningful while the pending word has Start set.
	Meta() header.Record

	// Advance consumes the pending word.
	Advance()

	// Done reports that the source will never supply another word.
	Done() bool
}

// Sink consumes downstream words. Readiness is asserted independently each
// tick; Accept is only called on a tick where Ready returned true.
type Sink interface {
	Ready() bool
	Accept(Word)
}

// WordsFromBytes packs a payload byte stream into W-bit words, low byte
// lane first. The first word is marked Start and the last End. Returns an
// error wrapping errs.ErrInvalidWordWidth when wordBits is not a multiple
// of 8 in [8, 64], or errs.ErrPayloadAlignment when the payload length is
// not a multiple of the word size.
func WordsFromBytes(payload []byte, wordBits int) ([]Word, error) {
	if wordBits < 8 || wordBits > 64 || wordBits%8 != 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidWordWidth, wordBits)
	}

	wordBytes := wordBits / 8
	if len(payload) == 0 || len(payload)%wordBytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes into %d-bit words", errs.ErrPayloadAlignment, len(payload), wordBits)
	}

	words := make([]Word, 0, len(payload)/wordBytes)
	for i := 0; i < len(payload); i += wordBytes {
		var data uint64
		for b := 0; b < wordBytes; b++ {
			data |= uint64(payload[i+b]) << (8 * b)
		}
		words = append(words, Word{Data: data})
	}

	words[0].Start = true
	words[len(words)-1].End = true

	return words, nil
}

// BytesFromWords unpacks word data lanes back into a byte stream, ignoring
// the marker flags.
func BytesFromWords(words []Word, wordBits int) []byte {
	wordBytes := wordBits / 8

	out := make([]byte, 0, len(words)*wordBytes)
	for _, w := range words {
		for b := 0; b < wordBytes; b++ {
			out = append(out, byte(w.Data>>(8*b)))
		}
	}

	return out
}
