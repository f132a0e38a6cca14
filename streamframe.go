// Package streamframe inserts fixed-length, bit-packed headers in front of
// streaming payloads.
//
// A framer consumes an arbitrary-length payload word stream and produces an
// output stream consisting of an encoded header followed by the unmodified
// payload, honoring ready/valid flow control on both sides and converting
// between the header's total bit length and the transport word width.
//
// # Core Concepts
//
//   - A layout (package layout) maps named fields to bit positions inside a
//     fixed-length header. Layouts are validated once at construction.
//   - A metadata record (package header) supplies one value per field for a
//     single frame; the encoder packs it into a header bit vector in
//     network byte order.
//   - The framer (package framer) is an Idle/SendHeader/Copy state machine
//     advancing one tick at a time, with the header shift register as its
//     only buffering.
//   - Stream endpoints (package stream) carry W-bit words with
//     start/end/error markers between the framer and its neighbors.
//
// # Basic Usage
//
//	import "github.com/arloliu/streamframe"
//
//	lay, _ := layout.New([]layout.Field{
//	    {Name: "kind", ByteOffset: 0, BitOffset: 0, WidthBits: 8},
//	    {Name: "seq", ByteOffset: 1, BitOffset: 0, WidthBits: 16},
//	})
//
//	framed, _ := streamframe.Frame(lay, 8,
//	    header.MapRecord{"kind": 0x07, "seq": 0x1234},
//	    payload)
//
// The result is the header bytes immediately followed by the payload bytes.
// For tick-level control (custom endpoints, backpressure, multiple frames
// on one stream) use the framer package directly.
//
// # Package Structure
//
// This package provides convenient one-shot wrappers around the lower
// packages. The framer, layout, header and stream packages expose the full
// API; compress and trace support capture files for debugging.
package streamframe

import (
	"fmt"

	"github.com/arloliu/streamframe/errs"
	"github.com/arloliu/streamframe/framer"
	"github.com/arloliu/streamframe/header"
	"github.com/arloliu/streamframe/layout"
	"github.com/arloliu/streamframe/stream"
)

// EncodeHeader encodes one header for the given layout and metadata,
// without streaming it. The result is the exact byte prefix a framer would
// emit for the same frame.
func EncodeHeader(l *layout.Layout, meta header.Record) ([]byte, error) {
	v, err := header.NewEncoder(l).Encode(meta)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Frame produces the framed byte stream for a single frame: the encoded
// header immediately followed by payload, as emitted by a fresh framer over
// slice endpoints.
//
// The payload length must be a multiple of wordBits/8 and at least two
// words; shorter payloads would trigger the degenerate end-borrowing path
// and lose their final word's data (see the framer package), so they are
// rejected here with errs.ErrPayloadTooShort.
func Frame(l *layout.Layout, wordBits int, meta header.Record, payload []byte, opts ...framer.Option) ([]byte, error) {
	f, err := framer.New(l, wordBits, opts...)
	if err != nil {
		return nil, err
	}

	if len(payload) < 2*(wordBits/8) {
		return nil, fmt.Errorf("%w: %d payload bytes with %d-bit words", errs.ErrPayloadTooShort, len(payload), wordBits)
	}

	words, err := stream.WordsFromBytes(payload, wordBits)
	if err != nil {
		return nil, err
	}

	src := stream.NewSliceSource(words, meta)
	sink := stream.NewSliceSink()
	if err := f.Run(src, sink); err != nil {
		return nil, err
	}

	return sink.Bytes(wordBits), nil
}
