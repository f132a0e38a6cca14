// Package errs defines the sentinel errors shared across streamframe packages.
package errs

import "errors"

// Layout construction errors.
var (
	// ErrLayoutEmpty indicates a layout was constructed with no fields.
	ErrLayoutEmpty = errors.New("layout has no fields")
	// ErrInvalidFieldName indicates a field with an empty name.
	ErrInvalidFieldName = errors.New("invalid field name")
	// ErrDuplicateField indicates two fields share the same name.
	ErrDuplicateField = errors.New("duplicate field name")
	// ErrInvalidFieldWidth indicates a field width outside [1, 64], or a
	// multi-byte width that is not a byte multiple.
	ErrInvalidFieldWidth = errors.New("invalid field width")
	// ErrInvalidFieldOffset indicates a negative byte offset or a bit offset
	// outside [0, 7].
	ErrInvalidFieldOffset = errors.New("invalid field offset")
	// ErrFieldOverlap indicates two fields claim the same header bit.
	ErrFieldOverlap = errors.New("header fields overlap")
	// ErrLayoutCoverage indicates the fields do not cover the header span
	// exactly.
	ErrLayoutCoverage = errors.New("fields do not cover the header exactly")
)

// Header encoding errors.
var (
	// ErrMissingField indicates the metadata record has no value for a
	// layout field.
	ErrMissingField = errors.New("metadata record is missing a field")
)

// Framer construction and streaming errors.
var (
	// ErrInvalidWordWidth indicates a word width that is not a multiple of 8
	// in [8, 64].
	ErrInvalidWordWidth = errors.New("word width must be a multiple of 8 in [8, 64]")
	// ErrHeaderNotWordMultiple indicates the header bit length is not an
	// exact multiple of the word width.
	ErrHeaderNotWordMultiple = errors.New("header bit length is not a multiple of the word width")
	// ErrHeaderTooShort indicates the header spans fewer than two words.
	ErrHeaderTooShort = errors.New("header must span at least two words")
	// ErrPayloadTooShort indicates a payload shorter than two words, which
	// the framing guarantee does not cover.
	ErrPayloadTooShort = errors.New("payload must be at least two words long")
	// ErrPayloadAlignment indicates a payload byte length that is not a
	// multiple of the word size.
	ErrPayloadAlignment = errors.New("payload length is not a multiple of the word size")
)

// Trace capture errors.
var (
	// ErrInvalidTrace indicates trace data that is truncated or carries a
	// bad magic number.
	ErrInvalidTrace = errors.New("invalid trace data")
	// ErrTraceVersion indicates a trace format version this build does not
	// understand.
	ErrTraceVersion = errors.New("unsupported trace version")
	// ErrInvalidCompression indicates an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
)
