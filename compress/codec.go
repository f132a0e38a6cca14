// Package compress provides the compression codecs used by trace capture
// files.
//
// Captures of long-running word streams are highly repetitive (headers
// repeat per frame, payloads often carry structured data), so trace bodies
// compress well. The codec is selectable per capture and recorded in the
// file header; None is appropriate for short captures inspected by hand.
package compress

import (
	"fmt"

	"github.com/arloliu/streamframe/format"
)

// Compressor compresses a complete trace body in one shot.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller.
//   - The input slice is not modified.
//   - Internal buffers may be reused between calls.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor is the inverse of Compressor. Implementations validate the
// input format and return an error for corrupted data or data produced by a
// different algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All codecs in this package are stateless
// values, safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
