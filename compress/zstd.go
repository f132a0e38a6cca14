package compress

// ZstdCompressor compresses trace bodies with Zstandard. Best ratio of the
// built-in codecs; the right choice for captures kept around as regression
// fixtures.
//
// The implementation is selected at build time: cgo builds use the gozstd
// bindings, pure-Go builds fall back to klauspost/compress/zstd. The two
// produce interchangeable streams.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
