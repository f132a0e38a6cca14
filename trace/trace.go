// Package trace captures emitted word streams to compact, optionally
// compressed files for debugging and replay.
//
// A capture file is a fixed 24-byte header followed by a (possibly
// compressed) body of fixed-size word records:
//
//	offset  size  field
//	0       4     magic "SFTR"
//	4       1     format version (currently 1)
//	5       1     body compression (format.CompressionType)
//	6       1     word width in bits
//	7       1     flags (bit 0: big-endian record encoding)
//	8       8     layout fingerprint
//	16      8     word count
//
// Each body record is 10 bytes: the word data, a flag byte (bit 0 start,
// bit 1 end, bit 2 error) and a reserved zero byte. Multi-byte header
// fields and record data use the engine named by the flags byte; writers
// produced by this package always use little-endian.
package trace

import (
	"fmt"
	"os"

	"github.com/arloliu/streamframe/compress"
	"github.com/arloliu/streamframe/endian"
	"github.com/arloliu/streamframe/errs"
	"github.com/arloliu/streamframe/format"
	"github.com/arloliu/streamframe/stream"
)

const (
	headerSize = 24
	recordSize = 10

	formatVersion = 1

	flagStart = 1 << 0
	flagEnd   = 1 << 1
	flagError = 1 << 2

	headerBigEndian = 1 << 0
)

var magic = [4]byte{'S', 'F', 'T', 'R'}

// Recorder accumulates emitted words in memory for later serialization.
// A Recorder belongs to one framer instance and is not safe for concurrent
// use, matching the framer's single-tick model.
type Recorder struct {
	wordBits    int
	fingerprint uint64
	words       []stream.Word
}

// NewRecorder creates a recorder for a framer with the given word width and
// layout fingerprint. Both are stored in the capture header so a reader can
// check a capture against the layout it replays into.
func NewRecorder(wordBits int, fingerprint uint64) *Recorder {
	return &Recorder{wordBits: wordBits, fingerprint: fingerprint}
}

// Record appends one emitted word.
func (r *Recorder) Record(w stream.Word) {
	r.words = append(r.words, w)
}

// Words returns the recorded words in emission order.
func (r *Recorder) Words() []stream.Word {
	return r.words
}

// Reset discards all recorded words.
func (r *Recorder) Reset() {
	r.words = r.words[:0]
}

// Encode serializes the capture with the given body compression.
func (r *Recorder) Encode(compression format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()

	body := make([]byte, 0, len(r.words)*recordSize)
	for _, w := range r.words {
		body = engine.AppendUint64(body, w.Data)
		body = append(body, wordFlags(w), 0)
	}

	compressed, err := codec.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("compress trace body: %w", err)
	}

	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, magic[:]...)
	out = append(out, formatVersion, byte(compression), byte(r.wordBits), 0)
	out = engine.AppendUint64(out, r.fingerprint)
	out = engine.AppendUint64(out, uint64(len(r.words)))

	return append(out, compressed...), nil
}

// WriteFile serializes the capture and writes it to path.
func (r *Recorder) WriteFile(path string, compression format.CompressionType) error {
	data, err := r.Encode(compression)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Trace is a decoded capture.
type Trace struct {
	WordBits    int
	Fingerprint uint64
	Words       []stream.Word
}

// Decode parses a serialized capture.
func Decode(data []byte) (*Trace, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidTrace, len(data))
	}
	if [4]byte(data[0:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", errs.ErrInvalidTrace)
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("%w: version %d", errs.ErrTraceVersion, data[4])
	}

	codec, err := compress.GetCodec(format.CompressionType(data[5]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidTrace, err)
	}

	engine := endian.GetLittleEndianEngine()
	if data[7]&headerBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	tr := &Trace{
		WordBits:    int(data[6]),
		Fingerprint: engine.Uint64(data[8:16]),
	}
	count := engine.Uint64(data[16:24])

	body, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("decompress trace body: %w", err)
	}
	// Compare counts, not products: multiplying an untrusted count can
	// wrap around and slip past the check.
	if len(body)%recordSize != 0 || uint64(len(body)/recordSize) != count {
		return nil, fmt.Errorf("%w: body has %d bytes, want %d records", errs.ErrInvalidTrace, len(body), count)
	}

	tr.Words = make([]stream.Word, 0, count)
	for off := 0; off < len(body); off += recordSize {
		flags := body[off+8]
		tr.Words = append(tr.Words, stream.Word{
			Data:  engine.Uint64(body[off : off+8]),
			Start: flags&flagStart != 0,
			End:   flags&flagEnd != 0,
			Error: flags&flagError != 0,
		})
	}

	return tr, nil
}

// ReadFile reads and decodes a capture file.
func ReadFile(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace %s: %w", path, err)
	}

	return Decode(data)
}

func wordFlags(w stream.Word) byte {
	var flags byte
	if w.Start {
		flags |= flagStart
	}
	if w.End {
		flags |= flagEnd
	}
	if w.Error {
		flags |= flagError
	}

	return flags
}
