package trace

import (
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/streamframe/errs"
	"github.com/arloliu/streamframe/format"
	"github.com/arloliu/streamframe/stream"
)

var captureWords = []stream.Word{
	{Data: 0x07, Start: true},
	{Data: 0x12},
	{Data: 0x34},
	{Data: 0xAA, Error: true},
	{Data: 0xBB, End: true},
}

func newCapture() *Recorder {
	rec := NewRecorder(8, 0xDEADBEEFCAFEF00D)
	for _, w := range captureWords {
		rec.Record(w)
	}

	return rec
}

func TestRecorder_RoundTrip(t *testing.T) {
	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			data, err := newCapture().Encode(compression)
			require.NoError(t, err)

			tr, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, 8, tr.WordBits)
			require.Equal(t, uint64(0xDEADBEEFCAFEF00D), tr.Fingerprint)
			require.Equal(t, captureWords, tr.Words)
		})
	}
}

func TestRecorder_Reset(t *testing.T) {
	rec := newCapture()
	require.Len(t, rec.Words(), len(captureWords))

	rec.Reset()
	require.Empty(t, rec.Words())

	data, err := rec.Encode(format.CompressionNone)
	require.NoError(t, err)

	tr, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, tr.Words)
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.sftr")

	require.NoError(t, newCapture().WriteFile(path, format.CompressionS2))

	tr, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, captureWords, tr.Words)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.sftr"))

	require.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	valid, err := newCapture().Encode(format.CompressionNone)
	require.NoError(t, err)

	t.Run("Truncated header", func(t *testing.T) {
		_, err := Decode(valid[:10])

		require.ErrorIs(t, err, errs.ErrInvalidTrace)
	})

	t.Run("Bad magic", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data[0] = 'X'

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidTrace)
	})

	t.Run("Unsupported version", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data[4] = 99

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrTraceVersion)
	})

	t.Run("Unknown codec", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data[5] = 0xFF

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidTrace)
	})

	t.Run("Record count overflows the width check", func(t *testing.T) {
		rec := NewRecorder(8, 0x1)
		rec.Record(stream.Word{Data: 0xAB, End: true})

		data, err := rec.Encode(format.CompressionNone)
		require.NoError(t, err)

		// count * recordSize wraps around to the actual 10-byte body
		// length; the decoder must still reject the count.
		binary.LittleEndian.PutUint64(data[16:24], 1<<63+1)

		_, err = Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidTrace)
	})

	t.Run("Body length mismatch", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data = data[:len(data)-3]

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidTrace)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := Decode(nil)

		require.ErrorIs(t, err, errs.ErrInvalidTrace)
	})
}

func TestRecorder_Encode_UnknownCompression(t *testing.T) {
	_, err := newCapture().Encode(format.CompressionType(0xEE))

	require.Error(t, err)
}
