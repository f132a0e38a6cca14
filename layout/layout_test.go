package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/streamframe/errs"
)

func TestNew(t *testing.T) {
	t.Run("Valid layout", func(t *testing.T) {
		l, err := New([]Field{
			{Name: "kind", ByteOffset: 0, BitOffset: 0, WidthBits: 8},
			{Name: "seq", ByteOffset: 1, BitOffset: 0, WidthBits: 16},
		})

		require.NoError(t, err)
		require.Equal(t, 24, l.Bits())
		require.Equal(t, 3, l.LengthBytes())
	})

	t.Run("Fields sorted by position", func(t *testing.T) {
		l, err := New([]Field{
			{Name: "high", ByteOffset: 0, BitOffset: 4, WidthBits: 4},
			{Name: "tail", ByteOffset: 1, BitOffset: 0, WidthBits: 8},
			{Name: "low", ByteOffset: 0, BitOffset: 0, WidthBits: 4},
		})

		require.NoError(t, err)
		fields := l.Fields()
		require.Equal(t, "low", fields[0].Name)
		require.Equal(t, "high", fields[1].Name)
		require.Equal(t, "tail", fields[2].Name)
	})

	t.Run("Empty layout", func(t *testing.T) {
		_, err := New(nil)

		require.ErrorIs(t, err, errs.ErrLayoutEmpty)
	})

	t.Run("Empty field name", func(t *testing.T) {
		_, err := New([]Field{{Name: "", WidthBits: 8}})

		require.ErrorIs(t, err, errs.ErrInvalidFieldName)
	})

	t.Run("Duplicate field name", func(t *testing.T) {
		_, err := New([]Field{
			{Name: "a", ByteOffset: 0, WidthBits: 8},
			{Name: "a", ByteOffset: 1, WidthBits: 8},
		})

		require.ErrorIs(t, err, errs.ErrDuplicateField)
	})

	t.Run("Bit offset out of range", func(t *testing.T) {
		_, err := New([]Field{{Name: "a", BitOffset: 8, WidthBits: 8}})

		require.ErrorIs(t, err, errs.ErrInvalidFieldOffset)
	})

	t.Run("Negative byte offset", func(t *testing.T) {
		_, err := New([]Field{{Name: "a", ByteOffset: -1, WidthBits: 8}})

		require.ErrorIs(t, err, errs.ErrInvalidFieldOffset)
	})

	t.Run("Invalid widths", func(t *testing.T) {
		for _, width := range []int{0, -1, 65, 12, 20} {
			_, err := New([]Field{{Name: "a", WidthBits: width}})

			require.ErrorIs(t, err, errs.ErrInvalidFieldWidth, "width %d", width)
		}
	})

	t.Run("Overlapping fields", func(t *testing.T) {
		_, err := New([]Field{
			{Name: "a", ByteOffset: 0, BitOffset: 0, WidthBits: 8},
			{Name: "b", ByteOffset: 0, BitOffset: 4, WidthBits: 8},
		})

		require.ErrorIs(t, err, errs.ErrFieldOverlap)
	})

	t.Run("Field beyond span", func(t *testing.T) {
		// 16 bits of fields, but the second one sits at byte 2.
		_, err := New([]Field{
			{Name: "a", ByteOffset: 0, BitOffset: 0, WidthBits: 8},
			{Name: "b", ByteOffset: 2, BitOffset: 0, WidthBits: 8},
		})

		require.ErrorIs(t, err, errs.ErrLayoutCoverage)
	})

	t.Run("Total not a byte multiple", func(t *testing.T) {
		_, err := New([]Field{{Name: "a", WidthBits: 4}})

		require.ErrorIs(t, err, errs.ErrLayoutCoverage)
	})
}

func TestMustNew(t *testing.T) {
	require.NotPanics(t, func() {
		MustNew([]Field{{Name: "a", WidthBits: 8}, {Name: "b", ByteOffset: 1, WidthBits: 8}})
	})

	require.Panics(t, func() {
		MustNew([]Field{{Name: "a", WidthBits: 3}})
	})
}

func TestLayout_Fields_Copy(t *testing.T) {
	l := MustNew([]Field{{Name: "a", WidthBits: 8}, {Name: "b", ByteOffset: 1, WidthBits: 8}})

	fields := l.Fields()
	fields[0].Name = "mutated"

	require.Equal(t, "a", l.Fields()[0].Name)
}

func TestLayout_Fingerprint(t *testing.T) {
	t.Run("Order independent", func(t *testing.T) {
		a := MustNew([]Field{
			{Name: "x", ByteOffset: 0, WidthBits: 8},
			{Name: "y", ByteOffset: 1, WidthBits: 8},
		})
		b := MustNew([]Field{
			{Name: "y", ByteOffset: 1, WidthBits: 8},
			{Name: "x", ByteOffset: 0, WidthBits: 8},
		})

		require.Equal(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("Sensitive to geometry", func(t *testing.T) {
		a := MustNew([]Field{{Name: "x", WidthBits: 8}, {Name: "y", ByteOffset: 1, WidthBits: 8}})
		b := MustNew([]Field{{Name: "x", WidthBits: 16}})

		require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})

	t.Run("Sensitive to names", func(t *testing.T) {
		a := MustNew([]Field{{Name: "x", WidthBits: 8}, {Name: "y", ByteOffset: 1, WidthBits: 8}})
		b := MustNew([]Field{{Name: "x", WidthBits: 8}, {Name: "z", ByteOffset: 1, WidthBits: 8}})

		require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	})
}
