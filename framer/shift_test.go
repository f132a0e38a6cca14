package framer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/streamframe/header"
)

func TestShiftReg(t *testing.T) {
	r := newShiftReg(4, 16)

	r.load(header.Value{0x01, 0x02, 0x03, 0x04})
	require.Equal(t, 0, r.count)
	require.Equal(t, uint64(0x0201), r.peek(0))
	require.Equal(t, uint64(0x0403), r.peek(1))

	r.shift()
	require.Equal(t, 1, r.count)
	require.Equal(t, uint64(0x0403), r.peek(0))
	// Vacated high bits backfill with zero.
	require.Equal(t, uint64(0x0000), r.peek(1))

	r.shift()
	require.Equal(t, 2, r.count)
	require.Equal(t, uint64(0x0000), r.peek(0))
}

func TestShiftReg_LoadResetsCount(t *testing.T) {
	r := newShiftReg(2, 8)

	r.load(header.Value{0xAA, 0xBB})
	r.shift()
	require.Equal(t, 1, r.count)

	r.load(header.Value{0xCC, 0xDD})
	require.Equal(t, 0, r.count)
	require.Equal(t, uint64(0xCC), r.peek(0))
	require.Equal(t, uint64(0xDD), r.peek(1))
}

func TestShiftReg_PeekDoesNotMutate(t *testing.T) {
	r := newShiftReg(3, 8)
	r.load(header.Value{0x07, 0x12, 0x34})

	for i := 0; i < 3; i++ {
		require.Equal(t, uint64(0x12), r.peek(1))
	}
	require.Equal(t, 0, r.count)
}

func TestShiftReg_Reset(t *testing.T) {
	r := newShiftReg(3, 8)
	r.load(header.Value{0x07, 0x12, 0x34})
	r.shift()

	r.reset()

	require.Equal(t, 0, r.count)
	require.Equal(t, uint64(0), r.peek(0))
	require.Equal(t, uint64(0), r.peek(1))
}
