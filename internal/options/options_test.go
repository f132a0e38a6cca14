package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	value int
}

func TestApply(t *testing.T) {
	t.Run("Options run in order", func(t *testing.T) {
		tgt := &target{}

		err := Apply(tgt,
			NoError(func(x *target) { x.value = 1 }),
			New(func(x *target) error { x.value *= 10; return nil }),
		)

		require.NoError(t, err)
		require.Equal(t, 10, tgt.value)
	})

	t.Run("Stops at first error", func(t *testing.T) {
		tgt := &target{}
		boom := errors.New("boom")

		err := Apply(tgt,
			New(func(x *target) error { return boom }),
			NoError(func(x *target) { x.value = 7 }),
		)

		require.ErrorIs(t, err, boom)
		require.Equal(t, 0, tgt.value)
	})

	t.Run("No options", func(t *testing.T) {
		require.NoError(t, Apply(&target{}))
	})
}
