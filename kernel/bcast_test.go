// SPDX-License-Identifier: MIT
package kernel_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/kernel"
	"github.com/stretchr/testify/require"
)

func TestCalcBcastOff(t *testing.T) {
	t.Run("equal shapes", func(t *testing.T) {
		b, err := kernel.CalcBcastOff(kernel.OpAdd, []int{2, 3}, []int{2, 3})
		require.NoError(t, err)
		require.False(t, b.UseBcast)
		require.Equal(t, 6, b.OutLen)
		require.Equal(t, []int{2, 3}, b.OutShape)
	})

	t.Run("stretch both sides", func(t *testing.T) {
		b, err := kernel.CalcBcastOff(kernel.OpMul, []int{2, 1}, []int{3})
		require.NoError(t, err)
		require.True(t, b.UseBcast)
		require.Equal(t, []int{2, 3}, b.OutShape)
		require.Equal(t, 2, b.LhsLen)
		require.Equal(t, 3, b.RhsLen)
		require.Equal(t, []int{0, 0, 0, 1, 1, 1}, b.LhsOffset)
		require.Equal(t, []int{0, 1, 2, 0, 1, 2}, b.RhsOffset)
	})

	t.Run("dot reduces last axis", func(t *testing.T) {
		b, err := kernel.CalcBcastOff(kernel.OpDot, []int{4, 8}, []int{8})
		require.NoError(t, err)
		require.Equal(t, 8, b.ReduceSize)
		require.Equal(t, []int{4}, b.OutShape)
		require.Equal(t, []int{0, 0, 0, 0}, b.RhsOffset)
	})

	t.Run("copy adopts the read side", func(t *testing.T) {
		b, err := kernel.CalcBcastOff(kernel.OpCopyLhs, []int{5}, nil)
		require.NoError(t, err)
		require.False(t, b.UseBcast)
		require.Equal(t, 5, b.OutLen)
	})

	t.Run("incompatible", func(t *testing.T) {
		_, err := kernel.CalcBcastOff(kernel.OpAdd, []int{3}, []int{4})
		require.ErrorIs(t, err, kernel.ErrShapeMismatch)
		_, err = kernel.CalcBcastOff(kernel.OpDot, []int{3}, []int{4})
		require.ErrorIs(t, err, kernel.ErrShapeMismatch)
		_, err = kernel.CalcBcastOff(kernel.OpDot, []int{}, []int{})
		require.ErrorIs(t, err, kernel.ErrShapeMismatch)
	})
}
