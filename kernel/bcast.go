// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"slices"
)

// BcastOff describes how the per-row features of two operands combine.
//
// Shapes are feature shapes: the buffer shape without its leading node or
// edge axis. Trailing axes are aligned and a size-1 axis stretches to the
// other side, as in dense array broadcasting. For OpDot the last axis of
// both sides must agree and is reduced (ReduceSize), so broadcasting
// applies to the remaining axes.
//
// For output element k of a row, the lhs element is at
// LhsOffset[k]*ReduceSize (or k*ReduceSize when !UseBcast) within the
// lhs row; likewise for rhs.
type BcastOff struct {
	UseBcast   bool
	LhsOffset  []int
	RhsOffset  []int
	LhsLen     int // elements per lhs row, excluding the reduced axis
	RhsLen     int
	OutLen     int // elements per output row
	ReduceSize int
	OutShape   []int // broadcast feature shape, without the reduced axis
}

// CalcBcastOff computes the broadcast plan for op over two feature shapes.
// A nil shape stands for an operand op does not read and adopts the
// other side. Incompatible shapes yield ErrShapeMismatch.
func CalcBcastOff(op Op, lhsShape, rhsShape []int) (BcastOff, error) {
	if !op.UsesLhs() || lhsShape == nil {
		lhsShape = rhsShape
	}
	if !op.UsesRhs() || rhsShape == nil {
		rhsShape = lhsShape
	}
	lhs, rhs := slices.Clone(lhsShape), slices.Clone(rhsShape)

	b := BcastOff{ReduceSize: 1}
	if op == OpDot {
		if len(lhs) == 0 || len(rhs) == 0 || lhs[len(lhs)-1] != rhs[len(rhs)-1] {
			return BcastOff{}, fmt.Errorf("CalcBcastOff(%s, %v, %v): %w", op, lhsShape, rhsShape, ErrShapeMismatch)
		}
		b.ReduceSize = lhs[len(lhs)-1]
		lhs, rhs = lhs[:len(lhs)-1], rhs[:len(rhs)-1]
	}

	nd := max(len(lhs), len(rhs))
	out := make([]int, nd)
	for j := 0; j < nd; j++ {
		dl, dr := dimFromRight(lhs, j), dimFromRight(rhs, j)
		switch {
		case dl == dr, dr == 1:
			out[nd-1-j] = dl
		case dl == 1:
			out[nd-1-j] = dr
		default:
			return BcastOff{}, fmt.Errorf("CalcBcastOff(%s, %v, %v): %w", op, lhsShape, rhsShape, ErrShapeMismatch)
		}
	}
	b.OutShape = out
	b.LhsLen, b.RhsLen, b.OutLen = prod(lhs), prod(rhs), prod(out)
	b.UseBcast = !slices.Equal(lhs, rhs)
	if !b.UseBcast {
		return b, nil
	}

	b.LhsOffset = make([]int, b.OutLen)
	b.RhsOffset = make([]int, b.OutLen)
	for k := 0; k < b.OutLen; k++ {
		rem, sl, sr := k, 1, 1
		lo, ro := 0, 0
		for j := 0; j < nd; j++ {
			idx := rem % out[nd-1-j]
			rem /= out[nd-1-j]
			dl, dr := dimFromRight(lhs, j), dimFromRight(rhs, j)
			if dl != 1 {
				lo += idx * sl
			}
			if dr != 1 {
				ro += idx * sr
			}
			sl *= dl
			sr *= dr
		}
		b.LhsOffset[k], b.RhsOffset[k] = lo, ro
	}

	return b, nil
}

// lhsAt returns the lhs row offset (before ReduceSize scaling) for output k.
func (b *BcastOff) lhsAt(k int) int {
	if b.UseBcast {
		return b.LhsOffset[k]
	}

	return k
}

func (b *BcastOff) rhsAt(k int) int {
	if b.UseBcast {
		return b.RhsOffset[k]
	}

	return k
}

// dimFromRight returns shape[len-1-j], or 1 past the leading axis.
func dimFromRight(shape []int, j int) int {
	if j >= len(shape) {
		return 1
	}

	return shape[len(shape)-1-j]
}

func prod(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}
