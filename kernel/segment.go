// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsparse/parallel"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/tensor"
	"go.opentelemetry.io/otel/attribute"
)

// SegmentReduce reduces consecutive row ranges of feat:
//
//	out[s] = reduce(feat[offsets[s]], ..., feat[offsets[s+1]-1])
//
// offsets must be non-decreasing, start at or above 0 and end at or below
// feat.Rows(); out has len(offsets)-1 rows of feat's row length. Empty
// segments produce 0. Under ReduceMax/ReduceMin a non-nil arg (out.Len()
// elements) receives the absolute feat row of each winner, or -1 for empty
// segments. Supports sum, max, min and mean. Parallel over segments.
func SegmentReduce[I sparse.Index](ctx context.Context, reduce Reducer, feat *tensor.Tensor, offsets []I,
	out *tensor.Tensor, arg []I, opts ...Option) error {
	o := gatherOptions(opts...)
	c := startCall(ctx, "SegmentReduce", o.logger,
		attribute.String("reduce", reduce.String()),
		attribute.Int("segments", max(len(offsets)-1, 0)),
	)
	dt, err := planSegment(reduce, feat, offsets, out, arg)
	if err != nil {
		return c.end(fmt.Errorf("SegmentReduce(%s): %w", reduce, err))
	}
	err = runFloat(dt,
		func() error { return segmentTyped[I, float32](reduce, feat, offsets, out, arg, o.workers) },
		func() error { return segmentTyped[I, float64](reduce, feat, offsets, out, arg, o.workers) })

	return c.end(err)
}

func planSegment[I sparse.Index](reduce Reducer, feat *tensor.Tensor, offsets []I, out *tensor.Tensor, arg []I) (tensor.DType, error) {
	switch reduce {
	case ReduceSum, ReduceMax, ReduceMin, ReduceMean:
	default:
		return 0, fmt.Errorf("reducer: %w", ErrUnsupported)
	}
	if feat == nil || out == nil {
		return 0, fmt.Errorf("feat/out: %w", ErrMissingOperand)
	}
	dt, err := resolveDType(feat, out)
	if err != nil {
		return 0, err
	}
	if len(offsets) == 0 {
		return 0, fmt.Errorf("empty offsets: %w", ErrShapeMismatch)
	}
	if out.Rows() != len(offsets)-1 || out.RowLen() != feat.RowLen() {
		return 0, fmt.Errorf("out rows %d x %d, want %d x %d: %w",
			out.Rows(), out.RowLen(), len(offsets)-1, feat.RowLen(), ErrShapeMismatch)
	}
	if offsets[0] < 0 || int(offsets[len(offsets)-1]) > feat.Rows() {
		return 0, fmt.Errorf("offsets span [%d,%d) of %d rows: %w", offsets[0], offsets[len(offsets)-1], feat.Rows(), ErrOutOfRange)
	}
	for s := 1; s < len(offsets); s++ {
		if offsets[s] < offsets[s-1] {
			return 0, fmt.Errorf("offsets decrease at %d: %w", s, ErrOutOfRange)
		}
	}
	if arg != nil && (reduce == ReduceMax || reduce == ReduceMin) && len(arg) != out.Len() {
		return 0, fmt.Errorf("arg length %d, want %d: %w", len(arg), out.Len(), ErrShapeMismatch)
	}

	return dt, nil
}

func segmentTyped[I sparse.Index, T Float](reduce Reducer, featT *tensor.Tensor, offsets []I, outT *tensor.Tensor, arg []I, workers int) error {
	feat, out := floats[T](featT), floats[T](outT)
	L := featT.RowLen()
	isCmp := reduce == ReduceMax || reduce == ReduceMin

	err := parallel.For(workers, len(offsets)-1, func(lo, hi int) error {
		for s := lo; s < hi; s++ {
			a, z := int(offsets[s]), int(offsets[s+1])
			row := out[s*L : (s+1)*L]
			for k := range row {
				best := -1
				acc := identity[T](reduce)
				for i := a; i < z; i++ {
					v := feat[i*L+k]
					switch reduce {
					case ReduceSum, ReduceMean:
						acc += v
					case ReduceMax:
						if best < 0 || v > acc {
							acc, best = v, i
						}
					case ReduceMin:
						if best < 0 || v < acc {
							acc, best = v, i
						}
					}
				}
				switch {
				case z == a:
					acc = 0
				case reduce == ReduceMean:
					acc /= T(z - a)
				}
				row[k] = acc
				if isCmp && arg != nil {
					arg[s*L+k] = I(best)
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(outT, out)

	return nil
}

// ScatterAdd zeroes out and then adds every row i of feat into
// out[idx[i]]. idx has one entry per feat row; targets must lie in
// [0, out.Rows()). Parallel over feature columns, so concurrent rows never
// race on one element.
func ScatterAdd[I sparse.Index](ctx context.Context, feat *tensor.Tensor, idx []I, out *tensor.Tensor, opts ...Option) error {
	o := gatherOptions(opts...)
	c := startCall(ctx, "ScatterAdd", o.logger, attribute.Int("rows", len(idx)))
	if feat == nil || out == nil {
		return c.end(fmt.Errorf("ScatterAdd: feat/out: %w", ErrMissingOperand))
	}
	dt, err := resolveDType(feat, out)
	if err == nil {
		err = checkScatter(feat, idx, out)
	}
	if err != nil {
		return c.end(fmt.Errorf("ScatterAdd: %w", err))
	}
	err = runFloat(dt,
		func() error { return scatterTyped[I, float32](feat, idx, out, o.workers) },
		func() error { return scatterTyped[I, float64](feat, idx, out, o.workers) })

	return c.end(err)
}

func checkScatter[I sparse.Index](feat *tensor.Tensor, idx []I, out *tensor.Tensor) error {
	if feat.Rows() != len(idx) || feat.RowLen() != out.RowLen() {
		return fmt.Errorf("feat %v with %d indices into out %v: %w", feat.Shape(), len(idx), out.Shape(), ErrShapeMismatch)
	}
	for i, t := range idx {
		if t < 0 || int(t) >= out.Rows() {
			return fmt.Errorf("index %d at %d: %w", t, i, ErrOutOfRange)
		}
	}

	return nil
}

func scatterTyped[I sparse.Index, T Float](featT *tensor.Tensor, idx []I, outT *tensor.Tensor, workers int) error {
	feat, out := floats[T](featT), floats[T](outT)
	clear(out)
	L := featT.RowLen()
	err := parallel.Range(workers, L, 1, func(klo, khi int) error {
		for i, t := range idx {
			for k := klo; k < khi; k++ {
				out[int(t)*L+k] += feat[i*L+k]
			}
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(outT, out)

	return nil
}

// BackwardSegmentCmp routes the gradient of a max/min segment reduction
// back to the winning rows: out is zeroed and, for every element k of
// segment s with arg[s*L+k] != -1, out[arg[s*L+k]][k] = feat[s][k].
// feat and arg have the segment output shape; out has the input shape.
func BackwardSegmentCmp[I sparse.Index](ctx context.Context, feat *tensor.Tensor, arg []I, out *tensor.Tensor, opts ...Option) error {
	o := gatherOptions(opts...)
	c := startCall(ctx, "BackwardSegmentCmp", o.logger, attribute.Int("elements", len(arg)))
	if feat == nil || out == nil {
		return c.end(fmt.Errorf("BackwardSegmentCmp: feat/out: %w", ErrMissingOperand))
	}
	dt, err := resolveDType(feat, out)
	if err != nil {
		return c.end(fmt.Errorf("BackwardSegmentCmp: %w", err))
	}
	if len(arg) != feat.Len() || feat.RowLen() != out.RowLen() {
		return c.end(fmt.Errorf("BackwardSegmentCmp: arg %d for feat %v into out %v: %w",
			len(arg), feat.Shape(), out.Shape(), ErrShapeMismatch))
	}
	for i, a := range arg {
		if a < -1 || int(a) >= out.Rows() {
			return c.end(fmt.Errorf("BackwardSegmentCmp: arg %d at %d: %w", a, i, ErrOutOfRange))
		}
	}
	err = runFloat(dt,
		func() error { return backwardCmpTyped[I, float32](feat, arg, out, o.workers) },
		func() error { return backwardCmpTyped[I, float64](feat, arg, out, o.workers) })

	return c.end(err)
}

func backwardCmpTyped[I sparse.Index, T Float](featT *tensor.Tensor, arg []I, outT *tensor.Tensor, workers int) error {
	feat, out := floats[T](featT), floats[T](outT)
	clear(out)
	L := featT.RowLen()
	err := parallel.Range(workers, L, 1, func(klo, khi int) error {
		for s := 0; s < featT.Rows(); s++ {
			for k := klo; k < khi; k++ {
				if a := arg[s*L+k]; a >= 0 {
					out[int(a)*L+k] = feat[s*L+k]
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(outT, out)

	return nil
}
