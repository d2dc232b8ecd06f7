// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lvsparse/parallel"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/tensor"
	"go.opentelemetry.io/otel/attribute"
)

// EdgeSoftmax normalizes edge logits over the incoming edges of every
// destination row:
//
//	out[id] = exp(logits[id] - max_r) / sum over row r of exp(logits[.] - max_r)
//
// for each entry (r, c, id) of csr, element-wise over the feature axes.
// logits and out are edge-shaped with identical shapes; out may alias
// logits. The result is composed from SpMMCSR and SDDMMCSR calls.
func EdgeSoftmax[I sparse.Index](ctx context.Context, csr *sparse.CSR[I], logits, out *tensor.Tensor, opts ...Option) error {
	if csr == nil {
		return fmt.Errorf("EdgeSoftmax: csr: %w", ErrMissingOperand)
	}
	o := gatherOptions(opts...)
	c := startCall(ctx, "EdgeSoftmax", o.logger, attribute.Int("rows", csr.NumRows()), attribute.Int("nnz", csr.NNZ()))
	if logits == nil || out == nil {
		return c.end(fmt.Errorf("EdgeSoftmax: logits/out: %w", ErrMissingOperand))
	}
	if !slices.Equal(logits.Shape(), out.Shape()) {
		return c.end(fmt.Errorf("EdgeSoftmax: logits %v vs out %v: %w", logits.Shape(), out.Shape(), ErrShapeMismatch))
	}

	nodeShape := append([]int{csr.NumRows()}, logits.FeatShape()...)
	rowMax, err := tensor.New(logits.DType(), nodeShape...)
	if err != nil {
		return c.end(fmt.Errorf("EdgeSoftmax: %w", err))
	}
	rowSum := rowMax.Clone()

	steps := []func() error{
		func() error { return SpMMCSR(c.ctx, OpCopyRhs, ReduceMax, csr, nil, logits, rowMax, nil, opts...) },
		func() error {
			return SDDMMCSR(c.ctx, OpSub, csr, logits, rowMax, out, TargetEdge, TargetDst, opts...)
		},
		func() error { return expInPlace(out, o.workers) },
		func() error { return SpMMCSR(c.ctx, OpCopyRhs, ReduceSum, csr, nil, out, rowSum, nil, opts...) },
		func() error {
			return SDDMMCSR(c.ctx, OpDiv, csr, out, rowSum, out, TargetEdge, TargetDst, opts...)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return c.end(fmt.Errorf("EdgeSoftmax: %w", err))
		}
	}

	return c.end(nil)
}

// expInPlace replaces every element of t by its exponential.
func expInPlace(t *tensor.Tensor, workers int) error {
	dt, err := resolveDType(t)
	if err != nil {
		return err
	}

	return runFloat(dt,
		func() error { return expTyped[float32](t, workers) },
		func() error { return expTyped[float64](t, workers) })
}

func expTyped[T Float](t *tensor.Tensor, workers int) error {
	data := floats[T](t)
	err := parallel.For(workers, len(data), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			data[i] = T(math.Exp(float64(data[i])))
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(t, data)

	return nil
}
