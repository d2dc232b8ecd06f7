// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/tensor"
	"go.opentelemetry.io/otel/attribute"
)

// Relation is one edge type of a heterogeneous graph: its adjacency,
// the node-type slots it reads from (SrcSlot, into ufeats) and writes to
// (DstSlot, into outs), and its optional edge features.
type Relation[I sparse.Index] struct {
	CSR     *sparse.CSR[I]
	SrcSlot int
	DstSlot int
	EFeat   *tensor.Tensor
}

// SpMMHetero runs SpMMCSR once per relation and sums the results of
// relations that share a destination slot. Every destination buffer is
// zeroed before the first relation writes it.
//
// Only ReduceSum is supported. Every relation is validated before any
// destination is zeroed, so a failing call leaves outs untouched.
// Relations run in order; each one is parallel over its rows.
func SpMMHetero[I sparse.Index](ctx context.Context, op Op, reduce Reducer, relations []Relation[I],
	ufeats, outs []*tensor.Tensor, opts ...Option) error {
	o := gatherOptions(opts...)
	c := startCall(ctx, "SpMMHetero", o.logger,
		attribute.String("op", op.String()),
		attribute.String("reduce", reduce.String()),
		attribute.Int("relations", len(relations)),
	)
	if reduce != ReduceSum {
		return c.end(fmt.Errorf("SpMMHetero(%s,%s): reducer: %w", op, reduce, ErrUnsupported))
	}

	calls := make([]*spmmCSRCall[I], len(relations))
	for i, rel := range relations {
		if rel.CSR == nil {
			return c.end(fmt.Errorf("SpMMHetero: relation %d: csr: %w", i, ErrMissingOperand))
		}
		if rel.SrcSlot < 0 || rel.SrcSlot >= len(ufeats) {
			return c.end(fmt.Errorf("SpMMHetero: relation %d: source slot %d of %d: %w", i, rel.SrcSlot, len(ufeats), ErrOutOfRange))
		}
		if rel.DstSlot < 0 || rel.DstSlot >= len(outs) || outs[rel.DstSlot] == nil {
			return c.end(fmt.Errorf("SpMMHetero: relation %d: destination slot %d of %d: %w", i, rel.DstSlot, len(outs), ErrOutOfRange))
		}
		bound, err := bindSpMMCSR[I](op, reduce, rel.CSR, ufeats[rel.SrcSlot], rel.EFeat, outs[rel.DstSlot], nil, true)
		if err != nil {
			return c.end(fmt.Errorf("SpMMHetero(%s,%s): relation %d: %w", op, reduce, i, err))
		}
		calls[i] = bound
	}

	zeroed := make(map[int]bool, len(outs))
	for _, rel := range relations {
		if !zeroed[rel.DstSlot] {
			outs[rel.DstSlot].Zero()
			zeroed[rel.DstSlot] = true
		}
	}
	for i, call := range calls {
		if err := call.run(o.workers); err != nil {
			return c.end(fmt.Errorf("SpMMHetero(%s,%s): relation %d: %w", op, reduce, i, err))
		}
	}

	return c.end(nil)
}
