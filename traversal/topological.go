// SPDX-License-Identifier: MIT

package traversal

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
	"go.opentelemetry.io/otel/attribute"
)

// Topological returns the Kahn layers of csr: section 0 holds every node
// without incoming edges in ascending id order, section k the nodes whose
// last predecessor sits in section k-1. Parallel edges count once each.
//
// If nodes remain once no layer can be formed the graph has a cycle and
// ErrCycleDetected is returned; a self-loop is such a cycle. Stopping early
// through WithMaxDepth skips that check.
func Topological[I sparse.Index](csr *sparse.CSR[I], opts ...Option) (*Frontiers[I], error) {
	const method = "Topological"
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if err := checkGraph[I](method, csr, nil); err != nil {
		return nil, err
	}
	_, span := startSpan(o.Ctx, method, csr)
	defer span.End()

	n := csr.NumRows()
	indptr, indices := csr.Indptr(), csr.Indices()
	indeg := make([]int, n)
	for _, v := range indices {
		indeg[v]++
	}

	f := newFrontiers[I](n)
	for v := 0; v < n; v++ {
		if indeg[v] == 0 {
			f.IDs = append(f.IDs, I(v))
		}
	}
	f.cut()

	for depth := 0; f.Len() > depth; depth++ {
		layer := f.Section(depth)
		for _, u := range layer {
			if err := o.OnVisit(int(u), depth); err != nil {
				return nil, fmt.Errorf("%s: OnVisit(%d): %w", method, u, err)
			}
		}
		if o.MaxDepth > 0 && f.Len() >= o.MaxDepth {
			span.SetAttributes(attribute.Int("sections", f.Len()))
			return f, nil
		}
		if err := cancelled(o.Ctx); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		for _, u := range layer {
			for p := int(indptr[u]); p < int(indptr[u+1]); p++ {
				v := indices[p]
				indeg[v]--
				if indeg[v] == 0 {
					f.IDs = append(f.IDs, v)
				}
			}
		}
		f.cut()
	}
	span.SetAttributes(attribute.Int("sections", f.Len()))

	if len(f.IDs) != n {
		err := fmt.Errorf("%s: %d of %d nodes in a cycle: %w", method, n-len(f.IDs), n, ErrCycleDetected)
		span.RecordError(err)
		return nil, err
	}

	return f, nil
}
