// SPDX-License-Identifier: MIT

package traversal

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
	"go.opentelemetry.io/otel/attribute"
)

// frame is one DFS stack entry: node u scanning row position pos. onTree
// marks that the edge at pos led to a child that is still open.
type frame struct {
	u      int
	pos    int
	onTree bool
}

// DFSEdges returns, for every source, the ids of the DFS tree edges in
// visit order. Each source starts from a clean visited set, so there is
// exactly one section per source (possibly empty).
func DFSEdges[I sparse.Index](csr *sparse.CSR[I], sources []I, opts ...Option) (*Frontiers[I], error) {
	return dfs("DFSEdges", csr, sources, false, false, false, opts...)
}

// DFSLabeledEdges is DFSEdges with optional extra edges: when reverse is
// set, every tree edge is reported again as Reverse once its subtree is
// finished; when nonTree is set, edges into already visited nodes are
// reported as NonTree. With labels the result carries Tags.
func DFSLabeledEdges[I sparse.Index](csr *sparse.CSR[I], sources []I, reverse, nonTree, labels bool, opts ...Option) (*Frontiers[I], error) {
	return dfs("DFSLabeledEdges", csr, sources, reverse, nonTree, labels, opts...)
}

func dfs[I sparse.Index](method string, csr *sparse.CSR[I], sources []I, reverse, nonTree, labels bool, opts ...Option) (*Frontiers[I], error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if err := checkGraph(method, csr, sources); err != nil {
		return nil, err
	}
	_, span := startSpan(o.Ctx, method, csr)
	defer span.End()

	indptr, indices, ids := csr.Indptr(), csr.Indices(), csr.EntryIDs()
	f := newFrontiers[I](csr.NNZ())
	if labels {
		f.Tags = make([]Tag, 0, csr.NNZ())
	}
	emit := func(p int, tag Tag) {
		f.IDs = append(f.IDs, ids.At(p))
		if labels {
			f.Tags = append(f.Tags, tag)
		}
	}

	visited := make([]bool, csr.NumRows())
	var stack []frame
	for _, s := range sources {
		clear(visited)
		visited[s] = true
		if err := o.OnVisit(int(s), 0); err != nil {
			return nil, fmt.Errorf("%s: OnVisit(%d): %w", method, s, err)
		}
		stack = append(stack[:0], frame{u: int(s), pos: int(indptr[s])})

		for len(stack) > 0 {
			if err := cancelled(o.Ctx); err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("%s: %w", method, err)
			}
			top := &stack[len(stack)-1]
			if top.pos >= int(indptr[top.u+1]) {
				stack = stack[:len(stack)-1]
				continue
			}
			if top.onTree {
				if reverse {
					emit(top.pos, Reverse)
				}
				top.onTree = false
				top.pos++
				continue
			}
			v := int(indices[top.pos])
			if visited[v] {
				if nonTree {
					emit(top.pos, NonTree)
				}
				top.pos++
				continue
			}
			visited[v] = true
			emit(top.pos, Forward)
			top.onTree = true
			if err := o.OnVisit(v, len(stack)); err != nil {
				return nil, fmt.Errorf("%s: OnVisit(%d): %w", method, v, err)
			}
			stack = append(stack, frame{u: v, pos: int(indptr[v])})
		}
		f.Offsets = append(f.Offsets, len(f.IDs))
	}
	span.SetAttributes(attribute.Int("edges", len(f.IDs)))

	return f, nil
}
