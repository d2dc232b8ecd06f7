// SPDX-License-Identifier: MIT

package traversal

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/katalvlaran/lvsparse/traversal"

// bfsWalker holds the mutable state of one breadth-first run.
type bfsWalker[I sparse.Index] struct {
	csr     *sparse.CSR[I]
	opts    Options
	visited []bool
	nodes   *Frontiers[I]
	edges   *Frontiers[I]
}

// BFSNodes runs a multi-source BFS. Section 0 holds the sources (first
// occurrence of each); section k the nodes first reached in k steps, in
// discovery order.
func BFSNodes[I sparse.Index](csr *sparse.CSR[I], sources []I, opts ...Option) (*Frontiers[I], error) {
	w, err := runBFS("BFSNodes", csr, sources, false, opts...)
	if err != nil {
		return nil, err
	}

	return w.nodes, nil
}

// BFSEdges runs the same search as BFSNodes and returns, per step, the ids
// of the edges through which the next layer was first reached. It has one
// section fewer than BFSNodes.
func BFSEdges[I sparse.Index](csr *sparse.CSR[I], sources []I, opts ...Option) (*Frontiers[I], error) {
	w, err := runBFS("BFSEdges", csr, sources, true, opts...)
	if err != nil {
		return nil, err
	}

	return w.edges, nil
}

func runBFS[I sparse.Index](method string, csr *sparse.CSR[I], sources []I, wantEdges bool, opts ...Option) (*bfsWalker[I], error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if err := checkGraph(method, csr, sources); err != nil {
		return nil, err
	}
	_, span := startSpan(o.Ctx, method, csr)
	defer span.End()

	n := csr.NumRows()
	w := &bfsWalker[I]{
		csr:     csr,
		opts:    o,
		visited: make([]bool, n),
		nodes:   newFrontiers[I](n),
		edges:   newFrontiers[I](0),
	}
	out := w.nodes
	if wantEdges {
		out = w.edges
	}

	cur := make([]I, 0, len(sources))
	for _, s := range sources {
		if w.visited[s] {
			continue
		}
		w.visited[s] = true
		cur = append(cur, s)
		w.nodes.IDs = append(w.nodes.IDs, s)
		if err := o.OnVisit(int(s), 0); err != nil {
			return nil, fmt.Errorf("%s: OnVisit(%d): %w", method, s, err)
		}
	}
	w.nodes.cut()

	for depth := 1; len(cur) > 0; depth++ {
		if o.MaxDepth > 0 && out.Len() >= o.MaxDepth {
			break
		}
		if err := cancelled(o.Ctx); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		if cur, err = w.expand(cur, depth); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
	}
	span.SetAttributes(attribute.Int("sections", out.Len()))

	return w, nil
}

// expand visits every unseen neighbor of cur, closes one node section and
// one edge section, and returns the new layer.
func (w *bfsWalker[I]) expand(cur []I, depth int) ([]I, error) {
	indptr, indices, ids := w.csr.Indptr(), w.csr.Indices(), w.csr.EntryIDs()
	next := make([]I, 0, len(cur))
	for _, u := range cur {
		for p := int(indptr[u]); p < int(indptr[u+1]); p++ {
			v := indices[p]
			if w.visited[v] {
				continue
			}
			w.visited[v] = true
			next = append(next, v)
			w.nodes.IDs = append(w.nodes.IDs, v)
			w.edges.IDs = append(w.edges.IDs, ids.At(p))
			if err := w.opts.OnVisit(int(v), depth); err != nil {
				return nil, fmt.Errorf("OnVisit(%d): %w", v, err)
			}
		}
	}
	w.nodes.cut()
	w.edges.cut()

	return next, nil
}

func startSpan[I sparse.Index](ctx context.Context, method string, csr *sparse.CSR[I]) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "traversal."+method,
		trace.WithAttributes(
			attribute.Int("nodes", csr.NumRows()),
			attribute.Int("nnz", csr.NNZ()),
		))
}
