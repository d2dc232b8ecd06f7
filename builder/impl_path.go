// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// impl_path.go: Path(n) and Cycle(n) generators.
//
// Contract:
//   • Path: n ≥ 2; edges i → i+1 for i = 0..n-2.
//   • Cycle: n ≥ 3; the path edges plus (n-1) → 0.
//   • n x n result; undirected lists store both directions.
//
// Complexity: O(n) time and space.
//
// Determinism: edges are emitted by increasing i.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

const (
	methodPath    = "Path"
	methodCycle   = "Cycle"
	minPathNodes  = 2
	minCycleNodes = 3
)

// Path returns the adjacency of the path P_n.
func Path[I sparse.Index](n int, opts ...Option) (*sparse.COO[I], error) {
	if n < minPathNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
	}
	if err := checkSize[I](methodPath, n, 2*n); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)

	el := newEdgeList[I](n-1, cfg)
	for i := 0; i+1 < n; i++ {
		el.add(i, i+1)
	}

	return el.build(methodPath, n, n, cfg)
}

// Cycle returns the adjacency of the cycle C_n.
func Cycle[I sparse.Index](n int, opts ...Option) (*sparse.COO[I], error) {
	if n < minCycleNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
	}
	if err := checkSize[I](methodCycle, n, 2*n); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)

	el := newEdgeList[I](n, cfg)
	for i := 0; i < n; i++ {
		el.add(i, (i+1)%n)
	}

	return el.build(methodCycle, n, n, cfg)
}
