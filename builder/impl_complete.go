// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// impl_complete.go: Complete(n, loops) and CompleteBipartite(n1, n2).
//
// Contract:
//   • Complete: n ≥ 1; every ordered pair (src, dst) with src ≠ dst, plus
//     (i, i) when loops is true. The result is already symmetric, so
//     WithUndirected does not add entries.
//   • CompleteBipartite: n1, n2 ≥ 1; left node i → right node j for all
//     pairs. The result is n2 x n1 (rows are the right side) and
//     WithUndirected does not apply.
//   • Emission is row-major by destination, then source, so both results
//     are row sorted with ascending columns within each row.
//
// Complexity: O(n²) and O(n1·n2) time and space.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

const (
	methodComplete   = "Complete"
	methodBipartite  = "CompleteBipartite"
	minCompleteNodes = 1
	minPartition     = 1
)

// Complete returns the adjacency of K_n, with self-loops when loops is set.
func Complete[I sparse.Index](n int, loops bool, opts ...Option) (*sparse.COO[I], error) {
	if n < minCompleteNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
	}
	if err := checkSize[I](methodComplete, n, n*n); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)
	cfg.undirected = false

	el := newEdgeList[I](n*n, cfg)
	for dst := 0; dst < n; dst++ {
		for src := 0; src < n; src++ {
			if src == dst && !loops {
				continue
			}
			el.add(src, dst)
		}
	}

	return el.build(methodComplete, n, n, cfg)
}

// CompleteBipartite returns the n2 x n1 adjacency of K_{n1,n2} with edges
// directed from the left side (columns) to the right side (rows).
func CompleteBipartite[I sparse.Index](n1, n2 int, opts ...Option) (*sparse.COO[I], error) {
	if n1 < minPartition || n2 < minPartition {
		return nil, fmt.Errorf("%s: n1=%d, n2=%d (each must be ≥ %d): %w", methodBipartite, n1, n2, minPartition, ErrTooFewVertices)
	}
	if err := checkSize[I](methodBipartite, n1, n2, n1*n2); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)
	cfg.undirected = false

	el := newEdgeList[I](n1*n2, cfg)
	for right := 0; right < n2; right++ {
		for left := 0; left < n1; left++ {
			el.add(left, right)
		}
	}

	return el.build(methodBipartite, n2, n1, cfg)
}
