// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// impl_star.go: Star(n) and Wheel(n) generators.
//
// Contract:
//   • Star: n ≥ 2; node 0 is the center, edges 0 → k for k = 1..n-1.
//   • Wheel: n ≥ 4; the star plus the rim cycle 1 → 2 → ... → n-1 → 1.
//
// Complexity: O(n) time and space.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

const (
	methodStar    = "Star"
	methodWheel   = "Wheel"
	minStarNodes  = 2
	minWheelNodes = 4
)

// Star returns the adjacency of a star with center 0 and n-1 leaves.
func Star[I sparse.Index](n int, opts ...Option) (*sparse.COO[I], error) {
	if n < minStarNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
	}
	if err := checkSize[I](methodStar, n, 2*n); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)

	el := newEdgeList[I](n-1, cfg)
	for k := 1; k < n; k++ {
		el.add(0, k)
	}

	return el.build(methodStar, n, n, cfg)
}

// Wheel returns the adjacency of the wheel W_n: a star whose n-1 leaves
// also form a cycle.
func Wheel[I sparse.Index](n int, opts ...Option) (*sparse.COO[I], error) {
	if n < minWheelNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewVertices)
	}
	if err := checkSize[I](methodWheel, n, 4*n); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)

	el := newEdgeList[I](2*(n-1), cfg)
	for k := 1; k < n; k++ {
		el.add(0, k)
	}
	for k := 1; k < n; k++ {
		el.add(k, k%(n-1)+1)
	}

	return el.build(methodWheel, n, n, cfg)
}
