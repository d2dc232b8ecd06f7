// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// impl_grid.go: Grid(rows, cols) generator.
//
// Canonical model:
//   • 2D orthogonal grid with 4-neighborhood; cell (r, c) is node r*cols+c.
//   • For each cell in row-major order: the edge to the right neighbor,
//     then the edge to the bottom neighbor, where they exist.
//   • WithUndirected stores the reverse of each edge as well.
//
// Contract: rows ≥ 1 and cols ≥ 1 (else ErrTooFewVertices).
//
// Complexity: O(rows·cols) time and space.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns the (rows·cols) x (rows·cols) adjacency of a rows x cols grid.
func Grid[I sparse.Index](rows, cols int, opts ...Option) (*sparse.COO[I], error) {
	if rows < minGridDim || cols < minGridDim {
		return nil, fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
			methodGrid, rows, cols, minGridDim, ErrTooFewVertices)
	}
	n := rows * cols
	if err := checkSize[I](methodGrid, n, 4*n); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)

	el := newEdgeList[I](2*n, cfg)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := r*cols + c
			if c+1 < cols {
				el.add(u, u+1)
			}
			if r+1 < rows {
				el.add(u, u+cols)
			}
		}
	}

	return el.build(methodGrid, n, n, cfg)
}
