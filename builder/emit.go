// SPDX-License-Identifier: MIT
// Package: lvsparse/builder
//
// emit.go: shared edge accumulator used by every generator.
//
// Contract:
//   • add(src, dst) stores the entry (row=dst, col=src); undirected lists
//     also store (row=src, col=dst) unless src == dst.
//   • build binds the arrays into a COO, applying WithExplicitIDs and
//     WithShuffle, and computes both sortedness flags from the final order.
//
// Complexity: add is amortized O(1); build is O(nnz).

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

type edgeList[I sparse.Index] struct {
	rows, cols []I
	undirected bool
}

func newEdgeList[I sparse.Index](capacity int, cfg config) *edgeList[I] {
	if cfg.undirected {
		capacity *= 2
	}

	return &edgeList[I]{
		rows:       make([]I, 0, capacity),
		cols:       make([]I, 0, capacity),
		undirected: cfg.undirected,
	}
}

// add records the edge src→dst.
func (e *edgeList[I]) add(src, dst int) {
	e.rows = append(e.rows, I(dst))
	e.cols = append(e.cols, I(src))
	if e.undirected && src != dst {
		e.rows = append(e.rows, I(src))
		e.cols = append(e.cols, I(dst))
	}
}

// build finalizes the list as a numRows x numCols COO.
func (e *edgeList[I]) build(method string, numRows, numCols int, cfg config) (*sparse.COO[I], error) {
	nnz := len(e.rows)
	ids := sparse.ImplicitIDs[I]()
	var idv []I
	if cfg.explicitIDs {
		idv = make([]I, nnz)
		for p := range idv {
			idv[p] = I(p)
		}
		ids = sparse.ExplicitIDs(idv)
	}

	if cfg.shuffle {
		if cfg.rng == nil {
			return nil, fmt.Errorf("%s: shuffle: %w", method, ErrNeedRandSource)
		}
		cfg.rng.Shuffle(nnz, func(i, j int) {
			e.rows[i], e.rows[j] = e.rows[j], e.rows[i]
			e.cols[i], e.cols[j] = e.cols[j], e.cols[i]
			if idv != nil {
				idv[i], idv[j] = idv[j], idv[i]
			}
		})
	}

	coo, err := sparse.NewCOO(numRows, numCols, e.rows, e.cols, ids, nonDecreasing(e.rows), nonDecreasing(e.cols))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return coo, nil
}

// checkSize rejects dimensions and entry counts the index type I cannot
// represent.
func checkSize[I sparse.Index](method string, dims ...int) error {
	for _, d := range dims {
		if int(I(d)) != d {
			return fmt.Errorf("%s: %d: %w", method, d, ErrTooLarge)
		}
	}

	return nil
}

func nonDecreasing[I sparse.Index](a []I) bool {
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			return false
		}
	}

	return true
}
