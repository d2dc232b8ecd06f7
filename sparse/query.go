// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/parallel"
)

// checkQueries applies the broadcast rule to (rows, cols) and range-checks
// every query id. It returns the broadcast length.
func checkQueries[I Index](rows, cols []I, numRows, numCols int) (int, error) {
	q, err := broadcastLen(len(rows), len(cols))
	if err != nil {
		return 0, fmt.Errorf("len(rows)=%d len(cols)=%d: %w", len(rows), len(cols), err)
	}
	if err := validateRange(rows, numRows, "rows"); err != nil {
		return 0, err
	}
	if err := validateRange(cols, numCols, "cols"); err != nil {
		return 0, err
	}

	return q, nil
}

// batchLookup evaluates fn over broadcast pairs in parallel.
func batchLookup[I Index, R any](rows, cols []I, numRows, numCols int, o Options, fn func(r, c I) R) ([]R, error) {
	q, err := checkQueries(rows, cols, numRows, numCols)
	if err != nil {
		return nil, err
	}
	out := make([]R, q)
	_ = parallel.For(o.workers, q, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = fn(at(rows, i), at(cols, i))
		}

		return nil
	})

	return out, nil
}

// batchRows evaluates fn over every row id in parallel.
func batchRows[I Index, R any](rows []I, numRows int, o Options, fn func(r I) R) ([]R, error) {
	if err := validateRange(rows, numRows, "rows"); err != nil {
		return nil, err
	}
	out := make([]R, len(rows))
	_ = parallel.For(o.workers, len(rows), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = fn(rows[i])
		}

		return nil
	})

	return out, nil
}

// pair is a (row, col) multimap key.
type pair[I Index] struct{ r, c I }

// multimap maps (row, col) to every entry id stored there.
type multimap[I Index] struct {
	m map[pair[I]][]I
}

func newMultimap[I Index](hint int) *multimap[I] {
	return &multimap[I]{m: make(map[pair[I]][]I, hint)}
}

func (mm *multimap[I]) add(r, c, id I) {
	k := pair[I]{r, c}
	mm.m[k] = append(mm.m[k], id)
}

// probe looks up q broadcast query pairs.
func (mm *multimap[I]) probe(rows, cols []I, q int) (mr, mc, ids []I) {
	for i := 0; i < q; i++ {
		r, c := at(rows, i), at(cols, i)
		for _, id := range mm.m[pair[I]{r, c}] {
			mr, mc, ids = append(mr, r), append(mc, c), append(ids, id)
		}
	}

	return mr, mc, ids
}
