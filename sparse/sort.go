// SPDX-License-Identifier: MIT

package sparse

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvsparse/parallel"
)

// colID is one (column, entry id) pair during a row sort.
type colID[I Index] struct {
	col, id I
}

// SortRows sorts the columns of every row of csr in place, carrying entry
// ids along, and sets Sorted(). Implicit ids are materialized first so the
// permutation stays observable. Rows are sorted independently in parallel;
// each row sort is stable, so equal columns keep their relative order.
//
// Complexity: O(nnz log d) time for max row degree d, O(d) scratch per worker.
func SortRows[I Index](csr *CSR[I], opts ...Option) error {
	if csr == nil {
		return fmt.Errorf("SortRows: %w", ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	if !csr.ids.Present() {
		csr.ids = ExplicitIDs(csr.ids.Materialize(csr.NNZ()))
	}
	ids := csr.ids.ids

	err := parallel.For(o.workers, csr.numRows, func(lo, hi int) error {
		var scratch []colID[I]
		for r := lo; r < hi; r++ {
			a, b := csr.span(r)
			if b-a < 2 {
				continue
			}
			scratch = scratch[:0]
			for p := a; p < b; p++ {
				scratch = append(scratch, colID[I]{csr.indices[p], ids[p]})
			}
			slices.SortStableFunc(scratch, func(x, y colID[I]) int { return cmp.Compare(x.col, y.col) })
			for k, e := range scratch {
				csr.indices[a+k] = e.col
				ids[a+k] = e.id
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("SortRows: %w", err)
	}
	csr.sorted = true

	return nil
}

// TagBoundaries is the (rows, numTags+1) table produced by SortRowsByTag.
// At(r, t) is the number of entries of row r whose tag is < t, so the
// entries tagged t occupy row-relative positions [At(r,t), At(r,t+1)).
type TagBoundaries[I Index] struct {
	numRows, numTags int
	data             []I
}

// NumRows returns the number of rows of the table.
func (b *TagBoundaries[I]) NumRows() int { return b.numRows }

// NumTags returns the number of tags (the table has NumTags()+1 columns).
func (b *TagBoundaries[I]) NumTags() int { return b.numTags }

// At returns the cumulative count for row r and tag t in [0, NumTags()].
func (b *TagBoundaries[I]) At(r, t int) I { return b.data[r*(b.numTags+1)+t] }

// Row returns the numTags+1 boundaries of row r (shared, not copied).
func (b *TagBoundaries[I]) Row(r int) []I {
	w := b.numTags + 1
	return b.data[r*w : (r+1)*w]
}

// Data returns the flat row-major table.
func (b *TagBoundaries[I]) Data() []I { return b.data }

// SortRowsByTag stably buckets the entries of every row by the tag of their
// column. tags[c] is the tag of column c and must lie in [0, numTags).
//
// The result is a new CSR sharing no buffers with csr (ids materialized),
// flagged unsorted because tag order is not column order, plus the
// boundary table. Rows are processed independently in parallel with
// count, exclusive prefix and scatter per row.
//
// Errors: ErrBadShape (numTags <= 0), ErrShapeMismatch (len(tags) <
// NumCols), ErrOutOfRange (a reached column carries a tag outside
// [0, numTags)).
func SortRowsByTag[I Index, T Index](csr *CSR[I], tags []T, numTags int, opts ...Option) (*CSR[I], *TagBoundaries[I], error) {
	if csr == nil {
		return nil, nil, fmt.Errorf("SortRowsByTag: %w", ErrNilMatrix)
	}
	if numTags <= 0 {
		return nil, nil, fmt.Errorf("SortRowsByTag(numTags=%d): %w", numTags, ErrBadShape)
	}
	if len(tags) < csr.numCols {
		return nil, nil, fmt.Errorf("SortRowsByTag(len(tags)=%d, cols=%d): %w", len(tags), csr.numCols, ErrShapeMismatch)
	}
	o := gatherOptions(opts...)
	nnz, w := csr.NNZ(), numTags+1
	indices := make([]I, nnz)
	ids := make([]I, nnz)
	bounds := make([]I, csr.numRows*w)

	err := parallel.For(o.workers, csr.numRows, func(lo, hi int) error {
		next := make([]I, numTags)
		for r := lo; r < hi; r++ {
			a, b := csr.span(r)
			row := bounds[r*w : (r+1)*w]
			for p := a; p < b; p++ {
				t := tags[csr.indices[p]]
				if t < 0 || int(t) >= numTags {
					return fmt.Errorf("tag %d of column %d: %w", t, csr.indices[p], ErrOutOfRange)
				}
				row[t+1]++
			}
			for t := 1; t < w; t++ {
				row[t] += row[t-1]
			}
			copy(next, row[:numTags])
			for p := a; p < b; p++ {
				t := tags[csr.indices[p]]
				pos := a + int(next[t])
				next[t]++
				indices[pos] = csr.indices[p]
				ids[pos] = csr.ids.At(p)
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("SortRowsByTag: %w", err)
	}

	out := &CSR[I]{
		numRows: csr.numRows, numCols: csr.numCols,
		indptr:  slices.Clone(csr.indptr),
		indices: indices, ids: ExplicitIDs(ids),
		sorted: false,
	}

	return out, &TagBoundaries[I]{numRows: csr.numRows, numTags: numTags, data: bounds}, nil
}
