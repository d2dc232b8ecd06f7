// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"sort"
)

// rowWindow returns the position range that can hold row. When RowSorted()
// it is narrowed by binary search; otherwise it is the whole matrix.
func (m *COO[I]) rowWindow(row I) (lo, hi int) {
	if !m.rowSorted {
		return 0, m.NNZ()
	}
	lo = sort.Search(len(m.rows), func(i int) bool { return m.rows[i] >= row })
	hi = lo + sort.Search(len(m.rows)-lo, func(i int) bool { return m.rows[lo+i] > row })

	return lo, hi
}

func (m *COO[I]) get(row, col I) I {
	lo, hi := m.rowWindow(row)
	for p := lo; p < hi; p++ {
		if m.rows[p] == row && m.cols[p] == col {
			return m.ids.At(p)
		}
	}

	return -1
}

// Get returns the entry id at (row, col), or -1 when absent. On an
// unsorted COO this is a full O(nnz) scan.
func (m *COO[I]) Get(row, col I) (I, error) {
	if err := m.checkRowCol(row, col); err != nil {
		return -1, fmt.Errorf("COO.Get(%d,%d): %w", row, col, err)
	}

	return m.get(row, col), nil
}

// IsNonZero reports whether (row, col) holds at least one entry.
func (m *COO[I]) IsNonZero(row, col I) (bool, error) {
	if err := m.checkRowCol(row, col); err != nil {
		return false, fmt.Errorf("COO.IsNonZero(%d,%d): %w", row, col, err)
	}

	return m.get(row, col) != -1, nil
}

func (m *COO[I]) rowNNZ(row I) int {
	lo, hi := m.rowWindow(row)
	if m.rowSorted {
		return hi - lo
	}
	n := 0
	for p := lo; p < hi; p++ {
		if m.rows[p] == row {
			n++
		}
	}

	return n
}

// RowNNZ returns the number of entries in row.
func (m *COO[I]) RowNNZ(row I) (int, error) {
	if err := checkIndex(row, m.numRows); err != nil {
		return 0, fmt.Errorf("COO.RowNNZ(%d): %w", row, err)
	}

	return m.rowNNZ(row), nil
}

// Row returns the columns and entry ids of row in storage order.
func (m *COO[I]) Row(row I) (cols, ids []I, err error) {
	if err := checkIndex(row, m.numRows); err != nil {
		return nil, nil, fmt.Errorf("COO.Row(%d): %w", row, err)
	}
	lo, hi := m.rowWindow(row)
	cols, ids = []I{}, []I{}
	for p := lo; p < hi; p++ {
		if m.rows[p] == row {
			cols = append(cols, m.cols[p])
			ids = append(ids, m.ids.At(p))
		}
	}

	return cols, ids, nil
}

// IsNonZeroBatch evaluates IsNonZero over broadcast (rows, cols) pairs.
func (m *COO[I]) IsNonZeroBatch(rows, cols []I, opts ...Option) ([]bool, error) {
	out, err := batchLookup(rows, cols, m.numRows, m.numCols, gatherOptions(opts...), func(r, c I) bool { return m.get(r, c) != -1 })
	if err != nil {
		return nil, fmt.Errorf("COO.IsNonZeroBatch: %w", err)
	}

	return out, nil
}

// GetBatch evaluates Get over broadcast (rows, cols) pairs.
func (m *COO[I]) GetBatch(rows, cols []I, opts ...Option) ([]I, error) {
	out, err := batchLookup(rows, cols, m.numRows, m.numCols, gatherOptions(opts...), m.get)
	if err != nil {
		return nil, fmt.Errorf("COO.GetBatch: %w", err)
	}

	return out, nil
}

// RowNNZBatch evaluates RowNNZ for every element of rows.
func (m *COO[I]) RowNNZBatch(rows []I, opts ...Option) ([]int, error) {
	out, err := batchRows(rows, m.numRows, gatherOptions(opts...), m.rowNNZ)
	if err != nil {
		return nil, fmt.Errorf("COO.RowNNZBatch: %w", err)
	}

	return out, nil
}

// GetEntriesAndIndices returns every entry matching a broadcast (rows,
// cols) query pair, duplicates included, as parallel arrays of matched
// rows, matched columns and entry ids.
//
// Below the hash threshold (DefaultHashThreshold, see WithHashThreshold)
// each pair is answered by a scan of its row window; at or above it a
// (row, col) -> ids multimap is built once over the matrix and probed.
// Both strategies return the same multiset of triples.
func (m *COO[I]) GetEntriesAndIndices(rows, cols []I, opts ...Option) (mr, mc, ids []I, err error) {
	o := gatherOptions(opts...)
	q, err := checkQueries(rows, cols, m.numRows, m.numCols)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("COO.GetEntriesAndIndices: %w", err)
	}
	if q < o.hashThreshold {
		for i := 0; i < q; i++ {
			r, c := at(rows, i), at(cols, i)
			lo, hi := m.rowWindow(r)
			for p := lo; p < hi; p++ {
				if m.rows[p] == r && m.cols[p] == c {
					mr, mc, ids = append(mr, r), append(mc, c), append(ids, m.ids.At(p))
				}
			}
		}

		return mr, mc, ids, nil
	}
	mm := newMultimap[I](m.NNZ())
	for p := range m.rows {
		mm.add(m.rows[p], m.cols[p], m.ids.At(p))
	}
	mr, mc, ids = mm.probe(rows, cols, q)

	return mr, mc, ids, nil
}

// HasDuplicate reports whether any (row, col) pair occurs more than once.
func (m *COO[I]) HasDuplicate() bool {
	seen := make(map[pair[I]]struct{}, m.NNZ())
	for p := range m.rows {
		k := pair[I]{m.rows[p], m.cols[p]}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
	}

	return false
}

func (m *COO[I]) checkRowCol(row, col I) error {
	if err := checkIndex(row, m.numRows); err != nil {
		return err
	}

	return checkIndex(col, m.numCols)
}
