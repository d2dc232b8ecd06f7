// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"slices"
)

// Get returns the entry id stored at (row, col), or -1 when the position
// is empty. With duplicates, the first match in row order is returned.
// Sorted() rows are binary searched, others scanned. O(log d) or O(d).
func (m *CSR[I]) Get(row, col I) (I, error) {
	if err := m.checkRowCol(row, col); err != nil {
		return -1, fmt.Errorf("CSR.Get(%d,%d): %w", row, col, err)
	}

	return m.get(row, col), nil
}

func (m *CSR[I]) get(row, col I) I {
	a, b := m.span(int(row))
	if m.sorted {
		p, found := slices.BinarySearch(m.indices[a:b], col)
		if found {
			return m.ids.At(a + p)
		}

		return -1
	}
	for p := a; p < b; p++ {
		if m.indices[p] == col {
			return m.ids.At(p)
		}
	}

	return -1
}

// IsNonZero reports whether (row, col) holds at least one entry.
func (m *CSR[I]) IsNonZero(row, col I) (bool, error) {
	if err := m.checkRowCol(row, col); err != nil {
		return false, fmt.Errorf("CSR.IsNonZero(%d,%d): %w", row, col, err)
	}

	return m.get(row, col) != -1, nil
}

// RowNNZ returns the number of entries in row.
func (m *CSR[I]) RowNNZ(row I) (int, error) {
	if err := checkIndex(row, m.numRows); err != nil {
		return 0, fmt.Errorf("CSR.RowNNZ(%d): %w", row, err)
	}
	a, b := m.span(int(row))

	return b - a, nil
}

// Row returns fresh copies of the columns and entry ids of row.
func (m *CSR[I]) Row(row I) (cols, ids []I, err error) {
	if err := checkIndex(row, m.numRows); err != nil {
		return nil, nil, fmt.Errorf("CSR.Row(%d): %w", row, err)
	}
	a, b := m.span(int(row))
	cols = slices.Clone(m.indices[a:b])
	ids = make([]I, b-a)
	for p := a; p < b; p++ {
		ids[p-a] = m.ids.At(p)
	}

	return cols, ids, nil
}

// IsNonZeroBatch evaluates IsNonZero over broadcast (rows, cols) pairs.
func (m *CSR[I]) IsNonZeroBatch(rows, cols []I, opts ...Option) ([]bool, error) {
	out, err := batchLookup(rows, cols, m.numRows, m.numCols, gatherOptions(opts...), func(r, c I) bool { return m.get(r, c) != -1 })
	if err != nil {
		return nil, fmt.Errorf("CSR.IsNonZeroBatch: %w", err)
	}

	return out, nil
}

// GetBatch evaluates Get over broadcast (rows, cols) pairs.
func (m *CSR[I]) GetBatch(rows, cols []I, opts ...Option) ([]I, error) {
	out, err := batchLookup(rows, cols, m.numRows, m.numCols, gatherOptions(opts...), m.get)
	if err != nil {
		return nil, fmt.Errorf("CSR.GetBatch: %w", err)
	}

	return out, nil
}

// RowNNZBatch evaluates RowNNZ for every element of rows.
func (m *CSR[I]) RowNNZBatch(rows []I, opts ...Option) ([]int, error) {
	out, err := batchRows(rows, m.numRows, gatherOptions(opts...), func(r I) int {
		a, b := m.span(int(r))
		return b - a
	})
	if err != nil {
		return nil, fmt.Errorf("CSR.RowNNZBatch: %w", err)
	}

	return out, nil
}

// GetEntriesAndIndices returns every entry matching a broadcast (rows,
// cols) query pair, duplicates included, as parallel arrays of matched
// rows, matched columns and entry ids. See COO.GetEntriesAndIndices for
// the strategy switch.
func (m *CSR[I]) GetEntriesAndIndices(rows, cols []I, opts ...Option) (mr, mc, ids []I, err error) {
	o := gatherOptions(opts...)
	q, err := checkQueries(rows, cols, m.numRows, m.numCols)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("CSR.GetEntriesAndIndices: %w", err)
	}
	if q < o.hashThreshold {
		for i := 0; i < q; i++ {
			r, c := at(rows, i), at(cols, i)
			a, b := m.span(int(r))
			for p := a; p < b; p++ {
				if m.indices[p] == c {
					mr, mc, ids = append(mr, r), append(mc, c), append(ids, m.ids.At(p))
				}
			}
		}

		return mr, mc, ids, nil
	}
	mm := newMultimap[I](m.NNZ())
	for r := 0; r < m.numRows; r++ {
		a, b := m.span(r)
		for p := a; p < b; p++ {
			mm.add(I(r), m.indices[p], m.ids.At(p))
		}
	}
	mr, mc, ids = mm.probe(rows, cols, q)

	return mr, mc, ids, nil
}

// HasDuplicate reports whether any (row, col) pair occurs more than once.
// Sorted rows are checked by adjacency, others through a per-row set.
func (m *CSR[I]) HasDuplicate() bool {
	seen := make(map[I]struct{})
	for r := 0; r < m.numRows; r++ {
		a, b := m.span(r)
		if m.sorted {
			for p := a + 1; p < b; p++ {
				if m.indices[p] == m.indices[p-1] {
					return true
				}
			}
			continue
		}
		clear(seen)
		for p := a; p < b; p++ {
			if _, dup := seen[m.indices[p]]; dup {
				return true
			}
			seen[m.indices[p]] = struct{}{}
		}
	}

	return false
}

func (m *CSR[I]) checkRowCol(row, col I) error {
	if err := checkIndex(row, m.numRows); err != nil {
		return err
	}

	return checkIndex(col, m.numCols)
}
