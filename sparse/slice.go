// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"slices"
	"sort"
)

// SliceRows returns rows [start, end) of m renumbered from 0. Ids are
// materialized explicitly; the sorted flag is kept.
// Requires 0 <= start <= end <= NumRows(), else ErrOutOfRange.
func (m *CSR[I]) SliceRows(start, end I) (*CSR[I], error) {
	if start < 0 || start > end || int(end) > m.numRows {
		return nil, fmt.Errorf("CSR.SliceRows(%d,%d): %w", start, end, ErrOutOfRange)
	}
	a, b := int(m.indptr[start]), int(m.indptr[end])
	indptr := make([]I, int(end-start)+1)
	for r := range indptr {
		indptr[r] = m.indptr[int(start)+r] - I(a)
	}
	ids := make([]I, b-a)
	for p := a; p < b; p++ {
		ids[p-a] = m.ids.At(p)
	}

	return &CSR[I]{
		numRows: int(end - start), numCols: m.numCols,
		indptr: indptr, indices: slices.Clone(m.indices[a:b]), ids: ExplicitIDs(ids),
		sorted: m.sorted,
	}, nil
}

// SliceRowList returns a CSR whose row i is row rows[i] of m. Repeated ids
// repeat the row. Any id outside [0, NumRows()) yields ErrOutOfRange.
func (m *CSR[I]) SliceRowList(rows []I) (*CSR[I], error) {
	if err := validateRange(rows, m.numRows, "rows"); err != nil {
		return nil, fmt.Errorf("CSR.SliceRowList: %w", err)
	}
	indptr := make([]I, len(rows)+1)
	for i, r := range rows {
		a, b := m.span(int(r))
		indptr[i+1] = indptr[i] + I(b-a)
	}
	nnz := int(indptr[len(rows)])
	indices := make([]I, 0, nnz)
	ids := make([]I, 0, nnz)
	for _, r := range rows {
		a, b := m.span(int(r))
		indices = append(indices, m.indices[a:b]...)
		for p := a; p < b; p++ {
			ids = append(ids, m.ids.At(p))
		}
	}

	return &CSR[I]{
		numRows: len(rows), numCols: m.numCols,
		indptr: indptr, indices: indices, ids: ExplicitIDs(ids),
		sorted: m.sorted,
	}, nil
}

// SliceMatrix keeps the entries whose row is in rows and whose column is in
// cols, renumbering both dimensions by list position. Row i of the result
// is rows[i] of m. Sorted() survives only when cols is strictly ascending.
func (m *CSR[I]) SliceMatrix(rows, cols []I) (*CSR[I], error) {
	if err := validateRange(rows, m.numRows, "rows"); err != nil {
		return nil, fmt.Errorf("CSR.SliceMatrix: %w", err)
	}
	colMap, err := buildIDMap(cols, m.numCols)
	if err != nil {
		return nil, fmt.Errorf("CSR.SliceMatrix: %w", err)
	}
	indptr := make([]I, len(rows)+1)
	var indices, ids []I
	for i, r := range rows {
		a, b := m.span(int(r))
		for p := a; p < b; p++ {
			if nc, ok := colMap[m.indices[p]]; ok {
				indices = append(indices, nc)
				ids = append(ids, m.ids.At(p))
			}
		}
		indptr[i+1] = I(len(indices))
	}
	if indices == nil {
		indices, ids = []I{}, []I{}
	}

	return &CSR[I]{
		numRows: len(rows), numCols: len(cols),
		indptr: indptr, indices: indices, ids: ExplicitIDs(ids),
		sorted: m.sorted && strictlyAscending(cols),
	}, nil
}

// SliceRows keeps the entries whose row lies in [start, end) and shifts
// rows down by start. Entry order and both sortedness flags survive. A
// RowSorted() matrix locates the window by binary search.
func (m *COO[I]) SliceRows(start, end I) (*COO[I], error) {
	if start < 0 || start > end || int(end) > m.numRows {
		return nil, fmt.Errorf("COO.SliceRows(%d,%d): %w", start, end, ErrOutOfRange)
	}
	var keep []int
	if m.rowSorted {
		lo := sort.Search(len(m.rows), func(i int) bool { return m.rows[i] >= start })
		hi := sort.Search(len(m.rows), func(i int) bool { return m.rows[i] >= end })
		keep = make([]int, 0, hi-lo)
		for p := lo; p < hi; p++ {
			keep = append(keep, p)
		}
	} else {
		for p, r := range m.rows {
			if r >= start && r < end {
				keep = append(keep, p)
			}
		}
	}

	return m.gather(keep, int(end-start), m.numCols,
		func(r I) I { return r - start }, nil,
		m.rowSorted, m.colSorted), nil
}

// SliceRowList keeps the entries whose row appears in rows and renumbers
// each kept row to the position of its first occurrence in rows. Entries
// of unlisted rows are dropped silently; listed ids must be in range.
// RowSorted() survives only when rows is strictly ascending.
func (m *COO[I]) SliceRowList(rows []I) (*COO[I], error) {
	rowMap, err := buildIDMap(rows, m.numRows)
	if err != nil {
		return nil, fmt.Errorf("COO.SliceRowList: %w", err)
	}
	var keep []int
	for p, r := range m.rows {
		if _, ok := rowMap[r]; ok {
			keep = append(keep, p)
		}
	}

	return m.gather(keep, len(rows), m.numCols,
		func(r I) I { return rowMap[r] }, nil,
		m.rowSorted && strictlyAscending(rows), m.colSorted), nil
}

// SliceMatrix keeps the entries whose row is in rows and whose column is in
// cols, renumbering both dimensions by first list position.
func (m *COO[I]) SliceMatrix(rows, cols []I) (*COO[I], error) {
	rowMap, err := buildIDMap(rows, m.numRows)
	if err != nil {
		return nil, fmt.Errorf("COO.SliceMatrix: %w", err)
	}
	colMap, err := buildIDMap(cols, m.numCols)
	if err != nil {
		return nil, fmt.Errorf("COO.SliceMatrix: %w", err)
	}
	var keep []int
	for p := range m.rows {
		if _, ok := rowMap[m.rows[p]]; !ok {
			continue
		}
		if _, ok := colMap[m.cols[p]]; ok {
			keep = append(keep, p)
		}
	}

	return m.gather(keep, len(rows), len(cols),
		func(r I) I { return rowMap[r] }, func(c I) I { return colMap[c] },
		m.rowSorted && strictlyAscending(rows), m.colSorted && strictlyAscending(cols)), nil
}

// gather builds a COO from the entries at positions keep, mapping rows and
// (optionally) columns. A nil mapCol keeps columns unchanged.
func (m *COO[I]) gather(keep []int, numRows, numCols int, mapRow, mapCol func(I) I, rowSorted, colSorted bool) *COO[I] {
	rows := make([]I, len(keep))
	cols := make([]I, len(keep))
	for k, p := range keep {
		rows[k] = mapRow(m.rows[p])
		if mapCol != nil {
			cols[k] = mapCol(m.cols[p])
		} else {
			cols[k] = m.cols[p]
		}
	}

	return &COO[I]{
		numRows: numRows, numCols: numCols,
		rows: rows, cols: cols, ids: m.ids.gather(keep),
		rowSorted: rowSorted, colSorted: colSorted,
	}
}

// buildIDMap maps each id of list to its first position. Ids outside
// [0, bound) yield ErrOutOfRange.
func buildIDMap[I Index](list []I, bound int) (map[I]I, error) {
	if err := validateRange(list, bound, "ids"); err != nil {
		return nil, err
	}
	mp := make(map[I]I, len(list))
	for i, v := range list {
		if _, ok := mp[v]; !ok {
			mp[v] = I(i)
		}
	}

	return mp, nil
}

func strictlyAscending[I Index](a []I) bool {
	for i := 1; i < len(a); i++ {
		if a[i] <= a[i-1] {
			return false
		}
	}

	return true
}
