// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
)

// CSR is a row-compressed sparse matrix over caller-owned buffers.
//
// Layout:
//   - indptr has NumRows()+1 entries, starts at 0, ends at NNZ(), never
//     decreases; row r spans positions [indptr[r], indptr[r+1]).
//   - indices holds one column per position, each in [0, NumCols()).
//   - ids is the optional entry-id payload (see EntryIDs).
//   - sorted asserts that every row's column slice is non-decreasing. It is
//     advisory: fast paths trust it and never re-check it.
type CSR[I Index] struct {
	numRows, numCols int
	indptr           []I
	indices          []I
	ids              EntryIDs[I]
	sorted           bool
}

// NewCSR binds the given buffers (no copy) into a CSR.
//
// Always checked, O(1): non-negative dims, len(indptr)==numRows+1,
// indptr[0]==0, indptr[numRows]==len(indices), explicit ids of length nnz.
// With WithValidation, additionally O(nnz): indptr monotonicity, column
// range, non-negative ids. The sorted flag is taken on trust.
func NewCSR[I Index](numRows, numCols int, indptr, indices []I, ids EntryIDs[I], sorted bool, opts ...Option) (*CSR[I], error) {
	m := &CSR[I]{
		numRows: numRows, numCols: numCols,
		indptr: indptr, indices: indices, ids: ids, sorted: sorted,
	}
	if err := validateCSRShape(m); err != nil {
		return nil, fmt.Errorf("NewCSR(%d,%d): %w", numRows, numCols, err)
	}
	if gatherOptions(opts...).validate {
		if err := validateCSRFull(m); err != nil {
			return nil, fmt.Errorf("NewCSR(%d,%d): %w", numRows, numCols, err)
		}
	}

	return m, nil
}

// NumRows returns the number of rows.
func (m *CSR[I]) NumRows() int { return m.numRows }

// NumCols returns the number of columns.
func (m *CSR[I]) NumCols() int { return m.numCols }

// NNZ returns the number of structural entries.
func (m *CSR[I]) NNZ() int { return len(m.indices) }

// Indptr returns the row offset buffer (shared, not copied).
func (m *CSR[I]) Indptr() []I { return m.indptr }

// Indices returns the column buffer (shared, not copied).
func (m *CSR[I]) Indices() []I { return m.indices }

// EntryIDs returns the entry-id payload.
func (m *CSR[I]) EntryIDs() EntryIDs[I] { return m.ids }

// Sorted returns the advisory column-sortedness flag.
func (m *CSR[I]) Sorted() bool { return m.sorted }

// IsSorted computes whether every row's columns are non-decreasing,
// ignoring the advisory flag. O(nnz).
func (m *CSR[I]) IsSorted() bool {
	for r := 0; r < m.numRows; r++ {
		lo, hi := int(m.indptr[r]), int(m.indptr[r+1])
		for p := lo + 1; p < hi; p++ {
			if m.indices[p] < m.indices[p-1] {
				return false
			}
		}
	}

	return true
}

// span returns the position range of row r. Caller checks r.
func (m *CSR[I]) span(r int) (lo, hi int) {
	return int(m.indptr[r]), int(m.indptr[r+1])
}

// String renders dims, nnz and the flag.
func (m *CSR[I]) String() string {
	return fmt.Sprintf("CSR(%dx%d, nnz=%d, sorted=%t, ids=%t)", m.numRows, m.numCols, m.NNZ(), m.sorted, m.ids.Present())
}
