// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
)

// COO is a coordinate-list sparse matrix over caller-owned buffers.
//
// rows and cols are parallel arrays in arbitrary order. rowSorted and
// colSorted independently assert that the respective array is
// non-decreasing; both are advisory.
type COO[I Index] struct {
	numRows, numCols     int
	rows, cols           []I
	ids                  EntryIDs[I]
	rowSorted, colSorted bool
}

// NewCOO binds the given buffers (no copy) into a COO.
//
// Always checked, O(1): non-negative dims, len(rows)==len(cols), explicit
// ids of length nnz. With WithValidation, additionally O(nnz): row and
// column ranges, non-negative ids. Flags are taken on trust.
func NewCOO[I Index](numRows, numCols int, rows, cols []I, ids EntryIDs[I], rowSorted, colSorted bool, opts ...Option) (*COO[I], error) {
	m := &COO[I]{
		numRows: numRows, numCols: numCols,
		rows: rows, cols: cols, ids: ids,
		rowSorted: rowSorted, colSorted: colSorted,
	}
	if err := validateCOOShape(m); err != nil {
		return nil, fmt.Errorf("NewCOO(%d,%d): %w", numRows, numCols, err)
	}
	if gatherOptions(opts...).validate {
		if err := validateCOOFull(m); err != nil {
			return nil, fmt.Errorf("NewCOO(%d,%d): %w", numRows, numCols, err)
		}
	}

	return m, nil
}

// NumRows returns the number of rows.
func (m *COO[I]) NumRows() int { return m.numRows }

// NumCols returns the number of columns.
func (m *COO[I]) NumCols() int { return m.numCols }

// NNZ returns the number of structural entries.
func (m *COO[I]) NNZ() int { return len(m.rows) }

// Rows returns the row-id buffer (shared).
func (m *COO[I]) Rows() []I { return m.rows }

// Cols returns the column-id buffer (shared).
func (m *COO[I]) Cols() []I { return m.cols }

// EntryIDs returns the entry-id payload.
func (m *COO[I]) EntryIDs() EntryIDs[I] { return m.ids }

// RowSorted returns the advisory row-order flag.
func (m *COO[I]) RowSorted() bool { return m.rowSorted }

// ColSorted returns the advisory column-order flag.
func (m *COO[I]) ColSorted() bool { return m.colSorted }

// IsRowSorted computes whether Rows() is non-decreasing. O(nnz).
func (m *COO[I]) IsRowSorted() bool { return nonDecreasing(m.rows) }

// IsColSorted computes whether Cols() is non-decreasing. O(nnz).
func (m *COO[I]) IsColSorted() bool { return nonDecreasing(m.cols) }

// Transpose swaps the row and column roles. Buffers are shared and the
// sortedness flags swap with them. O(1).
func (m *COO[I]) Transpose() *COO[I] {
	return &COO[I]{
		numRows: m.numCols, numCols: m.numRows,
		rows: m.cols, cols: m.rows, ids: m.ids,
		rowSorted: m.colSorted, colSorted: m.rowSorted,
	}
}

// String renders dims, nnz and flags.
func (m *COO[I]) String() string {
	return fmt.Sprintf("COO(%dx%d, nnz=%d, rowSorted=%t, colSorted=%t, ids=%t)",
		m.numRows, m.numCols, m.NNZ(), m.rowSorted, m.colSorted, m.ids.Present())
}

func nonDecreasing[I Index](a []I) bool {
	for i := 1; i < len(a); i++ {
		if a[i] < a[i-1] {
			return false
		}
	}

	return true
}
