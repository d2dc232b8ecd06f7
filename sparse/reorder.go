// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/parallel"
)

// Reorder relabels every entry: row r becomes newRowIDs[r] and column c
// becomes newColIDs[c]. Both tables must cover the full dimension
// (ErrShapeMismatch otherwise) and hold in-range values (ErrOutOfRange).
// Ids follow their entries; both sortedness flags are cleared.
// Embarrassingly parallel over nnz.
func (m *COO[I]) Reorder(newRowIDs, newColIDs []I, opts ...Option) (*COO[I], error) {
	if err := checkRemap(newRowIDs, newColIDs, m.numRows, m.numCols); err != nil {
		return nil, fmt.Errorf("COO.Reorder: %w", err)
	}
	o := gatherOptions(opts...)
	nnz := m.NNZ()
	rows := make([]I, nnz)
	cols := make([]I, nnz)
	_ = parallel.For(o.workers, nnz, func(lo, hi int) error {
		for p := lo; p < hi; p++ {
			rows[p] = newRowIDs[m.rows[p]]
			cols[p] = newColIDs[m.cols[p]]
		}

		return nil
	})
	ids := ImplicitIDs[I]()
	if m.ids.Present() {
		ids = ExplicitIDs(m.ids.Materialize(nnz))
	}

	return &COO[I]{
		numRows: m.numRows, numCols: m.numCols,
		rows: rows, cols: cols, ids: ids,
	}, nil
}

// Reorder relabels rows and columns of a CSR through the coordinate form.
// The result is an unsorted CSR with ids following their entries.
func (m *CSR[I]) Reorder(newRowIDs, newColIDs []I, opts ...Option) (*CSR[I], error) {
	if err := checkRemap(newRowIDs, newColIDs, m.numRows, m.numCols); err != nil {
		return nil, fmt.Errorf("CSR.Reorder: %w", err)
	}
	coo, err := ToCOO(m, opts...)
	if err != nil {
		return nil, fmt.Errorf("CSR.Reorder: %w", err)
	}
	coo, err = coo.Reorder(newRowIDs, newColIDs, opts...)
	if err != nil {
		return nil, fmt.Errorf("CSR.Reorder: %w", err)
	}
	out, err := ToCSR(coo, opts...)
	if err != nil {
		return nil, fmt.Errorf("CSR.Reorder: %w", err)
	}

	return out, nil
}

func checkRemap[I Index](newRowIDs, newColIDs []I, numRows, numCols int) error {
	if len(newRowIDs) != numRows || len(newColIDs) != numCols {
		return fmt.Errorf("len(newRowIDs)=%d len(newColIDs)=%d: %w", len(newRowIDs), len(newColIDs), ErrShapeMismatch)
	}
	if err := validateRange(newRowIDs, numRows, "newRowIDs"); err != nil {
		return err
	}

	return validateRange(newColIDs, numCols, "newColIDs")
}
