// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Single source of truth for structural checks on CSR and COO.
//   - Shape checks are O(1) and always run; full checks are O(nnz) and
//     run only under WithValidation.
//   - Validators return sentinel errors tagged with the failing check so
//     call sites can wrap once more with the public method name.

package sparse

import "fmt"

// validatorErrorf tags err with the validator name.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func validateIDsShape[I Index](ids EntryIDs[I], nnz int) error {
	if ids.Present() && len(ids.Values()) != nnz {
		return validatorErrorf("EntryIDs", ErrBadShape)
	}

	return nil
}

// validateCSRShape runs the O(1) CSR checks.
func validateCSRShape[I Index](m *CSR[I]) error {
	if m.numRows < 0 || m.numCols < 0 {
		return validatorErrorf("Dims", ErrBadShape)
	}
	if len(m.indptr) != m.numRows+1 {
		return validatorErrorf("Indptr: length", ErrBadShape)
	}
	if m.indptr[0] != 0 || int(m.indptr[m.numRows]) != len(m.indices) {
		return validatorErrorf("Indptr: endpoints", ErrBadShape)
	}

	return validateIDsShape(m.ids, len(m.indices))
}

// validateCSRFull runs the O(nnz) CSR checks. Assumes validateCSRShape passed.
func validateCSRFull[I Index](m *CSR[I]) error {
	for r := 0; r < m.numRows; r++ {
		if m.indptr[r+1] < m.indptr[r] {
			return validatorErrorf(fmt.Sprintf("Indptr[%d]", r+1), ErrNotMonotone)
		}
	}
	if err := validateRange(m.indices, m.numCols, "Indices"); err != nil {
		return err
	}

	return validateIDValues(m.ids)
}

// validateCOOShape runs the O(1) COO checks.
func validateCOOShape[I Index](m *COO[I]) error {
	if m.numRows < 0 || m.numCols < 0 {
		return validatorErrorf("Dims", ErrBadShape)
	}
	if len(m.rows) != len(m.cols) {
		return validatorErrorf("Rows/Cols: length", ErrBadShape)
	}

	return validateIDsShape(m.ids, len(m.rows))
}

// validateCOOFull runs the O(nnz) COO checks. Assumes validateCOOShape passed.
func validateCOOFull[I Index](m *COO[I]) error {
	if err := validateRange(m.rows, m.numRows, "Rows"); err != nil {
		return err
	}
	if err := validateRange(m.cols, m.numCols, "Cols"); err != nil {
		return err
	}

	return validateIDValues(m.ids)
}

// validateRange checks that every value of a lies in [0, bound).
func validateRange[I Index](a []I, bound int, tag string) error {
	for i, v := range a {
		if v < 0 || int(v) >= bound {
			return validatorErrorf(fmt.Sprintf("%s[%d]=%d", tag, i, v), ErrOutOfRange)
		}
	}

	return nil
}

func validateIDValues[I Index](ids EntryIDs[I]) error {
	for i, v := range ids.Values() {
		if v < 0 {
			return validatorErrorf(fmt.Sprintf("EntryIDs[%d]=%d", i, v), ErrOutOfRange)
		}
	}

	return nil
}

// checkIndex reports ErrOutOfRange unless 0 <= v < bound.
func checkIndex[I Index](v I, bound int) error {
	if v < 0 || int(v) >= bound {
		return ErrOutOfRange
	}

	return nil
}

// broadcastLen applies the query broadcast rule: a length-1 side is
// repeated to the other side's length, otherwise lengths must match.
func broadcastLen(a, b int) (int, error) {
	switch {
	case a == b:
		return a, nil
	case a == 1:
		return b, nil
	case b == 1:
		return a, nil
	default:
		return 0, ErrShapeMismatch
	}
}

// at returns a[i], or a[0] when a is a broadcast singleton.
func at[I Index](a []I, i int) I {
	if len(a) == 1 {
		return a[0]
	}

	return a[i]
}
