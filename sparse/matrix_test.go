// SPDX-License-Identifier: MIT
package sparse_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

func TestNewCSR_ShapeChecks(t *testing.T) {
	ids := sparse.ImplicitIDs[int32]()

	_, err := sparse.NewCSR(2, 2, []int32{0, 1}, []int32{0}, ids, false) // indptr too short
	require.ErrorIs(t, err, sparse.ErrBadShape)

	_, err = sparse.NewCSR(1, 2, []int32{1, 1}, []int32{0}, ids, false) // indptr[0] != 0
	require.ErrorIs(t, err, sparse.ErrBadShape)

	_, err = sparse.NewCSR(1, 2, []int32{0, 2}, []int32{0}, ids, false) // end != nnz
	require.ErrorIs(t, err, sparse.ErrBadShape)

	_, err = sparse.NewCSR(1, 2, []int32{0, 1}, []int32{0}, sparse.ExplicitIDs([]int32{0, 1}), false)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	_, err = sparse.NewCSR(-1, 2, []int32{0}, nil, ids, false)
	require.ErrorIs(t, err, sparse.ErrBadShape)
}

func TestNewCSR_FullValidation(t *testing.T) {
	ids := sparse.ImplicitIDs[int64]()

	// column 3 out of range only caught under validation
	m, err := sparse.NewCSR(1, 3, []int64{0, 1}, []int64{3}, ids, false)
	require.NoError(t, err)
	require.Equal(t, 1, m.NNZ())
	_, err = sparse.NewCSR(1, 3, []int64{0, 1}, []int64{3}, ids, false, sparse.WithValidation())
	require.ErrorIs(t, err, sparse.ErrOutOfRange)

	_, err = sparse.NewCSR(3, 3, []int64{0, 2, 1, 2}, []int64{0, 1}, ids, false, sparse.WithValidation())
	require.ErrorIs(t, err, sparse.ErrNotMonotone)

	_, err = sparse.NewCSR(1, 3, []int64{0, 1}, []int64{0}, sparse.ExplicitIDs([]int64{-4}), false, sparse.WithValidation())
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

func TestNewCOO_Checks(t *testing.T) {
	_, err := sparse.NewCOO(2, 2, []int32{0, 1}, []int32{0}, sparse.ImplicitIDs[int32](), false, false)
	require.ErrorIs(t, err, sparse.ErrBadShape)

	_, err = sparse.NewCOO(2, 2, []int32{0, 2}, []int32{0, 1}, sparse.ImplicitIDs[int32](), false, false, sparse.WithValidation())
	require.ErrorIs(t, err, sparse.ErrOutOfRange)

	m, err := sparse.NewCOO(2, 2, []int32{1, 0}, []int32{0, 1}, sparse.ImplicitIDs[int32](), false, false)
	require.NoError(t, err)
	require.False(t, m.IsRowSorted())
	require.True(t, m.IsColSorted())
}

func TestEntryIDs_ImplicitAndExplicit(t *testing.T) {
	var zero sparse.EntryIDs[int64]
	require.False(t, zero.Present())
	require.Equal(t, int64(7), zero.At(7))
	require.Nil(t, zero.Values())
	require.Equal(t, []int64{0, 1, 2}, zero.Materialize(3))

	ex := sparse.ExplicitIDs([]int64{9, 8})
	require.True(t, ex.Present())
	require.Equal(t, int64(8), ex.At(1))
	mat := ex.Materialize(2)
	mat[0] = 100
	require.Equal(t, int64(9), ex.At(0)) // Materialize copies
}

func TestCOO_TransposeSwapsRolesAndFlags(t *testing.T) {
	m, err := sparse.NewCOO(2, 3, []int64{0, 1}, []int64{2, 0}, sparse.ImplicitIDs[int64](), true, false)
	require.NoError(t, err)
	tr := m.Transpose()
	require.Equal(t, 3, tr.NumRows())
	require.Equal(t, 2, tr.NumCols())
	require.Equal(t, []int64{2, 0}, tr.Rows())
	require.False(t, tr.RowSorted())
	require.True(t, tr.ColSorted())
	require.Equal(t, m.Transpose().Transpose().Rows(), m.Rows())
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	require.Panics(t, func() { sparse.WithWorkers(-1) })
	require.Panics(t, func() { sparse.WithHashThreshold(0) })
	require.Panics(t, func() { sparse.WithLogger(nil) })
	require.NotPanics(t, func() { sparse.WithWorkers(0) })
}
