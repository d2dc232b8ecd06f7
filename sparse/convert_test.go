// SPDX-License-Identifier: MIT
package sparse_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// TestToCSR_ConcreteUnsorted: rows [0,0,2], cols [1,2,0] on a 3x3 matrix.
func TestToCSR_ConcreteUnsorted(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			coo, err := sparse.NewCOO(3, 3, []int32{0, 0, 2}, []int32{1, 2, 0}, sparse.ImplicitIDs[int32](), false, false)
			require.NoError(t, err)

			csr, err := sparse.ToCSR(coo, sparse.WithWorkers(workers))
			require.NoError(t, err)
			require.Equal(t, []int32{0, 2, 2, 3}, csr.Indptr())
			require.ElementsMatch(t, []int32{1, 2}, csr.Indices()[0:2])
			require.Equal(t, int32(0), csr.Indices()[2])
			require.True(t, csr.EntryIDs().Present())
			require.ElementsMatch(t, []int32{0, 1, 2}, csr.EntryIDs().Values())
			require.Equal(t, int32(2), csr.EntryIDs().At(2))
			// each id still points at its original (row, col)
			for p := 0; p < 2; p++ {
				id := csr.EntryIDs().At(p)
				require.Equal(t, coo.Cols()[id], csr.Indices()[p])
				require.Equal(t, int32(0), coo.Rows()[id])
			}
			require.False(t, csr.Sorted())
		})
	}
}

func TestToCSR_SortedPathFillsTrailingRows(t *testing.T) {
	coo, err := sparse.NewCOO(6, 4, []int64{1, 1, 3}, []int64{0, 2, 3}, sparse.ImplicitIDs[int64](), true, true)
	require.NoError(t, err)
	csr, err := sparse.ToCSR(coo, sparse.WithWorkers(3))
	require.NoError(t, err)
	require.Equal(t, []int64{0, 0, 2, 2, 3, 3, 3}, csr.Indptr())
	require.Equal(t, []int64{0, 2, 3}, csr.Indices())
	require.Equal(t, []int64{0, 1, 2}, csr.EntryIDs().Values())
	require.True(t, csr.Sorted())
}

func TestToCSR_EmptyAndOutOfRange(t *testing.T) {
	for _, sorted := range []bool{true, false} {
		empty, err := sparse.NewCOO(3, 3, []int64{}, []int64{}, sparse.ImplicitIDs[int64](), sorted, sorted)
		require.NoError(t, err)
		csr, err := sparse.ToCSR(empty)
		require.NoError(t, err)
		require.Equal(t, []int64{0, 0, 0, 0}, csr.Indptr())
		require.Zero(t, csr.NNZ())

		bad, err := sparse.NewCOO(2, 2, []int64{0, 5}, []int64{0, 1}, sparse.ImplicitIDs[int64](), sorted, false)
		require.NoError(t, err) // no full validation requested
		_, err = sparse.ToCSR(bad, sparse.WithWorkers(2))
		require.ErrorIs(t, err, sparse.ErrOutOfRange)
	}
	_, err := sparse.ToCSR[int64](nil)
	require.ErrorIs(t, err, sparse.ErrNilMatrix)
}

// TestRoundTrip: ToCSR then ToCOO preserves the (row, col, id) multiset on
// both conversion paths and any worker count.
func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct{ n, nnz int }{{1, 1}, {10, 30}, {50, 400}, {300, 5000}} {
		base := randomCOO(t, tc.n, tc.nnz, int64(tc.n*7+tc.nnz), true)
		want := cooTriples(base)
		for _, workers := range []int{1, 4, 16} {
			for _, src := range []*sparse.COO[int64]{base, sortedByRow(t, base)} {
				name := fmt.Sprintf("n=%d/nnz=%d/w=%d/rowSorted=%t", tc.n, tc.nnz, workers, src.RowSorted())
				t.Run(name, func(t *testing.T) {
					csr, err := sparse.ToCSR(src, sparse.WithWorkers(workers), sparse.WithContext(context.Background()))
					require.NoError(t, err)
					require.ElementsMatch(t, want, csrTriples(csr))

					back, err := sparse.ToCOO(csr)
					require.NoError(t, err)
					require.ElementsMatch(t, want, cooTriples(back))
					require.True(t, back.IsRowSorted())
				})
			}
		}
	}
}

func TestToCSR_UnsortedKeepsInputOrderWithinRow(t *testing.T) {
	// columns globally ascending, rows shuffled: result must be sorted.
	coo, err := sparse.NewCOO(3, 6, []int64{2, 0, 2, 1, 0, 2}, []int64{0, 1, 2, 3, 4, 5}, sparse.ImplicitIDs[int64](), false, true)
	require.NoError(t, err)
	csr, err := sparse.ToCSR(coo, sparse.WithWorkers(4))
	require.NoError(t, err)
	require.True(t, csr.Sorted())
	require.True(t, csr.IsSorted())
	require.Equal(t, []int64{1, 4, 3, 0, 2, 5}, csr.Indices())
}

func TestToCOO_ColSortedFlag(t *testing.T) {
	ok := mustCSR(t, 3, 5, []int32{0, 2, 2, 4}, []int32{0, 1, 1, 4}, sparse.ImplicitIDs[int32](), true)
	coo, err := sparse.ToCOO(ok)
	require.NoError(t, err)
	require.True(t, coo.ColSorted())
	require.Equal(t, []int32{0, 0, 2, 2}, coo.Rows())
	require.False(t, coo.EntryIDs().Present())

	stepBack := mustCSR(t, 2, 5, []int32{0, 2, 3}, []int32{2, 3, 0}, sparse.ImplicitIDs[int32](), true)
	coo, err = sparse.ToCOO(stepBack)
	require.NoError(t, err)
	require.False(t, coo.ColSorted())
}

func TestCSRTranspose(t *testing.T) {
	// 2x3: row0 -> {1,2}, row1 -> {0,2}
	m := mustCSR(t, 2, 3, []int64{0, 2, 4}, []int64{2, 1, 0, 2}, sparse.ExplicitIDs([]int64{10, 11, 12, 13}), false)
	tr, err := sparse.CSRTranspose(m, sparse.WithWorkers(2))
	require.NoError(t, err)
	require.Equal(t, 3, tr.NumRows())
	require.Equal(t, 2, tr.NumCols())
	require.Equal(t, []int64{0, 1, 2, 4}, tr.Indptr())
	require.Equal(t, []int64{1, 0, 0, 1}, tr.Indices())
	require.Equal(t, []int64{12, 11, 10, 13}, tr.EntryIDs().Values())
	require.True(t, tr.Sorted())
}
