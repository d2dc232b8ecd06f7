// SPDX-License-Identifier: MIT
package sparse_test

import (
	"slices"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// TestSortRows_Concrete: row [5,2,2,9] with ids [10,11,12,13].
func TestSortRows_Concrete(t *testing.T) {
	m := mustCSR(t, 1, 10, []int64{0, 4}, []int64{5, 2, 2, 9}, sparse.ExplicitIDs([]int64{10, 11, 12, 13}), false)
	require.NoError(t, sparse.SortRows(m))
	require.Equal(t, []int64{2, 2, 5, 9}, m.Indices())
	ids := m.EntryIDs().Values()
	require.ElementsMatch(t, []int64{11, 12}, ids[:2])
	require.Equal(t, []int64{10, 13}, ids[2:])
	require.True(t, m.Sorted())
	require.True(t, m.IsSorted())
}

func TestSortRows_MaterializesImplicitIDs(t *testing.T) {
	m := mustCSR(t, 2, 4, []int32{0, 3, 5}, []int32{3, 0, 1, 2, 0}, sparse.ImplicitIDs[int32](), false)
	require.NoError(t, sparse.SortRows(m, sparse.WithWorkers(2)))
	require.True(t, m.EntryIDs().Present())
	require.Equal(t, []int32{0, 1, 3, 0, 2}, m.Indices())
	require.Equal(t, []int32{1, 2, 0, 4, 3}, m.EntryIDs().Values())
}

func TestSortRows_Idempotent(t *testing.T) {
	coo := randomCOO(t, 200, 3000, 99, false)
	m, err := sparse.ToCSR(coo, sparse.WithWorkers(4))
	require.NoError(t, err)
	require.NoError(t, sparse.SortRows(m, sparse.WithWorkers(4)))
	require.True(t, m.IsSorted())
	once := slices.Clone(m.Indices())
	onceIDs := slices.Clone(m.EntryIDs().Values())

	require.NoError(t, sparse.SortRows(m, sparse.WithWorkers(3)))
	require.Equal(t, once, m.Indices())
	require.Equal(t, onceIDs, m.EntryIDs().Values()) // stable sort leaves sorted rows untouched
	require.ElementsMatch(t, cooTriples(coo), csrTriples(m))
}

func TestSortRowsByTag_Partition(t *testing.T) {
	const numTags = 3
	coo := randomCOO(t, 60, 700, 5, false)
	m, err := sparse.ToCSR(coo)
	require.NoError(t, err)
	tags := make([]int32, m.NumCols())
	for c := range tags {
		tags[c] = int32((c * 7) % numTags)
	}

	out, bounds, err := sparse.SortRowsByTag(m, tags, numTags, sparse.WithWorkers(4))
	require.NoError(t, err)
	require.False(t, out.Sorted())
	require.Equal(t, m.Indptr(), out.Indptr())
	require.Equal(t, numTags, bounds.NumTags())
	require.ElementsMatch(t, csrTriples(m), csrTriples(out))

	require.Len(t, bounds.Data(), out.NumRows()*(numTags+1))
	require.Equal(t, out.NumRows(), bounds.NumRows())

	ip := out.Indptr()
	for r := 0; r < out.NumRows(); r++ {
		require.Equal(t, bounds.Row(r), bounds.Data()[r*(numTags+1):(r+1)*(numTags+1)])
		deg, err := out.RowNNZ(int64(r))
		require.NoError(t, err)
		require.Equal(t, int64(deg), bounds.At(r, numTags)-bounds.At(r, 0))
		require.Len(t, bounds.Row(r), numTags+1)
		for tag := 0; tag < numTags; tag++ {
			for p := bounds.At(r, tag); p < bounds.At(r, tag+1); p++ {
				col := out.Indices()[ip[r]+p]
				require.Equal(t, int32(tag), tags[col])
			}
		}
	}
}

func TestSortRowsByTag_StableWithinTag(t *testing.T) {
	// cols [3,0,2,1] with tags col%2 -> tag1: 3,1 ; tag0: 0,2
	m := mustCSR(t, 1, 4, []int64{0, 4}, []int64{3, 0, 2, 1}, sparse.ImplicitIDs[int64](), true)
	out, bounds, err := sparse.SortRowsByTag(m, []int64{0, 1, 0, 1}, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 2, 3, 1}, out.Indices())
	require.Equal(t, []int64{1, 2, 0, 3}, out.EntryIDs().Values())
	require.Equal(t, []int64{0, 2, 4}, bounds.Row(0))
	require.Equal(t, []int64{0, 2, 4}, bounds.Data())
	require.Equal(t, []int64{3, 0, 2, 1}, m.Indices()) // input untouched
}

func TestSortRowsByTag_Errors(t *testing.T) {
	m := mustCSR(t, 1, 3, []int32{0, 2}, []int32{0, 2}, sparse.ImplicitIDs[int32](), true)
	_, _, err := sparse.SortRowsByTag(m, []int32{0, 0, 2}, 2)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, _, err = sparse.SortRowsByTag(m, []int32{0, 0, -1}, 2)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, _, err = sparse.SortRowsByTag(m, []int32{0, 0}, 2)
	require.ErrorIs(t, err, sparse.ErrShapeMismatch)
	_, _, err = sparse.SortRowsByTag(m, []int32{0, 0, 0}, 0)
	require.ErrorIs(t, err, sparse.ErrBadShape)
}
