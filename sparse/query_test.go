// SPDX-License-Identifier: MIT
package sparse_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// fixture: 4x4 with a duplicate (1,2) pair.
//
//	row0: (0,1)#0 (0,3)#1
//	row1: (1,2)#2 (1,2)#3 (1,0)#4
//	row3: (3,3)#5
func queryFixture(t *testing.T) (*sparse.COO[int64], *sparse.CSR[int64]) {
	coo, err := sparse.NewCOO(4, 4,
		[]int64{0, 0, 1, 1, 1, 3}, []int64{1, 3, 2, 2, 0, 3},
		sparse.ImplicitIDs[int64](), true, false, sparse.WithValidation())
	require.NoError(t, err)
	csr, err := sparse.ToCSR(coo)
	require.NoError(t, err)
	return coo, csr
}

func TestGet_PointLookups(t *testing.T) {
	coo, csr := queryFixture(t)
	sortedCSR, err := sparse.ToCSR(coo)
	require.NoError(t, err)
	require.NoError(t, sparse.SortRows(sortedCSR))

	for _, tc := range []struct {
		r, c int64
		want int64
	}{{0, 1, 0}, {0, 3, 1}, {1, 0, 4}, {3, 3, 5}, {2, 2, -1}, {0, 0, -1}} {
		for name, get := range map[string]func(r, c int64) (int64, error){
			"coo": coo.Get, "csr": csr.Get, "csr-sorted": sortedCSR.Get,
		} {
			got, err := get(tc.r, tc.c)
			require.NoError(t, err)
			require.Equalf(t, tc.want, got, "%s (%d,%d)", name, tc.r, tc.c)
		}
	}
	// duplicates: any of the stored ids
	got, err := coo.Get(1, 2)
	require.NoError(t, err)
	require.Contains(t, []int64{2, 3}, got)

	_, err = csr.Get(4, 0)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = coo.Get(0, -1)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = coo.IsNonZero(0, 4)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

// TestLookupConsistency: Get != -1 iff IsNonZero, on every cell, for COO
// (sorted and unsorted) and CSR.
func TestLookupConsistency(t *testing.T) {
	base := randomCOO(t, 30, 200, 17, false)
	sorted := sortedByRow(t, base)
	csr, err := sparse.ToCSR(base)
	require.NoError(t, err)

	type matrix interface {
		Get(r, c int64) (int64, error)
		IsNonZero(r, c int64) (bool, error)
	}
	for _, m := range []matrix{base, sorted, csr} {
		for r := int64(0); r < 30; r++ {
			for c := int64(0); c < 30; c++ {
				id, err := m.Get(r, c)
				require.NoError(t, err)
				nz, err := m.IsNonZero(r, c)
				require.NoError(t, err)
				require.Equal(t, id != -1, nz)
			}
		}
	}
}

func TestRowQueries(t *testing.T) {
	coo, csr := queryFixture(t)
	unsorted, err := sparse.NewCOO(4, 4, []int64{3, 1, 0, 1, 1, 0}, []int64{3, 2, 1, 2, 0, 3}, sparse.ImplicitIDs[int64](), false, false)
	require.NoError(t, err)

	for _, deg := range []func(int64) (int, error){coo.RowNNZ, csr.RowNNZ, unsorted.RowNNZ} {
		for r, want := range []int{2, 3, 0, 1} {
			got, err := deg(int64(r))
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
		_, err := deg(-1)
		require.ErrorIs(t, err, sparse.ErrOutOfRange)
	}

	cols, ids, err := csr.Row(1)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{2, 2, 0}, cols)
	require.ElementsMatch(t, []int64{2, 3, 4}, ids)

	cols, ids, err = coo.Row(2)
	require.NoError(t, err)
	require.Empty(t, cols)
	require.Empty(t, ids)

	cols, _, err = unsorted.Row(0)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, cols)
}

func TestBatch_BroadcastRules(t *testing.T) {
	coo, csr := queryFixture(t)

	got, err := coo.IsNonZeroBatch([]int64{1}, []int64{0, 1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true, false}, got)

	got, err = csr.IsNonZeroBatch([]int64{0, 1, 3}, []int64{3})
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, got)

	ids, err := csr.GetBatch([]int64{0, 3, 2}, []int64{1, 3, 2})
	require.NoError(t, err)
	require.Equal(t, []int64{0, 5, -1}, ids)

	degs, err := coo.RowNNZBatch([]int64{3, 1, 1})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 3}, degs)

	_, err = coo.GetBatch([]int64{0, 1}, []int64{0, 1, 2})
	require.ErrorIs(t, err, sparse.ErrShapeMismatch)
	_, err = csr.IsNonZeroBatch([]int64{0, 9}, []int64{0})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = csr.RowNNZBatch([]int64{4})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

func TestGetEntriesAndIndices_Duplicates(t *testing.T) {
	coo, csr := queryFixture(t)
	for _, threshold := range []int{1, 1000} {
		mr, mc, ids, err := coo.GetEntriesAndIndices([]int64{1}, []int64{2, 0, 3}, sparse.WithHashThreshold(threshold))
		require.NoError(t, err)
		require.ElementsMatch(t, []int64{1, 1, 1}, mr)
		require.ElementsMatch(t, []int64{2, 2, 0}, mc)
		require.ElementsMatch(t, []int64{2, 3, 4}, ids)

		mr, _, ids, err = csr.GetEntriesAndIndices([]int64{0, 3}, []int64{3, 3}, sparse.WithHashThreshold(threshold))
		require.NoError(t, err)
		require.ElementsMatch(t, []int64{0, 3}, mr)
		require.ElementsMatch(t, []int64{1, 5}, ids)
	}
	_, _, _, err := coo.GetEntriesAndIndices([]int64{0, 1}, []int64{0, 1, 2})
	require.ErrorIs(t, err, sparse.ErrShapeMismatch)
	_, _, _, err = coo.GetEntriesAndIndices([]int64{7}, []int64{0})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

// TestGetEntriesAndIndices_ThresholdCrossing: the scan and multimap paths
// agree as multisets for query counts on both sides of the default 200.
func TestGetEntriesAndIndices_ThresholdCrossing(t *testing.T) {
	base := randomCOO(t, 40, 600, 3, false)
	sorted := sortedByRow(t, base)
	csr, err := sparse.ToCSR(base)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(11))

	type result struct{ r, c, id int64 }
	collect := func(mr, mc, ids []int64) []result {
		out := make([]result, len(ids))
		for i := range ids {
			out[i] = result{mr[i], mc[i], ids[i]}
		}
		return out
	}

	for _, q := range []int{1, 50, 199, 200, 201, 800} {
		rows := make([]int64, q)
		cols := make([]int64, q)
		for i := range rows {
			rows[i], cols[i] = rng.Int63n(40), rng.Int63n(40)
		}
		t.Run(fmt.Sprintf("q=%d", q), func(t *testing.T) {
			var ref []result
			for k, get := range []func(r, c []int64, opts ...sparse.Option) ([]int64, []int64, []int64, error){
				base.GetEntriesAndIndices, sorted.GetEntriesAndIndices, csr.GetEntriesAndIndices,
			} {
				for _, th := range []int{1, sparse.DefaultHashThreshold, q + 1} {
					mr, mc, ids, err := get(rows, cols, sparse.WithHashThreshold(th))
					require.NoError(t, err)
					got := collect(mr, mc, ids)
					if ref == nil {
						ref = got
						continue
					}
					require.ElementsMatchf(t, ref, got, "impl=%d threshold=%d", k, th)
				}
			}
		})
	}
}

func TestHasDuplicate(t *testing.T) {
	coo, csr := queryFixture(t)
	require.True(t, coo.HasDuplicate())
	require.True(t, csr.HasDuplicate())
	require.NoError(t, sparse.SortRows(csr))
	require.True(t, csr.HasDuplicate())

	uniq := randomCOO(t, 20, 100, 8, true)
	require.False(t, uniq.HasDuplicate())
	uc, err := sparse.ToCSR(uniq)
	require.NoError(t, err)
	require.False(t, uc.HasDuplicate())
}
