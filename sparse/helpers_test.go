// SPDX-License-Identifier: MIT
package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// triple is one (row, col, id) entry for multiset comparisons.
type triple struct{ r, c, id int64 }

func cooTriples[I sparse.Index](m *sparse.COO[I]) []triple {
	out := make([]triple, m.NNZ())
	for p := range out {
		out[p] = triple{int64(m.Rows()[p]), int64(m.Cols()[p]), int64(m.EntryIDs().At(p))}
	}
	return out
}

func csrTriples[I sparse.Index](m *sparse.CSR[I]) []triple {
	var out []triple
	ip := m.Indptr()
	for r := 0; r < m.NumRows(); r++ {
		for p := int(ip[r]); p < int(ip[r+1]); p++ {
			out = append(out, triple{int64(r), int64(m.Indices()[p]), int64(m.EntryIDs().At(p))})
		}
	}
	if out == nil {
		out = []triple{}
	}
	return out
}

// randomCOO builds an n x n COO with nnz entries drawn from a seeded source.
// With unique=true no (row, col) pair repeats. Rows come out unsorted.
func randomCOO(t testing.TB, n, nnz int, seed int64, unique bool) *sparse.COO[int64] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[[2]int64]bool)
	rows := make([]int64, 0, nnz)
	cols := make([]int64, 0, nnz)
	for len(rows) < nnz {
		r, c := rng.Int63n(int64(n)), rng.Int63n(int64(n))
		if unique {
			if seen[[2]int64{r, c}] {
				continue
			}
			seen[[2]int64{r, c}] = true
		}
		rows = append(rows, r)
		cols = append(cols, c)
	}
	m, err := sparse.NewCOO(n, n, rows, cols, sparse.ImplicitIDs[int64](), false, false, sparse.WithValidation())
	require.NoError(t, err)
	return m
}

// sortedByRow returns a row-sorted copy of m (stable on position), flagged.
func sortedByRow(t testing.TB, m *sparse.COO[int64]) *sparse.COO[int64] {
	t.Helper()
	csr, err := sparse.ToCSR(m)
	require.NoError(t, err)
	out, err := sparse.ToCOO(csr)
	require.NoError(t, err)
	require.True(t, out.RowSorted())
	return out
}

func mustCSR[I sparse.Index](t testing.TB, rows, cols int, indptr, indices []I, ids sparse.EntryIDs[I], sorted bool) *sparse.CSR[I] {
	t.Helper()
	m, err := sparse.NewCSR(rows, cols, indptr, indices, ids, sorted, sparse.WithValidation())
	require.NoError(t, err)
	return m
}
