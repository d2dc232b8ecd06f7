// SPDX-License-Identifier: MIT
package kernel_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/tensor"
	"github.com/stretchr/testify/require"
)

// fixture is a 3 x 4 adjacency (3 destinations, 4 sources):
//
//	row 0: cols 1, 3     ids 0, 1
//	row 1: (empty)
//	row 2: cols 0, 1, 2  ids 2, 3, 4
func fixture(t testing.TB) *sparse.CSR[int64] {
	t.Helper()
	m, err := sparse.NewCSR(3, 4,
		[]int64{0, 2, 2, 5}, []int64{1, 3, 0, 1, 2},
		sparse.ImplicitIDs[int64](), true, sparse.WithValidation())
	require.NoError(t, err)
	return m
}

func f32(t testing.TB, data []float32, shape ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromFloat32s(data, shape...)
	require.NoError(t, err)
	return x
}

func f64(t testing.TB, data []float64, shape ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromFloat64s(data, shape...)
	require.NoError(t, err)
	return x
}

func zeros(t testing.TB, dt tensor.DType, shape ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.New(dt, shape...)
	require.NoError(t, err)
	return x
}

func values32(t testing.TB, x *tensor.Tensor) []float32 {
	t.Helper()
	v, err := x.AsFloat32()
	require.NoError(t, err)
	return v
}

func values64(t testing.TB, x *tensor.Tensor) []float64 {
	t.Helper()
	v, err := x.AsFloat64()
	require.NoError(t, err)
	return v
}

// randomCSR builds a rows x cols CSR with nnz entries, duplicates allowed,
// and explicit shuffled entry ids.
func randomCSR(t testing.TB, rows, cols, nnz int, seed int64) *sparse.CSR[int64] {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	r := make([]int64, nnz)
	c := make([]int64, nnz)
	ids := make([]int64, nnz)
	for i := range r {
		r[i], c[i] = rng.Int63n(int64(rows)), rng.Int63n(int64(cols))
	}
	for i, p := range rng.Perm(nnz) {
		ids[i] = int64(p)
	}
	coo, err := sparse.NewCOO(rows, cols, r, c, sparse.ExplicitIDs(ids), false, false, sparse.WithValidation())
	require.NoError(t, err)
	csr, err := sparse.ToCSR(coo, sparse.WithWorkers(3))
	require.NoError(t, err)
	return csr
}

func randomFloats(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64() + 0.5
	}
	return out
}
