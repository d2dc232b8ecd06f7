// SPDX-License-Identifier: MIT

package traversal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/traversal"
	"github.com/stretchr/testify/require"
)

// diamond returns the successor lists
//
//	0 -> 1, 2   1 -> 3   2 -> 3   4 -> 0
//
// with edge ids 0..4 in row order.
func diamond(t *testing.T, ids sparse.EntryIDs[int64]) *sparse.CSR[int64] {
	t.Helper()
	csr, err := sparse.NewCSR(5, 5,
		[]int64{0, 2, 3, 4, 4, 5},
		[]int64{1, 2, 3, 3, 0},
		ids, true, sparse.WithValidation())
	require.NoError(t, err)

	return csr
}

func sections(f *traversal.Frontiers[int64]) [][]int64 {
	out := make([][]int64, f.Len())
	for k := range out {
		out[k] = append([]int64{}, f.Section(k)...)
	}

	return out
}

func TestBFSNodes(t *testing.T) {
	g := diamond(t, sparse.ImplicitIDs[int64]())

	f, err := traversal.BFSNodes(g, []int64{0})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{0}, {1, 2}, {3}}, sections(f))
	require.Equal(t, []int{1, 2, 1}, f.Sizes())
	require.Nil(t, f.SectionTags(0))

	f, err = traversal.BFSNodes(g, []int64{4, 0, 4})
	require.NoError(t, err)
	require.Equal(t, []int64{4, 0, 1, 2, 3}, f.IDs)
	require.Equal(t, []int{0, 2, 4, 5}, f.Offsets)

	f, err = traversal.BFSNodes(g, []int64{0}, traversal.WithMaxDepth(2))
	require.NoError(t, err)
	require.Equal(t, [][]int64{{0}, {1, 2}}, sections(f))

	f, err = traversal.BFSNodes(g, nil)
	require.NoError(t, err)
	require.Equal(t, 0, f.Len())
}

func TestBFSNodes_OnVisitDepth(t *testing.T) {
	g := diamond(t, sparse.ImplicitIDs[int64]())
	depth := map[int]int{}
	_, err := traversal.BFSNodes(g, []int64{0}, traversal.WithOnVisit(func(node, d int) error {
		depth[node] = d
		return nil
	}))
	require.NoError(t, err)
	require.Equal(t, map[int]int{0: 0, 1: 1, 2: 1, 3: 2}, depth)
}

func TestBFSEdges(t *testing.T) {
	f, err := traversal.BFSEdges(diamond(t, sparse.ImplicitIDs[int64]()), []int64{0})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{0, 1}, {2}}, sections(f))

	f, err = traversal.BFSEdges(diamond(t, sparse.ExplicitIDs([]int64{10, 11, 12, 13, 14})), []int64{4})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{14}, {10, 11}, {12}}, sections(f))

	f, err = traversal.BFSEdges(diamond(t, sparse.ImplicitIDs[int64]()), []int64{4}, traversal.WithMaxDepth(1))
	require.NoError(t, err)
	require.Equal(t, [][]int64{{4}}, sections(f))
}

func TestTopological(t *testing.T) {
	f, err := traversal.Topological(diamond(t, sparse.ImplicitIDs[int64]()))
	require.NoError(t, err)
	require.Equal(t, [][]int64{{4}, {0}, {1, 2}, {3}}, sections(f))

	f, err = traversal.Topological(diamond(t, sparse.ImplicitIDs[int64]()), traversal.WithMaxDepth(2))
	require.NoError(t, err)
	require.Equal(t, [][]int64{{4}, {0}}, sections(f))
}

func TestTopological_Cycle(t *testing.T) {
	cyc, err := sparse.NewCSR(5, 5,
		[]int64{0, 2, 3, 4, 5, 6},
		[]int64{1, 2, 3, 3, 4, 0},
		sparse.ImplicitIDs[int64](), true)
	require.NoError(t, err)
	_, err = traversal.Topological(cyc)
	require.ErrorIs(t, err, traversal.ErrCycleDetected)

	loop, err := sparse.NewCSR(2, 2, []int64{0, 1, 1}, []int64{0}, sparse.ImplicitIDs[int64](), true)
	require.NoError(t, err)
	_, err = traversal.Topological(loop)
	require.ErrorIs(t, err, traversal.ErrCycleDetected)
}

func TestDFSEdges(t *testing.T) {
	g := diamond(t, sparse.ImplicitIDs[int64]())

	f, err := traversal.DFSEdges(g, []int64{0})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{0, 2, 1}}, sections(f))

	f, err = traversal.DFSEdges(g, []int64{0, 4, 3})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{0, 2, 1}, {4, 0, 2, 1}, {}}, sections(f))
}

func TestDFSLabeledEdges(t *testing.T) {
	g := diamond(t, sparse.ImplicitIDs[int64]())

	f, err := traversal.DFSLabeledEdges(g, []int64{0}, true, true, true)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 2, 2, 0, 1, 3, 1}, f.IDs)
	fw, rv, nt := traversal.Forward, traversal.Reverse, traversal.NonTree
	require.Equal(t, []traversal.Tag{fw, fw, rv, rv, fw, nt, rv}, f.SectionTags(0))

	f, err = traversal.DFSLabeledEdges(g, []int64{0}, false, true, false)
	require.NoError(t, err)
	require.Equal(t, []int64{0, 2, 1, 3}, f.IDs)
	require.Nil(t, f.Tags)

	require.Equal(t, "nontree", traversal.NonTree.String())
}

func TestTraversal_Errors(t *testing.T) {
	g := diamond(t, sparse.ImplicitIDs[int64]())

	_, err := traversal.BFSNodes[int64](nil, []int64{0})
	require.ErrorIs(t, err, traversal.ErrNilMatrix)

	rect, err := sparse.NewCSR(2, 3, []int64{0, 0, 0}, nil, sparse.ImplicitIDs[int64](), true)
	require.NoError(t, err)
	_, err = traversal.Topological(rect)
	require.ErrorIs(t, err, traversal.ErrNotSquare)

	_, err = traversal.DFSEdges(g, []int64{9})
	require.ErrorIs(t, err, traversal.ErrSourceNotFound)
	_, err = traversal.BFSEdges(g, []int64{-1})
	require.ErrorIs(t, err, traversal.ErrSourceNotFound)

	_, err = traversal.BFSNodes(g, []int64{0}, traversal.WithMaxDepth(-1))
	require.ErrorIs(t, err, traversal.ErrOptionViolation)

	stop := errors.New("stop")
	_, err = traversal.DFSEdges(g, []int64{0}, traversal.WithOnVisit(func(node, _ int) error {
		if node == 3 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = traversal.BFSNodes(g, []int64{0}, traversal.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
	_, err = traversal.DFSEdges(g, []int64{0}, traversal.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
	_, err = traversal.Topological(g, traversal.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBFS_Transpose(t *testing.T) {
	// Destination-major edge list 0->1, 1->2: row = dst, col = src.
	coo, err := sparse.NewCOO(3, 3, []int64{1, 2}, []int64{0, 1}, sparse.ImplicitIDs[int64](), true, true)
	require.NoError(t, err)
	in, err := sparse.ToCSR(coo)
	require.NoError(t, err)

	back, err := traversal.BFSNodes(in, []int64{2})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{2}, {1}, {0}}, sections(back))

	out, err := sparse.CSRTranspose(in)
	require.NoError(t, err)
	fwd, err := traversal.BFSNodes(out, []int64{0})
	require.NoError(t, err)
	require.Equal(t, [][]int64{{0}, {1}, {2}}, sections(fwd))
}
