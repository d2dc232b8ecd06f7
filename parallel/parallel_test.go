// SPDX-License-Identifier: MIT
package parallel_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvsparse/parallel"
	"github.com/stretchr/testify/require"
)

func TestChunk_CoversRangeDisjointly(t *testing.T) {
	for _, tc := range []struct{ n, p int }{{0, 4}, {1, 4}, {7, 3}, {8, 4}, {100, 7}, {5, 16}} {
		seen := make([]int, tc.n)
		for w := 0; w < tc.p; w++ {
			lo, hi := parallel.Chunk(tc.n, tc.p, w)
			require.LessOrEqual(t, lo, hi)
			for i := lo; i < hi; i++ {
				seen[i]++
			}
		}
		for i, c := range seen {
			require.Equalf(t, 1, c, "n=%d p=%d index %d", tc.n, tc.p, i)
		}
	}
}

func TestRange_VisitsEveryIndexOnce(t *testing.T) {
	const n = 10_000
	hits := make([]int32, n)
	err := parallel.Range(8, n, 1, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
		return nil
	})
	require.NoError(t, err)
	for i := range hits {
		require.Equal(t, int32(1), hits[i])
	}
}

func TestFor_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := parallel.Range(4, 100, 1, func(lo, hi int) error {
		if lo == 0 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestFor_EmptyIsNoop(t *testing.T) {
	called := false
	require.NoError(t, parallel.For(4, 0, func(lo, hi int) error { called = true; return nil }))
	require.False(t, called)
}

func TestRegion_BarrierOrdersPhases(t *testing.T) {
	const p = 6
	var phase1 int32
	observed := make([]int32, p)
	err := parallel.Region(p, func(w *parallel.Worker) error {
		atomic.AddInt32(&phase1, 1)
		if !w.Barrier() {
			return nil
		}
		observed[w.ID] = atomic.LoadInt32(&phase1)
		return nil
	})
	require.NoError(t, err)
	for _, v := range observed {
		require.Equal(t, int32(p), v)
	}
}

func TestRegion_FailureReleasesBarriers(t *testing.T) {
	boom := errors.New("boom")
	var passed int32
	err := parallel.Region(4, func(w *parallel.Worker) error {
		if w.ID == 2 {
			return boom
		}
		if w.Barrier() {
			atomic.AddInt32(&passed, 1)
		}
		w.Barrier()
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, int32(0), atomic.LoadInt32(&passed))
}

func TestRegion_FailNilReportsSentinel(t *testing.T) {
	err := parallel.Region(2, func(w *parallel.Worker) error {
		if w.Master() {
			w.Fail(nil)
		}
		return nil
	})
	require.ErrorIs(t, err, parallel.ErrRegionFailed)
}
