// SPDX-License-Identifier: MIT

// Package parallel provides the fork-join primitives used by the sparse and
// kernel packages: a statically chunked parallel-for and a barrier region for
// staged pipelines.
//
// Scheduling model:
//   - Every call forks a fixed number of workers, hands each a disjoint,
//     contiguous index range computed up front, and joins before returning.
//   - There is no task queue, no cooperative suspension and no cancellation.
//   - Region adds explicit barriers for algorithms that need phase ordering
//     (e.g. the unsorted COO→CSR counting sort).
//
// Complexity quicksheet:
//   - For: O(n/P) per worker plus O(P) fork/join overhead.
//   - Barrier: O(1) amortized per worker per phase.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// DefaultGrain is the smallest number of items handed to one worker by For.
// Below this, spawning goroutines costs more than the loop body.
const DefaultGrain = 64

// DefaultWorkers returns the worker count used when a caller passes workers<=0.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Resolve maps a requested worker count onto an effective one.
func Resolve(workers int) int {
	if workers <= 0 {
		return DefaultWorkers()
	}

	return workers
}

// Chunk returns the half-open range [lo,hi) owned by worker w when n items are
// split across p workers with ceil(n/p) items per worker. Trailing workers may
// receive an empty range.
func Chunk(n, p, w int) (lo, hi int) {
	if p <= 0 || n <= 0 {
		return 0, 0
	}
	size := (n + p - 1) / p
	lo = w * size
	if lo > n {
		lo = n
	}
	hi = lo + size
	if hi > n {
		hi = n
	}

	return lo, hi
}

// For runs fn over [0,n) split into contiguous chunks, one per worker, and
// waits for all of them. The first non-nil error is returned after every
// chunk has finished.
//
// Complexity: O(n/P + P) wall time for a uniform body.
func For(workers, n int, fn func(lo, hi int) error) error {
	return Range(workers, n, DefaultGrain, fn)
}

// Range is For with an explicit grain: no worker receives fewer than grain
// items unless n itself is smaller.
func Range(workers, n, grain int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if grain < 1 {
		grain = 1
	}
	p := Resolve(workers)
	if maxP := (n + grain - 1) / grain; p > maxP {
		p = maxP
	}
	if p == 1 {
		return fn(0, n)
	}

	var g errgroup.Group
	for w := 0; w < p; w++ {
		lo, hi := Chunk(n, p, w)
		if lo >= hi {
			continue
		}
		g.Go(func() error { return fn(lo, hi) })
	}

	return g.Wait()
}

// Slot holds one worker's private value padded to a cache line so that
// neighbouring workers updating their own slots do not false-share.
type Slot[T any] struct {
	V T
	_ cpu.CacheLinePad
}

// NewSlots allocates p zero-valued padded slots.
func NewSlots[T any](p int) []Slot[T] {
	return make([]Slot[T], p)
}
