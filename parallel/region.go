// SPDX-License-Identifier: MIT

package parallel

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrRegionFailed is returned by Region when a worker called Fail(nil).
var ErrRegionFailed = errors.New("parallel: region failed")

// Worker is the per-goroutine handle inside a Region.
type Worker struct {
	ID    int // 0..Count-1
	Count int // number of workers in the region
	r     *region
}

// region is the shared state of one Region call: a reusable generation
// barrier plus the failure latch.
type region struct {
	mu      sync.Mutex
	cond    *sync.Cond
	active  int    // workers still running fn
	arrived int    // workers waiting in the current generation
	gen     uint64 // barrier generation

	failed atomic.Bool
	errMu  sync.Mutex
	err    error
}

// Region forks exactly workers goroutines (workers<=0 means DefaultWorkers)
// and runs fn on each with its own Worker handle. It returns after all of
// them have returned, with the first error reported via a return value or
// Worker.Fail.
//
// Barrier semantics:
//   - Worker.Barrier blocks until every still-running worker reaches it.
//   - A worker that returns early leaves the region; it no longer counts
//     towards later barriers, so a failing worker cannot deadlock the rest.
//   - Barrier reports false once any worker has failed, letting the others
//     bail out at the next synchronisation point.
func Region(workers int, fn func(w *Worker) error) error {
	p := Resolve(workers)
	r := &region{active: p}
	r.cond = sync.NewCond(&r.mu)

	var g errgroup.Group
	for id := 0; id < p; id++ {
		w := &Worker{ID: id, Count: p, r: r}
		g.Go(func() error {
			defer r.leave()
			if err := fn(w); err != nil {
				w.Fail(err)
			}

			return nil
		})
	}
	_ = g.Wait()

	if r.failed.Load() {
		r.errMu.Lock()
		defer r.errMu.Unlock()
		if r.err == nil {
			return ErrRegionFailed
		}

		return r.err
	}

	return nil
}

// Master reports whether w is the designated single-threaded worker.
func (w *Worker) Master() bool { return w.ID == 0 }

// Chunk returns this worker's share of n items.
func (w *Worker) Chunk(n int) (lo, hi int) { return Chunk(n, w.Count, w.ID) }

// Barrier waits for all running workers and reports whether the region is
// still healthy.
func (w *Worker) Barrier() bool {
	r := w.r
	r.mu.Lock()
	gen := r.gen
	r.arrived++
	if r.arrived >= r.active {
		r.release()
	} else {
		for gen == r.gen {
			r.cond.Wait()
		}
	}
	r.mu.Unlock()

	return !r.failed.Load()
}

// Fail marks the region as failed. The first recorded error wins.
func (w *Worker) Fail(err error) {
	r := w.r
	r.errMu.Lock()
	if r.err == nil && err != nil {
		r.err = err
	}
	r.errMu.Unlock()
	r.failed.Store(true)
}

// Failed reports whether any worker has failed so far.
func (w *Worker) Failed() bool { return w.r.failed.Load() }

// leave removes a finished worker from barrier accounting.
func (r *region) leave() {
	r.mu.Lock()
	r.active--
	if r.arrived > 0 && r.arrived >= r.active {
		r.release()
	}
	r.mu.Unlock()
}

// release opens the current barrier generation. Caller holds r.mu.
func (r *region) release() {
	r.arrived = 0
	r.gen++
	r.cond.Broadcast()
}
