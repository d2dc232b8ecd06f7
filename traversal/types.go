// SPDX-License-Identifier: MIT

package traversal

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/lvsparse/sparse"
)

// Sentinel errors.
var (
	// ErrNilMatrix is returned when the adjacency is nil.
	ErrNilMatrix = errors.New("traversal: matrix is nil")

	// ErrNotSquare is returned when NumRows != NumCols.
	ErrNotSquare = errors.New("traversal: matrix is not square")

	// ErrSourceNotFound is returned when a source lies outside [0, n).
	ErrSourceNotFound = errors.New("traversal: source node not found")

	// ErrCycleDetected is returned by Topological when nodes remain after
	// every zero in-degree layer was removed.
	ErrCycleDetected = errors.New("traversal: cycle detected")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("traversal: invalid option supplied")
)

// Tag classifies an edge reported by DFSLabeledEdges.
type Tag int8

const (
	// Forward edges reach an unvisited node: the DFS tree.
	Forward Tag = iota
	// Reverse reports a tree edge again once its subtree is finished.
	Reverse
	// NonTree edges reach an already visited node.
	NonTree
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case NonTree:
		return "nontree"
	default:
		return fmt.Sprintf("tag(%d)", int8(t))
	}
}

// Frontiers is a sectioned id list. Section k is
// IDs[Offsets[k]:Offsets[k+1]]; Tags, when present, parallels IDs.
type Frontiers[I sparse.Index] struct {
	IDs     []I
	Tags    []Tag
	Offsets []int
}

func newFrontiers[I sparse.Index](hint int) *Frontiers[I] {
	return &Frontiers[I]{IDs: make([]I, 0, hint), Offsets: []int{0}}
}

// Len returns the number of sections.
func (f *Frontiers[I]) Len() int { return len(f.Offsets) - 1 }

// Section returns the ids of section k. It shares storage with IDs.
func (f *Frontiers[I]) Section(k int) []I {
	return f.IDs[f.Offsets[k]:f.Offsets[k+1]]
}

// SectionTags returns the tags of section k, or nil without tags.
func (f *Frontiers[I]) SectionTags(k int) []Tag {
	if f.Tags == nil {
		return nil
	}

	return f.Tags[f.Offsets[k]:f.Offsets[k+1]]
}

// Sizes returns the length of every section.
func (f *Frontiers[I]) Sizes() []int {
	out := make([]int, f.Len())
	for k := range out {
		out[k] = f.Offsets[k+1] - f.Offsets[k]
	}

	return out
}

// cut closes the current section. Empty sections are not recorded.
func (f *Frontiers[I]) cut() bool {
	if len(f.IDs) == f.Offsets[len(f.Offsets)-1] {
		return false
	}
	f.Offsets = append(f.Offsets, len(f.IDs))

	return true
}

// Option configures a traversal via functional arguments. An invalid
// value is recorded and surfaced as ErrOptionViolation when the
// traversal starts.
type Option func(*Options)

// Options holds the traversal parameters.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth, if > 0, caps BFS and Topological at that many sections.
	MaxDepth int

	// OnVisit is called for every node as it enters a frontier, with the
	// index of that frontier. An error aborts the traversal.
	OnVisit func(node, depth int) error

	err error
}

// DefaultOptions returns background context, no depth limit and a no-op
// OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(int, int) error { return nil },
	}
}

// WithContext sets a context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits BFS and Topological to d sections.
//
//	d > 0: at most d sections
//	d == 0: no limit
//	d < 0: ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithOnVisit registers a node hook. nil is ignored.
func WithOnVisit(fn func(node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

func gatherOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// checkGraph validates the adjacency and the sources.
func checkGraph[I sparse.Index](method string, csr *sparse.CSR[I], sources []I) error {
	if csr == nil {
		return fmt.Errorf("%s: %w", method, ErrNilMatrix)
	}
	if csr.NumRows() != csr.NumCols() {
		return fmt.Errorf("%s: %dx%d: %w", method, csr.NumRows(), csr.NumCols(), ErrNotSquare)
	}
	for i, s := range sources {
		if s < 0 || int(s) >= csr.NumRows() {
			return fmt.Errorf("%s: sources[%d]=%d: %w", method, i, s, ErrSourceNotFound)
		}
	}

	return nil
}

// cancelled reports ctx.Err() without blocking.
func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
