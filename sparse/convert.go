// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/parallel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/katalvlaran/lvsparse/sparse"

// ToCSR converts coo into a CSR that owns fresh buffers.
//
// Two algorithms are selected by the advisory RowSorted flag:
//
//   - row-sorted: each worker scans a contiguous nnz range and writes the
//     row boundaries it crosses into indptr; row ranges owned by different
//     workers are disjoint because rows only increase. The worker holding
//     the tail closes trailing empty rows. Columns and positional ids are
//     copied in the same pass. O(nnz/P) time, O(1) extra space.
//
//   - unsorted: a parallel counting sort in four barrier-separated phases
//     (local row histograms, per-row exclusive prefix across workers, global
//     base publication, scatter). O(nnz/P + N) time, O(N*P) extra space.
//     Scatter order follows worker order and then input order, so entries
//     of one row keep their input order.
//
// The result is Sorted() iff coo.ColSorted(). Rows outside [0, NumRows)
// yield ErrOutOfRange. A prefix-sum total different from nnz is an internal
// invariant violation and panics.
func ToCSR[I Index](coo *COO[I], opts ...Option) (*CSR[I], error) {
	if coo == nil {
		return nil, fmt.Errorf("ToCSR: %w", ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	_, span := otel.Tracer(tracerName).Start(o.ctx, "sparse.ToCSR",
		trace.WithAttributes(
			attribute.Int("rows", coo.numRows),
			attribute.Int("nnz", coo.NNZ()),
			attribute.Bool("row_sorted", coo.rowSorted),
		))
	defer span.End()

	var (
		out *CSR[I]
		err error
	)
	if coo.rowSorted {
		out, err = toCSRSorted(coo, o.workers)
	} else {
		out, err = toCSRUnsorted(coo, o.workers)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("ToCSR: %w", err)
	}
	o.logger.Debug("sparse: coo converted to csr",
		"rows", coo.numRows, "nnz", coo.NNZ(), "row_sorted", coo.rowSorted)

	return out, nil
}

func toCSRSorted[I Index](coo *COO[I], workers int) (*CSR[I], error) {
	n, nnz := coo.numRows, coo.NNZ()
	indptr := make([]I, n+1)
	indices := make([]I, nnz)
	ids := make([]I, nnz)
	rows := coo.rows

	err := parallel.For(workers, nnz, func(lo, hi int) error {
		prev := -1
		if lo > 0 {
			prev = int(rows[lo-1])
		}
		for i := lo; i < hi; i++ {
			r := int(rows[i])
			if r < 0 || r >= n {
				return fmt.Errorf("row %d at position %d: %w", r, i, ErrOutOfRange)
			}
			for b := prev + 1; b <= r; b++ {
				indptr[b] = I(i)
			}
			prev = r
		}
		if hi == nnz {
			for b := prev + 1; b <= n; b++ {
				indptr[b] = I(nnz)
			}
		}
		copy(indices[lo:hi], coo.cols[lo:hi])
		if coo.ids.Present() {
			copy(ids[lo:hi], coo.ids.ids[lo:hi])
		} else {
			fillRange(ids[lo:hi], lo)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	// nnz == 0 leaves indptr all zero, which is already correct.

	return &CSR[I]{
		numRows: n, numCols: coo.numCols,
		indptr: indptr, indices: indices, ids: ExplicitIDs(ids),
		sorted: coo.colSorted,
	}, nil
}

func toCSRUnsorted[I Index](coo *COO[I], workers int) (*CSR[I], error) {
	n, nnz := coo.numRows, coo.NNZ()
	indptr := make([]I, n+1)
	indices := make([]I, nnz)
	ids := make([]I, nnz)
	if nnz == 0 {
		return &CSR[I]{numRows: n, numCols: coo.numCols, indptr: indptr, indices: indices,
			ids: ExplicitIDs(ids), sorted: coo.colSorted}, nil
	}

	p := parallel.Resolve(workers)
	if p > nnz {
		p = nnz
	}
	// counts[w*n+r]: phase 1 holds worker w's occurrences of row r; after
	// phase 3 it holds w's next write position inside row r.
	counts := make([]int, p*n)
	rangeTotal := parallel.NewSlots[int](p)

	err := parallel.Region(p, func(w *parallel.Worker) error {
		lo, hi := w.Chunk(nnz)
		local := counts[w.ID*n : (w.ID+1)*n]

		// phase 1: local histogram
		for i := lo; i < hi; i++ {
			r := int(coo.rows[i])
			if r < 0 || r >= n {
				return fmt.Errorf("row %d at position %d: %w", r, i, ErrOutOfRange)
			}
			local[r]++
		}
		if !w.Barrier() {
			return nil
		}

		// phase 2: per-row exclusive prefix across workers, then a
		// range-local exclusive prefix over rows
		rlo, rhi := w.Chunk(n)
		running := 0
		for r := rlo; r < rhi; r++ {
			sum := 0
			for t := 0; t < p; t++ {
				c := counts[t*n+r]
				counts[t*n+r] = sum
				sum += c
			}
			indptr[r] = I(running)
			running += sum
		}
		rangeTotal[w.ID].V = running
		if !w.Barrier() {
			return nil
		}

		// phase 3: global base publication
		base := 0
		for t := 0; t < w.ID; t++ {
			base += rangeTotal[t].V
		}
		for r := rlo; r < rhi; r++ {
			indptr[r] += I(base)
			for t := 0; t < p; t++ {
				counts[t*n+r] += int(indptr[r])
			}
		}
		if w.Master() {
			total := 0
			for t := range rangeTotal {
				total += rangeTotal[t].V
			}
			indptr[n] = I(total)
		}
		if !w.Barrier() {
			return nil
		}

		// phase 4: scatter
		for i := lo; i < hi; i++ {
			r := int(coo.rows[i])
			pos := local[r]
			local[r]++
			indices[pos] = coo.cols[i]
			ids[pos] = coo.ids.At(i)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if int(indptr[n]) != nnz {
		panic(fmt.Sprintf("sparse: ToCSR prefix total %d != nnz %d", indptr[n], nnz))
	}

	return &CSR[I]{
		numRows: n, numCols: coo.numCols,
		indptr: indptr, indices: indices, ids: ExplicitIDs(ids),
		sorted: coo.colSorted,
	}, nil
}

// ToCOO expands csr into a row-sorted COO with fresh buffers. Ids stay
// implicit when they were implicit. ColSorted is set when the CSR is
// flagged sorted and consecutive non-empty rows do not step back in
// column, which is checked in O(rows).
func ToCOO[I Index](csr *CSR[I], opts ...Option) (*COO[I], error) {
	if csr == nil {
		return nil, fmt.Errorf("ToCOO: %w", ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	nnz := csr.NNZ()
	rows := make([]I, nnz)
	cols := append(make([]I, 0, nnz), csr.indices...)
	ids := ImplicitIDs[I]()
	if csr.ids.Present() {
		ids = ExplicitIDs(csr.ids.Materialize(nnz))
	}

	err := parallel.For(o.workers, csr.numRows, func(lo, hi int) error {
		for r := lo; r < hi; r++ {
			a, b := csr.span(r)
			for p := a; p < b; p++ {
				rows[p] = I(r)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ToCOO: %w", err)
	}

	return &COO[I]{
		numRows: csr.numRows, numCols: csr.numCols,
		rows: rows, cols: cols, ids: ids,
		rowSorted: true, colSorted: csr.sorted && rowsChainSorted(csr),
	}, nil
}

// rowsChainSorted reports whether the last column of each non-empty row is
// <= the first column of the next non-empty row. Assumes rows are sorted.
func rowsChainSorted[I Index](csr *CSR[I]) bool {
	last := I(-1)
	for r := 0; r < csr.numRows; r++ {
		lo, hi := csr.span(r)
		if lo == hi {
			continue
		}
		if csr.indices[lo] < last {
			return false
		}
		last = csr.indices[hi-1]
	}

	return true
}

// CSRTranspose returns the transpose of csr as a new sorted CSR.
// Implemented as ToCOO, Transpose, ToCSR; ids follow their entries.
func CSRTranspose[I Index](csr *CSR[I], opts ...Option) (*CSR[I], error) {
	coo, err := ToCOO(csr, opts...)
	if err != nil {
		return nil, fmt.Errorf("CSRTranspose: %w", err)
	}
	t, err := ToCSR(coo.Transpose(), opts...)
	if err != nil {
		return nil, fmt.Errorf("CSRTranspose: %w", err)
	}

	return t, nil
}
