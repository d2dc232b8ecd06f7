// SPDX-License-Identifier: MIT

package kernel

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsparse/parallel"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/katalvlaran/lvsparse/tensor"
	"go.opentelemetry.io/otel/attribute"
)

// ArgBuffers receives the winning source node (ArgU) and entry id (ArgE)
// of every output element under ReduceMax or ReduceMin. Each non-nil
// slice must have out.Len() elements. A side the operator does not read,
// and every element of an empty row, is set to -1.
type ArgBuffers[I sparse.Index] struct {
	ArgU []I
	ArgE []I
}

// spmmPlan is the per-call dispatch state shared by CSR and COO kernels.
type spmmPlan struct {
	op         Op
	red        Reducer
	b          BcastOff
	accumulate bool // add into out instead of overwriting (heterogeneous sum)
}

// value computes op(ufeat[c], efeat[eid]) for output element k.
func value[T Float](p *spmmPlan, u, e []T, c, eid, k int) T {
	var l, r T
	if p.op.UsesLhs() {
		l = u[c*p.b.LhsLen+p.b.lhsAt(k)]
	}
	if p.op.UsesRhs() {
		r = e[eid*p.b.RhsLen+p.b.rhsAt(k)]
	}

	return binary(p.op, l, r)
}

// operands drops the buffers op does not read so they never reach a typed view.
func (p *spmmPlan) operands(ufeat, efeat *tensor.Tensor) (*tensor.Tensor, *tensor.Tensor) {
	if !p.op.UsesLhs() {
		ufeat = nil
	}
	if !p.op.UsesRhs() {
		efeat = nil
	}

	return ufeat, efeat
}

// SpMMCSR computes, for every destination row r of csr,
//
//	out[r] = reduce over entries (r, c, id) of op(ufeat[c], efeat[id])
//
// with feature broadcasting per CalcBcastOff. Rows are destinations,
// columns sources, entry ids edges.
//
//   - ReduceSum, ReduceProd, ReduceMax, ReduceMin, ReduceMean: out has
//     NumRows() rows; empty rows produce 0 (mean and prod included).
//   - ReduceMax/ReduceMin: ties keep the first entry in row order; arg may be
//     nil.
//   - ReduceNone: out is edge-shaped and out[id] = op(...).
//
// ufeat must have NumCols() rows when op reads it; efeat and (under
// ReduceNone) out must cover every entry id. Parallel over rows.
func SpMMCSR[I sparse.Index](ctx context.Context, op Op, reduce Reducer, csr *sparse.CSR[I],
	ufeat, efeat, out *tensor.Tensor, arg *ArgBuffers[I], opts ...Option) error {
	if csr == nil {
		return fmt.Errorf("SpMMCSR: csr: %w", ErrMissingOperand)
	}
	o := gatherOptions(opts...)
	c := startCall(ctx, "SpMMCSR", o.logger, spmmAttrs(op, reduce, csr.NumRows(), csr.NNZ())...)
	if err := spmmCSRDispatch(op, reduce, csr, ufeat, efeat, out, arg, false, o.workers); err != nil {
		return c.end(fmt.Errorf("SpMMCSR(%s,%s): %w", op, reduce, err))
	}

	return c.end(nil)
}

func spmmCSRDispatch[I sparse.Index](op Op, reduce Reducer, csr *sparse.CSR[I],
	ufeat, efeat, out *tensor.Tensor, arg *ArgBuffers[I], accumulate bool, workers int) error {
	bound, err := bindSpMMCSR(op, reduce, csr, ufeat, efeat, out, arg, accumulate)
	if err != nil {
		return err
	}

	return bound.run(workers)
}

// spmmCSRCall is a validated CSR SpMM whose operands are already bound.
// run performs no further checks and is the only step that writes out.
type spmmCSRCall[I sparse.Index] struct {
	plan         *spmmPlan
	dt           tensor.DType
	csr          *sparse.CSR[I]
	ufeat, efeat *tensor.Tensor
	out          *tensor.Tensor
	argU, argE   []I
}

func bindSpMMCSR[I sparse.Index](op Op, reduce Reducer, csr *sparse.CSR[I],
	ufeat, efeat, out *tensor.Tensor, arg *ArgBuffers[I], accumulate bool) (*spmmCSRCall[I], error) {
	if csr == nil {
		return nil, fmt.Errorf("csr: %w", ErrMissingOperand)
	}
	plan, dt, err := planSpMM(op, reduce, csr.NumRows(), csr.NumCols(), csr.Indices(), csr.EntryIDs(), ufeat, efeat, out, arg)
	if err != nil {
		return nil, err
	}
	plan.accumulate = accumulate
	ufeat, efeat = plan.operands(ufeat, efeat)
	argU, argE := argSlices(arg)

	return &spmmCSRCall[I]{plan: plan, dt: dt, csr: csr, ufeat: ufeat, efeat: efeat, out: out, argU: argU, argE: argE}, nil
}

func (c *spmmCSRCall[I]) run(workers int) error {
	return runFloat(c.dt,
		func() error {
			return spmmCSRTyped[I, float32](c.plan, c.csr, c.ufeat, c.efeat, c.out, c.argU, c.argE, workers)
		},
		func() error {
			return spmmCSRTyped[I, float64](c.plan, c.csr, c.ufeat, c.efeat, c.out, c.argU, c.argE, workers)
		})
}

func spmmCSRTyped[I sparse.Index, T Float](p *spmmPlan, csr *sparse.CSR[I], ufeat, efeat, out *tensor.Tensor, argU, argE []I, workers int) error {
	u, e, dst := floats[T](ufeat), floats[T](efeat), floats[T](out)
	indptr, indices, ids := csr.Indptr(), csr.Indices(), csr.EntryIDs()
	L := p.b.OutLen

	err := parallel.For(workers, csr.NumRows(), func(lo, hi int) error {
		acc := make([]T, L)
		au := make([]I, L)
		ae := make([]I, L)
		for r := lo; r < hi; r++ {
			a, z := int(indptr[r]), int(indptr[r+1])
			if p.red == ReduceNone {
				for q := a; q < z; q++ {
					col, eid := int(indices[q]), int(ids.At(q))
					for k := 0; k < L; k++ {
						dst[eid*L+k] = value(p, u, e, col, eid, k)
					}
				}
				continue
			}
			for k := range acc {
				acc[k], au[k], ae[k] = identity[T](p.red), -1, -1
			}
			for q := a; q < z; q++ {
				col, eid := int(indices[q]), int(ids.At(q))
				for k := 0; k < L; k++ {
					v := value(p, u, e, col, eid, k)
					switch p.red {
					case ReduceSum, ReduceMean:
						acc[k] += v
					case ReduceProd:
						acc[k] *= v
					case ReduceMax:
						if q == a || v > acc[k] {
							acc[k], au[k], ae[k] = v, I(col), I(eid)
						}
					case ReduceMin:
						if q == a || v < acc[k] {
							acc[k], au[k], ae[k] = v, I(col), I(eid)
						}
					}
				}
			}
			finishRow(p.red, acc, z-a)
			row := dst[r*L : (r+1)*L]
			if p.accumulate {
				for k, v := range acc {
					row[k] += v
				}
			} else {
				copy(row, acc)
			}
			if p.red == ReduceMax || p.red == ReduceMin {
				storeArgs(p.op, argU, argE, au, ae, r*L)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(out, dst)

	return nil
}

// finishRow applies the empty-row and mean rules to one accumulated row.
func finishRow[T Float](red Reducer, acc []T, deg int) {
	if deg == 0 {
		clear(acc)
		return
	}
	if red == ReduceMean {
		for k := range acc {
			acc[k] /= T(deg)
		}
	}
}

// storeArgs copies winning args into the caller buffers at offset base,
// masking the side op does not read.
func storeArgs[I sparse.Index](op Op, argU, argE, au, ae []I, base int) {
	if argU != nil {
		for k, v := range au {
			if !op.UsesLhs() {
				v = -1
			}
			argU[base+k] = v
		}
	}
	if argE != nil {
		for k, v := range ae {
			if !op.UsesRhs() {
				v = -1
			}
			argE[base+k] = v
		}
	}
}

// SpMMCOO is SpMMCSR over a coordinate matrix. Entries are visited in
// storage order, so max/min ties keep the earliest stored entry. Workers
// split the output feature columns, so no two write the same element.
func SpMMCOO[I sparse.Index](ctx context.Context, op Op, reduce Reducer, coo *sparse.COO[I],
	ufeat, efeat, out *tensor.Tensor, arg *ArgBuffers[I], opts ...Option) error {
	if coo == nil {
		return fmt.Errorf("SpMMCOO: coo: %w", ErrMissingOperand)
	}
	o := gatherOptions(opts...)
	c := startCall(ctx, "SpMMCOO", o.logger, spmmAttrs(op, reduce, coo.NumRows(), coo.NNZ())...)
	plan, dt, err := planSpMM(op, reduce, coo.NumRows(), coo.NumCols(), coo.Cols(), coo.EntryIDs(), ufeat, efeat, out, arg)
	if err == nil {
		err = validateRows(coo.Rows(), coo.NumRows())
	}
	if err != nil {
		return c.end(fmt.Errorf("SpMMCOO(%s,%s): %w", op, reduce, err))
	}
	ufeat, efeat = plan.operands(ufeat, efeat)
	argU, argE := argSlices(arg)
	err = runFloat(dt,
		func() error { return spmmCOOTyped[I, float32](plan, coo, ufeat, efeat, out, argU, argE, o.workers) },
		func() error { return spmmCOOTyped[I, float64](plan, coo, ufeat, efeat, out, argU, argE, o.workers) })
	if err != nil {
		return c.end(fmt.Errorf("SpMMCOO(%s,%s): %w", op, reduce, err))
	}

	return c.end(nil)
}

func spmmCOOTyped[I sparse.Index, T Float](p *spmmPlan, coo *sparse.COO[I], ufeat, efeat, out *tensor.Tensor, argU, argE []I, workers int) error {
	u, e, dst := floats[T](ufeat), floats[T](efeat), floats[T](out)
	rows, cols, ids := coo.Rows(), coo.Cols(), coo.EntryIDs()
	n, L := coo.NumRows(), p.b.OutLen
	deg := make([]int, n)
	for _, r := range rows {
		deg[r]++
	}
	isCmp := p.red == ReduceMax || p.red == ReduceMin
	var taken []bool
	if isCmp {
		taken = make([]bool, n*L)
	}

	err := parallel.Range(workers, L, 1, func(klo, khi int) error {
		if p.red == ReduceNone {
			for q := range rows {
				col, eid := int(cols[q]), int(ids.At(q))
				for k := klo; k < khi; k++ {
					dst[eid*L+k] = value(p, u, e, col, eid, k)
				}
			}
			return nil
		}
		for r := 0; r < n; r++ {
			for k := klo; k < khi; k++ {
				dst[r*L+k] = identity[T](p.red)
			}
		}
		for q := range rows {
			r, col, eid := int(rows[q]), int(cols[q]), int(ids.At(q))
			for k := klo; k < khi; k++ {
				v := value(p, u, e, col, eid, k)
				idx := r*L + k
				switch p.red {
				case ReduceSum, ReduceMean:
					dst[idx] += v
				case ReduceProd:
					dst[idx] *= v
				case ReduceMax, ReduceMin:
					better := v > dst[idx]
					if p.red == ReduceMin {
						better = v < dst[idx]
					}
					if !taken[idx] || better {
						taken[idx], dst[idx] = true, v
						setArg(argU, idx, col, p.op.UsesLhs())
						setArg(argE, idx, eid, p.op.UsesRhs())
					}
				}
			}
		}
		for r := 0; r < n; r++ {
			for k := klo; k < khi; k++ {
				idx := r*L + k
				switch {
				case deg[r] == 0:
					dst[idx] = 0
					if isCmp {
						setArg(argU, idx, -1, false)
						setArg(argE, idx, -1, false)
					}
				case p.red == ReduceMean:
					dst[idx] /= T(deg[r])
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(out, dst)

	return nil
}

// setArg writes v (or -1 when the side is unused) into a non-nil arg buffer.
func setArg[I sparse.Index](arg []I, idx, v int, used bool) {
	if arg == nil {
		return
	}
	if !used {
		v = -1
	}
	arg[idx] = I(v)
}

func argSlices[I sparse.Index](arg *ArgBuffers[I]) (argU, argE []I) {
	if arg == nil {
		return nil, nil
	}

	return arg.ArgU, arg.ArgE
}

// planSpMM validates one SpMM call and resolves its dispatch state.
func planSpMM[I sparse.Index](op Op, red Reducer, numRows, numCols int, cols []I, ids sparse.EntryIDs[I],
	ufeat, efeat, out *tensor.Tensor, arg *ArgBuffers[I]) (*spmmPlan, tensor.DType, error) {
	if !op.valid() || op == OpDot {
		return nil, 0, fmt.Errorf("operator %s: %w", op, ErrUnsupported)
	}
	if !red.valid() {
		return nil, 0, fmt.Errorf("reducer %s: %w", red, ErrUnsupported)
	}
	if op.UsesLhs() && ufeat == nil {
		return nil, 0, fmt.Errorf("ufeat: %w", ErrMissingOperand)
	}
	if op.UsesRhs() && efeat == nil {
		return nil, 0, fmt.Errorf("efeat: %w", ErrMissingOperand)
	}
	if out == nil {
		return nil, 0, fmt.Errorf("out: %w", ErrMissingOperand)
	}
	if !op.UsesLhs() {
		ufeat = nil
	}
	if !op.UsesRhs() {
		efeat = nil
	}
	dt, err := resolveDType(ufeat, efeat, out)
	if err != nil {
		return nil, 0, err
	}

	b, err := CalcBcastOff(op, featShape(ufeat), featShape(efeat))
	if err != nil {
		return nil, 0, err
	}
	if out.RowLen() != b.OutLen {
		return nil, 0, fmt.Errorf("out row length %d, want %d: %w", out.RowLen(), b.OutLen, ErrShapeMismatch)
	}
	if ufeat != nil && ufeat.Rows() != numCols {
		return nil, 0, fmt.Errorf("ufeat rows %d, want %d: %w", ufeat.Rows(), numCols, ErrShapeMismatch)
	}
	if red != ReduceNone && out.Rows() != numRows {
		return nil, 0, fmt.Errorf("out rows %d, want %d: %w", out.Rows(), numRows, ErrShapeMismatch)
	}
	if err := validateCols(cols, numCols); err != nil {
		return nil, 0, err
	}
	idBound := -1
	if efeat != nil {
		idBound = efeat.Rows()
	}
	if red == ReduceNone && (idBound < 0 || out.Rows() < idBound) {
		idBound = out.Rows()
	}
	if err := validateIDs(ids, len(cols), idBound); err != nil {
		return nil, 0, err
	}
	if arg != nil && (red == ReduceMax || red == ReduceMin) {
		for name, a := range map[string][]I{"ArgU": arg.ArgU, "ArgE": arg.ArgE} {
			if a != nil && len(a) != out.Len() {
				return nil, 0, fmt.Errorf("%s length %d, want %d: %w", name, len(a), out.Len(), ErrShapeMismatch)
			}
		}
	}

	return &spmmPlan{op: op, red: red, b: b}, dt, nil
}

func featShape(t *tensor.Tensor) []int {
	if t == nil {
		return nil
	}

	return t.FeatShape()
}

// validateCols checks every column against the source count.
func validateCols[I sparse.Index](cols []I, bound int) error {
	for p, c := range cols {
		if c < 0 || int(c) >= bound {
			return fmt.Errorf("column %d at position %d: %w", c, p, ErrOutOfRange)
		}
	}

	return nil
}

func validateRows[I sparse.Index](rows []I, bound int) error {
	for p, r := range rows {
		if r < 0 || int(r) >= bound {
			return fmt.Errorf("row %d at position %d: %w", r, p, ErrOutOfRange)
		}
	}

	return nil
}

// validateIDs checks every entry id against bound; bound < 0 skips.
func validateIDs[I sparse.Index](ids sparse.EntryIDs[I], nnz, bound int) error {
	if bound < 0 {
		return nil
	}
	for p := 0; p < nnz; p++ {
		if id := ids.At(p); id < 0 || int(id) >= bound {
			return fmt.Errorf("entry id %d at position %d: %w", id, p, ErrOutOfRange)
		}
	}

	return nil
}

func spmmAttrs(op Op, red Reducer, rows, nnz int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("op", op.String()),
		attribute.String("reduce", red.String()),
		attribute.Int("rows", rows),
		attribute.Int("nnz", nnz),
	}
}
