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

// sddmmPlan is the resolved state of one SDDMM call.
type sddmmPlan struct {
	op         Op
	b          BcastOff
	lhsT, rhsT Target
}

// pick maps an entry (row, col, id) onto the buffer row of target t.
func pick(t Target, row, col, eid int) int {
	switch t {
	case TargetSrc:
		return col
	case TargetDst:
		return row
	default:
		return eid
	}
}

// edgeValues writes op(lhs[pick(lhsT)], rhs[pick(rhsT)]) into out[eid].
func edgeValues[T Float](p *sddmmPlan, lhs, rhs, out []T, row, col, eid int) {
	R, L := p.b.ReduceSize, p.b.OutLen
	lrow := pick(p.lhsT, row, col, eid) * p.b.LhsLen * R
	rrow := pick(p.rhsT, row, col, eid) * p.b.RhsLen * R
	for k := 0; k < L; k++ {
		var acc T
		lo, ro := lrow+p.b.lhsAt(k)*R, rrow+p.b.rhsAt(k)*R
		for i := 0; i < R; i++ {
			var l, r T
			if p.op.UsesLhs() {
				l = lhs[lo+i]
			}
			if p.op.UsesRhs() {
				r = rhs[ro+i]
			}
			if p.op == OpDot {
				acc += l * r
			} else {
				acc = binary(p.op, l, r)
			}
		}
		out[eid*L+k] = acc
	}
}

// SDDMMCSR computes, for every entry (r, c, id) of csr,
//
//	out[id] = op(lhs[select(lhsTarget)], rhs[select(rhsTarget)])
//
// where select maps TargetSrc to c, TargetDst to r and TargetEdge to id.
// OpDot reduces the last feature axis. out is edge-shaped. Parallel over
// rows.
func SDDMMCSR[I sparse.Index](ctx context.Context, op Op, csr *sparse.CSR[I], lhs, rhs, out *tensor.Tensor,
	lhsTarget, rhsTarget Target, opts ...Option) error {
	if csr == nil {
		return fmt.Errorf("SDDMMCSR: csr: %w", ErrMissingOperand)
	}
	o := gatherOptions(opts...)
	c := startCall(ctx, "SDDMMCSR", o.logger, sddmmAttrs(op, lhsTarget, rhsTarget, csr.NNZ())...)
	if err := sddmmCSRDispatch(op, csr, lhs, rhs, out, lhsTarget, rhsTarget, o.workers); err != nil {
		return c.end(fmt.Errorf("SDDMMCSR(%s,%s,%s): %w", op, lhsTarget, rhsTarget, err))
	}

	return c.end(nil)
}

func sddmmCSRDispatch[I sparse.Index](op Op, csr *sparse.CSR[I], lhs, rhs, out *tensor.Tensor, lhsT, rhsT Target, workers int) error {
	p, dt, err := planSDDMM(op, csr.NumRows(), csr.NumCols(), csr.Indices(), csr.EntryIDs(), lhs, rhs, out, lhsT, rhsT)
	if err != nil {
		return err
	}
	lhs, rhs = p.operands(lhs, rhs)

	return runFloat(dt,
		func() error { return sddmmCSRTyped[I, float32](p, csr, lhs, rhs, out, workers) },
		func() error { return sddmmCSRTyped[I, float64](p, csr, lhs, rhs, out, workers) })
}

func sddmmCSRTyped[I sparse.Index, T Float](p *sddmmPlan, csr *sparse.CSR[I], lhsT, rhsT, outT *tensor.Tensor, workers int) error {
	lhs, rhs, out := floats[T](lhsT), floats[T](rhsT), floats[T](outT)
	indptr, indices, ids := csr.Indptr(), csr.Indices(), csr.EntryIDs()
	err := parallel.For(workers, csr.NumRows(), func(lo, hi int) error {
		for r := lo; r < hi; r++ {
			for q := int(indptr[r]); q < int(indptr[r+1]); q++ {
				edgeValues(p, lhs, rhs, out, r, int(indices[q]), int(ids.At(q)))
			}
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(outT, out)

	return nil
}

// SDDMMCOO is SDDMMCSR over a coordinate matrix. Parallel over entries.
func SDDMMCOO[I sparse.Index](ctx context.Context, op Op, coo *sparse.COO[I], lhs, rhs, out *tensor.Tensor,
	lhsTarget, rhsTarget Target, opts ...Option) error {
	if coo == nil {
		return fmt.Errorf("SDDMMCOO: coo: %w", ErrMissingOperand)
	}
	o := gatherOptions(opts...)
	c := startCall(ctx, "SDDMMCOO", o.logger, sddmmAttrs(op, lhsTarget, rhsTarget, coo.NNZ())...)
	p, dt, err := planSDDMM(op, coo.NumRows(), coo.NumCols(), coo.Cols(), coo.EntryIDs(), lhs, rhs, out, lhsTarget, rhsTarget)
	if err == nil {
		err = validateRows(coo.Rows(), coo.NumRows())
	}
	if err != nil {
		return c.end(fmt.Errorf("SDDMMCOO(%s,%s,%s): %w", op, lhsTarget, rhsTarget, err))
	}
	lhs, rhs = p.operands(lhs, rhs)
	err = runFloat(dt,
		func() error { return sddmmCOOTyped[I, float32](p, coo, lhs, rhs, out, o.workers) },
		func() error { return sddmmCOOTyped[I, float64](p, coo, lhs, rhs, out, o.workers) })

	return c.end(err)
}

func sddmmCOOTyped[I sparse.Index, T Float](p *sddmmPlan, coo *sparse.COO[I], lhsT, rhsT, outT *tensor.Tensor, workers int) error {
	lhs, rhs, out := floats[T](lhsT), floats[T](rhsT), floats[T](outT)
	rows, cols, ids := coo.Rows(), coo.Cols(), coo.EntryIDs()
	err := parallel.For(workers, len(rows), func(lo, hi int) error {
		for q := lo; q < hi; q++ {
			edgeValues(p, lhs, rhs, out, int(rows[q]), int(cols[q]), int(ids.At(q)))
		}

		return nil
	})
	if err != nil {
		return err
	}
	commit(outT, out)

	return nil
}

func (p *sddmmPlan) operands(lhs, rhs *tensor.Tensor) (*tensor.Tensor, *tensor.Tensor) {
	if !p.op.UsesLhs() {
		lhs = nil
	}
	if !p.op.UsesRhs() {
		rhs = nil
	}

	return lhs, rhs
}

// planSDDMM validates one SDDMM call.
func planSDDMM[I sparse.Index](op Op, numRows, numCols int, cols []I, ids sparse.EntryIDs[I],
	lhs, rhs, out *tensor.Tensor, lhsT, rhsT Target) (*sddmmPlan, tensor.DType, error) {
	if !op.valid() {
		return nil, 0, fmt.Errorf("operator %s: %w", op, ErrUnsupported)
	}
	for _, t := range []Target{lhsT, rhsT} {
		if t < TargetSrc || t > TargetEdge {
			return nil, 0, fmt.Errorf("target %s: %w", t, ErrUnsupported)
		}
	}
	if op.UsesLhs() && lhs == nil {
		return nil, 0, fmt.Errorf("lhs: %w", ErrMissingOperand)
	}
	if op.UsesRhs() && rhs == nil {
		return nil, 0, fmt.Errorf("rhs: %w", ErrMissingOperand)
	}
	if out == nil {
		return nil, 0, fmt.Errorf("out: %w", ErrMissingOperand)
	}
	if !op.UsesLhs() {
		lhs = nil
	}
	if !op.UsesRhs() {
		rhs = nil
	}
	dt, err := resolveDType(lhs, rhs, out)
	if err != nil {
		return nil, 0, err
	}
	b, err := CalcBcastOff(op, featShape(lhs), featShape(rhs))
	if err != nil {
		return nil, 0, err
	}
	if out.RowLen() != b.OutLen {
		return nil, 0, fmt.Errorf("out row length %d, want %d: %w", out.RowLen(), b.OutLen, ErrShapeMismatch)
	}
	if err := validateCols(cols, numCols); err != nil {
		return nil, 0, err
	}

	idBound := out.Rows()
	for _, side := range []struct {
		t   *tensor.Tensor
		tgt Target
	}{{lhs, lhsT}, {rhs, rhsT}} {
		if side.t == nil {
			continue
		}
		switch side.tgt {
		case TargetSrc:
			if side.t.Rows() != numCols {
				return nil, 0, fmt.Errorf("%s operand rows %d, want %d: %w", side.tgt, side.t.Rows(), numCols, ErrShapeMismatch)
			}
		case TargetDst:
			if side.t.Rows() != numRows {
				return nil, 0, fmt.Errorf("%s operand rows %d, want %d: %w", side.tgt, side.t.Rows(), numRows, ErrShapeMismatch)
			}
		case TargetEdge:
			idBound = min(idBound, side.t.Rows())
		}
	}
	if err := validateIDs(ids, len(cols), idBound); err != nil {
		return nil, 0, err
	}

	return &sddmmPlan{op: op, b: b, lhsT: lhsT, rhsT: rhsT}, dt, nil
}

func sddmmAttrs(op Op, lhsT, rhsT Target, nnz int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("op", op.String()),
		attribute.String("lhs_target", lhsT.String()),
		attribute.String("rhs_target", rhsT.String()),
		attribute.Int("nnz", nnz),
	}
}
