// SPDX-License-Identifier: MIT

package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromMatrix copies a gonum matrix into a new rank-2 tensor of dtype dt.
func FromMatrix(m mat.Matrix, dt DType) (*Tensor, error) {
	r, c := m.Dims()
	t, err := New(dt, r, c)
	if err != nil {
		return nil, err
	}
	buf := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			buf = append(buf, m.At(i, j))
		}
	}
	switch dt {
	case Float64:
		v, _ := t.Float64s()
		copy(v, buf)
	case Int32:
		v, _ := t.Int32s()
		for i, x := range buf {
			v[i] = int32(x)
		}
	case Int64:
		v, _ := t.Int64s()
		for i, x := range buf {
			v[i] = int64(x)
		}
	default:
		f := make([]float32, len(buf))
		for i, x := range buf {
			f[i] = float32(x)
		}
		if err := t.StoreFloat32(f); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// ToDense copies the tensor into a gonum Dense. Rank-1 tensors become a
// column vector; higher ranks are flattened to (Rows, RowLen).
func (t *Tensor) ToDense() (*mat.Dense, error) {
	rows, cols := t.Rows(), t.RowLen()
	if rows == 0 || cols == 0 {
		return nil, tensorErrorf("ToDense", t.shape, fmt.Errorf("%w: gonum forbids empty matrices", ErrBadShape))
	}
	vals, err := t.AsFloat64()
	if err != nil {
		return nil, err
	}

	return mat.NewDense(rows, cols, vals), nil
}
