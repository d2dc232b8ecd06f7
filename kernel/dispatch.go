// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/tensor"
)

// resolveDType returns the common dtype of the non-nil tensors. Mixed
// dtypes yield ErrDTypeMismatch; non-floating dtypes ErrUnsupported.
func resolveDType(ts ...*tensor.Tensor) (tensor.DType, error) {
	dt := tensor.Invalid
	for _, t := range ts {
		if t == nil {
			continue
		}
		switch {
		case dt == tensor.Invalid:
			dt = t.DType()
		case t.DType() != dt:
			return tensor.Invalid, fmt.Errorf("%s vs %s: %w", dt, t.DType(), ErrDTypeMismatch)
		}
	}
	if !dt.IsFloat() {
		return tensor.Invalid, fmt.Errorf("dtype %s: %w", dt, ErrUnsupported)
	}

	return dt, nil
}

// floats returns the compute view of t. Float16 data is widened into a
// fresh float32 copy; the other widths are the backing slice itself.
// A nil tensor yields a nil slice.
func floats[T Float](t *tensor.Tensor) []T {
	if t == nil {
		return nil
	}
	var v any
	switch t.DType() {
	case tensor.Float16:
		v, _ = t.AsFloat32()
	case tensor.Float32:
		v, _ = t.Float32s()
	case tensor.Float64:
		v, _ = t.Float64s()
	}

	return v.([]T)
}

// commit stores a widened float32 view back into a Float16 tensor. Other
// dtypes were written in place and need nothing.
func commit[T Float](t *tensor.Tensor, data []T) {
	if t == nil || t.DType() != tensor.Float16 {
		return
	}
	_ = t.StoreFloat32(any(data).([]float32))
}

// runFloat instantiates body for the compute width of dt: float64 for
// Float64, float32 for Float32 and Float16.
func runFloat(dt tensor.DType, body32 func() error, body64 func() error) error {
	if dt == tensor.Float64 {
		return body64()
	}

	return body32()
}
