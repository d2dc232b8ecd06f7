// SPDX-License-Identifier: MIT

// Package tensor - typed, shaped, contiguous buffers consumed by the kernels.
//
// Purpose:
//   - Carry {dtype, shape} next to a flat row-major slice, the minimal buffer
//     contract the sparse kernels need.
//   - Bind caller-owned slices without copying (FromFloat32s & co.); New
//     allocates zero-filled storage.
//   - Offer converted float32/float64 copies so 16-bit payloads can be
//     computed at 32-bit precision and stored back.
//
// Layout: axis 0 is the node/edge axis; the product of the trailing axes is
// the per-row feature length (RowLen).
//
// Complexity quicksheet:
//   - New: O(numel) zero-init; FromX: O(rank); typed accessors: O(1);
//     AsFloat32/AsFloat64/StoreFloat32: O(numel).
package tensor

import (
	"fmt"
	"strings"

	"github.com/x448/float16"
)

// method tags used in error wrappers
const (
	ctxNew   = "New"
	ctxFrom  = "From"
	ctxView  = "View"
	ctxStore = "Store"
)

// tensorErrorf wraps a sentinel with the method tag and shape of the call.
func tensorErrorf(method string, shape []int, err error) error {
	return fmt.Errorf("Tensor.%s(%v): %w", method, shape, err)
}

// Tensor is a dense buffer of one dtype with a row-major shape.
type Tensor struct {
	dtype DType
	shape []int
	data  any // []float16.Float16 | []float32 | []float64 | []int32 | []int64
}

// numel returns the element count of shape, or -1 if any dim is negative.
func numel(shape []int) int {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return -1
		}
		n *= d
	}

	return n
}

// New allocates a zero-filled tensor of the given dtype and shape.
// A rank-0 shape is a scalar with one element.
func New(dt DType, shape ...int) (*Tensor, error) {
	n := numel(shape)
	if n < 0 {
		return nil, tensorErrorf(ctxNew, shape, ErrBadShape)
	}
	var data any
	switch dt {
	case Float16:
		data = make([]float16.Float16, n)
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	case Int32:
		data = make([]int32, n)
	case Int64:
		data = make([]int64, n)
	default:
		return nil, tensorErrorf(ctxNew, shape, ErrUnsupportedDType)
	}

	return &Tensor{dtype: dt, shape: append([]int(nil), shape...), data: data}, nil
}

// bind is the shared body of the FromX constructors.
func bind(dt DType, length int, data any, shape []int) (*Tensor, error) {
	if len(shape) == 0 {
		shape = []int{length}
	}
	if n := numel(shape); n < 0 || n != length {
		return nil, tensorErrorf(ctxFrom, shape, ErrBadShape)
	}

	return &Tensor{dtype: dt, shape: append([]int(nil), shape...), data: data}, nil
}

// FromFloat16s binds data (no copy). An empty shape means rank 1.
func FromFloat16s(data []float16.Float16, shape ...int) (*Tensor, error) {
	return bind(Float16, len(data), data, shape)
}

// FromFloat32s binds data (no copy). An empty shape means rank 1.
func FromFloat32s(data []float32, shape ...int) (*Tensor, error) {
	return bind(Float32, len(data), data, shape)
}

// FromFloat64s binds data (no copy). An empty shape means rank 1.
func FromFloat64s(data []float64, shape ...int) (*Tensor, error) {
	return bind(Float64, len(data), data, shape)
}

// FromInt32s binds data (no copy). An empty shape means rank 1.
func FromInt32s(data []int32, shape ...int) (*Tensor, error) {
	return bind(Int32, len(data), data, shape)
}

// FromInt64s binds data (no copy). An empty shape means rank 1.
func FromInt64s(data []int64, shape ...int) (*Tensor, error) {
	return bind(Int64, len(data), data, shape)
}

// Float16FromFloat32s allocates a Float16 tensor holding data rounded to 16 bits.
func Float16FromFloat32s(data []float32, shape ...int) (*Tensor, error) {
	h := make([]float16.Float16, len(data))
	for i, v := range data {
		h[i] = float16.Fromfloat32(v)
	}

	return FromFloat16s(h, shape...)
}

// DType returns the element type.
func (t *Tensor) DType() DType { return t.dtype }

// Shape returns a copy of the shape.
func (t *Tensor) Shape() []int { return append([]int(nil), t.shape...) }

// Rank returns the number of axes.
func (t *Tensor) Rank() int { return len(t.shape) }

// Len returns the total number of elements.
func (t *Tensor) Len() int { return numel(t.shape) }

// Rows returns the length of axis 0 (1 for scalars).
func (t *Tensor) Rows() int {
	if len(t.shape) == 0 {
		return 1
	}

	return t.shape[0]
}

// FeatShape returns the trailing axes (shape[1:]) as a fresh slice.
func (t *Tensor) FeatShape() []int {
	if len(t.shape) <= 1 {
		return []int{}
	}

	return append([]int(nil), t.shape[1:]...)
}

// RowLen returns the number of elements per axis-0 row.
func (t *Tensor) RowLen() int {
	if len(t.shape) <= 1 {
		return 1
	}

	return numel(t.shape[1:])
}

func (t *Tensor) mismatch(want DType) error {
	return tensorErrorf(ctxView, t.shape, fmt.Errorf("%w: have %s, want %s", ErrDTypeMismatch, t.dtype, want))
}

// Float16s returns the backing slice of a Float16 tensor.
func (t *Tensor) Float16s() ([]float16.Float16, error) {
	if v, ok := t.data.([]float16.Float16); ok {
		return v, nil
	}

	return nil, t.mismatch(Float16)
}

// Float32s returns the backing slice of a Float32 tensor.
func (t *Tensor) Float32s() ([]float32, error) {
	if v, ok := t.data.([]float32); ok {
		return v, nil
	}

	return nil, t.mismatch(Float32)
}

// Float64s returns the backing slice of a Float64 tensor.
func (t *Tensor) Float64s() ([]float64, error) {
	if v, ok := t.data.([]float64); ok {
		return v, nil
	}

	return nil, t.mismatch(Float64)
}

// Int32s returns the backing slice of an Int32 tensor.
func (t *Tensor) Int32s() ([]int32, error) {
	if v, ok := t.data.([]int32); ok {
		return v, nil
	}

	return nil, t.mismatch(Int32)
}

// Int64s returns the backing slice of an Int64 tensor.
func (t *Tensor) Int64s() ([]int64, error) {
	if v, ok := t.data.([]int64); ok {
		return v, nil
	}

	return nil, t.mismatch(Int64)
}

// AsFloat32 returns a float32 copy of any floating tensor. Float16 values
// are widened exactly; Float64 values are rounded.
func (t *Tensor) AsFloat32() ([]float32, error) {
	switch v := t.data.(type) {
	case []float16.Float16:
		out := make([]float32, len(v))
		for i, h := range v {
			out[i] = h.Float32()
		}
		return out, nil
	case []float32:
		return append([]float32(nil), v...), nil
	case []float64:
		out := make([]float32, len(v))
		for i, x := range v {
			out[i] = float32(x)
		}
		return out, nil
	default:
		return nil, tensorErrorf(ctxView, t.shape, ErrUnsupportedDType)
	}
}

// AsFloat64 returns a float64 copy of any numeric tensor.
func (t *Tensor) AsFloat64() ([]float64, error) {
	switch v := t.data.(type) {
	case []float16.Float16:
		out := make([]float64, len(v))
		for i, h := range v {
			out[i] = float64(h.Float32())
		}
		return out, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []float64:
		return append([]float64(nil), v...), nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, tensorErrorf(ctxView, t.shape, ErrUnsupportedDType)
	}
}

// StoreFloat32 writes src into a floating tensor, narrowing to the tensor's
// width. len(src) must equal Len().
func (t *Tensor) StoreFloat32(src []float32) error {
	if len(src) != t.Len() {
		return tensorErrorf(ctxStore, t.shape, ErrBadShape)
	}
	switch v := t.data.(type) {
	case []float16.Float16:
		for i, x := range src {
			v[i] = float16.Fromfloat32(x)
		}
	case []float32:
		copy(v, src)
	case []float64:
		for i, x := range src {
			v[i] = float64(x)
		}
	default:
		return tensorErrorf(ctxStore, t.shape, ErrUnsupportedDType)
	}

	return nil
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{dtype: t.dtype, shape: append([]int(nil), t.shape...)}
	switch v := t.data.(type) {
	case []float16.Float16:
		c.data = append([]float16.Float16(nil), v...)
	case []float32:
		c.data = append([]float32(nil), v...)
	case []float64:
		c.data = append([]float64(nil), v...)
	case []int32:
		c.data = append([]int32(nil), v...)
	case []int64:
		c.data = append([]int64(nil), v...)
	}

	return c
}

// Zero resets every element to zero.
func (t *Tensor) Zero() {
	switch v := t.data.(type) {
	case []float16.Float16:
		clear(v)
	case []float32:
		clear(v)
	case []float64:
		clear(v)
	case []int32:
		clear(v)
	case []int64:
		clear(v)
	}
}

// String implements fmt.Stringer with dtype, shape and up to 8 leading values.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor<%s>%v", t.dtype, t.shape)
	vals, err := t.AsFloat64()
	if err != nil {
		return sb.String()
	}
	const preview = 8
	sb.WriteString("[")
	for i, v := range vals {
		if i == preview {
			sb.WriteString(" ...")
			break
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%g", v)
	}
	sb.WriteString("]")

	return sb.String()
}
