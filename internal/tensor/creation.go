package tensor

import (
	"iter"
	"math"
	"slices"
)

// Empty creates a tensor of the given shape and layout. Element values are
// unspecified; callers are expected to overwrite them.
func Empty[T any](shape Shape, layout Layout) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, wrapError("empty", err)
	}
	data, err := allocate[T]("empty", shape.NumElements())
	if err != nil {
		return nil, err
	}
	return fromData(data, shape.Clone(), layout), nil
}

// Zeros creates a tensor filled with the zero value of T.
//
// Example:
//
//	t, _ := tensor.Zeros[float32](tensor.Shape{3, 4})
func Zeros[T any](shape Shape) (*Tensor[T], error) {
	// Go buffers start zeroed, so Empty already satisfies the contract.
	return Empty[T](shape, DefaultLayout)
}

// Ones creates a tensor filled with ones.
func Ones[T Numeric](shape Shape) (*Tensor[T], error) {
	return Full(shape, T(1))
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t, _ := tensor.Full(tensor.Shape{3, 3}, 3.14)
func Full[T any](shape Shape, value T) (*Tensor[T], error) {
	t, err := Empty[T](shape, DefaultLayout)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = value
	}
	return t, nil
}

// FromSlice creates a tensor from a Go slice laid out in DefaultLayout order.
// The slice is copied into the tensor's memory.
func FromSlice[T any](data []T, shape Shape) (*Tensor[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, wrapError("from slice", err)
	}
	if shape.NumElements() != len(data) {
		return nil, newError("from slice", ErrInvalidShape, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	return fromData(slices.Clone(data), shape.Clone(), DefaultLayout), nil
}

// FromSeq creates a rank-1 tensor holding every value produced by seq.
func FromSeq[T any](seq iter.Seq[T]) *Tensor[T] {
	data := slices.Collect(seq)
	return fromData(data, Shape{len(data)}, DefaultLayout)
}

// Vector creates a rank-1 tensor from its arguments.
func Vector[T any](values ...T) *Tensor[T] {
	return fromData(slices.Clone(values), Shape{len(values)}, DefaultLayout)
}

// Matrix creates a rank-2 row-major tensor from rows. Short rows are padded
// with zero values to the longest row.
func Matrix[T any](rows [][]T) (*Tensor[T], error) {
	return FromNested[T](rows)
}

// Scalar creates a rank-0 tensor. Being rank 0 it broadcasts against any shape.
func Scalar[T any](value T) *Tensor[T] {
	return fromData([]T{value}, Shape{}, DefaultLayout)
}

// Arange creates a rank-1 tensor with values start, start+step, ... up to
// but excluding stop.
//
// Example:
//
//	t, _ := tensor.Arange[int32](0, 10, 1) // [0, 1, 2, ..., 9]
func Arange[T Numeric](start, stop, step T) (*Tensor[T], error) {
	if step == 0 {
		return nil, newError("arange", ErrInvalidShape, "step must be nonzero")
	}
	span := (float64(stop) - float64(start)) / float64(step)
	n := max(int(math.Ceil(span)), 0)
	t, err := Empty[T](Shape{n}, DefaultLayout)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = start + T(i)*step
	}
	return t, nil
}

// Linspace creates a rank-1 tensor of n evenly spaced values from start to
// stop inclusive.
func Linspace[T Numeric](start, stop T, n int) (*Tensor[T], error) {
	if n < 0 {
		return nil, newError("linspace", ErrInvalidShape, "negative count %d", n)
	}
	t, err := Empty[T](Shape{n}, DefaultLayout)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		t.data[0] = start
		return t, nil
	}
	step := (float64(stop) - float64(start)) / float64(n-1)
	for i := range t.data {
		t.data[i] = T(float64(start) + float64(i)*step)
	}
	if n > 0 {
		t.data[n-1] = stop
	}
	return t, nil
}

// Eye creates an n×n identity matrix.
func Eye[T Numeric](n int) (*Tensor[T], error) {
	t, err := Zeros[T](Shape{n, n})
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		t.Set(1, i, i)
	}
	return t, nil
}
