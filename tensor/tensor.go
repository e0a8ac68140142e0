// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"cmp"
	"io"
	"iter"

	"github.com/born-ml/ndarray/internal/algo"
	"github.com/born-ml/ndarray/internal/format"
	"github.com/born-ml/ndarray/internal/parallel"
	"github.com/born-ml/ndarray/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Index is a coordinate identifying one element.
type Index = tensor.Index

// Layout selects which axis varies fastest in memory.
type Layout = tensor.Layout

// Layout constants.
const (
	RowMajor    Layout = tensor.RowMajor
	ColumnMajor Layout = tensor.ColumnMajor
)

// Numeric is a constraint for arithmetic element types.
type Numeric = tensor.Numeric

// Expression is implemented by every array-like value.
type Expression[T any] = tensor.Expression[T]

// Mutable is an Expression whose elements can be written.
type Mutable[T any] = tensor.Mutable[T]

// Updater is implemented by values that support compound assignment.
type Updater[T any] = tensor.Updater[T]

// Tensor is an owning n-dimensional array.
//
// Example:
//
//	x, _ := tensor.Zeros[float32](tensor.Shape{2, 3})
//	x.Set(1, 0, 2)
type Tensor[T any] = tensor.Tensor[T]

// View is a non-owning strided window into a tensor's storage.
type View[T any] = tensor.View[T]

// Indirect is a gather/scatter view produced by Select, Take and Mask.
type Indirect[T any] = tensor.Indirect[T]

// Selector picks part of one axis in Slice.
type Selector = tensor.Selector

// Pos selects a single coordinate and removes the axis.
type Pos = tensor.Pos

// Range selects a strided run of coordinates and keeps the axis.
type Range = tensor.Range

// Error describes a failed operation.
type Error = tensor.Error

// QuantileMethod selects how Quantile interpolates between order statistics.
type QuantileMethod = algo.Method

// Quantile interpolation methods.
const (
	Linear   QuantileMethod = algo.Linear
	Lower    QuantileMethod = algo.Lower
	Higher   QuantileMethod = algo.Higher
	Nearest  QuantileMethod = algo.Nearest
	Midpoint QuantileMethod = algo.Midpoint
)

// ParallelConfig controls EvalParallel.
type ParallelConfig = parallel.Config

// FormatOptions controls text rendering.
type FormatOptions = format.Options

// Error kinds.
var (
	ErrOutOfRange    = tensor.ErrOutOfRange
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrNotContiguous = tensor.ErrNotContiguous
	ErrEmptySequence = tensor.ErrEmptySequence
	ErrAllocation    = tensor.ErrAllocation
)

// SetDefaultLayout changes the layout used by constructors that do not take
// one. It is not safe to call concurrently with tensor construction.
func SetDefaultLayout(l Layout) {
	tensor.DefaultLayout = l
}

// Creation functions

// Empty creates a tensor whose element values are unspecified.
func Empty[T any](shape Shape, layout Layout) (*Tensor[T], error) {
	return tensor.Empty[T](shape, layout)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x, _ := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T any](shape Shape) (*Tensor[T], error) {
	return tensor.Zeros[T](shape)
}

// Ones creates a tensor filled with ones.
func Ones[T Numeric](shape Shape) (*Tensor[T], error) {
	return tensor.Ones[T](shape)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x, _ := tensor.Full(tensor.Shape{2, 3}, float32(3.14))
func Full[T any](shape Shape, value T) (*Tensor[T], error) {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor from a Go slice (copied).
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice[T any](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// FromSeq creates a 1D tensor from an iterator.
func FromSeq[T any](seq iter.Seq[T]) *Tensor[T] {
	return tensor.FromSeq(seq)
}

// FromNested creates a tensor from nested slices; ragged input is zero padded.
func FromNested[T any](nested any) (*Tensor[T], error) {
	return tensor.FromNested[T](nested)
}

// Vector creates a 1D tensor.
func Vector[T any](values ...T) *Tensor[T] {
	return tensor.Vector(values...)
}

// Matrix creates a 2D tensor from rows.
func Matrix[T any](rows [][]T) (*Tensor[T], error) {
	return tensor.Matrix(rows)
}

// Scalar creates a 0D tensor.
func Scalar[T any](value T) *Tensor[T] {
	return tensor.Scalar(value)
}

// Arange creates a 1D tensor with values from start to stop (exclusive).
//
// Example:
//
//	x, _ := tensor.Arange[float32](0, 10, 1) // [0, 1, 2, ..., 9]
func Arange[T Numeric](start, stop, step T) (*Tensor[T], error) {
	return tensor.Arange(start, stop, step)
}

// Linspace creates n evenly spaced values from start to stop inclusive.
func Linspace[T Numeric](start, stop T, n int) (*Tensor[T], error) {
	return tensor.Linspace(start, stop, n)
}

// Eye creates a 2D identity matrix.
//
// Example:
//
//	identity, _ := tensor.Eye[float32](3) // 3x3 identity matrix
func Eye[T Numeric](n int) (*Tensor[T], error) {
	return tensor.Eye[T](n)
}

// Eval materializes any expression into a new tensor.
func Eval[T any](e Expression[T]) (*Tensor[T], error) {
	return tensor.Eval(e)
}

// EvalParallel materializes an expression on several goroutines when
// cfg.Enabled is set.
func EvalParallel[T any](e Expression[T], cfg ParallelConfig) (*Tensor[T], error) {
	return tensor.EvalParallel(e, cfg)
}

// DefaultParallelConfig returns a disabled configuration sized for this machine.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Indexing

// Span selects [start, stop) of an axis.
func Span(start, stop int) Range { return tensor.Span(start, stop) }

// SpanStep selects every step-th coordinate of [start, stop).
func SpanStep(start, stop, step int) Range { return tensor.SpanStep(start, stop, step) }

// SpanFrom selects [start, extent) of an axis.
func SpanFrom(start int) Range { return tensor.SpanFrom(start) }

// SpanAll selects a whole axis.
func SpanAll() Range { return tensor.SpanAll() }

// SelectCopy returns the elements of e at coords as a new tensor.
func SelectCopy[T any](e Expression[T], coords Expression[Index]) (*Tensor[T], error) {
	return tensor.SelectCopy(e, coords)
}

// MaskCopy returns the elements of e where mask is true as a new 1D tensor.
func MaskCopy[T any](e Expression[T], mask Expression[bool]) (*Tensor[T], error) {
	return tensor.MaskCopy(e, mask)
}

// Shape utilities

// BroadcastShapes computes the broadcast of several shapes following NumPy
// broadcasting rules.
//
// Example:
//
//	s, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{3, 4})
//	// s = (3, 4)
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	return tensor.BroadcastShapes(shapes...)
}

// ParseShape parses the "(n1, ..., nk)" notation.
func ParseShape(text string) (Shape, error) {
	return tensor.ParseShape(text)
}

// RavelIndex converts an index to its flat position under layout.
func RavelIndex(index Index, shape Shape, layout Layout) (int, error) {
	return tensor.RavelIndex(index, shape, layout)
}

// UnravelIndex converts a flat position to an index under layout.
func UnravelIndex(flat int, shape Shape, layout Layout) (Index, error) {
	return tensor.UnravelIndex(flat, shape, layout)
}

// Indices iterates over every index of shape in layout order.
func Indices(shape Shape, layout Layout) iter.Seq[Index] {
	return tensor.Indices(shape, layout)
}

// Compound assignment

// AddAssign performs dst += src with broadcasting.
func AddAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return tensor.AddAssign(dst, src)
}

// SubAssign performs dst -= src with broadcasting.
func SubAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return tensor.SubAssign(dst, src)
}

// MulAssign performs dst *= src with broadcasting.
func MulAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return tensor.MulAssign(dst, src)
}

// DivAssign performs dst /= src with broadcasting.
func DivAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return tensor.DivAssign(dst, src)
}

// AddScalar performs dst += value.
func AddScalar[T Numeric](dst Updater[T], value T) error { return tensor.AddScalar(dst, value) }

// SubScalar performs dst -= value.
func SubScalar[T Numeric](dst Updater[T], value T) error { return tensor.SubScalar(dst, value) }

// MulScalar performs dst *= value.
func MulScalar[T Numeric](dst Updater[T], value T) error { return tensor.MulScalar(dst, value) }

// DivScalar performs dst /= value.
func DivScalar[T Numeric](dst Updater[T], value T) error { return tensor.DivScalar(dst, value) }

// Reductions

// Sum returns the sum of all elements (0 when empty).
func Sum[T Numeric](e Expression[T]) T { return tensor.Sum(e) }

// Prod returns the product of all elements (1 when empty).
func Prod[T Numeric](e Expression[T]) T { return tensor.Prod(e) }

// Mean returns the arithmetic mean.
func Mean[T Numeric](e Expression[T]) (float64, error) { return tensor.Mean(e) }

// Var returns the variance; bias selects the divisor n instead of n-1.
func Var[T Numeric](e Expression[T], bias bool) (float64, error) { return tensor.Var(e, bias) }

// Std returns the standard deviation; bias selects the divisor n instead of n-1.
func Std[T Numeric](e Expression[T], bias bool) (float64, error) { return tensor.Std(e, bias) }

// Median returns the median.
func Median[T Numeric](e Expression[T]) (float64, error) { return tensor.Median(e) }

// Quantile returns the q-th quantile, q in [0, 1].
func Quantile[T Numeric](e Expression[T], q float64, method QuantileMethod) (float64, error) {
	return tensor.Quantile(e, q, method)
}

// Max returns the largest element.
func Max[T cmp.Ordered](e Expression[T]) (T, error) { return tensor.Max(e) }

// Min returns the smallest element.
func Min[T cmp.Ordered](e Expression[T]) (T, error) { return tensor.Min(e) }

// ArgMax returns the flat position of the first largest element.
func ArgMax[T cmp.Ordered](e Expression[T]) (int, error) { return tensor.ArgMax(e) }

// ArgMin returns the flat position of the first smallest element.
func ArgMin[T cmp.Ordered](e Expression[T]) (int, error) { return tensor.ArgMin(e) }

// All reports whether every element is nonzero.
func All[T comparable](e Expression[T]) (bool, error) { return tensor.All(e) }

// Any reports whether some element is nonzero.
func Any[T comparable](e Expression[T]) (bool, error) { return tensor.Any(e) }

// CountNonzero returns the number of nonzero elements.
func CountNonzero[T comparable](e Expression[T]) (int, error) { return tensor.CountNonzero(e) }

// ReduceAxis applies f to every lane along axis.
func ReduceAxis[T, R any](e Expression[T], axis int, f func(iter.Seq[T]) (R, error)) (*Tensor[R], error) {
	return tensor.ReduceAxis(e, axis, f)
}

// SumAxis sums along axis.
func SumAxis[T Numeric](e Expression[T], axis int) (*Tensor[T], error) { return tensor.SumAxis(e, axis) }

// ProdAxis multiplies along axis.
func ProdAxis[T Numeric](e Expression[T], axis int) (*Tensor[T], error) {
	return tensor.ProdAxis(e, axis)
}

// MeanAxis averages along axis.
func MeanAxis[T Numeric](e Expression[T], axis int) (*Tensor[float64], error) {
	return tensor.MeanAxis(e, axis)
}

// MaxAxis takes the maximum along axis.
func MaxAxis[T cmp.Ordered](e Expression[T], axis int) (*Tensor[T], error) {
	return tensor.MaxAxis(e, axis)
}

// MinAxis takes the minimum along axis.
func MinAxis[T cmp.Ordered](e Expression[T], axis int) (*Tensor[T], error) {
	return tensor.MinAxis(e, axis)
}

// In-place structural operations

// Sort sorts every lane along axis (-1 = last).
func Sort[T cmp.Ordered](x Mutable[T], axis int) error { return tensor.Sort(x, axis) }

// SortStable sorts every lane along axis, keeping equal elements in order.
func SortStable[T cmp.Ordered](x Mutable[T], axis int) error { return tensor.SortStable(x, axis) }

// SortFunc sorts every lane along axis by compare.
func SortFunc[T any](x Mutable[T], axis int, compare func(a, b T) int, stable bool) error {
	return tensor.SortFunc(x, axis, compare, stable)
}

// Partition places the kth smallest element of every lane at position kth.
func Partition[T cmp.Ordered](x Mutable[T], kth, axis int) error {
	return tensor.Partition(x, kth, axis)
}

// Reverse reverses every lane along axis.
func Reverse[T any](x Mutable[T], axis int) error { return tensor.Reverse(x, axis) }

// Rotate rotates every lane along axis left by shift.
func Rotate[T any](x Mutable[T], shift, axis int) error { return tensor.Rotate(x, shift, axis) }

// Formatting

// DefaultFormatOptions returns the default rendering options.
func DefaultFormatOptions() FormatOptions {
	return format.DefaultOptions()
}

// Sprint renders e as nested-bracket text with default options.
func Sprint[T any](e Expression[T]) string {
	return format.Format(e, format.DefaultOptions())
}

// Fprint writes the rendering of e to w.
func Fprint[T any](w io.Writer, e Expression[T], opts FormatOptions) error {
	return format.Fprint(w, e, opts)
}
