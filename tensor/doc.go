// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides NumPy-style n-dimensional arrays for Go.
//
// # Overview
//
// This package provides:
//   - Owning tensors (Tensor[T]) with row-major or column-major storage
//   - Strided views (View[T]) for slicing, transposes, diagonals and reshapes
//   - Gather/scatter views (Indirect[T]) for coordinate, position and mask indexing
//   - Lazy elementwise expressions with NumPy broadcasting
//   - Whole-array and per-axis reductions, sorting and partitioning
//
// # Basic Usage
//
//	import "github.com/born-ml/ndarray/tensor"
//
//	func main() {
//	    a, _ := tensor.Matrix([][]float64{{1, 2, 3}, {4, 5, 6}})
//	    b := tensor.Vector(10.0, 20.0, 30.0)
//
//	    // Lazy: nothing is computed yet.
//	    sum, _ := tensor.Add[float64](a, b)
//
//	    // Materialize.
//	    c, _ := tensor.Eval[float64](sum)
//	    fmt.Println(tensor.Sprint[float64](c))
//	}
//
// # Element Types
//
// Containers hold any Go type. Arithmetic, reductions and sorting require
// the Numeric or cmp.Ordered constraints.
//
// # Broadcasting
//
// Binary expressions and compound assignment follow NumPy rules: shapes are
// right-aligned and an axis of extent 1 stretches to match the other operand.
//
//	a, _ := tensor.Zeros[float64](tensor.Shape{4, 6})
//	b, _ := tensor.Ones[float64](tensor.Shape{4, 1})
//	_ = tensor.AddAssign[float64](a, b) // a(i, j) += b(i, 0)
//
// Compound assignment never resizes its target; Tensor.Assign resizes the
// tensor to the source's shape, while View.Assign broadcasts into the view.
//
// # Memory
//
// Views, gather views and lazy expressions reference the storage of the
// tensor they came from. Writes through them are visible in the owner.
// Resizing a tensor to a different element count allocates fresh storage,
// after which earlier views no longer observe it. Nothing is locked:
// concurrent writers must be serialized by the caller.
//
// # Archives
//
// Store and Load keep named tensors in a single checksummed binary archive:
//
//	aw := tensor.NewArchiveWriter(f)
//	_ = tensor.Store[float64](aw, "weights", w)
//	_ = aw.Close()
//
// # Errors
//
// Failures wrap one of ErrOutOfRange, ErrInvalidShape, ErrNotContiguous,
// ErrEmptySequence or ErrAllocation inside an *Error; test with errors.Is.
// Element accessors (At, Set) panic with the same *Error on a bad index;
// Get is the checked alternative.
package tensor
