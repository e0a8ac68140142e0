// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"cmp"

	"github.com/born-ml/ndarray/internal/expr"
	"github.com/born-ml/ndarray/internal/linalg"
)

// Lazy expressions. The builders below return nodes that compute each
// element on demand from the current operand values; materialize them with
// Eval or Assign.

// Float is a constraint for the element types accepted by the math builders.
type Float = expr.Float

// Unary is a lazy node applying a function to every element.
type Unary[T, R any] = expr.Unary[T, R]

// Binary is a lazy broadcasting node combining two operands.
type Binary[T, U, R any] = expr.Binary[T, U, R]

// BinaryScalar is a lazy node combining every element with a fixed value.
type BinaryScalar[T, S, R any] = expr.BinaryScalar[T, S, R]

// Outer is a lazy node combining every pair of elements of two operands.
type Outer[T, U, R any] = expr.Outer[T, U, R]

// ElementWise is a lazy broadcasting node over any number of operands.
type ElementWise[T, R any] = expr.ElementWise[T, R]

// Conditional is the lazy node built by Where.
type Conditional[T any] = expr.Conditional[T]

// Diagonal is the lazy matrix built by Diag.
type Diagonal[T any] = expr.Diagonal[T]

// Triangular is the lazy node built by Tril and Triu.
type Triangular[T any] = expr.Triangular[T]

// Map returns the lazy node f(x).
func Map[T, R any](x Expression[T], f func(T) R) *Unary[T, R] { return expr.Map(x, f) }

// Combine returns the lazy broadcasting node f(a, b).
func Combine[T, U, R any](a Expression[T], b Expression[U], f func(T, U) R) (*Binary[T, U, R], error) {
	return expr.NewBinary(a, b, f)
}

// CombineN returns the lazy broadcasting node f(x0, x1, ...).
func CombineN[T, R any](f func(values []T) R, xs ...Expression[T]) (*ElementWise[T, R], error) {
	return expr.NewElementWise(f, xs...)
}

// OuterFunc returns the lazy outer combination of a and b.
func OuterFunc[T, U, R any](a Expression[T], b Expression[U], f func(T, U) R) *Outer[T, U, R] {
	return expr.NewOuter(a, b, f)
}

// OuterProduct returns the lazy outer product of a and b.
func OuterProduct[T Numeric](a, b Expression[T]) *Outer[T, T, T] { return expr.OuterMul(a, b) }

// Add returns the lazy node a + b.
func Add[T Numeric](a, b Expression[T]) (*Binary[T, T, T], error) { return expr.Add(a, b) }

// Sub returns the lazy node a - b.
func Sub[T Numeric](a, b Expression[T]) (*Binary[T, T, T], error) { return expr.Sub(a, b) }

// Mul returns the lazy node a * b.
func Mul[T Numeric](a, b Expression[T]) (*Binary[T, T, T], error) { return expr.Mul(a, b) }

// Div returns the lazy node a / b.
func Div[T Numeric](a, b Expression[T]) (*Binary[T, T, T], error) { return expr.Div(a, b) }

// Neg returns the lazy node -x.
func Neg[T Numeric](x Expression[T]) *Unary[T, T] { return expr.Neg(x) }

// Scale returns the lazy node x * s.
func Scale[T Numeric](x Expression[T], s T) *BinaryScalar[T, T, T] { return expr.MulScalar(x, s) }

// Shift returns the lazy node x + s.
func Shift[T Numeric](x Expression[T], s T) *BinaryScalar[T, T, T] { return expr.AddScalar(x, s) }

// Cast converts every element to R.
func Cast[R, T Numeric](x Expression[T]) *Unary[T, R] { return expr.Cast[R](x) }

// Equal returns the lazy node a == b.
func Equal[T comparable](a, b Expression[T]) (*Binary[T, T, bool], error) { return expr.Equal(a, b) }

// Less returns the lazy node a < b.
func Less[T cmp.Ordered](a, b Expression[T]) (*Binary[T, T, bool], error) { return expr.Less(a, b) }

// NotEqual returns the lazy node a != b.
func NotEqual[T comparable](a, b Expression[T]) (*Binary[T, T, bool], error) {
	return expr.NotEqual(a, b)
}

// LessEqual returns the lazy node a <= b.
func LessEqual[T cmp.Ordered](a, b Expression[T]) (*Binary[T, T, bool], error) {
	return expr.LessEqual(a, b)
}

// GreaterEqual returns the lazy node a >= b.
func GreaterEqual[T cmp.Ordered](a, b Expression[T]) (*Binary[T, T, bool], error) {
	return expr.GreaterEqual(a, b)
}

// Greater returns the lazy node a > b.
func Greater[T cmp.Ordered](a, b Expression[T]) (*Binary[T, T, bool], error) {
	return expr.Greater(a, b)
}

// And returns the lazy node a && b.
func And(a, b Expression[bool]) (*Binary[bool, bool, bool], error) { return expr.And(a, b) }

// Or returns the lazy node a || b.
func Or(a, b Expression[bool]) (*Binary[bool, bool, bool], error) { return expr.Or(a, b) }

// Not returns the lazy node !x.
func Not(x Expression[bool]) *Unary[bool, bool] { return expr.Not(x) }

// Where returns the lazy node cond ? a : b.
func Where[T any](cond Expression[bool], a, b Expression[T]) (*Conditional[T], error) {
	return expr.Where(cond, a, b)
}

// Exp returns the lazy node e**x.
func Exp[T Float](x Expression[T]) *Unary[T, T] { return expr.Exp(x) }

// Log returns the lazy natural logarithm of x.
func Log[T Float](x Expression[T]) *Unary[T, T] { return expr.Log(x) }

// Sqrt returns the lazy square root of x.
func Sqrt[T Float](x Expression[T]) *Unary[T, T] { return expr.Sqrt(x) }

// Abs returns the lazy absolute value of x.
func Abs[T Float](x Expression[T]) *Unary[T, T] { return expr.Abs(x) }

// Sin returns the lazy sine of x.
func Sin[T Float](x Expression[T]) *Unary[T, T] { return expr.Sin(x) }

// Cos returns the lazy cosine of x.
func Cos[T Float](x Expression[T]) *Unary[T, T] { return expr.Cos(x) }

// Pow returns the lazy node x**p.
func Pow[T Float](x Expression[T], p T) *BinaryScalar[T, T, T] { return expr.Pow(x, p) }

// Diag returns the lazy square matrix with v on diagonal k.
func Diag[T any](v Expression[T], k int) (*Diagonal[T], error) { return expr.Diag(v, k) }

// Tril returns the lazy lower triangle (j-i <= k) of the last two axes.
func Tril[T any](x Expression[T], k int) (*Triangular[T], error) { return expr.Tril(x, k) }

// Triu returns the lazy upper triangle (j-i >= k) of the last two axes.
func Triu[T any](x Expression[T], k int) (*Triangular[T], error) { return expr.Triu(x, k) }

// Dot returns the matrix product of two float64 matrices. Unlike the
// builders above it is eager.
func Dot(a, b Expression[float64]) (*Tensor[float64], error) { return linalg.Dot(a, b) }
