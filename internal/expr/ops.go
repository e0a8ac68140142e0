package expr

import (
	"cmp"
	"math"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Float is a constraint for the element types accepted by the math nodes.
type Float interface {
	~float32 | ~float64
}

// Arithmetic. All binary builders broadcast and fail with ErrInvalidShape.

// Add returns the lazy node a + b.
//
// Example:
//
//	sum, err := expr.Add[float64](a, b) // (4, 6) + (4, 1) -> (4, 6)
//	out, _ := tensor.Eval[float64](sum)
func Add[T tensor.Numeric](a, b tensor.Expression[T]) (*Binary[T, T, T], error) {
	return NewBinary(a, b, func(x, y T) T { return x + y })
}

// Sub returns the lazy node a - b.
func Sub[T tensor.Numeric](a, b tensor.Expression[T]) (*Binary[T, T, T], error) {
	return NewBinary(a, b, func(x, y T) T { return x - y })
}

// Mul returns the lazy node a * b.
func Mul[T tensor.Numeric](a, b tensor.Expression[T]) (*Binary[T, T, T], error) {
	return NewBinary(a, b, func(x, y T) T { return x * y })
}

// Div returns the lazy node a / b.
func Div[T tensor.Numeric](a, b tensor.Expression[T]) (*Binary[T, T, T], error) {
	return NewBinary(a, b, func(x, y T) T { return x / y })
}

// Neg returns the lazy node -x.
func Neg[T tensor.Numeric](x tensor.Expression[T]) *Unary[T, T] {
	return Map(x, func(v T) T { return -v })
}

// AddScalar returns the lazy node x + s.
func AddScalar[T tensor.Numeric](x tensor.Expression[T], s T) *BinaryScalar[T, T, T] {
	return NewBinaryScalar(x, s, func(v, s T) T { return v + s })
}

// SubScalar returns the lazy node x - s.
func SubScalar[T tensor.Numeric](x tensor.Expression[T], s T) *BinaryScalar[T, T, T] {
	return NewBinaryScalar(x, s, func(v, s T) T { return v - s })
}

// MulScalar returns the lazy node x * s.
func MulScalar[T tensor.Numeric](x tensor.Expression[T], s T) *BinaryScalar[T, T, T] {
	return NewBinaryScalar(x, s, func(v, s T) T { return v * s })
}

// DivScalar returns the lazy node x / s.
func DivScalar[T tensor.Numeric](x tensor.Expression[T], s T) *BinaryScalar[T, T, T] {
	return NewBinaryScalar(x, s, func(v, s T) T { return v / s })
}

// OuterMul returns the lazy outer product of a and b.
func OuterMul[T tensor.Numeric](a, b tensor.Expression[T]) *Outer[T, T, T] {
	return NewOuter(a, b, func(x, y T) T { return x * y })
}

// Cast converts every element to R.
//
// Example:
//
//	f := expr.Cast[float64](ints)
func Cast[R, T tensor.Numeric](x tensor.Expression[T]) *Unary[T, R] {
	return Map(x, func(v T) R { return R(v) })
}

// Comparisons.

// Equal returns the lazy node a == b.
func Equal[T comparable](a, b tensor.Expression[T]) (*Binary[T, T, bool], error) {
	return NewBinary(a, b, func(x, y T) bool { return x == y })
}

// NotEqual returns the lazy node a != b.
func NotEqual[T comparable](a, b tensor.Expression[T]) (*Binary[T, T, bool], error) {
	return NewBinary(a, b, func(x, y T) bool { return x != y })
}

// Less returns the lazy node a < b.
func Less[T cmp.Ordered](a, b tensor.Expression[T]) (*Binary[T, T, bool], error) {
	return NewBinary(a, b, func(x, y T) bool { return x < y })
}

// LessEqual returns the lazy node a <= b.
func LessEqual[T cmp.Ordered](a, b tensor.Expression[T]) (*Binary[T, T, bool], error) {
	return NewBinary(a, b, func(x, y T) bool { return x <= y })
}

// Greater returns the lazy node a > b.
func Greater[T cmp.Ordered](a, b tensor.Expression[T]) (*Binary[T, T, bool], error) {
	return NewBinary(a, b, func(x, y T) bool { return x > y })
}

// GreaterEqual returns the lazy node a >= b.
func GreaterEqual[T cmp.Ordered](a, b tensor.Expression[T]) (*Binary[T, T, bool], error) {
	return NewBinary(a, b, func(x, y T) bool { return x >= y })
}

// Logic.

// And returns the lazy node a && b.
func And(a, b tensor.Expression[bool]) (*Binary[bool, bool, bool], error) {
	return NewBinary(a, b, func(x, y bool) bool { return x && y })
}

// Or returns the lazy node a || b.
func Or(a, b tensor.Expression[bool]) (*Binary[bool, bool, bool], error) {
	return NewBinary(a, b, func(x, y bool) bool { return x || y })
}

// Not returns the lazy node !x.
func Not(x tensor.Expression[bool]) *Unary[bool, bool] {
	return Map(x, func(v bool) bool { return !v })
}

// Math.

func mathOp[T Float](x tensor.Expression[T], f func(float64) float64) *Unary[T, T] {
	return Map(x, func(v T) T { return T(f(float64(v))) })
}

// Exp returns the lazy node e**x.
func Exp[T Float](x tensor.Expression[T]) *Unary[T, T] { return mathOp(x, math.Exp) }

// Log returns the lazy natural logarithm of x.
func Log[T Float](x tensor.Expression[T]) *Unary[T, T] { return mathOp(x, math.Log) }

// Sqrt returns the lazy square root of x.
func Sqrt[T Float](x tensor.Expression[T]) *Unary[T, T] { return mathOp(x, math.Sqrt) }

// Sin returns the lazy sine of x.
func Sin[T Float](x tensor.Expression[T]) *Unary[T, T] { return mathOp(x, math.Sin) }

// Cos returns the lazy cosine of x.
func Cos[T Float](x tensor.Expression[T]) *Unary[T, T] { return mathOp(x, math.Cos) }

// Abs returns the lazy absolute value of x.
func Abs[T Float](x tensor.Expression[T]) *Unary[T, T] { return mathOp(x, math.Abs) }

// Pow returns the lazy node x**p.
func Pow[T Float](x tensor.Expression[T], p T) *BinaryScalar[T, T, T] {
	return NewBinaryScalar(x, p, func(v, p T) T { return T(math.Pow(float64(v), float64(p))) })
}
