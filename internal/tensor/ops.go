package tensor

// Updater is implemented by Tensor, View and Indirect: anything whose
// elements can be combined in place with a broadcast source.
type Updater[T any] interface {
	Apply(src Expression[T], op func(dst, src T) T) error
}

// AddAssign performs dst += src. src must broadcast into dst's shape;
// dst is never resized.
//
// Example:
//
//	a, _ := tensor.Zeros[int](tensor.Shape{4, 6})
//	b, _ := tensor.Ones[int](tensor.Shape{4, 1})
//	_ = tensor.AddAssign(a, b) // every a(i, j) += b(i, 0)
func AddAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return dst.Apply(src, func(a, b T) T { return a + b })
}

// SubAssign performs dst -= src with broadcasting.
func SubAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return dst.Apply(src, func(a, b T) T { return a - b })
}

// MulAssign performs dst *= src with broadcasting.
func MulAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return dst.Apply(src, func(a, b T) T { return a * b })
}

// DivAssign performs dst /= src with broadcasting. Integer division by zero
// panics as in plain Go.
func DivAssign[T Numeric](dst Updater[T], src Expression[T]) error {
	return dst.Apply(src, func(a, b T) T { return a / b })
}

// AddScalar performs dst += value.
func AddScalar[T Numeric](dst Updater[T], value T) error {
	return AddAssign(dst, Scalar(value))
}

// SubScalar performs dst -= value.
func SubScalar[T Numeric](dst Updater[T], value T) error {
	return SubAssign(dst, Scalar(value))
}

// MulScalar performs dst *= value.
func MulScalar[T Numeric](dst Updater[T], value T) error {
	return MulAssign(dst, Scalar(value))
}

// DivScalar performs dst /= value.
func DivScalar[T Numeric](dst Updater[T], value T) error {
	return DivAssign(dst, Scalar(value))
}
