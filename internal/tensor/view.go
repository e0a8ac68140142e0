package tensor

import "fmt"

// View is a non-owning strided window into another tensor's storage.
//
// Writes through a view modify the original storage. Several views may alias
// the same elements (a tensor, its transpose and its diagonal, for example);
// the relative order of writes issued through two overlapping views is
// unspecified. A view must not be used after the tensor it came from has
// been resized to a different element count.
type View[T any] struct {
	strided[T]
}

// Offset returns the buffer position of element (0, ..., 0).
func (v *View[T]) Offset() int {
	return v.offset
}

// String returns a short description, e.g. "View[float64](4, 3)".
func (v *View[T]) String() string {
	return fmt.Sprintf("View[%s]%v", typeName[T](), v.shape)
}

// Assign copies src into the viewed elements, broadcasting src into the
// view's shape. The view is never resized; an incompatible src fails with
// ErrInvalidShape.
func (v *View[T]) Assign(src Expression[T]) error {
	return v.assignBroadcast("view assign", src)
}

// MoveFrom makes v reference exactly what src referenced and resets src to
// an empty rank-1 view with no buffer. The underlying buffer is untouched.
// Moving a view into itself is a no-op.
func (v *View[T]) MoveFrom(src *View[T]) {
	if v == src {
		return
	}
	v.strided = src.strided
	src.strided = strided[T]{shape: Shape{0}, strides: []int{1}, layout: v.layout}
}
