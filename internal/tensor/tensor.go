// Package tensor provides the core array types: owning tensors, strided
// views, gather/scatter views, and the Expression interface they share.
//
// Lifetime contract: views, gather views and lazy expressions reference the
// buffer of the tensor they were created from. Resizing that tensor to a
// different element count allocates a new buffer; outstanding views keep
// pointing at the old one and no longer observe the tensor. Nothing in this
// package locks; concurrent writers, or a writer concurrent with readers of
// an aliasing view, must be serialized by the caller.
package tensor

import (
	"fmt"
)

// Tensor is an owning n-dimensional array with contiguous storage.
//
// The buffer always holds exactly Shape().NumElements() elements laid out
// according to Layout().
//
// Example:
//
//	t, _ := tensor.Zeros[float64](tensor.Shape{3, 4})
//	t.Set(1.5, 0, 2)
//	col := t.T() // (4, 3) view sharing t's storage
type Tensor[T any] struct {
	strided[T]
}

// Data returns the underlying buffer in layout order (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T]) Data() []T {
	return t.data
}

// String returns a short description, e.g. "Tensor[float64](3, 4)".
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v", typeName[T](), t.shape)
}

// Resize changes the shape, and optionally the layout, of the tensor.
//
// If the element count changes, a new buffer is allocated: previous contents
// are not preserved and every outstanding view is invalidated. If the count
// is unchanged, the buffer is kept and only its interpretation changes, so
// the flat element values stay in place. On error t is left unchanged.
func (t *Tensor[T]) Resize(shape Shape, layout ...Layout) error {
	if err := shape.Validate(); err != nil {
		return wrapError("resize", err)
	}
	l := t.layout
	if len(layout) > 0 {
		l = layout[0]
	}
	data := t.data
	if n := shape.NumElements(); n != len(t.data) {
		var err error
		if data, err = allocate[T]("resize", n); err != nil {
			return err
		}
	}
	shape = shape.Clone()
	t.data, t.layout, t.shape, t.strides = data, l, shape, shape.ComputeStrides(l)
	return nil
}

// Assign replaces the contents of t with src.
//
// t is first resized to src's exact shape (keeping t's layout), then every
// element is copied. This differs from View.Assign, which never resizes and
// broadcasts src into the view's shape instead.
func (t *Tensor[T]) Assign(src Expression[T]) error {
	shape := src.Shape().Clone()
	if err := shape.Validate(); err != nil {
		return wrapError("assign", err)
	}
	// Evaluate before touching t: src may read from t's own buffer.
	vals, err := allocate[T]("assign", shape.NumElements())
	if err != nil {
		return err
	}
	gatherInto(vals, src, shape, t.layout)
	if len(vals) == len(t.data) {
		copy(t.data, vals)
	} else {
		t.data = vals
	}
	t.shape = shape
	t.strides = shape.ComputeStrides(t.layout)
	return nil
}
