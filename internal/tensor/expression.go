package tensor

import (
	"fmt"
	"iter"

	"github.com/born-ml/ndarray/internal/algo"
)

// Numeric is a constraint for arithmetic element types.
type Numeric = algo.Number

// Expression is the capability shared by every array-like value: owning
// tensors, views, gather views and lazy expression nodes.
//
// Algorithms in this package accept an Expression and therefore work
// uniformly over all of them.
type Expression[T any] interface {
	// Shape returns the extents. Callers must not modify the result.
	Shape() Shape
	// Size returns the number of elements.
	Size() int
	// Layout returns the preferred traversal order.
	Layout() Layout
	// At returns the element at the given index.
	At(index ...int) T
	// All iterates over the elements in layout order.
	All() iter.Seq[T]
}

// Mutable is an Expression whose elements can be written.
type Mutable[T any] interface {
	Expression[T]
	Set(value T, index ...int)
}

// Values returns an iterator that reads every element of e through At, in
// e's layout order. Lazy expression nodes use it to implement All.
func Values[T any](e Expression[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for idx := range Indices(e.Shape(), e.Layout()) {
			if !yield(e.At(idx...)) {
				return
			}
		}
	}
}

// typeName returns the Go name of T for String methods.
func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
