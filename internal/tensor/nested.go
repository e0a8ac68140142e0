package tensor

import (
	"reflect"
)

// FromNested creates a tensor from nested Go slices ([]T, [][]T, [][][]T, ...).
// The nesting depth of the argument's type is the rank.
//
// Ragged input is accepted: the extent of each axis is the longest slice
// found at that depth anywhere in the input, and shorter branches are padded
// with zero values. The result is always row-major, whatever DefaultLayout is.
//
// Example:
//
//	m, _ := tensor.FromNested[int]([][]int{{1, 2, 3}, {4}})
//	// (2, 3): [[1, 2, 3], [4, 0, 0]]
func FromNested[T any](nested any) (*Tensor[T], error) {
	elem := reflect.TypeFor[T]()
	v := reflect.ValueOf(nested)
	if !v.IsValid() {
		return nil, newError("from nested", ErrInvalidShape, "nil input")
	}

	rank := 0
	for typ := v.Type(); typ != elem; typ = typ.Elem() {
		if typ.Kind() != reflect.Slice && typ.Kind() != reflect.Array {
			return nil, newError("from nested", ErrInvalidShape, "%s is not a nesting of %s", v.Type(), elem)
		}
		rank++
	}

	// First pass: the largest extent seen at each depth.
	shape := make(Shape, rank)
	var measure func(v reflect.Value, depth int)
	measure = func(v reflect.Value, depth int) {
		if depth == rank {
			return
		}
		shape[depth] = max(shape[depth], v.Len())
		for i := range v.Len() {
			measure(v.Index(i), depth+1)
		}
	}
	measure(v, 0)

	t, err := Empty[T](shape, RowMajor)
	if err != nil {
		return nil, wrapError("from nested", err)
	}

	// Second pass: copy leaves; missing positions keep their zero value.
	var fill func(v reflect.Value, depth, base int)
	fill = func(v reflect.Value, depth, base int) {
		if depth == rank {
			t.data[base] = v.Interface().(T)
			return
		}
		for i := range v.Len() {
			fill(v.Index(i), depth+1, base+i*t.strides[depth])
		}
	}
	fill(v, 0, 0)
	return t, nil
}
