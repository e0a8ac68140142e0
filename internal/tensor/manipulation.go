package tensor

import (
	"cmp"
	"slices"

	"github.com/born-ml/ndarray/internal/algo"
)

// In-place structural operations. Each works along one axis, independently
// for every lane (1-D line of elements) orthogonal to that axis. Negative
// axes count from the end; -1 is the last axis.

// eachLane copies every lane of x along axis into a scratch slice, lets f
// rearrange it, and writes it back.
func eachLane[T any](op string, x Mutable[T], axis int, f func(lane []T)) error {
	shape := x.Shape()
	if len(shape) == 0 {
		return nil
	}
	ax, err := normalizeAxis(op, axis, len(shape))
	if err != nil {
		return err
	}
	outer, err := shape.RemoveAxes(ax)
	if err != nil {
		return err
	}
	lane := make([]T, shape[ax])
	full := make(Index, len(shape))
	for idx := range Indices(outer, x.Layout()) {
		copy(full[:ax], idx[:ax])
		copy(full[ax+1:], idx[ax:])
		for k := range lane {
			full[ax] = k
			lane[k] = x.At(full...)
		}
		f(lane)
		for k, v := range lane {
			full[ax] = k
			x.Set(v, full...)
		}
	}
	return nil
}

// Sort sorts every lane along axis in ascending order. Equal elements may be
// reordered.
//
// Example:
//
//	m, _ := tensor.Matrix([][]int{{3, 1, 2}, {9, 7, 8}})
//	_ = tensor.Sort(m, -1) // [[1, 2, 3], [7, 8, 9]]
func Sort[T cmp.Ordered](x Mutable[T], axis int) error {
	return eachLane("sort", x, axis, slices.Sort[[]T])
}

// SortStable sorts every lane along axis, keeping equal elements in order.
func SortStable[T cmp.Ordered](x Mutable[T], axis int) error {
	return eachLane("sort", x, axis, func(lane []T) {
		slices.SortStableFunc(lane, cmp.Compare[T])
	})
}

// SortFunc sorts every lane along axis by compare, stably if requested.
func SortFunc[T any](x Mutable[T], axis int, compare func(a, b T) int, stable bool) error {
	return eachLane("sort", x, axis, func(lane []T) {
		if stable {
			slices.SortStableFunc(lane, compare)
		} else {
			slices.SortFunc(lane, compare)
		}
	})
}

// Partition rearranges every lane along axis so that position kth holds the
// element a full sort would place there, smaller or equal elements come
// before it and larger or equal ones after.
func Partition[T cmp.Ordered](x Mutable[T], kth, axis int) error {
	shape := x.Shape()
	if len(shape) > 0 {
		ax, err := normalizeAxis("partition", axis, len(shape))
		if err != nil {
			return err
		}
		if kth < 0 || kth >= shape[ax] {
			return newError("partition", ErrOutOfRange, "kth %d out of bounds for axis %d (size %d)", kth, ax, shape[ax])
		}
	}
	return eachLane("partition", x, axis, func(lane []T) {
		algo.NthElement(lane, kth, cmp.Compare[T])
	})
}

// Reverse reverses every lane along axis.
func Reverse[T any](x Mutable[T], axis int) error {
	return eachLane("reverse", x, axis, slices.Reverse[[]T])
}

// Rotate rotates every lane along axis to the left by shift: the element at
// position shift becomes the first one. Negative shifts rotate to the right
// and shifts wrap modulo the lane length.
func Rotate[T any](x Mutable[T], shift, axis int) error {
	return eachLane("rotate", x, axis, func(lane []T) {
		algo.Rotate(lane, shift)
	})
}
