package tensor

import (
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Shape represents the extents of a tensor along each axis.
type Shape []int

// Index is a coordinate identifying one element of a tensor.
type Index []int

// Clone returns a copy of the index.
func (i Index) Clone() Index {
	return slices.Clone(i)
}

// Layout selects which axis varies fastest in contiguous memory.
type Layout int

// Supported layouts.
const (
	RowMajor    Layout = iota // Last axis is contiguous.
	ColumnMajor               // First axis is contiguous.
)

// DefaultLayout is the layout used by constructors that do not take one.
// FromNested ignores it and always builds row-major tensors.
var DefaultLayout = RowMajor

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1 // Scalar has 1 element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no extent is negative and that the element count
// fits in an int.
func (s Shape) Validate() error {
	n := 1
	for i, dim := range s {
		if dim < 0 {
			return newError("shape", ErrInvalidShape, "axis %d has negative extent %d", i, dim)
		}
		if dim != 0 && n > math.MaxInt/dim {
			return newError("shape", ErrAllocation, "%v overflows the element count", s)
		}
		n *= dim
	}
	return nil
}

// Equal checks if two shapes are equal. Shapes of different rank are never equal.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates the strides of a contiguous buffer with this
// shape. Row-major: stride[last] = 1 and stride[i] = product of extents after i.
// Column-major is the mirror image.
func (s Shape) ComputeStrides(layout Layout) []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	if layout == ColumnMajor {
		strides[0] = 1
		for i := 1; i < len(s); i++ {
			strides[i] = strides[i-1] * s[i-1]
		}
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// RemoveAxes returns the shape without the given axes, keeping the order of
// the remaining ones.
func (s Shape) RemoveAxes(axes ...int) (Shape, error) {
	drop, err := axisSet("remove axes", len(s), axes)
	if err != nil {
		return nil, err
	}
	out := make(Shape, 0, len(s)-len(axes))
	for i, dim := range s {
		if !drop[i] {
			out = append(out, dim)
		}
	}
	return out, nil
}

// InsertAxes returns the shape with new axes of extent 1 placed at the given
// positions of the result, keeping the order of the existing axes.
//
// Example:
//
//	Shape{3, 4}.InsertAxes(0, 2) // (1, 3, 1, 4)
func (s Shape) InsertAxes(axes ...int) (Shape, error) {
	rank := len(s) + len(axes)
	add, err := axisSet("insert axes", rank, axes)
	if err != nil {
		return nil, err
	}
	out := make(Shape, rank)
	j := 0
	for i := range out {
		if add[i] {
			out[i] = 1
			continue
		}
		out[i] = s[j]
		j++
	}
	return out, nil
}

// axisSet validates a list of distinct axes in [0, rank).
func axisSet(op string, rank int, axes []int) ([]bool, error) {
	set := make([]bool, rank)
	for _, a := range axes {
		if a < 0 || a >= rank {
			return nil, newError(op, ErrOutOfRange, "axis %d out of range for rank %d", a, rank)
		}
		if set[a] {
			return nil, newError(op, ErrOutOfRange, "axis %d repeated", a)
		}
		set[a] = true
	}
	return set, nil
}

// normalizeAxis resolves a possibly negative axis (-1 = last).
func normalizeAxis(op string, axis, rank int) (int, error) {
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return 0, newError(op, ErrOutOfRange, "axis %d out of range for rank %d", axis, rank)
	}
	return axis, nil
}

// String renders the shape as (n1, n2, ..., nk).
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, dim := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(dim))
	}
	b.WriteByte(')')
	return b.String()
}

// ParseShape parses the (n1, n2, ..., nk) notation produced by Shape.String.
// "()" is the rank-0 shape and a trailing comma is accepted, as in "(5,)".
func ParseShape(text string) (Shape, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return nil, newError("parse shape", ErrInvalidShape, "%q is not of the form (n1, ..., nk)", text)
	}
	body := strings.TrimSpace(text[1 : len(text)-1])
	if body == "" {
		return Shape{}, nil
	}
	body = strings.TrimSuffix(body, ",")

	parts := strings.Split(body, ",")
	shape := make(Shape, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, newError("parse shape", ErrInvalidShape, "extent %d: %v", i, err)
		}
		shape[i] = n
	}
	if err := shape.Validate(); err != nil {
		return nil, wrapError("parse shape", err)
	}
	return shape, nil
}

// RavelIndex converts an index into its flat position under the given layout.
func RavelIndex(index Index, shape Shape, layout Layout) (int, error) {
	if len(index) != len(shape) {
		return 0, newError("ravel", ErrOutOfRange, "expected %d indices, got %d", len(shape), len(index))
	}
	strides := shape.ComputeStrides(layout)
	flat := 0
	for i, idx := range index {
		if idx < 0 || idx >= shape[i] {
			return 0, newError("ravel", ErrOutOfRange, "index %d out of bounds for axis %d (size %d)", idx, i, shape[i])
		}
		flat += idx * strides[i]
	}
	return flat, nil
}

// UnravelIndex converts a flat position back into an index. It is the
// inverse of RavelIndex for the same shape and layout.
func UnravelIndex(flat int, shape Shape, layout Layout) (Index, error) {
	n := shape.NumElements()
	if flat < 0 || flat >= n {
		return nil, newError("unravel", ErrOutOfRange, "flat index %d out of bounds for size %d", flat, n)
	}
	index := make(Index, len(shape))
	unravelInto(index, flat, shape, layout)
	return index, nil
}

func unravelInto(index Index, flat int, shape Shape, layout Layout) {
	rank := len(shape)
	for k := 0; k < rank; k++ {
		axis := k
		if layout == RowMajor {
			axis = rank - 1 - k
		}
		index[axis] = flat % shape[axis]
		flat /= shape[axis]
	}
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
//  1. Compare shapes element-wise from right to left
//  2. Dimensions are compatible if they are equal or one of them is 1
//  3. Missing dimensions are treated as 1
//
// Three or more shapes fold from left to right and every step must be valid.
//
// Examples:
//
//	(4, 1) + (4, 6) → (4, 6)
//	(4, 6) + (4, 6) → (4, 6)
//	(4, 6) + (4, 2) → Error
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	if len(shapes) == 0 {
		return Shape{}, nil
	}
	result := shapes[0].Clone()
	for _, s := range shapes[1:] {
		var err error
		if result, err = broadcastPair(result, s); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func broadcastPair(a, b Shape) (Shape, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
		case bDim == 1:
			result[maxLen-1-i] = aDim
		default:
			return nil, newError("broadcast", ErrInvalidShape, "shapes %v and %v disagree on axis %d: %d vs %d",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, nil
}

// checkBroadcastInto verifies that src can be broadcast into dst without
// changing dst's shape.
func checkBroadcastInto(op string, dst, src Shape) error {
	out, err := BroadcastShapes(dst, src)
	if err != nil {
		return wrapError(op, err)
	}
	if !out.Equal(dst) {
		return newError(op, ErrInvalidShape, "cannot broadcast %v into %v", src, dst)
	}
	return nil
}

// BroadcastIndex maps an index into a broadcast result of higher or equal
// rank onto an operand of the given shape: axes are right-aligned and the
// coordinate is clamped to 0 wherever the operand's extent is 1. The result
// is written to out, which must have len(shape).
func BroadcastIndex(index Index, shape Shape, out Index) Index {
	offset := len(index) - len(shape)
	for i, dim := range shape {
		if dim == 1 {
			out[i] = 0
		} else {
			out[i] = index[offset+i]
		}
	}
	return out
}

// Indices returns an iterator over every index of shape in layout order:
// the last axis varies fastest for RowMajor, the first for ColumnMajor.
//
// The yielded Index is reused between iterations; Clone it to retain it.
func Indices(shape Shape, layout Layout) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		n := shape.NumElements()
		rank := len(shape)
		idx := make(Index, rank)
		for range n {
			if !yield(idx) {
				return
			}
			advance(idx, shape, layout)
		}
	}
}

// advance moves idx to the next index in layout order and returns the axis
// that was incremented without wrapping, or -1 after the last index.
func advance(idx Index, shape Shape, layout Layout) int {
	rank := len(shape)
	for k := 0; k < rank; k++ {
		axis := k
		if layout == RowMajor {
			axis = rank - 1 - k
		}
		idx[axis]++
		if idx[axis] < shape[axis] {
			return axis
		}
		idx[axis] = 0
	}
	return -1
}
