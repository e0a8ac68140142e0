package tensor

import (
	"iter"
)

// strided is the element mapping shared by Tensor and View: a buffer, the
// offset of element (0, ..., 0), and one stride per axis.
type strided[T any] struct {
	data    []T
	offset  int
	shape   Shape
	strides []int
	layout  Layout
}

// Shape returns the extents. Callers must not modify the result.
func (s *strided[T]) Shape() Shape {
	return s.shape
}

// Size returns the number of elements.
func (s *strided[T]) Size() int {
	return s.shape.NumElements()
}

// Rank returns the number of axes.
func (s *strided[T]) Rank() int {
	return len(s.shape)
}

// Layout returns the traversal order.
func (s *strided[T]) Layout() Layout {
	return s.layout
}

// Strides returns the per-axis buffer strides. Callers must not modify the result.
func (s *strided[T]) Strides() []int {
	return s.strides
}

// flatOffset returns the buffer offset of index after bounds checking.
func (s *strided[T]) flatOffset(op string, index []int) (int, error) {
	if len(index) != len(s.shape) {
		return 0, newError(op, ErrOutOfRange, "expected %d indices, got %d", len(s.shape), len(index))
	}
	off := s.offset
	for i, idx := range index {
		if idx < 0 || idx >= s.shape[i] {
			return 0, newError(op, ErrOutOfRange, "index %d out of bounds for axis %d (size %d)", idx, i, s.shape[i])
		}
		off += idx * s.strides[i]
	}
	return off, nil
}

// At returns the element at the given index.
// Panics with an *Error wrapping ErrOutOfRange if the index is invalid.
//
// Example:
//
//	t, _ := tensor.Zeros[float32](tensor.Shape{3, 4})
//	value := t.At(1, 2) // Row 1, column 2
func (s *strided[T]) At(index ...int) T {
	off, err := s.flatOffset("at", index)
	if err != nil {
		panic(err)
	}
	return s.data[off]
}

// Get is the checked form of At.
func (s *strided[T]) Get(index ...int) (T, error) {
	off, err := s.flatOffset("get", index)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.data[off], nil
}

// Set sets the element at the given index.
// Panics with an *Error wrapping ErrOutOfRange if the index is invalid.
func (s *strided[T]) Set(value T, index ...int) {
	off, err := s.flatOffset("set", index)
	if err != nil {
		panic(err)
	}
	s.data[off] = value
}

// All iterates over the elements in layout order.
func (s *strided[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for off := range s.offsets() {
			if !yield(s.data[off]) {
				return
			}
		}
	}
}

// offsets yields the buffer offset of every element in layout order.
func (s *strided[T]) offsets() iter.Seq[int] {
	return func(yield func(int) bool) {
		n := s.Size()
		rank := len(s.shape)
		idx := make([]int, rank)
		off := s.offset
		for range n {
			if !yield(off) {
				return
			}
			for k := 0; k < rank; k++ {
				axis := k
				if s.layout == RowMajor {
					axis = rank - 1 - k
				}
				idx[axis]++
				off += s.strides[axis]
				if idx[axis] < s.shape[axis] {
					break
				}
				off -= s.strides[axis] * s.shape[axis]
				idx[axis] = 0
			}
		}
	}
}

// Fill sets every element to value.
func (s *strided[T]) Fill(value T) {
	for off := range s.offsets() {
		s.data[off] = value
	}
}

// Apply updates every element in place: x = op(x, src) with src broadcast
// into this shape. It is the basis of compound assignment (+=, *=, ...).
// The shape never changes; if src cannot be broadcast into it, Apply returns
// ErrInvalidShape and leaves the elements untouched.
func (s *strided[T]) Apply(src Expression[T], op func(dst, src T) T) error {
	if err := checkBroadcastInto("apply", s.shape, src.Shape()); err != nil {
		return err
	}
	// src may alias this buffer (a += a.T()), so read everything first.
	vals := gather(src, s.shape, s.layout)
	i := 0
	for off := range s.offsets() {
		s.data[off] = op(s.data[off], vals[i])
		i++
	}
	return nil
}

// assignBroadcast copies src into the elements without resizing.
func (s *strided[T]) assignBroadcast(op string, src Expression[T]) error {
	if err := checkBroadcastInto(op, s.shape, src.Shape()); err != nil {
		return err
	}
	vals := gather(src, s.shape, s.layout)
	i := 0
	for off := range s.offsets() {
		s.data[off] = vals[i]
		i++
	}
	return nil
}

// Copy returns an owning tensor with the same shape, layout and values.
func (s *strided[T]) Copy() *Tensor[T] {
	data := make([]T, 0, s.Size())
	for off := range s.offsets() {
		data = append(data, s.data[off])
	}
	return &Tensor[T]{strided[T]{
		data:    data,
		shape:   s.shape.Clone(),
		strides: s.shape.ComputeStrides(s.layout),
		layout:  s.layout,
	}}
}

// contiguousLayout reports which layout, if any, the strides describe without
// gaps. Axes of extent 1 are ignored. The own layout is preferred when both
// match (rank 1, or degenerate shapes).
func (s *strided[T]) contiguousLayout() (Layout, bool) {
	if s.Size() == 0 {
		return s.layout, true
	}
	candidates := []Layout{s.layout, 1 - s.layout}
	for _, l := range candidates {
		want := s.shape.ComputeStrides(l)
		ok := true
		for i, dim := range s.shape {
			if dim > 1 && s.strides[i] != want[i] {
				ok = false
				break
			}
		}
		if ok {
			return l, true
		}
	}
	return s.layout, false
}

// IsContiguous reports whether the elements occupy a gap-free block of the
// buffer in row-major or column-major order.
func (s *strided[T]) IsContiguous() bool {
	_, ok := s.contiguousLayout()
	return ok
}

func (s *strided[T]) view(offset int, shape Shape, strides []int, layout Layout) *View[T] {
	return &View[T]{strided[T]{
		data:    s.data,
		offset:  offset,
		shape:   shape,
		strides: strides,
		layout:  layout,
	}}
}

// View returns a view of all elements.
func (s *strided[T]) View() *View[T] {
	return s.view(s.offset, s.shape.Clone(), append([]int(nil), s.strides...), s.layout)
}

// T returns a view with the axis order reversed. For a matrix this is the
// transpose: v.At(j, i) == t.At(i, j). The layout tag flips so that
// iteration still walks memory in order.
func (s *strided[T]) T() *View[T] {
	rank := len(s.shape)
	shape := make(Shape, rank)
	strides := make([]int, rank)
	for i := range rank {
		shape[i] = s.shape[rank-1-i]
		strides[i] = s.strides[rank-1-i]
	}
	layout := s.layout
	if rank > 1 {
		layout = 1 - s.layout
	}
	return s.view(s.offset, shape, strides, layout)
}

// Transpose returns a view with axes permuted: axis i of the result is axis
// axes[i] of the receiver. With no arguments, or with the full reversal
// (rank-1, ..., 0), it is T and flips the layout tag. Any other permutation
// keeps the receiver's layout tag, so iteration follows the permuted axes.
func (s *strided[T]) Transpose(axes ...int) (*View[T], error) {
	if len(axes) == 0 {
		return s.T(), nil
	}
	rank := len(s.shape)
	if len(axes) != rank {
		return nil, newError("transpose", ErrOutOfRange, "expected %d axes, got %d", rank, len(axes))
	}
	if _, err := axisSet("transpose", rank, axes); err != nil {
		return nil, err
	}
	reversed := true
	for i, a := range axes {
		if a != rank-1-i {
			reversed = false
			break
		}
	}
	if reversed {
		return s.T(), nil
	}
	shape := make(Shape, rank)
	strides := make([]int, rank)
	for i, a := range axes {
		shape[i] = s.shape[a]
		strides[i] = s.strides[a]
	}
	return s.view(s.offset, shape, strides, s.layout), nil
}

// Diagonal returns a view of the k-th diagonal of the first two axes.
// k > 0 selects diagonals above the main one, k < 0 below.
func (s *strided[T]) Diagonal(k int) (*View[T], error) {
	return s.DiagonalAxes(k, 0, 1)
}

// DiagonalAxes returns a view of the k-th diagonal taken over axis1 and axis2.
// Those axes are removed and the diagonal is appended as the last axis.
func (s *strided[T]) DiagonalAxes(k, axis1, axis2 int) (*View[T], error) {
	rank := len(s.shape)
	if rank < 2 {
		return nil, newError("diagonal", ErrInvalidShape, "need at least 2 axes, got %d", rank)
	}
	a1, err := normalizeAxis("diagonal", axis1, rank)
	if err != nil {
		return nil, err
	}
	a2, err := normalizeAxis("diagonal", axis2, rank)
	if err != nil {
		return nil, err
	}
	if a1 == a2 {
		return nil, newError("diagonal", ErrOutOfRange, "axis1 and axis2 are both %d", a1)
	}

	offset := s.offset
	n1, n2 := s.shape[a1], s.shape[a2]
	if k >= 0 {
		n2 -= k
		if n2 > 0 {
			offset += k * s.strides[a2]
		}
	} else {
		n1 += k
		if n1 > 0 {
			offset -= k * s.strides[a1]
		}
	}
	length := max(min(n1, n2), 0)

	kept, err := s.shape.RemoveAxes(a1, a2)
	if err != nil {
		return nil, err
	}
	shape := append(kept, length)
	strides := make([]int, 0, rank-1)
	for i, st := range s.strides {
		if i != a1 && i != a2 {
			strides = append(strides, st)
		}
	}
	strides = append(strides, s.strides[a1]+s.strides[a2])
	if length == 0 {
		offset = s.offset
	}
	return s.view(offset, shape, strides, s.layout), nil
}

// Flatten returns a rank-1 view of all elements in memory order.
// Fails with ErrNotContiguous if the elements are not a gap-free block.
func (s *strided[T]) Flatten() (*View[T], error) {
	layout, ok := s.contiguousLayout()
	if !ok {
		return nil, newError("flatten", ErrNotContiguous, "strides %v for shape %v", s.strides, s.shape)
	}
	return s.view(s.offset, Shape{s.Size()}, []int{1}, layout), nil
}

// Reshape returns a view with a new shape over the same elements.
//
// The element count must not change (ErrInvalidShape) and the receiver must
// be contiguous (ErrNotContiguous). An optional layout selects the strides of
// the new view; by default the receiver's memory order is kept.
//
// Example:
//
//	t, _ := tensor.Arange[int32](0, 12, 1) // Shape: (12)
//	m, _ := t.Reshape(tensor.Shape{3, 4})  // Shape: (3, 4)
func (s *strided[T]) Reshape(shape Shape, layout ...Layout) (*View[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, wrapError("reshape", err)
	}
	if shape.NumElements() != s.Size() {
		return nil, newError("reshape", ErrInvalidShape, "cannot reshape %v (%d elements) into %v (%d elements)",
			s.shape, s.Size(), shape, shape.NumElements())
	}
	memLayout, ok := s.contiguousLayout()
	if !ok {
		return nil, newError("reshape", ErrNotContiguous, "strides %v for shape %v", s.strides, s.shape)
	}
	if len(layout) > 0 {
		memLayout = layout[0]
	}
	shape = shape.Clone()
	return s.view(s.offset, shape, shape.ComputeStrides(memLayout), memLayout), nil
}
