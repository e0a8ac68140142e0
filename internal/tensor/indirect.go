package tensor

import (
	"fmt"
	"iter"
)

// Indirect is a gather/scatter view: an explicit list of buffer offsets, one
// per logical element, into another tensor's storage.
//
// It is produced by fancy indexing (Select, Take, Mask). Reads return the
// referenced elements in offset order and writes scatter in the same order.
// Like View it does not own the buffer.
type Indirect[T any] struct {
	data    []T
	offsets []int
	shape   Shape
	layout  Layout
}

// Shape returns the logical extents. Callers must not modify the result.
func (x *Indirect[T]) Shape() Shape {
	return x.shape
}

// Size returns the number of selected elements.
func (x *Indirect[T]) Size() int {
	return len(x.offsets)
}

// Layout returns the order in which offsets map to logical indices.
func (x *Indirect[T]) Layout() Layout {
	return x.layout
}

// Offsets returns the selected buffer offsets. Callers must not modify the result.
func (x *Indirect[T]) Offsets() []int {
	return x.offsets
}

// String returns a short description, e.g. "Indirect[int](5)".
func (x *Indirect[T]) String() string {
	return fmt.Sprintf("Indirect[%s]%v", typeName[T](), x.shape)
}

func (x *Indirect[T]) position(op string, index []int) int {
	pos, err := RavelIndex(index, x.shape, x.layout)
	if err != nil {
		panic(wrapError(op, err))
	}
	return pos
}

// At returns the selected element at the given logical index.
// Panics with an *Error wrapping ErrOutOfRange if the index is invalid.
func (x *Indirect[T]) At(index ...int) T {
	return x.data[x.offsets[x.position("at", index)]]
}

// Set writes the selected element at the given logical index.
// Panics with an *Error wrapping ErrOutOfRange if the index is invalid.
func (x *Indirect[T]) Set(value T, index ...int) {
	x.data[x.offsets[x.position("set", index)]] = value
}

// All iterates over the selected elements in offset order.
func (x *Indirect[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, off := range x.offsets {
			if !yield(x.data[off]) {
				return
			}
		}
	}
}

// Fill writes value to every selected element.
func (x *Indirect[T]) Fill(value T) {
	for _, off := range x.offsets {
		x.data[off] = value
	}
}

// Assign scatters src, broadcast into the selection's shape, to the selected
// elements in offset order.
func (x *Indirect[T]) Assign(src Expression[T]) error {
	return x.Apply(src, func(_, v T) T { return v })
}

// Apply updates every selected element: x = op(x, src) with src broadcast
// into the selection's shape. Repeated offsets are updated once per
// occurrence.
func (x *Indirect[T]) Apply(src Expression[T], op func(dst, src T) T) error {
	if err := checkBroadcastInto("indirect apply", x.shape, src.Shape()); err != nil {
		return err
	}
	vals := gather(src, x.shape, x.layout)
	for i, off := range x.offsets {
		x.data[off] = op(x.data[off], vals[i])
	}
	return nil
}

// Copy returns an owning tensor holding the selected elements.
func (x *Indirect[T]) Copy() *Tensor[T] {
	data := make([]T, len(x.offsets))
	for i, off := range x.offsets {
		data[i] = x.data[off]
	}
	shape := x.shape.Clone()
	return &Tensor[T]{strided[T]{
		data:    data,
		shape:   shape,
		strides: shape.ComputeStrides(x.layout),
		layout:  x.layout,
	}}
}

// Select gathers the elements at the given coordinates. The result has the
// shape of coords; every coordinate must have Rank() components within
// bounds, otherwise the offending coordinate is reported as ErrOutOfRange.
//
// Example:
//
//	picks := tensor.Vector(tensor.Index{0, 1}, tensor.Index{2, 3})
//	sel, _ := m.Select(picks)
//	sel.Fill(0) // zeroes m(0,1) and m(2,3)
func (s *strided[T]) Select(coords Expression[Index]) (*Indirect[T], error) {
	shape := coords.Shape().Clone()
	offsets := make([]int, 0, shape.NumElements())
	for idx := range Indices(shape, coords.Layout()) {
		off, err := s.flatOffset("select", coords.At(idx...))
		if err != nil {
			return nil, err
		}
		offsets = append(offsets, off)
	}
	return &Indirect[T]{data: s.data, offsets: offsets, shape: shape, layout: coords.Layout()}, nil
}

// Take gathers elements by flat position in the receiver's layout order.
// The result has the shape of positions.
func (s *strided[T]) Take(positions Expression[int]) (*Indirect[T], error) {
	shape := positions.Shape().Clone()
	offsets := make([]int, 0, shape.NumElements())
	index := make(Index, len(s.shape))
	n := s.Size()
	for idx := range Indices(shape, positions.Layout()) {
		p := positions.At(idx...)
		if p < 0 || p >= n {
			return nil, newError("take", ErrOutOfRange, "position %d out of bounds for size %d", p, n)
		}
		unravelInto(index, p, s.shape, s.layout)
		off, _ := s.flatOffset("take", index)
		offsets = append(offsets, off)
	}
	return &Indirect[T]{data: s.data, offsets: offsets, shape: shape, layout: positions.Layout()}, nil
}

// Mask gathers the elements where mask is true, in the mask's own iteration
// order, as a rank-1 selection. The mask must have exactly the receiver's
// shape (ErrInvalidShape otherwise).
func (s *strided[T]) Mask(mask Expression[bool]) (*Indirect[T], error) {
	if !mask.Shape().Equal(s.shape) {
		return nil, newError("mask", ErrInvalidShape, "mask shape %v does not match %v", mask.Shape(), s.shape)
	}
	var offsets []int
	for idx := range Indices(s.shape, mask.Layout()) {
		if !mask.At(idx...) {
			continue
		}
		off, _ := s.flatOffset("mask", idx)
		offsets = append(offsets, off)
	}
	return &Indirect[T]{data: s.data, offsets: offsets, shape: Shape{len(offsets)}, layout: s.layout}, nil
}

// SelectCopy returns a new tensor holding the elements of e at coords.
// It is the read-only form of Select and works for any expression,
// including lazy ones.
func SelectCopy[T any](e Expression[T], coords Expression[Index]) (*Tensor[T], error) {
	shape := coords.Shape().Clone()
	data := make([]T, 0, shape.NumElements())
	for idx := range Indices(shape, coords.Layout()) {
		c := coords.At(idx...)
		if _, err := RavelIndex(c, e.Shape(), e.Layout()); err != nil {
			return nil, wrapError("select copy", err)
		}
		data = append(data, e.At(c...))
	}
	return fromData(data, shape, coords.Layout()), nil
}

// MaskCopy returns a rank-1 tensor holding the elements of e where mask is
// true. It is the read-only form of Mask.
func MaskCopy[T any](e Expression[T], mask Expression[bool]) (*Tensor[T], error) {
	if !mask.Shape().Equal(e.Shape()) {
		return nil, newError("mask copy", ErrInvalidShape, "mask shape %v does not match %v", mask.Shape(), e.Shape())
	}
	var data []T
	for idx := range Indices(e.Shape(), mask.Layout()) {
		if mask.At(idx...) {
			data = append(data, e.At(idx...))
		}
	}
	return fromData(data, Shape{len(data)}, DefaultLayout), nil
}
