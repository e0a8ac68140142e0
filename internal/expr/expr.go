// Package expr implements lazy elementwise expressions over tensors.
//
// A node stores references to its operands and a function; nothing is
// computed when the node is built. Every At call recomputes its element from
// the operands' current values, so a node observes later writes to the
// tensors it references and never caches results.
//
// Materialize a node with tensor.Eval, Tensor.Assign or View.Assign.
// Nodes must not outlive the validity of their operands: after an operand
// tensor is resized to a new element count, the node reads stale storage.
package expr

import (
	"fmt"
	"iter"

	"github.com/born-ml/ndarray/internal/tensor"
)

// checkIndex panics with an out-of-range *tensor.Error unless index lies
// inside shape.
func checkIndex(op string, shape tensor.Shape, index []int) {
	if len(index) != len(shape) {
		panic(&tensor.Error{Op: op, Err: tensor.ErrOutOfRange,
			Details: fmt.Sprintf("expected %d indices, got %d", len(shape), len(index))})
	}
	for i, idx := range index {
		if idx < 0 || idx >= shape[i] {
			panic(&tensor.Error{Op: op, Err: tensor.ErrOutOfRange,
				Details: fmt.Sprintf("index %d out of bounds for axis %d (size %d)", idx, i, shape[i])})
		}
	}
}

// operand is one input of a broadcasting node.
type operand struct {
	shape tensor.Shape
	same  bool // shape equals the node's shape, no index mapping needed
}

func newOperand(shape, out tensor.Shape) operand {
	return operand{shape: shape, same: shape.Equal(out)}
}

// index maps a node index onto the operand.
func (o operand) index(index []int) []int {
	if o.same {
		return index
	}
	return tensor.BroadcastIndex(index, o.shape, make(tensor.Index, len(o.shape)))
}

// Unary applies f to every element of x.
type Unary[T, R any] struct {
	x tensor.Expression[T]
	f func(T) R
}

// Map returns the lazy node f(x).
//
// Example:
//
//	half := expr.Map(t, func(v float64) float64 { return v / 2 })
func Map[T, R any](x tensor.Expression[T], f func(T) R) *Unary[T, R] {
	return &Unary[T, R]{x: x, f: f}
}

func (u *Unary[T, R]) Shape() tensor.Shape   { return u.x.Shape() }
func (u *Unary[T, R]) Size() int             { return u.x.Size() }
func (u *Unary[T, R]) Layout() tensor.Layout { return u.x.Layout() }

// At computes f at index.
func (u *Unary[T, R]) At(index ...int) R {
	return u.f(u.x.At(index...))
}

// All maps f over x's own iteration, which has the same order.
func (u *Unary[T, R]) All() iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range u.x.All() {
			if !yield(u.f(v)) {
				return
			}
		}
	}
}

// Binary combines two operands elementwise with broadcasting.
type Binary[T, U, R any] struct {
	a     tensor.Expression[T]
	b     tensor.Expression[U]
	f     func(T, U) R
	shape tensor.Shape
	oa    operand
	ob    operand
}

// NewBinary returns the lazy node f(a, b). The shape is the broadcast of the
// operand shapes; incompatible shapes fail here with ErrInvalidShape.
func NewBinary[T, U, R any](a tensor.Expression[T], b tensor.Expression[U], f func(T, U) R) (*Binary[T, U, R], error) {
	shape, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("binary: %w", err)
	}
	return &Binary[T, U, R]{
		a:     a,
		b:     b,
		f:     f,
		shape: shape,
		oa:    newOperand(a.Shape(), shape),
		ob:    newOperand(b.Shape(), shape),
	}, nil
}

func (n *Binary[T, U, R]) Shape() tensor.Shape   { return n.shape }
func (n *Binary[T, U, R]) Size() int             { return n.shape.NumElements() }
func (n *Binary[T, U, R]) Layout() tensor.Layout { return n.a.Layout() }

// At computes f(a, b) at index.
func (n *Binary[T, U, R]) At(index ...int) R {
	checkIndex("binary at", n.shape, index)
	return n.f(n.a.At(n.oa.index(index)...), n.b.At(n.ob.index(index)...))
}

func (n *Binary[T, U, R]) All() iter.Seq[R] { return tensor.Values[R](n) }

// BinaryScalar combines every element of x with a fixed value.
type BinaryScalar[T, S, R any] struct {
	x tensor.Expression[T]
	s S
	f func(T, S) R
}

// NewBinaryScalar returns the lazy node f(x, s).
func NewBinaryScalar[T, S, R any](x tensor.Expression[T], s S, f func(T, S) R) *BinaryScalar[T, S, R] {
	return &BinaryScalar[T, S, R]{x: x, s: s, f: f}
}

func (n *BinaryScalar[T, S, R]) Shape() tensor.Shape   { return n.x.Shape() }
func (n *BinaryScalar[T, S, R]) Size() int             { return n.x.Size() }
func (n *BinaryScalar[T, S, R]) Layout() tensor.Layout { return n.x.Layout() }

func (n *BinaryScalar[T, S, R]) At(index ...int) R {
	return n.f(n.x.At(index...), n.s)
}

func (n *BinaryScalar[T, S, R]) All() iter.Seq[R] {
	return func(yield func(R) bool) {
		for v := range n.x.All() {
			if !yield(n.f(v, n.s)) {
				return
			}
		}
	}
}

// Outer combines every element of a with every element of b. The result has
// rank a.Rank()+b.Rank(): the leading axes index a, the trailing ones b.
type Outer[T, U, R any] struct {
	a     tensor.Expression[T]
	b     tensor.Expression[U]
	f     func(T, U) R
	shape tensor.Shape
	split int
}

// NewOuter returns the lazy outer combination of a and b.
//
// Example:
//
//	table := expr.NewOuter(rows, cols, func(i, j int) int { return i * j })
func NewOuter[T, U, R any](a tensor.Expression[T], b tensor.Expression[U], f func(T, U) R) *Outer[T, U, R] {
	shape := make(tensor.Shape, 0, len(a.Shape())+len(b.Shape()))
	shape = append(shape, a.Shape()...)
	shape = append(shape, b.Shape()...)
	return &Outer[T, U, R]{a: a, b: b, f: f, shape: shape, split: len(a.Shape())}
}

func (n *Outer[T, U, R]) Shape() tensor.Shape   { return n.shape }
func (n *Outer[T, U, R]) Size() int             { return n.shape.NumElements() }
func (n *Outer[T, U, R]) Layout() tensor.Layout { return n.a.Layout() }

func (n *Outer[T, U, R]) At(index ...int) R {
	checkIndex("outer at", n.shape, index)
	return n.f(n.a.At(index[:n.split]...), n.b.At(index[n.split:]...))
}

func (n *Outer[T, U, R]) All() iter.Seq[R] { return tensor.Values[R](n) }

// ElementWise combines any number of same-typed operands with broadcasting.
type ElementWise[T, R any] struct {
	xs    []tensor.Expression[T]
	ops   []operand
	f     func(values []T) R
	shape tensor.Shape
}

// NewElementWise returns the lazy node f(x0, x1, ...). f receives a fresh
// slice holding one value per operand. At least one operand is required.
func NewElementWise[T, R any](f func(values []T) R, xs ...tensor.Expression[T]) (*ElementWise[T, R], error) {
	if len(xs) == 0 {
		return nil, &tensor.Error{Op: "elementwise", Err: tensor.ErrInvalidShape, Details: "no operands"}
	}
	shapes := make([]tensor.Shape, len(xs))
	for i, x := range xs {
		shapes[i] = x.Shape()
	}
	shape, err := tensor.BroadcastShapes(shapes...)
	if err != nil {
		return nil, fmt.Errorf("elementwise: %w", err)
	}
	ops := make([]operand, len(xs))
	for i, s := range shapes {
		ops[i] = newOperand(s, shape)
	}
	return &ElementWise[T, R]{xs: xs, ops: ops, f: f, shape: shape}, nil
}

func (n *ElementWise[T, R]) Shape() tensor.Shape   { return n.shape }
func (n *ElementWise[T, R]) Size() int             { return n.shape.NumElements() }
func (n *ElementWise[T, R]) Layout() tensor.Layout { return n.xs[0].Layout() }

func (n *ElementWise[T, R]) At(index ...int) R {
	checkIndex("elementwise at", n.shape, index)
	values := make([]T, len(n.xs))
	for i, x := range n.xs {
		values[i] = x.At(n.ops[i].index(index)...)
	}
	return n.f(values)
}

func (n *ElementWise[T, R]) All() iter.Seq[R] { return tensor.Values[R](n) }

// Conditional picks from a where cond is true and from b elsewhere.
type Conditional[T any] struct {
	cond   tensor.Expression[bool]
	a, b   tensor.Expression[T]
	shape  tensor.Shape
	oc     operand
	oa, ob operand
}

// Where returns the lazy node cond ? a : b, broadcasting all three.
// Only the selected branch is read for each element.
func Where[T any](cond tensor.Expression[bool], a, b tensor.Expression[T]) (*Conditional[T], error) {
	shape, err := tensor.BroadcastShapes(cond.Shape(), a.Shape(), b.Shape())
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	return &Conditional[T]{
		cond:  cond,
		a:     a,
		b:     b,
		shape: shape,
		oc:    newOperand(cond.Shape(), shape),
		oa:    newOperand(a.Shape(), shape),
		ob:    newOperand(b.Shape(), shape),
	}, nil
}

func (n *Conditional[T]) Shape() tensor.Shape   { return n.shape }
func (n *Conditional[T]) Size() int             { return n.shape.NumElements() }
func (n *Conditional[T]) Layout() tensor.Layout { return n.cond.Layout() }

func (n *Conditional[T]) At(index ...int) T {
	checkIndex("where at", n.shape, index)
	if n.cond.At(n.oc.index(index)...) {
		return n.a.At(n.oa.index(index)...)
	}
	return n.b.At(n.ob.index(index)...)
}

func (n *Conditional[T]) All() iter.Seq[T] { return tensor.Values[T](n) }
