package expr

import (
	"fmt"
	"iter"
	"math"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Const is a lazy tensor with every element equal to one value.
type Const[T any] struct {
	shape  tensor.Shape
	layout tensor.Layout
	value  T
}

// Full returns a lazy constant of the given shape.
func Full[T any](shape tensor.Shape, value T) (*Const[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("full: %w", err)
	}
	return &Const[T]{shape: shape.Clone(), layout: tensor.DefaultLayout, value: value}, nil
}

func (c *Const[T]) Shape() tensor.Shape   { return c.shape }
func (c *Const[T]) Size() int             { return c.shape.NumElements() }
func (c *Const[T]) Layout() tensor.Layout { return c.layout }

func (c *Const[T]) At(index ...int) T {
	checkIndex("const at", c.shape, index)
	return c.value
}

func (c *Const[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for range c.Size() {
			if !yield(c.value) {
				return
			}
		}
	}
}

// Sequence is a lazy rank-1 progression.
type Sequence[T tensor.Numeric] struct {
	n  int
	at func(i int) T
}

// Arange returns the lazy progression start, start+step, ... below stop.
func Arange[T tensor.Numeric](start, stop, step T) (*Sequence[T], error) {
	if step == 0 {
		return nil, &tensor.Error{Op: "arange", Err: tensor.ErrInvalidShape, Details: "step must be nonzero"}
	}
	n := max(int(math.Ceil((float64(stop)-float64(start))/float64(step))), 0)
	return &Sequence[T]{n: n, at: func(i int) T { return start + T(i)*step }}, nil
}

// Linspace returns n lazily computed, evenly spaced values from start to
// stop inclusive.
func Linspace[T tensor.Numeric](start, stop T, n int) (*Sequence[T], error) {
	if n < 0 {
		return nil, &tensor.Error{Op: "linspace", Err: tensor.ErrInvalidShape, Details: fmt.Sprintf("negative count %d", n)}
	}
	delta := 0.0
	if n > 1 {
		delta = (float64(stop) - float64(start)) / float64(n-1)
	}
	return &Sequence[T]{n: n, at: func(i int) T {
		if i == n-1 && n > 1 {
			return stop
		}
		return T(float64(start) + float64(i)*delta)
	}}, nil
}

func (s *Sequence[T]) Shape() tensor.Shape   { return tensor.Shape{s.n} }
func (s *Sequence[T]) Size() int             { return s.n }
func (s *Sequence[T]) Layout() tensor.Layout { return tensor.RowMajor }

func (s *Sequence[T]) At(index ...int) T {
	checkIndex("sequence at", tensor.Shape{s.n}, index)
	return s.at(index[0])
}

func (s *Sequence[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range s.n {
			if !yield(s.at(i)) {
				return
			}
		}
	}
}

// Diagonal is a lazy square matrix holding a vector on its k-th diagonal
// and zero values elsewhere.
type Diagonal[T any] struct {
	v tensor.Expression[T]
	k int
	n int
}

// Diag returns the lazy matrix with v on diagonal k (k > 0 above the main
// diagonal, k < 0 below). v must be rank 1; the result is n×n with
// n = len(v) + |k|.
func Diag[T any](v tensor.Expression[T], k int) (*Diagonal[T], error) {
	if len(v.Shape()) != 1 {
		return nil, &tensor.Error{Op: "diag", Err: tensor.ErrInvalidShape,
			Details: fmt.Sprintf("expected a vector, got shape %v", v.Shape())}
	}
	n := v.Size() + k
	if k < 0 {
		n = v.Size() - k
	}
	return &Diagonal[T]{v: v, k: k, n: n}, nil
}

func (d *Diagonal[T]) Shape() tensor.Shape   { return tensor.Shape{d.n, d.n} }
func (d *Diagonal[T]) Size() int             { return d.n * d.n }
func (d *Diagonal[T]) Layout() tensor.Layout { return tensor.RowMajor }

func (d *Diagonal[T]) At(index ...int) T {
	checkIndex("diag at", d.Shape(), index)
	i, j := index[0], index[1]
	if j-i != d.k {
		var zero T
		return zero
	}
	return d.v.At(min(i, j))
}

func (d *Diagonal[T]) All() iter.Seq[T] { return tensor.Values[T](d) }

// Triangular keeps the elements of x on one side of diagonal k of its last
// two axes and replaces the others with zero values.
type Triangular[T any] struct {
	x     tensor.Expression[T]
	k     int
	upper bool
}

// Tril keeps elements with j-i <= k: the lower triangle for k = 0.
func Tril[T any](x tensor.Expression[T], k int) (*Triangular[T], error) {
	return newTriangular(x, k, false)
}

// Triu keeps elements with j-i >= k: the upper triangle for k = 0.
func Triu[T any](x tensor.Expression[T], k int) (*Triangular[T], error) {
	return newTriangular(x, k, true)
}

func newTriangular[T any](x tensor.Expression[T], k int, upper bool) (*Triangular[T], error) {
	if len(x.Shape()) < 2 {
		return nil, &tensor.Error{Op: "triangular", Err: tensor.ErrInvalidShape,
			Details: fmt.Sprintf("need at least 2 axes, got shape %v", x.Shape())}
	}
	return &Triangular[T]{x: x, k: k, upper: upper}, nil
}

func (t *Triangular[T]) Shape() tensor.Shape   { return t.x.Shape() }
func (t *Triangular[T]) Size() int             { return t.x.Size() }
func (t *Triangular[T]) Layout() tensor.Layout { return t.x.Layout() }

func (t *Triangular[T]) At(index ...int) T {
	checkIndex("triangular at", t.x.Shape(), index)
	r := len(index)
	d := index[r-1] - index[r-2]
	if (t.upper && d < t.k) || (!t.upper && d > t.k) {
		var zero T
		return zero
	}
	return t.x.At(index...)
}

func (t *Triangular[T]) All() iter.Seq[T] { return tensor.Values[T](t) }

// Identity is a lazy n×n identity matrix.
type Identity[T tensor.Numeric] struct {
	n int
}

// Eye returns the lazy n×n identity matrix.
func Eye[T tensor.Numeric](n int) (*Identity[T], error) {
	if n < 0 {
		return nil, &tensor.Error{Op: "eye", Err: tensor.ErrInvalidShape, Details: fmt.Sprintf("negative size %d", n)}
	}
	return &Identity[T]{n: n}, nil
}

func (e *Identity[T]) Shape() tensor.Shape   { return tensor.Shape{e.n, e.n} }
func (e *Identity[T]) Size() int             { return e.n * e.n }
func (e *Identity[T]) Layout() tensor.Layout { return tensor.RowMajor }

func (e *Identity[T]) At(index ...int) T {
	checkIndex("eye at", e.Shape(), index)
	if index[0] == index[1] {
		return 1
	}
	return 0
}

func (e *Identity[T]) All() iter.Seq[T] { return tensor.Values[T](e) }
