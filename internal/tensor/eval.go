package tensor

import (
	"github.com/born-ml/ndarray/internal/parallel"
)

// allocate returns a zeroed buffer of n elements. Sizes the runtime rejects
// are reported as ErrAllocation instead of crashing.
func allocate[T any](op string, n int) (buf []T, err error) {
	if n < 0 {
		return nil, newError(op, ErrAllocation, "negative size %d", n)
	}
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, newError(op, ErrAllocation, "%d elements: %v", n, r)
		}
	}()
	return make([]T, n), nil
}

// fromData wraps a buffer already laid out in layout order.
func fromData[T any](data []T, shape Shape, layout Layout) *Tensor[T] {
	return &Tensor[T]{strided[T]{
		data:    data,
		shape:   shape,
		strides: shape.ComputeStrides(layout),
		layout:  layout,
	}}
}

// gather evaluates src at every index of shape in layout order, broadcasting
// src into shape. The caller has already checked compatibility.
func gather[T any](src Expression[T], shape Shape, layout Layout) []T {
	out := make([]T, shape.NumElements())
	gatherInto(out, src, shape, layout)
	return out
}

func gatherInto[T any](out []T, src Expression[T], shape Shape, layout Layout) {
	srcShape := src.Shape()
	i := 0
	if srcShape.Equal(shape) {
		for idx := range Indices(shape, layout) {
			out[i] = src.At(idx...)
			i++
		}
		return
	}
	mapped := make(Index, len(srcShape))
	for idx := range Indices(shape, layout) {
		out[i] = src.At(BroadcastIndex(idx, srcShape, mapped)...)
		i++
	}
}

// Eval materializes an expression into a new tensor with the expression's
// shape and layout. Every output element is computed exactly once.
func Eval[T any](e Expression[T]) (*Tensor[T], error) {
	shape := e.Shape().Clone()
	if err := shape.Validate(); err != nil {
		return nil, wrapError("eval", err)
	}
	data, err := allocate[T]("eval", shape.NumElements())
	if err != nil {
		return nil, err
	}
	gatherInto(data, e, shape, e.Layout())
	return fromData(data, shape, e.Layout()), nil
}

// EvalParallel materializes an expression like Eval, splitting the output
// into chunks evaluated on separate goroutines when cfg.Enabled is set.
//
// It blocks until every element is written. The expression must only read
// shared state and no other goroutine may write its operands meanwhile.
func EvalParallel[T any](e Expression[T], cfg parallel.Config) (*Tensor[T], error) {
	shape := e.Shape().Clone()
	if err := shape.Validate(); err != nil {
		return nil, wrapError("eval parallel", err)
	}
	layout := e.Layout()
	data, err := allocate[T]("eval parallel", shape.NumElements())
	if err != nil {
		return nil, err
	}

	panics := make(chan any, 1)
	parallel.ForRange(len(data), func(start, end int) {
		defer func() {
			if r := recover(); r != nil {
				select {
				case panics <- r:
				default:
				}
			}
		}()
		idx := make(Index, len(shape))
		unravelInto(idx, start, shape, layout)
		for i := start; i < end; i++ {
			data[i] = e.At(idx...)
			advance(idx, shape, layout)
		}
	}, cfg)
	select {
	case r := <-panics:
		if err, ok := r.(error); ok {
			return nil, wrapError("eval parallel", err)
		}
		return nil, newError("eval parallel", ErrOutOfRange, "%v", r)
	default:
	}
	return fromData(data, shape, layout), nil
}
