package tensor

import (
	"cmp"
	"iter"
	"math"

	"github.com/born-ml/ndarray/internal/algo"
)

// Whole-array reductions run over e.All(), i.e. in e's layout order. They
// fail with ErrEmptySequence on zero elements, except Sum (0) and Prod (1).

// Sum returns the sum of all elements.
func Sum[T Numeric](e Expression[T]) T {
	return algo.Sum(e.All())
}

// Prod returns the product of all elements.
func Prod[T Numeric](e Expression[T]) T {
	return algo.Prod(e.All())
}

// Mean returns the arithmetic mean.
func Mean[T Numeric](e Expression[T]) (float64, error) {
	v, err := algo.Mean(e.All())
	return v, reduceError("mean", err)
}

// Var returns the variance; bias selects the divisor n instead of n-1.
func Var[T Numeric](e Expression[T], bias bool) (float64, error) {
	v, err := algo.Var(e.All(), bias)
	return v, reduceError("var", err)
}

// Std returns the standard deviation; bias selects the divisor n instead of n-1.
func Std[T Numeric](e Expression[T], bias bool) (float64, error) {
	v, err := algo.Std(e.All(), bias)
	return v, reduceError("std", err)
}

// Median returns the median element (mean of the middle two for even sizes).
func Median[T Numeric](e Expression[T]) (float64, error) {
	v, err := algo.Median(e.All())
	return v, reduceError("median", err)
}

// Quantile returns the q-th quantile, q in [0, 1].
func Quantile[T Numeric](e Expression[T], q float64, method algo.Method) (float64, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, newError("quantile", ErrOutOfRange, "q=%v outside [0, 1]", q)
	}
	v, err := algo.Quantile(e.All(), q, method)
	return v, reduceError("quantile", err)
}

// Max returns the largest element.
func Max[T cmp.Ordered](e Expression[T]) (T, error) {
	v, err := algo.Max(e.All())
	return v, reduceError("max", err)
}

// Min returns the smallest element.
func Min[T cmp.Ordered](e Expression[T]) (T, error) {
	v, err := algo.Min(e.All())
	return v, reduceError("min", err)
}

// ArgMax returns the flat position, in layout order, of the first largest
// element. UnravelIndex converts it to an Index.
func ArgMax[T cmp.Ordered](e Expression[T]) (int, error) {
	v, err := algo.ArgMax(e.All())
	return v, reduceError("argmax", err)
}

// ArgMin returns the flat position, in layout order, of the first smallest element.
func ArgMin[T cmp.Ordered](e Expression[T]) (int, error) {
	v, err := algo.ArgMin(e.All())
	return v, reduceError("argmin", err)
}

// All reports whether every element is nonzero (true for bool).
func All[T comparable](e Expression[T]) (bool, error) {
	v, err := algo.All(e.All())
	return v, reduceError("all", err)
}

// Any reports whether some element is nonzero (true for bool).
func Any[T comparable](e Expression[T]) (bool, error) {
	v, err := algo.Any(e.All())
	return v, reduceError("any", err)
}

// CountNonzero returns the number of nonzero elements.
func CountNonzero[T comparable](e Expression[T]) (int, error) {
	v, err := algo.CountNonzero(e.All())
	return v, reduceError("count nonzero", err)
}

func reduceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return wrapError(op, err)
}

// ReduceAxis applies f to every lane of e along axis and returns a tensor
// with that axis removed. Negative axes count from the end.
//
// Example:
//
//	rowMax, _ := tensor.ReduceAxis(m, -1, algo.Max[float64]) // (rows)
func ReduceAxis[T, R any](e Expression[T], axis int, f func(iter.Seq[T]) (R, error)) (*Tensor[R], error) {
	shape := e.Shape()
	ax, err := normalizeAxis("reduce axis", axis, len(shape))
	if err != nil {
		return nil, err
	}
	outShape, err := shape.RemoveAxes(ax)
	if err != nil {
		return nil, err
	}
	layout := e.Layout()
	out, err := Empty[R](outShape, layout)
	if err != nil {
		return nil, err
	}

	full := make(Index, len(shape))
	i := 0
	for idx := range Indices(outShape, layout) {
		copy(full[:ax], idx[:ax])
		copy(full[ax+1:], idx[ax:])
		lane := func(yield func(T) bool) {
			for k := range shape[ax] {
				full[ax] = k
				if !yield(e.At(full...)) {
					return
				}
			}
		}
		v, err := f(lane)
		if err != nil {
			return nil, wrapError("reduce axis", err)
		}
		out.data[i] = v
		i++
	}
	return out, nil
}

// SumAxis sums along axis.
func SumAxis[T Numeric](e Expression[T], axis int) (*Tensor[T], error) {
	return ReduceAxis(e, axis, func(s iter.Seq[T]) (T, error) { return algo.Sum(s), nil })
}

// ProdAxis multiplies along axis.
func ProdAxis[T Numeric](e Expression[T], axis int) (*Tensor[T], error) {
	return ReduceAxis(e, axis, func(s iter.Seq[T]) (T, error) { return algo.Prod(s), nil })
}

// MeanAxis averages along axis.
func MeanAxis[T Numeric](e Expression[T], axis int) (*Tensor[float64], error) {
	return ReduceAxis(e, axis, algo.Mean[T])
}

// MaxAxis takes the maximum along axis.
func MaxAxis[T cmp.Ordered](e Expression[T], axis int) (*Tensor[T], error) {
	return ReduceAxis(e, axis, algo.Max[T])
}

// MinAxis takes the minimum along axis.
func MinAxis[T cmp.Ordered](e Expression[T], axis int) (*Tensor[T], error) {
	return ReduceAxis(e, axis, algo.Min[T])
}
