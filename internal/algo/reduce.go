// Package algo provides reductions and selection algorithms over generic
// element sequences.
//
// Every function consumes an iter.Seq, so the same code serves owning
// tensors, strided views, gather views and lazy expressions alike.
package algo

import (
	"cmp"
	"errors"
	"iter"
	"math"
)

// Number is a constraint for arithmetic element types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// ErrEmptySequence is returned by reductions that need at least one element.
var ErrEmptySequence = errors.New("empty sequence")

// Sum returns the sum of all elements. The sum of an empty sequence is 0.
func Sum[T Number](seq iter.Seq[T]) T {
	var total T
	for v := range seq {
		total += v
	}
	return total
}

// Prod returns the product of all elements. The product of an empty sequence is 1.
func Prod[T Number](seq iter.Seq[T]) T {
	total := T(1)
	for v := range seq {
		total *= v
	}
	return total
}

// Mean returns the arithmetic mean, accumulated in float64.
func Mean[T Number](seq iter.Seq[T]) (float64, error) {
	var sum float64
	n := 0
	for v := range seq {
		sum += float64(v)
		n++
	}
	if n == 0 {
		return 0, ErrEmptySequence
	}
	return sum / float64(n), nil
}

// Var returns the variance of the sequence.
//
// With bias set the divisor is n (maximum likelihood estimate), otherwise n-1.
// The unbiased variance of a single element is NaN, as in NumPy.
func Var[T Number](seq iter.Seq[T], bias bool) (float64, error) {
	// Welford's online update keeps the sequence single-pass.
	var mean, m2 float64
	n := 0
	for v := range seq {
		n++
		x := float64(v)
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	if n == 0 {
		return 0, ErrEmptySequence
	}
	if bias {
		return m2 / float64(n), nil
	}
	if n == 1 {
		return math.NaN(), nil
	}
	return m2 / float64(n-1), nil
}

// Std returns the standard deviation, the square root of Var.
func Std[T Number](seq iter.Seq[T], bias bool) (float64, error) {
	v, err := Var(seq, bias)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Max returns the largest element.
func Max[T cmp.Ordered](seq iter.Seq[T]) (T, error) {
	_, v, err := extreme(seq, func(a, b T) bool { return a > b })
	return v, err
}

// Min returns the smallest element.
func Min[T cmp.Ordered](seq iter.Seq[T]) (T, error) {
	_, v, err := extreme(seq, func(a, b T) bool { return a < b })
	return v, err
}

// ArgMax returns the position of the first largest element in iteration order.
func ArgMax[T cmp.Ordered](seq iter.Seq[T]) (int, error) {
	i, _, err := extreme(seq, func(a, b T) bool { return a > b })
	return i, err
}

// ArgMin returns the position of the first smallest element in iteration order.
func ArgMin[T cmp.Ordered](seq iter.Seq[T]) (int, error) {
	i, _, err := extreme(seq, func(a, b T) bool { return a < b })
	return i, err
}

func extreme[T any](seq iter.Seq[T], better func(a, b T) bool) (int, T, error) {
	var best T
	bestIdx := -1
	i := 0
	for v := range seq {
		if bestIdx < 0 || better(v, best) {
			best = v
			bestIdx = i
		}
		i++
	}
	if bestIdx < 0 {
		return 0, best, ErrEmptySequence
	}
	return bestIdx, best, nil
}

// All reports whether every element differs from the zero value.
func All[T comparable](seq iter.Seq[T]) (bool, error) {
	var zero T
	n := 0
	all := true
	for v := range seq {
		n++
		if v == zero {
			all = false
		}
	}
	if n == 0 {
		return false, ErrEmptySequence
	}
	return all, nil
}

// Any reports whether at least one element differs from the zero value.
func Any[T comparable](seq iter.Seq[T]) (bool, error) {
	count, err := CountNonzero(seq)
	return count > 0, err
}

// CountNonzero returns how many elements differ from the zero value.
func CountNonzero[T comparable](seq iter.Seq[T]) (int, error) {
	var zero T
	n, count := 0, 0
	for v := range seq {
		n++
		if v != zero {
			count++
		}
	}
	if n == 0 {
		return 0, ErrEmptySequence
	}
	return count, nil
}
