package algo

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
)

// ErrInvalidQuantile is returned when a quantile lies outside [0, 1].
var ErrInvalidQuantile = errors.New("quantile must be in [0, 1]")

// Method selects how Quantile combines the two order statistics that bracket
// the requested position.
type Method int

// Interpolation methods, named after their NumPy counterparts.
const (
	Linear Method = iota
	Lower
	Higher
	Nearest
	Midpoint
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Linear:
		return "linear"
	case Lower:
		return "lower"
	case Higher:
		return "higher"
	case Nearest:
		return "nearest"
	case Midpoint:
		return "midpoint"
	default:
		return "unknown"
	}
}

// ParseMethod converts a method name into a Method.
func ParseMethod(name string) (Method, error) {
	for m := Linear; m <= Midpoint; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation method %q", name)
}

// Median returns the middle value of the sequence. For an even number of
// elements it is the mean of the two middle values.
func Median[T Number](seq iter.Seq[T]) (float64, error) {
	return Quantile(seq, 0.5, Linear)
}

// Quantile returns the q-th quantile of the sequence.
//
// The sequence is copied into a scratch buffer and the order statistics are
// found with NthElement, so the expected cost is linear.
func Quantile[T Number](seq iter.Seq[T], q float64, method Method) (float64, error) {
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidQuantile, q)
	}
	scratch := slices.Collect(seq)
	n := len(scratch)
	if n == 0 {
		return 0, ErrEmptySequence
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)

	cmpT := func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	NthElement(scratch, lo, cmpT)
	loVal := float64(scratch[lo])
	hiVal := loVal
	if hi > lo {
		// Everything after lo is >= scratch[lo]; the next order statistic is their minimum.
		hiVal = float64(slices.MinFunc(scratch[lo+1:], cmpT))
	}

	switch method {
	case Lower:
		return loVal, nil
	case Higher:
		return hiVal, nil
	case Nearest:
		if frac > 0.5 || (frac == 0.5 && lo%2 == 1) {
			return hiVal, nil
		}
		return loVal, nil
	case Midpoint:
		return (loVal + hiVal) / 2, nil
	case Linear:
		return loVal + (hiVal-loVal)*frac, nil
	default:
		return 0, fmt.Errorf("unknown interpolation method %d", int(method))
	}
}

// NthElement rearranges s so that s[n] holds the element that would be there
// if s were sorted, every element before n compares <= s[n] and every element
// after compares >= s[n]. It panics if n is out of range.
func NthElement[T any](s []T, n int, cmp func(a, b T) int) {
	if n < 0 || n >= len(s) {
		panic(fmt.Sprintf("nth element: index %d out of range [0, %d)", n, len(s)))
	}
	lo, hi := 0, len(s)-1
	for hi-lo > 16 {
		p := partition(s, lo, hi, cmp)
		switch {
		case p == n:
			return
		case n < p:
			hi = p - 1
		default:
			lo = p + 1
		}
	}
	insertionSort(s[lo:hi+1], cmp)
}

// partition places a median-of-three pivot at its final position within
// s[lo:hi+1] and returns that position.
func partition[T any](s []T, lo, hi int, cmp func(a, b T) int) int {
	mid := lo + (hi-lo)/2
	if cmp(s[mid], s[lo]) < 0 {
		s[mid], s[lo] = s[lo], s[mid]
	}
	if cmp(s[hi], s[lo]) < 0 {
		s[hi], s[lo] = s[lo], s[hi]
	}
	if cmp(s[hi], s[mid]) < 0 {
		s[hi], s[mid] = s[mid], s[hi]
	}
	// Pivot now at mid; park it at hi-1 and partition the interior.
	s[mid], s[hi-1] = s[hi-1], s[mid]
	pivot := s[hi-1]
	i, j := lo, hi-1
	for {
		for i++; cmp(s[i], pivot) < 0; i++ {
		}
		for j--; cmp(pivot, s[j]) < 0; j-- {
		}
		if i >= j {
			break
		}
		s[i], s[j] = s[j], s[i]
	}
	s[i], s[hi-1] = s[hi-1], s[i]
	return i
}

func insertionSort[T any](s []T, cmp func(a, b T) int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && cmp(s[j], s[j-1]) < 0; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Rotate rotates s left by k positions, so that s[k] becomes the first
// element. Negative k rotates right. k is reduced modulo len(s).
func Rotate[T any](s []T, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}
