package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/expr"
	"github.com/born-ml/ndarray/internal/tensor"
)

func seq(t *testing.T, shape tensor.Shape) *tensor.Tensor[int] {
	t.Helper()
	r, err := tensor.Arange(0, shape.NumElements(), 1)
	require.NoError(t, err)
	v, err := r.Reshape(shape)
	require.NoError(t, err)
	return v.Copy()
}

func TestFormat(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"vector", Format[int](tensor.Vector(1, 2, 3), opts), "[1, 2, 3]"},
		{"matrix", Format[int](seq(t, tensor.Shape{2, 3}), opts), "[[0, 1, 2],\n [3, 4, 5]]"},
		{"aligned", Format[int](tensor.Vector(1, 10, 100), opts), "[  1,  10, 100]"},
		{"rank 3", Format[int](seq(t, tensor.Shape{2, 2, 2}), opts),
			"[[[0, 1],\n  [2, 3]],\n\n [[4, 5],\n  [6, 7]]]"},
		{"scalar", Format[int](tensor.Scalar(5), opts), "5"},
		{"bools", Format[bool](tensor.Vector(true, false), opts), "[ true, false]"},
		{"floats", Format[float64](tensor.Vector(0.5, 1.0/3), Options{Precision: 3, Threshold: -1, Separator: ", "}),
			"[  0.5, 0.333]"},
		{"transpose", Format[int](seq(t, tensor.Shape{2, 3}).T(), opts), "[[0, 3],\n [1, 4],\n [2, 5]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFormatEmpty(t *testing.T) {
	z, err := tensor.Zeros[float32](tensor.Shape{0, 3})
	require.NoError(t, err)
	assert.Equal(t, "[]", Format[float32](z, DefaultOptions()))
}

func TestFormatSummarizes(t *testing.T) {
	opts := Options{Precision: 6, Threshold: 5, EdgeItems: 2, Separator: ", "}
	r, err := tensor.Arange(0, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "[0, 1, ..., 8, 9]", Format[int](r, opts))

	opts.EdgeItems = 1
	assert.Equal(t, "[[ 0, ...,  9],\n ...,\n [90, ..., 99]]", Format[int](seq(t, tensor.Shape{10, 10}), opts))

	// Short arrays are never summarized.
	assert.Equal(t, "[0, 1, 2]", Format[int](tensor.Vector(0, 1, 2), opts))
}

func TestFormatLazyExpression(t *testing.T) {
	a := tensor.Vector(1.0, 2.0)
	b, err := tensor.Matrix([][]float64{{10}, {20}})
	require.NoError(t, err)
	sum, err := expr.Add[float64](a, b)
	require.NoError(t, err)
	assert.Equal(t, "[[11, 12],\n [21, 22]]", Format[float64](sum, DefaultOptions()))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFprint(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Fprint[int](&b, tensor.Vector(4, 5), DefaultOptions()))
	assert.Equal(t, "[4, 5]", b.String())

	err := Fprint[int](failingWriter{}, tensor.Vector(4, 5), DefaultOptions())
	require.Error(t, err)
}

func TestValue(t *testing.T) {
	assert.Equal(t, "3.14", Value(3.14159, 3))
	assert.Equal(t, "0.1", Value(float32(0.1), 6))
	assert.Equal(t, "-7", Value(int8(-7), 6))
	assert.Equal(t, `"x"`, Value("x", 6))
}
