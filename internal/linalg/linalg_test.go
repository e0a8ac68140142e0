package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ndarray/internal/expr"
	"github.com/born-ml/ndarray/internal/tensor"
)

func TestToDenseFromMatrixRoundTrip(t *testing.T) {
	m, err := tensor.Matrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	d, err := ToDense(m)
	require.NoError(t, err)
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 6.0, d.At(1, 2))

	back, err := FromMatrix(d)
	require.NoError(t, err)
	assert.Equal(t, m.Data(), back.Data())

	// Gonum's own transpose is read through the Matrix interface.
	tr, err := FromMatrix(d.T())
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, tr.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.Data())
}

func TestToDenseReadsViews(t *testing.T) {
	m, err := tensor.Matrix([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	d, err := ToDense(m.T())
	require.NoError(t, err)
	assert.True(t, mat.Equal(d, mat.NewDense(3, 2, []float64{1, 4, 2, 5, 3, 6})))
}

func TestToDenseRejectsNonMatrices(t *testing.T) {
	_, err := ToDense(tensor.Vector(1.0, 2.0))
	require.ErrorIs(t, err, tensor.ErrInvalidShape)

	z, err := tensor.Zeros[float64](tensor.Shape{0, 2})
	require.NoError(t, err)
	_, err = ToDense(z)
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestDot(t *testing.T) {
	a, err := tensor.Matrix([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	p, err := Dot(a, a.T())
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 11, 11, 25}, p.Data())

	eye, err := expr.Eye[float64](2)
	require.NoError(t, err)
	same, err := Dot(a, eye)
	require.NoError(t, err)
	assert.Equal(t, a.Data(), same.Data())

	col, err := tensor.Matrix([][]float64{{1}, {1}, {1}})
	require.NoError(t, err)
	_, err = Dot(a, col)
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
}
