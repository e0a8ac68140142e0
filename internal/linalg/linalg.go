// Package linalg bridges float64 tensor expressions and gonum dense matrices.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ndarray/internal/tensor"
)

// ToDense copies a rank-2 expression into a new gonum matrix. Any layout or
// stride pattern is accepted; the copy is always row-major.
func ToDense(e tensor.Expression[float64]) (*mat.Dense, error) {
	shape := e.Shape()
	if len(shape) != 2 {
		return nil, &tensor.Error{Op: "to dense", Err: tensor.ErrInvalidShape,
			Details: fmt.Sprintf("expected a matrix, got shape %v", shape)}
	}
	rows, cols := shape[0], shape[1]
	if rows == 0 || cols == 0 {
		return nil, &tensor.Error{Op: "to dense", Err: tensor.ErrInvalidShape,
			Details: fmt.Sprintf("gonum matrices cannot be empty, got shape %v", shape)}
	}
	data := make([]float64, 0, rows*cols)
	for idx := range tensor.Indices(shape, tensor.RowMajor) {
		data = append(data, e.At(idx...))
	}
	return mat.NewDense(rows, cols, data), nil
}

// FromMatrix copies any gonum matrix into a new row-major tensor.
func FromMatrix(m mat.Matrix) (*tensor.Tensor[float64], error) {
	rows, cols := m.Dims()
	t, err := tensor.Empty[float64](tensor.Shape{rows, cols}, tensor.RowMajor)
	if err != nil {
		return nil, err
	}
	data := t.Data()
	for i := range rows {
		for j := range cols {
			data[i*cols+j] = m.At(i, j)
		}
	}
	return t, nil
}

// Dot returns the matrix product a·b computed by gonum.
//
// Example:
//
//	a, _ := tensor.Matrix([][]float64{{1, 2}, {3, 4}})
//	p, _ := linalg.Dot(a, a.T()) // [[5, 11], [11, 25]]
func Dot(a, b tensor.Expression[float64]) (*tensor.Tensor[float64], error) {
	da, err := ToDense(a)
	if err != nil {
		return nil, fmt.Errorf("dot: %w", err)
	}
	db, err := ToDense(b)
	if err != nil {
		return nil, fmt.Errorf("dot: %w", err)
	}
	_, k := da.Dims()
	if r, _ := db.Dims(); r != k {
		return nil, &tensor.Error{Op: "dot", Err: tensor.ErrInvalidShape,
			Details: fmt.Sprintf("inner dimensions differ: %v · %v", a.Shape(), b.Shape())}
	}
	var out mat.Dense
	out.Mul(da, db)
	return FromMatrix(&out)
}
