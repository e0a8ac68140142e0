package expr

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/tensor"
)

func mustMatrix[T any](t *testing.T, rows [][]T) *tensor.Tensor[T] {
	t.Helper()
	m, err := tensor.Matrix(rows)
	require.NoError(t, err)
	return m
}

func eval[T any](t *testing.T, e tensor.Expression[T]) *tensor.Tensor[T] {
	t.Helper()
	out, err := tensor.Eval(e)
	require.NoError(t, err)
	return out
}

func requirePanicOutOfRange(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, tensor.ErrOutOfRange), "got %v", err)
	}()
	f()
}

func TestLazyNodesDoNotCache(t *testing.T) {
	a := tensor.Vector(1, 2, 3)
	b := tensor.Vector(10, 20, 30)
	sum, err := Add[int](a, b)
	require.NoError(t, err)

	assert.Equal(t, 22, sum.At(1))
	a.Set(100, 1)
	assert.Equal(t, 120, sum.At(1))
	b.Set(0, 1)
	assert.Equal(t, 100, sum.At(1))
}

func TestBinaryBroadcast(t *testing.T) {
	a := mustMatrix(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	col := mustMatrix(t, [][]int{{10}, {20}})
	row := tensor.Vector(100, 200, 300)

	s, err := Add[int](a, col)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, s.Shape())
	assert.Equal(t, 6, s.Size())
	assert.Equal(t, []int{11, 12, 13, 24, 25, 26}, slices.Collect(s.All()))

	outer, err := Add[int](col, row)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, outer.Shape())
	assert.Equal(t, []int{110, 210, 310, 120, 220, 320}, eval[int](t, outer).Data())

	sc, err := Mul[int](a, tensor.Scalar(2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6, 8, 10, 12}, eval[int](t, sc).Data())

	requirePanicOutOfRange(t, func() { s.At(2, 0) })
	requirePanicOutOfRange(t, func() { s.At(0) })
}

func TestBinaryShapeMismatchFailsAtConstruction(t *testing.T) {
	a, err := tensor.Zeros[int](tensor.Shape{4, 6})
	require.NoError(t, err)
	b, err := tensor.Zeros[int](tensor.Shape{4, 2})
	require.NoError(t, err)

	_, err = Add[int](a, b)
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
	_, err = Less[int](a, b)
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
	_, err = NewElementWise(func(v []int) int { return v[0] }, tensor.Expression[int](a), b)
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
	_, err = Where[int](tensor.Scalar(true), a, b)
	require.ErrorIs(t, err, tensor.ErrInvalidShape)

	var te *tensor.Error
	require.True(t, errors.As(err, &te))
}

func TestArithmeticBuilders(t *testing.T) {
	a := tensor.Vector(8.0, 6.0, -4.0)
	b := tensor.Vector(2.0, 3.0, 4.0)

	sub, err := Sub[float64](a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 3, -8}, eval[float64](t, sub).Data())

	div, err := Div[float64](a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2, -1}, eval[float64](t, div).Data())

	assert.Equal(t, []float64{-8, -6, 4}, eval[float64](t, Neg[float64](a)).Data())
	assert.Equal(t, []float64{9, 7, -3}, eval[float64](t, AddScalar[float64](a, 1)).Data())
	assert.Equal(t, []float64{7, 5, -5}, eval[float64](t, SubScalar[float64](a, 1)).Data())
	assert.Equal(t, []float64{16, 12, -8}, eval[float64](t, MulScalar[float64](a, 2)).Data())
	assert.Equal(t, []float64{4, 3, -2}, eval[float64](t, DivScalar[float64](a, 2)).Data())
}

func TestNestedExpression(t *testing.T) {
	// (a + b) * 2 - a, built without materializing intermediates.
	a := tensor.Vector(1, 2, 3)
	b := tensor.Vector(4, 5, 6)
	sum, err := Add[int](a, b)
	require.NoError(t, err)
	scaled := MulScalar[int](sum, 2)
	diff, err := Sub[int](scaled, a)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 12, 15}, eval[int](t, diff).Data())
}

func TestComparisonsAndLogic(t *testing.T) {
	a := tensor.Vector(1, 5, 3)
	b := tensor.Vector(2, 5, 1)

	lt, err := Less[int](a, b)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, slices.Collect(lt.All()))

	le, err := LessEqual[int](a, b)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, slices.Collect(le.All()))

	gt, err := Greater[int](a, b)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true}, slices.Collect(gt.All()))

	ge, err := GreaterEqual[int](a, b)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, slices.Collect(ge.All()))

	eq, err := Equal[int](a, b)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, slices.Collect(eq.All()))

	ne, err := NotEqual[int](a, b)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, slices.Collect(ne.All()))

	and, err := And(lt, ne)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, false}, slices.Collect(and.All()))

	or, err := Or(lt, gt)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, slices.Collect(or.All()))

	assert.Equal(t, []bool{false, true, true}, slices.Collect(Not(lt).All()))

	// A lazy mask selects through the owning tensor.
	sel, err := a.Mask(gt)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, slices.Collect(sel.All()))

	n, err := tensor.CountNonzero[bool](ge)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWhere(t *testing.T) {
	x := mustMatrix(t, [][]float64{{-1, 2}, {3, -4}})
	zero := tensor.Scalar(0.0)
	pos, err := Greater[float64](x, zero)
	require.NoError(t, err)

	relu, err := Where[float64](pos, x, zero)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 3, 0}, eval[float64](t, relu).Data())
}

func TestElementWise(t *testing.T) {
	a := tensor.Vector(1, 2, 3)
	b := mustMatrix(t, [][]int{{10}, {20}})
	c := tensor.Scalar(1000)

	sum3, err := NewElementWise(func(v []int) int { return v[0] + v[1] + v[2] },
		tensor.Expression[int](a), b, c)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, sum3.Shape())
	assert.Equal(t, []int{1011, 1012, 1013, 1021, 1022, 1023}, eval[int](t, sum3).Data())

	_, err = NewElementWise[int, int](func(v []int) int { return 0 })
	require.ErrorIs(t, err, tensor.ErrInvalidShape)
}

func TestOuter(t *testing.T) {
	a := tensor.Vector(1, 2, 3)
	b := tensor.Vector(10, 20)

	o := OuterMul[int](a, b)
	assert.Equal(t, tensor.Shape{3, 2}, o.Shape())
	assert.Equal(t, []int{10, 20, 20, 40, 30, 60}, eval[int](t, o).Data())

	m := mustMatrix(t, [][]int{{1, 2}, {3, 4}})
	o3 := NewOuter(m, b, func(x, y int) int { return x + y })
	assert.Equal(t, tensor.Shape{2, 2, 2}, o3.Shape())
	assert.Equal(t, 23, o3.At(1, 0, 1))

	requirePanicOutOfRange(t, func() { o.At(3, 0) })
}

func TestMapCastMath(t *testing.T) {
	ints := tensor.Vector(1, 4, 9)
	f := Cast[float64](ints)
	assert.Equal(t, []float64{1, 4, 9}, slices.Collect(f.All()))

	r := Sqrt[float64](f)
	assert.Equal(t, []float64{1, 2, 3}, eval[float64](t, r).Data())

	strs := Map(ints, func(v int) string { return string(rune('a' + v)) })
	assert.Equal(t, []string{"b", "e", "j"}, slices.Collect(strs.All()))

	x := tensor.Vector(0.0, 1.0)
	assert.InDeltaSlice(t, []float64{1, math.E}, eval[float64](t, Exp[float64](x)).Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{0, math.Sin(1)}, eval[float64](t, Sin[float64](x)).Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{1, math.Cos(1)}, eval[float64](t, Cos[float64](x)).Data(), 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1}, eval[float64](t, Log[float64](Exp[float64](x))).Data(), 1e-12)
	assert.Equal(t, []float64{2, 3}, eval[float64](t, Abs[float64](tensor.Vector(-2.0, 3.0))).Data())
	assert.Equal(t, []float32{1, 8, 27}, eval[float32](t, Pow[float32](tensor.Vector[float32](1, 2, 3), 3)).Data())
}

func TestTransposeOperand(t *testing.T) {
	m := mustMatrix(t, [][]int{{1, 2}, {3, 4}})
	sym, err := Add[int](m, m.T())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 5, 8}, eval[int](t, sym).Data())
}

func TestAssignLazyIntoTensorAndView(t *testing.T) {
	a := tensor.Vector(1, 2, 3)
	b := tensor.Vector(4, 5, 6)
	sum, err := Add[int](a, b)
	require.NoError(t, err)

	// Assigning an expression that reads the target is safe.
	require.NoError(t, a.Assign(sum))
	assert.Equal(t, []int{5, 7, 9}, a.Data())

	m, err := tensor.Zeros[int](tensor.Shape{2, 3})
	require.NoError(t, err)
	row, err := m.Slice(tensor.Pos(1))
	require.NoError(t, err)
	seq, err := Arange(0, 3, 1)
	require.NoError(t, err)
	require.NoError(t, row.Assign(MulScalar[int](seq, 10)))
	assert.Equal(t, []int{0, 0, 0, 0, 10, 20}, m.Data())

	require.NoError(t, tensor.AddAssign[int](m, seq))
	assert.Equal(t, []int{0, 1, 2, 0, 11, 22}, m.Data())
}

func TestGenerators(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		c, err := Full(tensor.Shape{2, 2}, 7)
		require.NoError(t, err)
		assert.Equal(t, []int{7, 7, 7, 7}, slices.Collect(c.All()))
		assert.Equal(t, 7, c.At(1, 1))
		requirePanicOutOfRange(t, func() { c.At(2, 0) })

		_, err = Full(tensor.Shape{-1}, 0)
		require.ErrorIs(t, err, tensor.ErrInvalidShape)
	})

	t.Run("arange", func(t *testing.T) {
		s, err := Arange(2, 11, 3)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{3}, s.Shape())
		assert.Equal(t, []int{2, 5, 8}, slices.Collect(s.All()))
		assert.Equal(t, 8, s.At(2))
		requirePanicOutOfRange(t, func() { s.At(3) })

		_, err = Arange(0, 1, 0)
		require.ErrorIs(t, err, tensor.ErrInvalidShape)
	})

	t.Run("linspace", func(t *testing.T) {
		s, err := Linspace(0.0, 1.0, 3)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0.5, 1}, eval[float64](t, s).Data())

		one, err := Linspace(5.0, 9.0, 1)
		require.NoError(t, err)
		assert.Equal(t, []float64{5}, slices.Collect(one.All()))
	})

	t.Run("diag", func(t *testing.T) {
		v := tensor.Vector(1, 2)
		d, err := Diag[int](v, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0, 0, 2}, eval[int](t, d).Data())

		up, err := Diag[int](v, 1)
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{3, 3}, up.Shape())
		assert.Equal(t, []int{0, 1, 0, 0, 0, 2, 0, 0, 0}, eval[int](t, up).Data())

		down, err := Diag[int](v, -1)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 1, 0, 0, 0, 2, 0}, eval[int](t, down).Data())

		_, err = Diag[int](mustMatrix(t, [][]int{{1}}), 0)
		require.ErrorIs(t, err, tensor.ErrInvalidShape)
	})

	t.Run("triangular", func(t *testing.T) {
		m := mustMatrix(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
		lo, err := Tril[int](m, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0, 0, 4, 5, 0, 7, 8, 9}, eval[int](t, lo).Data())

		hi, err := Triu[int](m, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 3, 0, 0, 6, 0, 0, 0}, eval[int](t, hi).Data())

		_, err = Tril[int](tensor.Vector(1, 2), 0)
		require.ErrorIs(t, err, tensor.ErrInvalidShape)
	})

	t.Run("eye", func(t *testing.T) {
		e, err := Eye[float64](3)
		require.NoError(t, err)
		want, err := tensor.Eye[float64](3)
		require.NoError(t, err)
		assert.Equal(t, want.Data(), eval[float64](t, e).Data())

		_, err = Eye[int](-1)
		require.ErrorIs(t, err, tensor.ErrInvalidShape)
	})
}

func TestReductionsOverLazyNodes(t *testing.T) {
	s, err := Arange(1, 5, 1)
	require.NoError(t, err)
	sq := Map(s, func(v int) int { return v * v })

	assert.Equal(t, 30, tensor.Sum[int](sq))
	mean, err := tensor.Mean[int](sq)
	require.NoError(t, err)
	assert.Equal(t, 7.5, mean)

	o := OuterMul[int](s, s)
	rows, err := tensor.SumAxis[int](o, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30, 40}, rows.Data())
}
