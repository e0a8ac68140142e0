package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/parallel"
)

func TestAddAssignVector(t *testing.T) {
	a := Vector(11, 8, 16, 17, -2, 16, 18, -5, -4, 15)
	b := Vector(0, 1, 14, 0, 8, 3, 2, 2, 18, 0)

	require.NoError(t, AddAssign[int](a, b))
	assert.Equal(t, []int{11, 9, 30, 17, 6, 19, 20, -3, 14, 15}, a.Data())
}

func TestSubAssignColumnBroadcast(t *testing.T) {
	a, err := Matrix([][]int{
		{7, 12, 18, 8, 4, 15},
		{15, 8, -1, -2, -2, 3},
		{12, 19, 15, 5, -3, 2},
		{3, -5, 10, 13, 7, 14},
	})
	require.NoError(t, err)
	b, err := Matrix([][]int{{1}, {3}, {4}, {0}})
	require.NoError(t, err)

	require.NoError(t, SubAssign[int](a, b))
	want, err := Matrix([][]int{
		{6, 11, 17, 7, 3, 14},
		{12, 5, -4, -5, -5, 0},
		{8, 15, 11, 1, -7, -2},
		{3, -5, 10, 13, 7, 14},
	})
	require.NoError(t, err)
	assert.Equal(t, want.Data(), a.Data())
	assert.Equal(t, Shape{4, 6}, a.Shape())
}

func TestCompoundAssignBroadcastFailure(t *testing.T) {
	a, err := Zeros[int](Shape{4, 6})
	require.NoError(t, err)
	b, err := Ones[int](Shape{4, 2})
	require.NoError(t, err)

	requireKind(t, AddAssign[int](a, b), ErrInvalidShape)
	assert.Equal(t, 0, Sum[int](a), "a failed update must leave the target untouched")

	// The target never grows to the source's shape.
	big, err := Ones[int](Shape{2, 4, 6})
	require.NoError(t, err)
	requireKind(t, AddAssign[int](a, big), ErrInvalidShape)
}

func TestCompoundAssignEachElement(t *testing.T) {
	a := sequential(t, Shape{4, 6})
	b := sequential(t, Shape{4, 1})
	orig := a.Copy()

	require.NoError(t, AddAssign[int](a, b))
	for i := range 4 {
		for j := range 6 {
			assert.Equal(t, orig.At(i, j)+b.At(i, 0), a.At(i, j))
		}
	}
}

func TestScalarOps(t *testing.T) {
	a := Vector(1.0, 2.0, 4.0)
	require.NoError(t, MulScalar[float64](a, 2))
	require.NoError(t, AddScalar[float64](a, 1))
	require.NoError(t, SubScalar[float64](a, 0.5))
	require.NoError(t, DivScalar[float64](a, 2))
	assert.Equal(t, []float64{1.25, 2.25, 4.25}, a.Data())

	require.NoError(t, DivAssign[float64](a, Vector(1.25, 2.25, 4.25)))
	assert.Equal(t, []float64{1, 1, 1}, a.Data())

	require.NoError(t, MulAssign[float64](a, Vector(3.0, 4.0, 5.0)))
	assert.Equal(t, []float64{3, 4, 5}, a.Data())
}

func TestCompoundAssignThroughView(t *testing.T) {
	m := sequential(t, Shape{3, 3})
	col, err := m.Slice(SpanAll(), Pos(0))
	require.NoError(t, err)

	require.NoError(t, AddScalar[int](col, 100))
	assert.Equal(t, []int{100, 1, 2, 103, 4, 5, 106, 7, 8}, m.Data())
}

func TestCompoundAssignAliasing(t *testing.T) {
	// a += a.T() must read every element before writing any.
	a := sequential(t, Shape{2, 2})
	require.NoError(t, AddAssign[int](a, a.T()))
	assert.Equal(t, []int{0, 3, 3, 6}, a.Data())
}

func TestApplyCustomOp(t *testing.T) {
	a := Vector(3, 9, 1)
	require.NoError(t, a.Apply(Scalar(5), func(x, y int) int { return max(x, y) }))
	assert.Equal(t, []int{5, 9, 5}, a.Data())
}

func TestEval(t *testing.T) {
	m := sequential(t, Shape{2, 3})
	e, err := Eval[int](m.T())
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, e.Shape())
	assert.Equal(t, ColumnMajor, e.Layout())
	assert.Equal(t, m.At(1, 0), e.At(0, 1))
	assert.True(t, e.IsContiguous())
}

func TestEvalParallel(t *testing.T) {
	m := sequential(t, Shape{64, 33})
	want, err := Eval[int](m.T())
	require.NoError(t, err)

	configs := []parallel.Config{
		{Enabled: false},
		{Enabled: true, NumWorkers: 4, MinChunkSize: 16},
		{Enabled: true, NumWorkers: 7, MinChunkSize: 1},
	}
	for _, cfg := range configs {
		got, err := EvalParallel[int](m.T(), cfg)
		require.NoError(t, err)
		assert.Equal(t, want.Shape(), got.Shape())
		assert.Equal(t, want.Data(), got.Data())
	}
}

// panicky is an expression whose At always fails.
type panicky struct{ *Tensor[int] }

func (p panicky) At(index ...int) int {
	panic(newError("at", ErrOutOfRange, "always"))
}

func TestEvalParallelReportsPanics(t *testing.T) {
	z, err := Zeros[int](Shape{100})
	require.NoError(t, err)
	_, err = EvalParallel[int](panicky{z}, parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 10})
	requireKind(t, err, ErrOutOfRange)
}
