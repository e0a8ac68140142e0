package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	m := sequential(t, Shape{4, 6})

	t.Run("position collapses axis", func(t *testing.T) {
		row, err := m.Slice(Pos(2))
		require.NoError(t, err)
		assert.Equal(t, Shape{6}, row.Shape())
		assert.Equal(t, []int{12, 13, 14, 15, 16, 17}, collect[int](row))

		col, err := m.Slice(SpanAll(), Pos(1))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 7, 13, 19}, collect[int](col))

		el, err := m.Slice(Pos(3), Pos(5))
		require.NoError(t, err)
		assert.Equal(t, 0, el.Rank())
		assert.Equal(t, 23, el.At())
	})

	t.Run("ranges", func(t *testing.T) {
		block, err := m.Slice(Span(1, 3), SpanFrom(4))
		require.NoError(t, err)
		assert.Equal(t, Shape{2, 2}, block.Shape())
		assert.Equal(t, []int{10, 11, 16, 17}, collect[int](block))

		stepped, err := m.Slice(SpanStep(0, 4, 3), SpanStep(1, 6, 2))
		require.NoError(t, err)
		assert.Equal(t, Shape{2, 3}, stepped.Shape())
		assert.Equal(t, []int{1, 3, 5, 19, 21, 23}, collect[int](stepped))
	})

	t.Run("range bounds are clipped", func(t *testing.T) {
		v, err := m.Slice(Span(-5, 100))
		require.NoError(t, err)
		assert.Equal(t, Shape{4, 6}, v.Shape())

		v, err = m.Slice(Span(10, 20))
		require.NoError(t, err)
		assert.Equal(t, Shape{0, 6}, v.Shape())

		v, err = m.Slice(Span(3, 1))
		require.NoError(t, err)
		assert.Equal(t, 0, v.Size())
	})

	t.Run("position out of range is an error", func(t *testing.T) {
		_, err := m.Slice(Pos(4))
		requireKind(t, err, ErrOutOfRange)
		_, err = m.Slice(SpanAll(), Pos(-1))
		requireKind(t, err, ErrOutOfRange)
		_, err = m.Slice(SpanStep(0, 4, 0))
		requireKind(t, err, ErrOutOfRange)
		_, err = m.Slice(Pos(0), Pos(0), Pos(0))
		requireKind(t, err, ErrOutOfRange)
	})

	t.Run("writes alias the owner", func(t *testing.T) {
		m := sequential(t, Shape{4, 6})
		v, err := m.Slice(Span(0, 2), Span(0, 2))
		require.NoError(t, err)
		v.Fill(-1)
		assert.Equal(t, -1, m.At(1, 1))
		assert.Equal(t, 2, m.At(0, 2))
	})

	t.Run("slice of a slice", func(t *testing.T) {
		inner, err := m.Slice(Span(1, 4), Span(1, 5))
		require.NoError(t, err)
		sub, err := inner.Slice(Pos(1), SpanStep(0, 4, 2))
		require.NoError(t, err)
		assert.Equal(t, []int{13, 15}, collect[int](sub))
	})
}

func TestViewAssignBroadcasts(t *testing.T) {
	m := sequential(t, Shape{3, 4})
	v, err := m.Slice(Span(0, 2))
	require.NoError(t, err)

	require.NoError(t, v.Assign(Vector(9, 8, 7, 6)))
	assert.Equal(t, Shape{2, 4}, v.Shape())
	assert.Equal(t, []int{9, 8, 7, 6, 9, 8, 7, 6, 8, 9, 10, 11}, m.Data())

	err = v.Assign(Vector(1, 2, 3))
	requireKind(t, err, ErrInvalidShape)

	// A view is never resized, unlike a tensor.
	err = v.Assign(sequential(t, Shape{3, 4}))
	requireKind(t, err, ErrInvalidShape)
}

func TestViewAssignOverlapping(t *testing.T) {
	v := sequential(t, Shape{5})
	head, err := v.Slice(Span(1, 5))
	require.NoError(t, err)
	tail, err := v.Slice(Span(0, 4))
	require.NoError(t, err)

	// Shift right by one: every read happens before any write.
	require.NoError(t, head.Assign(tail))
	assert.Equal(t, []int{0, 0, 1, 2, 3}, v.Data())
}

func TestMoveFrom(t *testing.T) {
	m := sequential(t, Shape{2, 3})
	src := m.T()
	var dst View[int]
	dst.MoveFrom(src)

	assert.Equal(t, Shape{3, 2}, dst.Shape())
	assert.Equal(t, m.At(1, 2), dst.At(2, 1))
	assert.Equal(t, 0, src.Size())
	assert.Equal(t, Shape{0}, src.Shape())
	assert.Empty(t, collect[int](src))

	dst.Set(50, 0, 0)
	assert.Equal(t, 50, m.At(0, 0))
}

func TestMoveFromSelf(t *testing.T) {
	m := sequential(t, Shape{2, 3})
	v, err := m.Transpose(0, 1)
	require.NoError(t, err)

	v.MoveFrom(v)
	assert.Equal(t, Shape{2, 3}, v.Shape())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, collect[int](v))
	v.Set(-1, 1, 2)
	assert.Equal(t, -1, m.At(1, 2))
}

func TestSelect(t *testing.T) {
	m := sequential(t, Shape{3, 4})
	coords := Vector(Index{0, 1}, Index{2, 3}, Index{1, 0})

	sel, err := m.Select(coords)
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, sel.Shape())
	assert.Equal(t, []int{1, 11, 4}, collect[int](sel))
	assert.Equal(t, 11, sel.At(1))

	sel.Fill(0)
	assert.Equal(t, 0, m.At(0, 1))
	assert.Equal(t, 0, m.At(2, 3))
	assert.Equal(t, 0, m.At(1, 0))
	assert.Equal(t, 2, m.At(0, 2))

	require.NoError(t, sel.Assign(Vector(7, 8, 9)))
	assert.Equal(t, 8, m.At(2, 3))

	require.NoError(t, AddScalar[int](sel, 1))
	assert.Equal(t, 10, m.At(1, 0))

	sel.Set(-3, 2)
	assert.Equal(t, -3, m.At(1, 0))
	requirePanicKind(t, ErrOutOfRange, func() { sel.At(3) })

	_, err = m.Select(Vector(Index{0, 4}))
	requireKind(t, err, ErrOutOfRange)
	_, err = m.Select(Vector(Index{0}))
	requireKind(t, err, ErrOutOfRange)
}

func TestSelectOnView(t *testing.T) {
	m := sequential(t, Shape{3, 4})
	sel, err := m.T().Select(Vector(Index{3, 2}, Index{0, 1}))
	require.NoError(t, err)
	assert.Equal(t, []int{11, 4}, collect[int](sel))
}

func TestTake(t *testing.T) {
	m := sequential(t, Shape{3, 4})
	positions, err := FromSlice([]int{0, 5, 11, 6}, Shape{2, 2})
	require.NoError(t, err)

	tk, err := m.T().Take(positions)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 2}, tk.Shape())
	// Positions follow the transpose's own (column-major) order, which walks
	// memory sequentially.
	assert.Equal(t, []int{0, 5, 11, 6}, collect[int](tk))

	_, err = m.Take(Vector(12))
	requireKind(t, err, ErrOutOfRange)
}

func TestMask(t *testing.T) {
	m := sequential(t, Shape{2, 3})
	mask, err := FromNested[bool]([][]bool{{true, false, true}, {false, true, false}})
	require.NoError(t, err)

	sel, err := m.Mask(mask)
	require.NoError(t, err)
	assert.Equal(t, Shape{3}, sel.Shape())
	assert.Equal(t, []int{0, 2, 4}, collect[int](sel))

	require.NoError(t, MulScalar[int](sel, 10))
	assert.Equal(t, []int{0, 1, 20, 3, 40, 5}, m.Data())

	copied := sel.Copy()
	copied.Set(-1, 0)
	assert.Equal(t, 0, m.At(0, 0))

	bad, err := Zeros[bool](Shape{3, 2})
	require.NoError(t, err)
	_, err = m.Mask(bad)
	requireKind(t, err, ErrInvalidShape)

	none, err := Zeros[bool](Shape{2, 3})
	require.NoError(t, err)
	empty, err := m.Mask(none)
	require.NoError(t, err)
	assert.Equal(t, Shape{0}, empty.Shape())
	assert.Empty(t, collect[int](empty))
}

func TestMaskOrderFollowsMask(t *testing.T) {
	m := sequential(t, Shape{2, 2})
	mask, err := Full(Shape{2, 2}, true)
	require.NoError(t, err)

	sel, err := m.Mask(mask.T())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1, 3}, collect[int](sel))
}

func TestSelectCopyMaskCopy(t *testing.T) {
	m := sequential(t, Shape{3, 4})

	c, err := SelectCopy[int](m, Vector(Index{1, 1}, Index{2, 0}))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 8}, c.Data())
	c.Set(0, 0)
	assert.Equal(t, 5, m.At(1, 1))

	_, err = SelectCopy[int](m, Vector(Index{3, 0}))
	requireKind(t, err, ErrOutOfRange)

	mask, err := Full(Shape{3, 4}, false)
	require.NoError(t, err)
	mask.Set(true, 2, 2)
	mask.Set(true, 0, 3)
	mc, err := MaskCopy[int](m, mask)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 10}, mc.Data())

	_, err = MaskCopy[int](m, Vector(true))
	requireKind(t, err, ErrInvalidShape)
}
