package tensor

// Selector picks part of one axis in Slice: a Pos collapses the axis, a
// Range keeps it with a new extent.
type Selector interface {
	// resolve returns the first coordinate, resulting extent and step for an
	// axis of the given extent, and whether the axis is kept.
	resolve(op string, axis, extent int) (start, length, step int, keep bool, err error)
}

// Pos selects a single coordinate and removes the axis from the result.
// Out-of-range positions are an error.
type Pos int

func (p Pos) resolve(op string, axis, extent int) (int, int, int, bool, error) {
	if int(p) < 0 || int(p) >= extent {
		return 0, 0, 0, false, newError(op, ErrOutOfRange, "index %d out of bounds for axis %d (size %d)", int(p), axis, extent)
	}
	return int(p), 1, 1, false, nil
}

// Range selects the coordinates start, start+step, ... below stop and keeps
// the axis. Bounds outside [0, extent] are clipped silently, unlike Pos.
type Range struct {
	start, stop, step int
	open              bool // stop is the axis extent
}

// Span selects [start, stop).
func Span(start, stop int) Range {
	return Range{start: start, stop: stop, step: 1}
}

// SpanStep selects [start, stop) taking every step-th coordinate.
func SpanStep(start, stop, step int) Range {
	return Range{start: start, stop: stop, step: step}
}

// SpanFrom selects [start, extent).
func SpanFrom(start int) Range {
	return Range{start: start, step: 1, open: true}
}

// SpanAll selects the whole axis.
func SpanAll() Range {
	return Range{step: 1, open: true}
}

func (r Range) resolve(op string, axis, extent int) (int, int, int, bool, error) {
	if r.step <= 0 {
		return 0, 0, 0, false, newError(op, ErrOutOfRange, "step %d on axis %d must be positive", r.step, axis)
	}
	stop := r.stop
	if r.open {
		stop = extent
	}
	start := min(max(r.start, 0), extent)
	stop = min(max(stop, 0), extent)
	length := 0
	if stop > start {
		length = (stop - start + r.step - 1) / r.step
	}
	return start, length, r.step, true, nil
}

// Slice returns a view selected by one Selector per leading axis; missing
// trailing selectors select whole axes. Each Pos removes its axis, so the
// result has rank Rank() minus the number of Pos selectors.
//
// Example:
//
//	row, _ := m.Slice(tensor.Pos(1))                      // second row
//	block, _ := m.Slice(tensor.Span(0, 2), tensor.SpanFrom(3))
func (s *strided[T]) Slice(selectors ...Selector) (*View[T], error) {
	if len(selectors) > len(s.shape) {
		return nil, newError("slice", ErrOutOfRange, "%d selectors for rank %d", len(selectors), len(s.shape))
	}
	offset := s.offset
	shape := make(Shape, 0, len(s.shape))
	strides := make([]int, 0, len(s.shape))
	for axis, dim := range s.shape {
		var sel Selector = SpanAll()
		if axis < len(selectors) && selectors[axis] != nil {
			sel = selectors[axis]
		}
		start, length, step, keep, err := sel.resolve("slice", axis, dim)
		if err != nil {
			return nil, err
		}
		if length > 0 {
			offset += start * s.strides[axis]
		}
		if keep {
			shape = append(shape, length)
			strides = append(strides, s.strides[axis]*step)
		}
	}
	return s.view(offset, shape, strides, s.layout), nil
}
