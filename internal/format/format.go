// Package format renders any tensor expression as nested-bracket text.
//
// Output for a (2, 3) integer matrix:
//
//	[[1, 2, 3],
//	 [4, 5, 6]]
//
// Large arrays are summarized: along every axis longer than 2*EdgeItems only
// the leading and trailing EdgeItems entries are shown, separated by "...".
package format

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Options controls rendering.
type Options struct {
	Precision int    // Significant digits for floating-point elements.
	Threshold int    // Summarize when the element count exceeds this; negative disables.
	EdgeItems int    // Entries kept at each end of a summarized axis.
	Separator string // Between elements of the innermost axis.
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		Precision: 6,
		Threshold: 1000,
		EdgeItems: 3,
		Separator: ", ",
	}
}

// ellipsis marks an elided run of coordinates.
const ellipsis = -1

// Format renders e as a string.
//
// Example:
//
//	t, _ := tensor.Arange(0, 6, 1)
//	fmt.Println(format.Format[int](t, format.DefaultOptions())) // [0, 1, 2, 3, 4, 5]
func Format[T any](e tensor.Expression[T], opts Options) string {
	var b strings.Builder
	_ = Fprint(&b, e, opts) // strings.Builder never fails
	return b.String()
}

// Fprint writes the rendering of e to w.
func Fprint[T any](w io.Writer, e tensor.Expression[T], opts Options) error {
	bw := bufio.NewWriter(w)
	p := printer[T]{
		e:         e,
		opts:      opts,
		shape:     e.Shape(),
		summarize: opts.Threshold >= 0 && e.Size() > opts.Threshold,
	}
	p.render(bw)
	return bw.Flush()
}

type printer[T any] struct {
	e         tensor.Expression[T]
	opts      Options
	shape     tensor.Shape
	summarize bool
	cells     map[string]string // rendered elements keyed by index
	width     int
}

// coords returns the coordinates shown along an axis of extent n.
func (p *printer[T]) coords(n int) []int {
	edge := max(p.opts.EdgeItems, 0)
	if !p.summarize || n <= 2*edge {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, 2*edge+1)
	for i := range edge {
		out = append(out, i)
	}
	out = append(out, ellipsis)
	for i := n - edge; i < n; i++ {
		out = append(out, i)
	}
	return out
}

func (p *printer[T]) render(w *bufio.Writer) {
	if p.e.Size() == 0 {
		w.WriteString("[]")
		return
	}
	// First pass: render every shown element to learn the column width.
	p.cells = make(map[string]string)
	p.visit(make(tensor.Index, 0, len(p.shape)), func(idx tensor.Index) {
		s := Value(p.e.At(idx...), p.opts.Precision)
		p.cells[key(idx)] = s
		p.width = max(p.width, utf8.RuneCountInString(s))
	})
	p.write(w, make(tensor.Index, 0, len(p.shape)))
}

// visit calls f for every shown index.
func (p *printer[T]) visit(prefix tensor.Index, f func(tensor.Index)) {
	depth := len(prefix)
	if depth == len(p.shape) {
		f(prefix)
		return
	}
	for _, c := range p.coords(p.shape[depth]) {
		if c != ellipsis {
			p.visit(append(prefix, c), f)
		}
	}
}

func (p *printer[T]) write(w *bufio.Writer, prefix tensor.Index) {
	depth := len(prefix)
	rank := len(p.shape)
	if depth == rank {
		s := p.cells[key(prefix)]
		w.WriteString(strings.Repeat(" ", p.width-utf8.RuneCountInString(s)))
		w.WriteString(s)
		return
	}

	// Rows of a matrix are separated by one newline, blocks of rows by more.
	sep := p.opts.Separator
	if depth < rank-1 {
		sep = strings.TrimRight(sep, " ") + strings.Repeat("\n", rank-depth-1) + strings.Repeat(" ", depth+1)
	}

	w.WriteByte('[')
	for i, c := range p.coords(p.shape[depth]) {
		if i > 0 {
			w.WriteString(sep)
		}
		if c == ellipsis {
			if depth == rank-1 {
				w.WriteString(strings.Repeat(" ", max(p.width-3, 0)))
			}
			w.WriteString("...")
			continue
		}
		p.write(w, append(prefix, c))
	}
	w.WriteByte(']')
}

func key(idx tensor.Index) string {
	var b strings.Builder
	for i, v := range idx {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Value renders one element: floats with precision significant digits,
// everything else with fmt's default verb.
func Value(v any, precision int) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', precision, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', precision, 32)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprint(x)
	}
}
