// Package main provides the ndarray CLI for inspecting shapes and printing
// generated arrays.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/born-ml/ndarray/tensor"
)

const version = "v0.0.1-dev"

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("ndarray: %v", err)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "ndarray - n-dimensional arrays for Go")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version                          Show version")
	fmt.Fprintln(w, "  strides   -shape S [-layout L]   Show the strides of a shape")
	fmt.Fprintln(w, "  ravel     -shape S -index I      Flat position of an index")
	fmt.Fprintln(w, "  unravel   -shape S -flat N       Index of a flat position")
	fmt.Fprintln(w, "  broadcast S1 S2 ...              Broadcast several shapes")
	fmt.Fprintln(w, "  arange    -stop N [flags]        Print a range, optionally reshaped")
	fmt.Fprintln(w, "  inspect   FILE                   List the tensors in an archive")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, `Shapes and indices use the "(2, 3, 4)" notation.`)
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		usage(w)
		return nil
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintf(w, "ndarray %s\n", version)
		return nil
	case "strides":
		return runStrides(rest, w)
	case "ravel":
		return runRavel(rest, w)
	case "unravel":
		return runUnravel(rest, w)
	case "broadcast":
		return runBroadcast(rest, w)
	case "arange":
		return runArange(rest, w)
	case "inspect":
		return runInspect(rest, w)
	case "help", "-h", "--help":
		usage(w)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseLayout(name string) (tensor.Layout, error) {
	switch strings.ToLower(name) {
	case "row", "row-major", "c":
		return tensor.RowMajor, nil
	case "col", "column", "column-major", "f":
		return tensor.ColumnMajor, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", name)
	}
}

// shapeFlags registers the -shape and -layout flags shared by several commands.
func shapeFlags(fs *flag.FlagSet) (shape, layout *string) {
	shape = fs.String("shape", "", `Shape, e.g. "(2, 3, 4)"`)
	layout = fs.String("layout", "row", "Layout: row or col")
	return shape, layout
}

func parseShapeFlags(shape, layout string) (tensor.Shape, tensor.Layout, error) {
	if shape == "" {
		return nil, 0, fmt.Errorf("-shape is required")
	}
	s, err := tensor.ParseShape(shape)
	if err != nil {
		return nil, 0, err
	}
	l, err := parseLayout(layout)
	if err != nil {
		return nil, 0, err
	}
	return s, l, nil
}

func runStrides(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("strides", flag.ContinueOnError)
	shape, layout := shapeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, l, err := parseShapeFlags(*shape, *layout)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "shape:   %v\n", s)
	fmt.Fprintf(w, "layout:  %v\n", l)
	fmt.Fprintf(w, "size:    %d\n", s.NumElements())
	fmt.Fprintf(w, "strides: %v\n", s.ComputeStrides(l))
	return nil
}

func runRavel(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("ravel", flag.ContinueOnError)
	shape, layout := shapeFlags(fs)
	index := fs.String("index", "", `Index, e.g. "(1, 2, 3)"`)
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, l, err := parseShapeFlags(*shape, *layout)
	if err != nil {
		return err
	}
	idx, err := tensor.ParseShape(*index)
	if err != nil {
		return fmt.Errorf("bad -index: %w", err)
	}
	flat, err := tensor.RavelIndex(tensor.Index(idx), s, l)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, flat)
	return nil
}

func runUnravel(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("unravel", flag.ContinueOnError)
	shape, layout := shapeFlags(fs)
	flat := fs.Int("flat", 0, "Flat position")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s, l, err := parseShapeFlags(*shape, *layout)
	if err != nil {
		return err
	}
	idx, err := tensor.UnravelIndex(*flat, s, l)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, tensor.Shape(idx))
	return nil
}

func runBroadcast(args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("broadcast needs at least one shape")
	}
	shapes := make([]tensor.Shape, 0, len(args))
	for _, a := range args {
		s, err := tensor.ParseShape(a)
		if err != nil {
			return err
		}
		shapes = append(shapes, s)
	}
	out, err := tensor.BroadcastShapes(shapes...)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)
	return nil
}

func runArange(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("arange", flag.ContinueOnError)
	start := fs.Float64("start", 0, "First value")
	stop := fs.Float64("stop", 0, "End value (exclusive)")
	step := fs.Float64("step", 1, "Step between values")
	shape := fs.String("shape", "", "Reshape the range to this shape")
	layout := fs.String("layout", "row", "Layout used by -shape: row or col")
	precision := fs.Int("precision", 6, "Significant digits")
	threshold := fs.Int("threshold", 1000, "Summarize arrays larger than this (negative disables)")
	out := fs.String("out", "", "Also store the result as \"arange\" in this archive file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := tensor.Arange(*start, *stop, *step)
	if err != nil {
		return err
	}
	var e tensor.Expression[float64] = r
	if *shape != "" {
		s, l, err := parseShapeFlags(*shape, *layout)
		if err != nil {
			return err
		}
		v, err := r.Reshape(s, l)
		if err != nil {
			return err
		}
		e = v
	}

	if *out != "" {
		if err := storeFile(*out, "arange", e); err != nil {
			return err
		}
	}

	opts := tensor.DefaultFormatOptions()
	opts.Precision = *precision
	opts.Threshold = *threshold
	if err := tensor.Fprint(w, e, opts); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func storeFile(path, name string, e tensor.Expression[float64]) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	aw := tensor.NewArchiveWriter(f)
	if err := tensor.Store(aw, name, e); err != nil {
		return err
	}
	return aw.Close()
}

func runInspect(args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("inspect needs exactly one file")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ar, err := tensor.OpenArchive(f)
	if err != nil {
		return err
	}
	header := ar.Header()
	for _, t := range header.Tensors {
		fmt.Fprintf(w, "%-20s %-8s %-14v %s\n", t.Name, t.DType, tensor.Shape(t.Shape), t.Layout)
	}
	meta := ar.Metadata()
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		fmt.Fprintf(w, "# %s = %s\n", k, meta[k])
	}
	return nil
}
