package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Writer collects tensors and writes them as one archive on Close.
type Writer struct {
	w        io.Writer
	header   Header
	data     bytes.Buffer
	closed   bool
	Metadata map[string]string
}

// NewWriter creates a writer that emits the archive to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:      w,
		header: Header{FormatVersion: FormatVersion},
	}
}

// Add encodes e under name. The elements are copied immediately, so later
// changes to e's operands do not affect the archive.
func Add[T Element](w *Writer, name string, e tensor.Expression[T]) error {
	if w.closed {
		return ErrWriterClosed
	}
	if err := ValidateTensorName(name); err != nil {
		return err
	}
	if _, dup := w.header.Find(name); dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	values := slices.Collect(e.All())
	offset := int64(w.data.Len())
	if err := binary.Write(&w.data, byteOrder, values); err != nil {
		w.data.Truncate(int(offset))
		return fmt.Errorf("failed to encode tensor %s: %w", name, err)
	}
	w.header.Tensors = append(w.header.Tensors, TensorMeta{
		Name:   name,
		DType:  dtypeOf[T](),
		Shape:  slices.Clone(e.Shape()),
		Layout: e.Layout().String(),
		Offset: offset,
		Size:   int64(w.data.Len()) - offset,
	})
	return nil
}

// Close writes the archive. The writer cannot be used afterwards; closing
// twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	flags := uint32(0)
	if len(w.Metadata) > 0 {
		w.header.Metadata = w.Metadata
		flags |= FlagHasMetadata
	}
	if w.header.Tensors == nil {
		w.header.Tensors = []TensorMeta{}
	}
	headerJSON, err := json.Marshal(w.header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	var prefix bytes.Buffer
	prefix.WriteString(MagicBytes)
	_ = binary.Write(&prefix, byteOrder, uint32(FormatVersion))
	_ = binary.Write(&prefix, byteOrder, flags)
	_ = binary.Write(&prefix, byteOrder, uint64(len(headerJSON)))
	sum := checksum(w.data.Bytes())
	prefix.Write(sum[:])
	prefix.Write(headerJSON)
	prefix.Write(make([]byte, padding(int64(prefix.Len()))))

	if _, err := w.w.Write(prefix.Bytes()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.w.Write(w.data.Bytes()); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// WriteFile creates path and fills it through fn.
//
// Example:
//
//	err := serialization.WriteFile("state.ndar", func(w *serialization.Writer) error {
//	    return serialization.Add(w, "x", x)
//	})
func WriteFile(path string, fn func(w *Writer) error) (err error) {
	//nolint:gosec // G304: path is chosen by the caller
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	w := NewWriter(f)
	if err := fn(w); err != nil {
		return err
	}
	return w.Close()
}
