package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/ndarray/internal/tensor"
)

// ReaderOptions configures NewReader.
type ReaderOptions struct {
	SkipChecksumValidation bool
	ValidationLevel        ValidationLevel
}

// DefaultReaderOptions verifies the checksum and validates strictly.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{ValidationLevel: ValidationStrict}
}

// Reader gives access to the tensors of a parsed archive.
type Reader struct {
	header Header
	flags  uint32
	data   []byte
}

// NewReader reads a whole archive from r and validates it.
func NewReader(r io.Reader, opts ReaderOptions) (*Reader, error) {
	var fixed struct {
		Magic      [4]byte
		Version    uint32
		Flags      uint32
		HeaderSize uint64
		Checksum   [ChecksumSize]byte
	}
	if err := binary.Read(r, byteOrder, &fixed); err != nil {
		return nil, fmt.Errorf("failed to read header prefix: %w", err)
	}
	if string(fixed.Magic[:]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if fixed.Version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, fixed.Version, FormatVersion)
	}
	if fixed.HeaderSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, fixed.HeaderSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	reader := &Reader{flags: fixed.Flags}
	if err := json.Unmarshal(headerBytes, &reader.header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	//nolint:gosec // G115: HeaderSize is bounded by MaxHeaderSize
	pad := padding(int64(fixedHeaderSize) + int64(fixed.HeaderSize))
	if _, err := io.CopyN(io.Discard, r, pad); err != nil {
		return nil, fmt.Errorf("failed to skip padding: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	reader.data = data

	if !opts.SkipChecksumValidation && checksum(data) != fixed.Checksum {
		return nil, ErrChecksumMismatch
	}
	if err := ValidateHeader(&reader.header, int64(len(data)), opts.ValidationLevel); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return reader, nil
}

// ReadFile opens and parses the archive at path.
func ReadFile(path string, opts ReaderOptions) (*Reader, error) {
	//nolint:gosec // G304: path is chosen by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return NewReader(f, opts)
}

// Header returns the parsed archive header.
func (r *Reader) Header() Header { return r.header }

// Names returns the stored tensor names in write order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.header.Tensors))
	for i, t := range r.header.Tensors {
		names[i] = t.Name
	}
	return names
}

// Metadata returns the user metadata, or nil.
func (r *Reader) Metadata() map[string]string {
	if r.flags&FlagHasMetadata == 0 {
		return nil
	}
	return r.header.Metadata
}

// Load decodes the tensor called name into a new tensor with the stored
// shape and layout.
func Load[T Element](r *Reader, name string) (*tensor.Tensor[T], error) {
	meta, ok := r.header.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
	}
	if want := dtypeOf[T](); meta.DType != want {
		return nil, fmt.Errorf("%w: %q holds %s, requested %s", ErrTypeMismatch, name, meta.DType, want)
	}
	layout, err := parseLayout(meta.Layout)
	if err != nil {
		return nil, err
	}
	if meta.Offset < 0 || meta.Offset+meta.Size > int64(len(r.data)) {
		return nil, &ValidationError{Type: "out_of_bounds", Tensor: name,
			Details: fmt.Sprintf("offset %d + size %d > data size %d", meta.Offset, meta.Size, len(r.data))}
	}

	t, err := tensor.Empty[T](tensor.Shape(meta.Shape), layout)
	if err != nil {
		return nil, err
	}
	raw := r.data[meta.Offset : meta.Offset+meta.Size]
	if err := binary.Read(bytes.NewReader(raw), byteOrder, t.Data()); err != nil {
		return nil, fmt.Errorf("failed to decode tensor %s: %w", name, err)
	}
	return t, nil
}
