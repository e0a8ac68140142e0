// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"io"

	"github.com/born-ml/ndarray/internal/serialization"
)

// Element is a constraint for the element types that can be archived.
type Element = serialization.Element

// ArchiveWriter collects named tensors and writes them on Close.
type ArchiveWriter = serialization.Writer

// ArchiveReader reads named tensors from an archive.
type ArchiveReader = serialization.Reader

// ArchiveOptions controls checksum and header validation on read.
type ArchiveOptions = serialization.ReaderOptions

// Archive errors.
var (
	ErrChecksumMismatch = serialization.ErrChecksumMismatch
	ErrTensorNotFound   = serialization.ErrTensorNotFound
	ErrTypeMismatch     = serialization.ErrTypeMismatch
)

// NewArchiveWriter creates an archive writer targeting w.
//
// Example:
//
//	aw := tensor.NewArchiveWriter(f)
//	_ = tensor.Store[float32](aw, "weights", w)
//	_ = aw.Close()
func NewArchiveWriter(w io.Writer) *ArchiveWriter {
	return serialization.NewWriter(w)
}

// Store copies the elements of e into the archive under name.
func Store[T Element](aw *ArchiveWriter, name string, e Expression[T]) error {
	return serialization.Add(aw, name, e)
}

// OpenArchive reads and verifies a whole archive from r.
func OpenArchive(r io.Reader) (*ArchiveReader, error) {
	return serialization.NewReader(r, serialization.DefaultReaderOptions())
}

// OpenArchiveWithOptions is OpenArchive with explicit validation settings.
func OpenArchiveWithOptions(r io.Reader, opts ArchiveOptions) (*ArchiveReader, error) {
	return serialization.NewReader(r, opts)
}

// Load decodes the tensor stored under name.
func Load[T Element](ar *ArchiveReader, name string) (*Tensor[T], error) {
	return serialization.Load[T](ar, name)
}
