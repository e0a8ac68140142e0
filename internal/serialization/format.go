package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/born-ml/ndarray/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "NDAR"
	FormatVersion   = 1
	HeaderAlignment = 64
	ChecksumSize    = sha256.Size
	fixedHeaderSize = 4 + 4 + 4 + 8 + ChecksumSize
)

// FlagHasMetadata is set when the header carries user metadata.
const FlagHasMetadata uint32 = 1 << 0

// Element is the set of types with a fixed-size binary encoding.
type Element interface {
	~bool | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Header is the JSON header of an archive.
type Header struct {
	FormatVersion int               `json:"format_version"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// TensorMeta describes one stored tensor.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`  // e.g. "float32", "int64"
	Shape  []int  `json:"shape"`  // extents per axis
	Layout string `json:"layout"` // "row-major" or "column-major"
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes
}

// Find returns the entry called name.
func (h *Header) Find(name string) (TensorMeta, bool) {
	for _, t := range h.Tensors {
		if t.Name == name {
			return t, true
		}
	}
	return TensorMeta{}, false
}

// dtypeOf names the element kind of T. Named types report their underlying
// kind, so a ~float32 type loads as float32.
func dtypeOf[T Element]() string {
	return reflect.TypeFor[T]().Kind().String()
}

// elemSize returns the encoded size of one element of the named kind.
func elemSize(dtype string) (int, bool) {
	switch dtype {
	case "bool", "int8", "uint8":
		return 1, true
	case "int16", "uint16":
		return 2, true
	case "int32", "uint32", "float32":
		return 4, true
	case "int64", "uint64", "float64":
		return 8, true
	default:
		return 0, false
	}
}

func parseLayout(name string) (tensor.Layout, error) {
	switch name {
	case tensor.RowMajor.String():
		return tensor.RowMajor, nil
	case tensor.ColumnMajor.String():
		return tensor.ColumnMajor, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", name)
	}
}

func checksum(data []byte) [ChecksumSize]byte {
	return sha256.Sum256(data)
}

func padding(pos int64) int64 {
	return (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment
}

var byteOrder = binary.LittleEndian
