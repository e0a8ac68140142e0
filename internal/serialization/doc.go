// Package serialization stores named tensors in a single checksummed binary
// archive.
//
//	Layout:
//	  [4 bytes: magic "NDAR"]
//	  [4 bytes: version (uint32 LE)]
//	  [4 bytes: flags (uint32 LE)]
//	  [8 bytes: header size (uint64 LE)]
//	  [32 bytes: SHA-256 of the data section]
//	  [header: JSON]
//	  [padding to a 64-byte boundary]
//	  [data: little-endian elements, one run per tensor]
//
// Each tensor's elements are stored in its own layout order, and the layout
// is recorded so that loading reproduces the same memory order.
//
// Example:
//
//	var buf bytes.Buffer
//	w := serialization.NewWriter(&buf)
//	_ = serialization.Add(w, "weights", weights)
//	_ = w.Close()
//
//	r, _ := serialization.NewReader(&buf, serialization.DefaultReaderOptions())
//	weights, _ := serialization.Load[float32](r, "weights")
package serialization
