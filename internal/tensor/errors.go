package tensor

import (
	"errors"
	"fmt"

	"github.com/born-ml/ndarray/internal/algo"
)

// Error kinds. Every error returned (or panicked) by this package wraps one
// of them, so callers can test with errors.Is.
var (
	ErrOutOfRange    = errors.New("out of range")
	ErrInvalidShape  = errors.New("invalid shape")
	ErrNotContiguous = errors.New("not contiguous")
	ErrEmptySequence = algo.ErrEmptySequence
	ErrAllocation    = errors.New("allocation failure")
)

// Error describes a failed operation.
type Error struct {
	Op      string // Operation that failed (e.g. "reshape", "at")
	Err     error  // One of the Err* kinds
	Details string // Additional details
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, kind error, format string, args ...any) *Error {
	return &Error{Op: op, Err: kind, Details: fmt.Sprintf(format, args...)}
}

// wrapError attaches op to err, keeping an existing kind.
func wrapError(op string, err error) error {
	var te *Error
	if errors.As(err, &te) {
		return &Error{Op: op, Err: te.Err, Details: te.Details}
	}
	return &Error{Op: op, Err: err}
}
