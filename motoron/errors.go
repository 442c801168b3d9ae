package motoron

import (
	"errors"
	"fmt"
)

// ErrSerialOnly indicates that an operation which only makes sense on a
// serial bus was attempted on a different transport.
var ErrSerialOnly = errors.New("operation requires a serial transport")

// ErrReadTimeout indicates that a response did not arrive within the
// transport's read timeout.
var ErrReadTimeout = errors.New("timed out waiting for a response")

// TransportError wraps a failure of the underlying bus or port.
type TransportError struct {
	// Op is the operation that failed: "write" or "read".
	Op string
	// Err is the underlying bus or port error.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ShortResponseError indicates that a response ended before the expected
// number of bytes arrived.
type ShortResponseError struct {
	Expected int
	Actual   int
}

func (e *ShortResponseError) Error() string {
	return fmt.Sprintf("expected to read %d bytes, got %d", e.Expected, e.Actual)
}
