// Package serial provides the byte-level transport used by the protocol
// engine: a line-oriented serial port abstraction and a concrete
// implementation backed by go.bug.st/serial.
//
// The protocol engine only depends on the Port interface, so tests (and
// callers with unusual transports) can substitute their own implementation.
package serial

import (
	"errors"
	"time"
)

// Sentinel errors for the serial transport.
var (
	// ErrNotOpen indicates an operation was attempted on a port that is not open.
	ErrNotOpen = errors.New("serial: port not open")

	// ErrAlreadyOpen indicates Open was called on a port that is already open.
	ErrAlreadyOpen = errors.New("serial: port already open")
)

// Port is the transport contract required by the protocol engine.
//
// Implementations are synchronous and blocking. They are not required to
// be goroutine-safe: the engine issues at most one operation at a time.
type Port interface {
	// Open establishes the connection. It fails if the underlying medium
	// is busy or unavailable, or if the port is already open.
	Open() error

	// IsOpen reports whether the port is currently open.
	IsOpen() bool

	// Close releases the connection. Closing an already-closed port is a no-op.
	Close() error

	// Write sends the given bytes, returning the number of bytes written.
	Write(p []byte) (int, error)

	// ReadLine reads one line, up to and including the LF terminator.
	// If the timeout expires first it returns whatever bytes were received
	// so far (possibly none) with a nil error; deciding whether an empty
	// or partial line is a failure is the caller's concern.
	ReadLine(timeout time.Duration) ([]byte, error)
}
