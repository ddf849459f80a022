package serial

import (
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
	"go.uber.org/atomic"
)

// devicePort abstracts the subset of go.bug.st/serial.Port used by TTY.
type devicePort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadTimeout(d time.Duration) error
}

// openDevice opens the named device via go.bug.st/serial. Overridable in tests.
var openDevice = func(name string, baud int) (devicePort, error) {
	return serial.Open(name, &serial.Mode{BaudRate: baud})
}

// TTY is a Port backed by a physical serial device (8N1 framing).
type TTY struct {
	name string
	baud int

	dev    devicePort
	isOpen atomic.Bool

	writeMu sync.Mutex
	readMu  sync.Mutex
}

var _ Port = (*TTY)(nil)

// NewTTY creates a TTY for the named device (e.g. "/dev/ttyUSB0" or "COM3")
// at the given baud rate. The device is not touched until Open.
func NewTTY(name string, baud int) *TTY {
	return &TTY{
		name: name,
		baud: baud,
	}
}

// Name returns the device name.
func (t *TTY) Name() string { return t.name }

// Open implements Port.
func (t *TTY) Open() error {
	if t.isOpen.Load() {
		return ErrAlreadyOpen
	}

	dev, err := openDevice(t.name, t.baud)
	if err != nil {
		return fmt.Errorf("serial: open %s at %d baud: %w", t.name, t.baud, err)
	}

	t.dev = dev
	t.isOpen.Store(true)

	return nil
}

// IsOpen implements Port.
func (t *TTY) IsOpen() bool { return t.isOpen.Load() }

// Close implements Port.
func (t *TTY) Close() error {
	if !t.isOpen.CompareAndSwap(true, false) {
		return nil
	}

	return t.dev.Close()
}

// Write implements Port. Short writes are retried until the full buffer
// is on the wire.
func (t *TTY) Write(p []byte) (int, error) {
	if !t.isOpen.Load() {
		return 0, ErrNotOpen
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	written := 0
	for written < len(p) {
		n, err := t.dev.Write(p[written:])
		written += n
		if err != nil {
			return written, fmt.Errorf("serial: write: %w", err)
		}
	}

	return written, nil
}

// ReadLine implements Port.
//
// The device read timeout is re-armed with the remaining time before each
// read call, so the overall deadline holds regardless of how the driver
// chunks incoming bytes. Bytes are consumed one at a time; at the baud
// rates these instruments run at there is nothing to gain from batching.
func (t *TTY) ReadLine(timeout time.Duration) ([]byte, error) {
	if !t.isOpen.Load() {
		return nil, ErrNotOpen
	}

	t.readMu.Lock()
	defer t.readMu.Unlock()

	deadline := time.Now().Add(timeout)
	line := make([]byte, 0, 32)
	buf := make([]byte, 1)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return line, nil
		}
		if err := t.dev.SetReadTimeout(remaining); err != nil {
			return line, fmt.Errorf("serial: set read timeout: %w", err)
		}

		n, err := t.dev.Read(buf)
		if err != nil {
			return line, fmt.Errorf("serial: read: %w", err)
		}
		if n == 0 {
			// Timeout elapsed with no further bytes.
			return line, nil
		}

		line = append(line, buf[0])
		if buf[0] == '\n' {
			return line, nil
		}
	}
}
