package fluke

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptPort is an in-memory serial.Port for engine and device tests.
// It records every write and replays canned response lines in order;
// once the script is exhausted, reads behave like a timeout (empty line).
type scriptPort struct {
	opened   bool
	openErr  error
	writeErr error
	readErr  error

	writes []string
	lines  [][]byte
	next   int
}

// respond appends response lines to the script, CR LF terminated as the
// instrument sends them.
func (p *scriptPort) respond(lines ...string) {
	for _, l := range lines {
		p.lines = append(p.lines, []byte(l+"\r\n"))
	}
}

func (p *scriptPort) Open() error {
	if p.openErr != nil {
		return p.openErr
	}
	p.opened = true

	return nil
}

func (p *scriptPort) IsOpen() bool { return p.opened }

func (p *scriptPort) Close() error {
	p.opened = false
	return nil
}

func (p *scriptPort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.writes = append(p.writes, string(b))

	return len(b), nil
}

func (p *scriptPort) ReadLine(timeout time.Duration) ([]byte, error) {
	if p.readErr != nil {
		return nil, p.readErr
	}
	if p.next >= len(p.lines) {
		return nil, nil
	}
	line := p.lines[p.next]
	p.next++

	return line, nil
}

// newTestConfig builds a config bound to the given scripted transport.
// The port name defaults to the test name so parallel tests never collide
// on the port-claim registry.
func newTestConfig(t *testing.T, sp *scriptPort, opts ...ConnOption) *ConnectionConfig {
	t.Helper()

	defaults := []ConnOption{
		WithPort(sp),
		WithReadTimeout(50 * time.Millisecond),
	}

	cfg, err := NewConnectionConfig(t.Name(), append(defaults, opts...)...)
	require.NoError(t, err)

	return cfg
}

// newHalfDuplexPort returns a scriptPort preloaded with the unit response
// consumed by the session setup, reporting the given unit letter.
func newHalfDuplexPort(unitLetter string) *scriptPort {
	sp := &scriptPort{}
	sp.respond("u: " + unitLetter)

	return sp
}

// openTestDevice opens a Device over sp and closes it with the test.
func openTestDevice(t *testing.T, sp *scriptPort, opts ...ConnOption) *Device {
	t.Helper()

	dev, err := Open(newTestConfig(t, sp, opts...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dev.Close() })

	return dev
}

// openTest9141 opens a Fluke9141 over sp and closes it with the test.
func openTest9141(t *testing.T, sp *scriptPort, opts ...ConnOption) *Fluke9141 {
	t.Helper()

	dev, err := Open9141(newTestConfig(t, sp, opts...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dev.Close() })

	return dev
}

// openTest6020 opens a Fluke6020 over sp and closes it with the test.
func openTest6020(t *testing.T, sp *scriptPort, opts ...ConnOption) *Fluke6020 {
	t.Helper()

	dev, err := Open6020(newTestConfig(t, sp, opts...))
	require.NoError(t, err)
	t.Cleanup(func() { _ = dev.Close() })

	return dev
}
