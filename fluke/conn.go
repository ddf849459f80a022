package fluke

import (
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wharwood/fluke-temperature-source/logger"
	"github.com/wharwood/fluke-temperature-source/serial"
)

// claimedPorts tracks serial port names with a live connection, enforcing
// that exactly one engine owns a port at a time.
var claimedPorts = xsync.NewMapOf[string, *Conn]()

// Conn is the protocol engine for one instrument session. It owns the
// transport and the session state: the duplex mode in effect and the
// temperature unit negotiated at open time.
//
// Conn is not goroutine-safe. The protocol is strict command/response on a
// half-duplex wire, so concurrent callers must serialize externally.
type Conn struct {
	cfg    *ConnectionConfig
	port   serial.Port
	logger logger.Logger

	// Session state, mutated only by SetDuplexMode and the unit-change
	// operation on Device.
	duplex DuplexMode
	unit   TemperatureUnit

	opened bool
}

// newConn creates an unopened engine from the configuration.
func newConn(cfg *ConnectionConfig) (*Conn, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	port := cfg.Port()
	if port == nil {
		port = serial.NewTTY(cfg.PortName(), cfg.BaudRate())
	}

	return &Conn{
		cfg:    cfg,
		port:   port,
		logger: cfg.GetLogger().With("port", cfg.PortName()),
		duplex: DuplexHalf,
	}, nil
}

// open claims the port, opens the transport, negotiates the configured
// duplex mode and queries the instrument's temperature unit to seed the
// session state. Any failure leaves the port released and closed.
func (c *Conn) open() error {
	if _, loaded := claimedPorts.LoadOrStore(c.cfg.PortName(), c); loaded {
		return fmt.Errorf("%w: %s", ErrPortInUse, c.cfg.PortName())
	}

	if c.cfg.BaudRate() > MaxSafeBaudRate {
		c.logger.Warn("baud rate above 2400 may cause communication errors", "baudRate", c.cfg.BaudRate())
	}

	if !c.port.IsOpen() {
		if err := c.port.Open(); err != nil {
			claimedPorts.Delete(c.cfg.PortName())
			return fmt.Errorf("fluke: open port %s at %d baud: %w", c.cfg.PortName(), c.cfg.BaudRate(), err)
		}
	}
	c.opened = true

	if err := c.SetDuplexMode(c.cfg.DuplexMode()); err != nil {
		_ = c.Close()
		return err
	}

	unit, err := c.queryUnit()
	if err != nil {
		_ = c.Close()
		return err
	}
	c.unit = unit

	c.logger.Info("session established", "duplex", c.duplex, "unit", c.unit)

	return nil
}

// Close closes the transport and releases the port claim. It is idempotent.
func (c *Conn) Close() error {
	if !c.opened {
		return nil
	}
	c.opened = false
	claimedPorts.Delete(c.cfg.PortName())

	return c.port.Close()
}

// IsOpen reports whether the session is usable.
func (c *Conn) IsOpen() bool { return c.opened && c.port.IsOpen() }

// DuplexMode returns the duplex mode currently in effect.
func (c *Conn) DuplexMode() DuplexMode { return c.duplex }

// TemperatureUnit returns the unit negotiated at open time. Every response
// line carrying a unit letter is checked against it.
func (c *Conn) TemperatureUnit() TemperatureUnit { return c.unit }

// SetDuplexMode validates mode, transmits it to the instrument and, on
// success, updates the session state.
func (c *Conn) SetDuplexMode(mode DuplexMode) error {
	parsed, err := ParseDuplexMode(string(mode))
	if err != nil {
		return err
	}

	if err := c.write("du", string(parsed)); err != nil {
		return err
	}
	c.duplex = parsed
	c.logger.Info("duplex mode set", "duplex", parsed)

	return nil
}

// write encodes "cmd" or "cmd=value" followed by CR LF as ASCII and sends
// it. In full duplex mode it then reads the echo line and verifies the
// command token appears in it.
func (c *Conn) write(cmd, value string) error {
	if !c.opened {
		return ErrNotOpen
	}

	frame := cmd
	if value != "" {
		frame = cmd + "=" + value
	}
	c.logger.Debug("send", "command", frame)

	if _, err := c.port.Write([]byte(frame + "\r\n")); err != nil {
		return fmt.Errorf("fluke: write %q: %w", frame, err)
	}

	if c.duplex != DuplexFull {
		return nil
	}

	echo, err := c.port.ReadLine(c.cfg.ReadTimeout())
	if err != nil {
		return fmt.Errorf("fluke: read echo for %q: %w", cmd, err)
	}

	echoed := strings.TrimSpace(string(echo))
	if echoed == "" {
		return fmt.Errorf("%w: command %q", ErrNoEcho, cmd)
	}
	if !strings.Contains(echoed, cmd) {
		return fmt.Errorf("%w: sent %q, received %q", ErrEchoMismatch, cmd, echoed)
	}
	c.logger.Debug("echo verified", "command", cmd, "echo", echoed)

	return nil
}

// query sends a bare command and reads one response line, trimmed of
// whitespace and line terminators. An empty line is a no-data failure.
func (c *Conn) query(cmd string) (string, error) {
	if err := c.write(cmd, ""); err != nil {
		return "", err
	}

	raw, err := c.port.ReadLine(c.cfg.ReadTimeout())
	if err != nil {
		return "", fmt.Errorf("fluke: read response for %q: %w", cmd, err)
	}

	line := strings.TrimSpace(string(raw))
	if line == "" {
		return "", fmt.Errorf("%w: command %q", ErrNoData, cmd)
	}
	c.logger.Debug("recv", "command", cmd, "line", line)

	return line, nil
}

// queryUnit reads the instrument's current temperature unit. It does not
// touch the session state; committing the unit is the caller's decision.
func (c *Conn) queryUnit() (TemperatureUnit, error) {
	line, err := c.query("u")
	if err != nil {
		return "", err
	}

	groups, err := grammarUnit.match(line)
	if err != nil {
		return "", err
	}

	return ParseTemperatureUnit(groups[0])
}

// checkUnit compares a response's unit letter against the session unit,
// case-insensitively. A mismatch means the instrument's unit was changed
// out-of-band and the session must be restarted.
func (c *Conn) checkUnit(param, letter string) error {
	if !strings.EqualFold(letter, string(c.unit)) {
		return fmt.Errorf("%w: %s reported %q, session unit is %q; restart the temperature source",
			ErrUnitMismatch, param, strings.ToLower(letter), c.unit)
	}

	return nil
}
