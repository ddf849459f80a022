package fluke

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wharwood/fluke-temperature-source/logger"
	"github.com/wharwood/fluke-temperature-source/serial"
)

const (
	// DefaultBaudRate is the factory baud rate of the supported instruments.
	DefaultBaudRate = 2400

	// MaxSafeBaudRate is the highest baud rate the instruments handle
	// reliably. Higher rates are accepted but flagged at open time.
	MaxSafeBaudRate = 2400

	// DefaultReadTimeout bounds every response/echo read.
	DefaultReadTimeout = 1 * time.Second
)

// DuplexMode selects whether the instrument echoes command lines.
type DuplexMode string

const (
	// DuplexHalf disables command echo. This is the instrument default.
	DuplexHalf DuplexMode = "half"
	// DuplexFull makes the instrument echo every command line.
	DuplexFull DuplexMode = "full"
)

// ParseDuplexMode converts a string to a DuplexMode, case-insensitively.
func ParseDuplexMode(s string) (DuplexMode, error) {
	switch DuplexMode(strings.ToLower(s)) {
	case DuplexHalf:
		return DuplexHalf, nil
	case DuplexFull:
		return DuplexFull, nil
	default:
		return "", fmt.Errorf("%w: duplex mode must be %q or %q, got %q", ErrInvalidValue, DuplexHalf, DuplexFull, s)
	}
}

// TemperatureUnit is the instrument-wide temperature unit.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "c"
	Fahrenheit TemperatureUnit = "f"
)

// ParseTemperatureUnit converts a string to a TemperatureUnit, case-insensitively.
func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch TemperatureUnit(strings.ToLower(s)) {
	case Celsius:
		return Celsius, nil
	case Fahrenheit:
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("%w: temperature unit must be %q or %q, got %q", ErrInvalidValue, Celsius, Fahrenheit, s)
	}
}

// ConnectionConfig holds all configuration for a connection to a temperature
// source. It is immutable after construction; the duplex mode it carries is
// only the initial mode, the live mode is negotiated on the connection.
type ConnectionConfig struct {
	portName string
	baudRate int

	// duplex is the mode negotiated with the instrument at open time.
	duplex DuplexMode

	// readTimeout bounds each response/echo read on the wire.
	readTimeout time.Duration

	// port overrides the default TTY transport when non-nil.
	port serial.Port

	logger logger.Logger
}

// NewConnectionConfig creates a connection configuration for the named
// serial port (e.g. "/dev/ttyUSB0" or "COM3").
//
// opts are functional options applied in order; see With* functions.
func NewConnectionConfig(portName string, opts ...ConnOption) (*ConnectionConfig, error) {
	if portName == "" {
		return nil, fmt.Errorf("%w: serial port name is empty", ErrInvalidValue)
	}

	cfg := &ConnectionConfig{
		portName:    portName,
		baudRate:    DefaultBaudRate,
		duplex:      DuplexHalf,
		readTimeout: DefaultReadTimeout,
		logger:      logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// --- Getters ---

// PortName returns the configured serial port name.
func (cfg *ConnectionConfig) PortName() string { return cfg.portName }

// BaudRate returns the configured baud rate.
func (cfg *ConnectionConfig) BaudRate() int { return cfg.baudRate }

// DuplexMode returns the initial duplex mode negotiated at open time.
func (cfg *ConnectionConfig) DuplexMode() DuplexMode { return cfg.duplex }

// ReadTimeout returns the per-read timeout.
func (cfg *ConnectionConfig) ReadTimeout() time.Duration { return cfg.readTimeout }

// Port returns the injected transport, or nil when the default TTY is used.
func (cfg *ConnectionConfig) Port() serial.Port { return cfg.port }

// GetLogger returns the configured logger.
func (cfg *ConnectionConfig) GetLogger() logger.Logger { return cfg.logger }

// --- ConnOption ---

// ConnOption is a functional option for configuring a ConnectionConfig.
type ConnOption interface {
	apply(*ConnectionConfig) error
}

type connOptFunc func(*ConnectionConfig) error

func (f connOptFunc) apply(cfg *ConnectionConfig) error { return f(cfg) }

// WithBaudRate sets the baud rate. Rates above MaxSafeBaudRate are accepted
// but may cause communication errors; a warning is logged when the
// connection opens.
func WithBaudRate(baud int) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if baud <= 0 {
			return fmt.Errorf("%w: baud rate %d must be positive", ErrInvalidValue, baud)
		}
		cfg.baudRate = baud

		return nil
	})
}

// WithDuplexMode sets the duplex mode negotiated with the instrument at
// open time. Only DuplexHalf and DuplexFull are accepted.
func WithDuplexMode(mode DuplexMode) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		parsed, err := ParseDuplexMode(string(mode))
		if err != nil {
			return err
		}
		cfg.duplex = parsed

		return nil
	})
}

// WithReadTimeout sets the timeout applied to each response/echo read.
func WithReadTimeout(d time.Duration) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if d <= 0 {
			return errors.New("fluke: read timeout must be positive")
		}
		cfg.readTimeout = d

		return nil
	})
}

// WithPort injects an existing transport instead of the default TTY over
// the named serial port. Used by tests and by callers that manage the
// transport themselves.
func WithPort(port serial.Port) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if port == nil {
			return errors.New("fluke: port must not be nil")
		}
		cfg.port = port

		return nil
	})
}

// WithLogger sets the logger for the connection.
func WithLogger(l logger.Logger) ConnOption {
	return connOptFunc(func(cfg *ConnectionConfig) error {
		if l == nil {
			return errors.New("fluke: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
