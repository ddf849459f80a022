package fluke

import "errors"

var (
	// ErrConfigNil indicates that a nil ConnectionConfig was provided.
	ErrConfigNil = errors.New("fluke: connection config is nil")

	// ErrPortInUse indicates that another connection already claims the
	// configured serial port. Exactly one engine may own a port at a time.
	ErrPortInUse = errors.New("fluke: serial port already in use by another connection")

	// ErrNotOpen indicates that the connection is not open.
	ErrNotOpen = errors.New("fluke: connection not open")
)

var (
	// ErrNoEcho indicates that the link is in full duplex mode but no echo
	// line was received after sending a command.
	ErrNoEcho = errors.New("fluke: full duplex mode and no echo received")

	// ErrEchoMismatch indicates that the echoed text does not contain the
	// command token that was sent.
	ErrEchoMismatch = errors.New("fluke: command echo mismatch")

	// ErrNoData indicates that the instrument returned no response line
	// within the read timeout.
	ErrNoData = errors.New("fluke: no data received from device")

	// ErrBadResponse indicates that a response line did not match the
	// expected format for the command. The wrapped message carries the raw
	// line for diagnosis.
	ErrBadResponse = errors.New("fluke: unexpected response format")
)

var (
	// ErrInvalidValue indicates that a caller-supplied argument failed
	// validation before transmission. Nothing was sent to the instrument.
	ErrInvalidValue = errors.New("fluke: invalid value")

	// ErrUnitMismatch indicates that a response reported a temperature unit
	// different from the one negotiated at session start. The instrument's
	// unit was likely changed from its front panel; restart the session.
	ErrUnitMismatch = errors.New("fluke: temperature unit mismatch")

	// ErrCutout indicates that the instrument has tripped its safety cutout
	// and ceased normal regulation.
	ErrCutout = errors.New("fluke: device is currently cut out")
)
