package fluke

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ScanMode controls whether set point changes ramp at the scan rate.
type ScanMode string

const (
	ScanOn  ScanMode = "on"
	ScanOff ScanMode = "off"
)

// SwitchState is the position of the external hold switch.
type SwitchState string

const (
	SwitchOpen   SwitchState = "open"
	SwitchClosed SwitchState = "closed"
)

// Fluke9141 drives the Fluke 9141 dry-well calibrator. On top of the
// shared command set it adds scan mode and rate, the switch-hold readout
// and the high-limit safety ceiling.
type Fluke9141 struct {
	Device
}

// Open9141 connects to a Fluke 9141 on the configured serial port.
func Open9141(cfg *ConnectionConfig) (*Fluke9141, error) {
	dev, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	return &Fluke9141{Device: *dev}, nil
}

// ScanMode reads the current scan mode.
func (d *Fluke9141) ScanMode() (ScanMode, error) {
	line, err := d.conn.query("sc")
	if err != nil {
		return "", err
	}

	groups, err := grammarScanMode.match(line)
	if err != nil {
		return "", err
	}

	return ScanMode(strings.ToLower(groups[0])), nil
}

// SetScanMode switches scanning on or off. When on, changes to the set
// point ramp at the configured scan rate instead of stepping.
func (d *Fluke9141) SetScanMode(mode ScanMode) error {
	switch ScanMode(strings.ToLower(string(mode))) {
	case ScanOn, ScanOff:
	default:
		return fmt.Errorf("%w: scan mode must be %q or %q, got %q", ErrInvalidValue, ScanOn, ScanOff, mode)
	}

	return d.conn.write("sc", strings.ToLower(string(mode)))
}

// ScanRate reads the scan rate, in session units per minute.
func (d *Fluke9141) ScanRate() (float64, error) {
	line, err := d.conn.query("sr")
	if err != nil {
		return 0, err
	}

	return grammarScanRate.matchFloat(line)
}

// SetScanRate sets the scan rate, in session units per minute.
func (d *Fluke9141) SetScanRate(rate float64) error {
	if err := checkFinite("scan rate", rate); err != nil {
		return err
	}

	return d.conn.write("sr", formatFloat(rate))
}

// SwitchHold reads the external hold switch state together with the block
// temperature captured with it.
func (d *Fluke9141) SwitchHold() (SwitchState, float64, error) {
	line, err := d.conn.query("ho")
	if err != nil {
		return "", 0, err
	}

	groups, err := grammarSwitchHold.match(line)
	if err != nil {
		return "", 0, err
	}
	if err := d.conn.checkUnit("switch hold", groups[2]); err != nil {
		return "", 0, err
	}

	temp, err := grammarSwitchHold.toFloat(groups[1], line)
	if err != nil {
		return "", 0, err
	}

	return SwitchState(groups[0]), temp, nil
}

// HighLimit reads the high-limit safety ceiling, in the session unit.
func (d *Fluke9141) HighLimit() (int, error) {
	line, err := d.conn.query("hl")
	if err != nil {
		return 0, err
	}

	return grammarHighLimit.matchInt(line)
}

// SetHighLimit sets the high-limit safety ceiling. The instrument only
// accepts whole degrees, so the value is rounded to the nearest integer
// before transmission.
func (d *Fluke9141) SetHighLimit(limit float64) error {
	if err := checkFinite("high limit", limit); err != nil {
		return err
	}

	return d.conn.write("hl", strconv.Itoa(int(math.Round(limit))))
}
