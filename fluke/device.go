package fluke

import (
	"fmt"
	"math"
	"strconv"
)

// Device implements the command set shared by every supported temperature
// source: temperature, set point, unit, proportional band, heater power
// and firmware version. Model types embed Device and add their own
// commands on the same engine.
type Device struct {
	conn *Conn
}

// Firmware identifies the instrument model and its firmware revision.
type Firmware struct {
	Model   string
	Version string
}

// Open connects to a temperature source without assuming a model: only the
// shared command set is available. Use Open9141 or Open6020 for the
// model-specific commands.
//
// Opening performs the whole session setup: the transport is opened, the
// configured duplex mode is negotiated and the instrument's temperature
// unit is queried to seed the session state.
func Open(cfg *ConnectionConfig) (*Device, error) {
	conn, err := newConn(cfg)
	if err != nil {
		return nil, err
	}

	if err := conn.open(); err != nil {
		return nil, err
	}

	return &Device{conn: conn}, nil
}

// Close shuts the session down. It is idempotent.
func (d *Device) Close() error { return d.conn.Close() }

// IsOpen reports whether the session is usable.
func (d *Device) IsOpen() bool { return d.conn.IsOpen() }

// DuplexMode returns the duplex mode currently in effect.
func (d *Device) DuplexMode() DuplexMode { return d.conn.DuplexMode() }

// SetDuplexMode changes the instrument's duplex mode.
func (d *Device) SetDuplexMode(mode DuplexMode) error { return d.conn.SetDuplexMode(mode) }

// TemperatureUnit returns the unit the session was negotiated with. All
// temperature values are expressed in this unit.
func (d *Device) TemperatureUnit() TemperatureUnit { return d.conn.TemperatureUnit() }

// Temperature reads the current block temperature from the internal
// reference thermometer.
func (d *Device) Temperature() (float64, error) {
	line, err := d.conn.query("t")
	if err != nil {
		return 0, err
	}

	groups, err := grammarTemperature.match(line)
	if err != nil {
		return 0, err
	}
	if err := d.conn.checkUnit("temperature", groups[1]); err != nil {
		return 0, err
	}

	return grammarTemperature.toFloat(groups[0], line)
}

// Setpoint reads the temperature the instrument is regulating toward.
func (d *Device) Setpoint() (float64, error) {
	line, err := d.conn.query("s")
	if err != nil {
		return 0, err
	}

	groups, err := grammarSetpoint.match(line)
	if err != nil {
		return 0, err
	}
	if err := d.conn.checkUnit("set point", groups[1]); err != nil {
		return 0, err
	}

	return grammarSetpoint.toFloat(groups[0], line)
}

// SetSetpoint sets the target temperature, in the session unit.
func (d *Device) SetSetpoint(value float64) error {
	if err := checkFinite("set point", value); err != nil {
		return err
	}

	return d.conn.write("s", formatFloat(value))
}

// Unit queries the instrument's current temperature unit. The session
// state is not touched; use SetUnit to change it.
func (d *Device) Unit() (TemperatureUnit, error) {
	return d.conn.queryUnit()
}

// SetUnit changes the instrument-wide temperature unit.
//
// The instrument is re-queried after the change, and the session state is
// only updated once the instrument confirms the new unit. An unconfirmed
// change leaves the session state untouched.
func (d *Device) SetUnit(unit TemperatureUnit) error {
	parsed, err := ParseTemperatureUnit(string(unit))
	if err != nil {
		return err
	}

	if err := d.conn.write("u", string(parsed)); err != nil {
		return err
	}

	current, err := d.conn.queryUnit()
	if err != nil {
		return err
	}
	if current != parsed {
		d.conn.logger.Warn("unit change not confirmed by instrument", "requested", parsed, "reported", current)
		return nil
	}
	d.conn.unit = parsed
	d.conn.logger.Info("temperature unit set", "unit", parsed)

	return nil
}

// ProportionalBand reads the control-loop proportional band, in percent.
func (d *Device) ProportionalBand() (float64, error) {
	line, err := d.conn.query("pr")
	if err != nil {
		return 0, err
	}

	return grammarPropBand.matchFloat(line)
}

// SetProportionalBand sets the proportional band, in percent [0, 100].
func (d *Device) SetProportionalBand(band float64) error {
	if err := checkFinite("proportional band", band); err != nil {
		return err
	}
	if band < 0 || band > 100 {
		return fmt.Errorf("%w: proportional band %g must be between 0 and 100 percent", ErrInvalidValue, band)
	}

	return d.conn.write("pr", formatFloat(band))
}

// HeaterPower reads the instantaneous heater duty cycle, in percent.
func (d *Device) HeaterPower() (float64, error) {
	line, err := d.conn.query("po")
	if err != nil {
		return 0, err
	}

	return grammarHeaterPower.matchFloat(line)
}

// FirmwareVersion reads the instrument model id and firmware revision.
func (d *Device) FirmwareVersion() (Firmware, error) {
	line, err := d.conn.query("*ver")
	if err != nil {
		return Firmware{}, err
	}

	groups, err := grammarFirmware.match(line)
	if err != nil {
		return Firmware{}, err
	}

	return Firmware{Model: groups[0], Version: groups[1]}, nil
}

// formatFloat renders a value the way the instruments expect: plain
// decimal notation with no trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// checkFinite rejects NaN and infinities before they reach the wire.
func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidValue, name)
	}

	return nil
}
