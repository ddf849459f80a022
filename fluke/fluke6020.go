package fluke

import (
	"fmt"
)

// MaxVernier is the largest vernier offset the instruments accept: six
// digits with five decimal places.
const MaxVernier = 9.99999

// Fluke6020 drives the Fluke 6020 calibration bath. On top of the shared
// command set it adds the set-point vernier and the safety cutout.
type Fluke6020 struct {
	Device
}

// Open6020 connects to a Fluke 6020 on the configured serial port.
func Open6020(cfg *ConnectionConfig) (*Fluke6020, error) {
	dev, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	return &Fluke6020{Device: *dev}, nil
}

// Vernier reads the current set-point vernier offset, in session units.
func (d *Fluke6020) Vernier() (float64, error) {
	line, err := d.conn.query("v")
	if err != nil {
		return 0, err
	}

	return grammarVernier.matchFloat(line)
}

// SetVernier sets the fine offset applied to the set point, in session
// units. The instrument accepts [0, MaxVernier].
func (d *Fluke6020) SetVernier(vernier float64) error {
	if err := checkFinite("vernier", vernier); err != nil {
		return err
	}
	if vernier < 0 || vernier > MaxVernier {
		return fmt.Errorf("%w: vernier %g must be between 0 and %g", ErrInvalidValue, vernier, MaxVernier)
	}

	return d.conn.write("v", formatFloat(vernier))
}

// Cutout reads the safety cutout threshold, in the session unit.
//
// When the instrument reports a tripped cutout ("out" status) the call
// fails with ErrCutout: the bath has ceased normal regulation and needs
// operator attention before the threshold value means anything.
func (d *Fluke6020) Cutout() (float64, error) {
	line, err := d.conn.query("c")
	if err != nil {
		return 0, err
	}

	groups, err := grammarCutout.match(line)
	if err != nil {
		return 0, err
	}
	if err := d.conn.checkUnit("cutout", groups[1]); err != nil {
		return 0, err
	}

	threshold, err := grammarCutout.toFloat(groups[0], line)
	if err != nil {
		return 0, err
	}

	if groups[2] == "out" {
		return 0, fmt.Errorf("%w: threshold %g %s", ErrCutout, threshold, d.conn.unit)
	}

	return threshold, nil
}

// SetCutout sets the safety cutout threshold, in the session unit.
func (d *Fluke6020) SetCutout(cutout float64) error {
	if err := checkFinite("cutout", cutout); err != nil {
		return err
	}

	return d.conn.write("c", formatFloat(cutout))
}
