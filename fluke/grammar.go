package fluke

import (
	"fmt"
	"regexp"
	"strconv"
)

// grammar describes the fixed response format of one readable parameter:
// a pattern anchored to the start of the trimmed response line, with
// capture groups extracted by the typed helpers below.
//
// Keeping the formats in one declarative table lets each entry be tested
// against canned lines without touching a transport.
type grammar struct {
	// name identifies the parameter in diagnostics ("temperature", ...).
	name string
	re   *regexp.Regexp
}

func newGrammar(name, pattern string) grammar {
	return grammar{name: name, re: regexp.MustCompile("^" + pattern)}
}

// Response grammars for every readable parameter. Case matters: the
// instrument answers with uppercase unit letters and scan tokens,
// lowercase switch and cutout status tokens.
var (
	grammarTemperature = newGrammar("temperature", `t:\s+(\d+\.\d+)\s+([CF])`)
	grammarSetpoint    = newGrammar("set point", `set:\s+(\d+\.\d+)\s+([CF])`)
	grammarUnit        = newGrammar("temperature unit", `u:\s+([CF])`)
	grammarPropBand    = newGrammar("proportional band", `pr:\s+(\d+\.\d+)`)
	grammarHeaterPower = newGrammar("heater power", `po:\s+(\d+\.\d+)`)
	grammarFirmware    = newGrammar("firmware version", `ver\.(\d+),\s*(\d+\.\d+)`)

	// Fluke 9141.
	grammarScanMode   = newGrammar("scan mode", `scan:\s+(ON|OFF)`)
	grammarScanRate   = newGrammar("scan rate", `srat:\s+(\d+\.\d+)`)
	grammarSwitchHold = newGrammar("switch hold", `hold:\s+(open|closed),\s+(\d+\.\d+)\s+([CF])`)
	grammarHighLimit  = newGrammar("high limit", `hl:\s+(\d+)`)

	// Fluke 6020.
	grammarVernier = newGrammar("vernier", `v:\s+(\d+\.\d+)`)
	grammarCutout  = newGrammar("cutout", `c:\s+(\d+)\s+([CF]),\s+(in|out)`)
)

// match runs the grammar against a trimmed response line and returns the
// capture groups. A non-matching line yields ErrBadResponse carrying the
// raw line.
func (g grammar) match(line string) ([]string, error) {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: unexpected %s format received: %q", ErrBadResponse, g.name, line)
	}

	return m[1:], nil
}

// matchFloat matches a single-group grammar and converts the group to a float.
func (g grammar) matchFloat(line string) (float64, error) {
	groups, err := g.match(line)
	if err != nil {
		return 0, err
	}

	return g.toFloat(groups[0], line)
}

// matchInt matches a single-group grammar and converts the group to an int.
func (g grammar) matchInt(line string) (int, error) {
	groups, err := g.match(line)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(groups[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s value %q in %q: %v", ErrBadResponse, g.name, groups[0], line, err)
	}

	return n, nil
}

func (g grammar) toFloat(group, line string) (float64, error) {
	v, err := strconv.ParseFloat(group, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s value %q in %q: %v", ErrBadResponse, g.name, group, line, err)
	}

	return v, nil
}
