package fluke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarMatch(t *testing.T) {
	tests := []struct {
		name    string
		grammar grammar
		line    string
		groups  []string
	}{
		{"temperature", grammarTemperature, "t:  23.50 C", []string{"23.50", "C"}},
		{"setpoint", grammarSetpoint, "set:  50.00 C", []string{"50.00", "C"}},
		{"unit", grammarUnit, "u: F", []string{"F"}},
		{"proportional band", grammarPropBand, "pr:  15.9", []string{"15.9"}},
		{"heater power", grammarHeaterPower, "po:  9.8", []string{"9.8"}},
		{"firmware", grammarFirmware, "ver.9141,1.30", []string{"9141", "1.30"}},
		{"firmware spaced", grammarFirmware, "ver.6020, 2.01", []string{"6020", "2.01"}},
		{"scan mode", grammarScanMode, "scan: ON", []string{"ON"}},
		{"scan rate", grammarScanRate, "srat:  12.5", []string{"12.5"}},
		{"switch hold", grammarSwitchHold, "hold:  open,  23.50 C", []string{"open", "23.50", "C"}},
		{"high limit", grammarHighLimit, "hl:  125", []string{"125"}},
		{"vernier", grammarVernier, "v:  0.00125", []string{"0.00125"}},
		{"cutout", grammarCutout, "c: 10 C, in", []string{"10", "C", "in"}},
		{"cutout tripped", grammarCutout, "c: 10 C, out", []string{"10", "C", "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := tt.grammar.match(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.groups, groups)
		})
	}
}

func TestGrammarMatch_Malformed(t *testing.T) {
	grammars := []grammar{
		grammarTemperature,
		grammarSetpoint,
		grammarUnit,
		grammarPropBand,
		grammarHeaterPower,
		grammarFirmware,
		grammarScanMode,
		grammarScanRate,
		grammarSwitchHold,
		grammarHighLimit,
		grammarVernier,
		grammarCutout,
	}

	for _, g := range grammars {
		t.Run(g.name, func(t *testing.T) {
			_, err := g.match("garbage")
			require.ErrorIs(t, err, ErrBadResponse)
			// The raw line must be carried for diagnosis.
			assert.Contains(t, err.Error(), `"garbage"`)
		})
	}
}

func TestGrammarMatch_AnchoredToLineStart(t *testing.T) {
	_, err := grammarTemperature.match("noise t:  23.50 C")
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestGrammarMatchFloat(t *testing.T) {
	v, err := grammarPropBand.matchFloat("pr:  15.9")
	require.NoError(t, err)
	assert.InDelta(t, 15.9, v, 1e-9)
}

func TestGrammarMatchInt(t *testing.T) {
	n, err := grammarHighLimit.matchInt("hl:  660")
	require.NoError(t, err)
	assert.Equal(t, 660, n)
}

func TestGrammarScanMode_CaseSensitive(t *testing.T) {
	// The instrument reports scan mode in uppercase only.
	_, err := grammarScanMode.match("scan: on")
	require.ErrorIs(t, err, ErrBadResponse)
}
