package fluke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluke6020Vernier(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest6020(t, sp)

	sp.respond("v:  0.00125")
	vernier, err := dev.Vernier()
	require.NoError(t, err)
	assert.InDelta(t, 0.00125, vernier, 1e-9)
}

func TestFluke6020SetVernier_Bounds(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest6020(t, sp)
	baseline := len(sp.writes)

	require.ErrorIs(t, dev.SetVernier(10.0), ErrInvalidValue)
	require.ErrorIs(t, dev.SetVernier(-0.1), ErrInvalidValue)
	assert.Len(t, sp.writes, baseline)

	// The upper bound itself is accepted and transmitted verbatim.
	require.NoError(t, dev.SetVernier(9.99999))
	assert.Equal(t, "v=9.99999\r\n", sp.writes[len(sp.writes)-1])
}

func TestFluke6020Cutout(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest6020(t, sp)

	sp.respond("c: 10 C, in")
	cutout, err := dev.Cutout()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, cutout, 1e-9)
}

func TestFluke6020Cutout_Tripped(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest6020(t, sp)

	sp.respond("c: 10 C, out")
	_, err := dev.Cutout()
	require.ErrorIs(t, err, ErrCutout)
}

func TestFluke6020Cutout_UnitMismatch(t *testing.T) {
	sp := newHalfDuplexPort("F")
	dev := openTest6020(t, sp)

	sp.respond("c: 10 C, in")
	_, err := dev.Cutout()
	require.ErrorIs(t, err, ErrUnitMismatch)
}

func TestFluke6020SetCutout(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest6020(t, sp)

	require.NoError(t, dev.SetCutout(125.5))
	assert.Equal(t, "c=125.5\r\n", sp.writes[len(sp.writes)-1])
}
