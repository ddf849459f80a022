package fluke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluke9141ScanMode(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)

	sp.respond("scan: ON")
	mode, err := dev.ScanMode()
	require.NoError(t, err)
	assert.Equal(t, ScanOn, mode)

	sp.respond("scan: OFF")
	mode, err = dev.ScanMode()
	require.NoError(t, err)
	assert.Equal(t, ScanOff, mode)
}

func TestFluke9141SetScanMode(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)

	require.NoError(t, dev.SetScanMode(ScanOn))
	assert.Equal(t, "sc=on\r\n", sp.writes[len(sp.writes)-1])

	// Uppercase input is normalized before transmission.
	require.NoError(t, dev.SetScanMode("OFF"))
	assert.Equal(t, "sc=off\r\n", sp.writes[len(sp.writes)-1])
}

func TestFluke9141SetScanMode_Invalid(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)
	baseline := len(sp.writes)

	require.ErrorIs(t, dev.SetScanMode("auto"), ErrInvalidValue)
	assert.Len(t, sp.writes, baseline)
}

func TestFluke9141ScanRate(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)

	sp.respond("srat:  12.5")
	rate, err := dev.ScanRate()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, rate, 1e-9)

	require.NoError(t, dev.SetScanRate(0.5))
	assert.Equal(t, "sr=0.5\r\n", sp.writes[len(sp.writes)-1])
}

func TestFluke9141SwitchHold(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)

	sp.respond("hold:  closed,  121.20 C")
	state, temp, err := dev.SwitchHold()
	require.NoError(t, err)
	assert.Equal(t, SwitchClosed, state)
	assert.InDelta(t, 121.2, temp, 1e-9)
}

func TestFluke9141SwitchHold_UnitMismatch(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)

	sp.respond("hold:  open,  250.10 F")
	_, _, err := dev.SwitchHold()
	require.ErrorIs(t, err, ErrUnitMismatch)
}

func TestFluke9141HighLimit(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)

	sp.respond("hl:  660")
	limit, err := dev.HighLimit()
	require.NoError(t, err)
	assert.Equal(t, 660, limit)
}

func TestFluke9141SetHighLimit_Rounds(t *testing.T) {
	sp := newHalfDuplexPort("C")
	dev := openTest9141(t, sp)

	require.NoError(t, dev.SetHighLimit(12.6))
	assert.Equal(t, "hl=13\r\n", sp.writes[len(sp.writes)-1])

	require.NoError(t, dev.SetHighLimit(12.4))
	assert.Equal(t, "hl=12\r\n", sp.writes[len(sp.writes)-1])
}
