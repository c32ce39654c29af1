package gosfsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewChannelAppliesPowerOnDefaults(t *testing.T) {
	c := newChannel(false)
	assert.InDelta(t, float64(100<<7)/16383, c.Volume(), 1e-9)
	assert.InDelta(t, 0.0, c.Pan(), 1e-9)
	assert.False(t, c.HoldPedal())
}

func TestPercussionChannelForcesBank128(t *testing.T) {
	c := newChannel(true)
	c.processControlChange(ccBankSelectMSB, 5)
	assert.Equal(t, uint16(128), c.bankNumber())
}

func TestNonPercussionChannelUsesSelectedBank(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccBankSelectMSB, 5)
	assert.Equal(t, uint16(5), c.bankNumber())
}

func TestProcessControlChangeCoarseFineVolume(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccVolumeMSB, 127)
	c.processControlChange(ccVolumeLSB, 127)
	assert.InDelta(t, 1.0, c.Volume(), 1e-9)
}

func TestResetAllControllersPreservesBankPatchVolumePan(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccBankSelectMSB, 3)
	c.processControlChange(ccVolumeMSB, 50)
	c.processControlChange(ccPanMSB, 100)
	c.processControlChange(ccModulationMSB, 99)
	c.processControlChange(ccHoldPedal, 127)

	c.resetAllControllers()

	assert.Equal(t, uint16(3), c.bankNumber())
	assert.InDelta(t, float64(50<<7)/16383, c.Volume(), 1e-9)
	assert.InDelta(t, (float64(100<<7)-8192)/8192*50, c.Pan(), 1e-6)
	assert.Equal(t, 0.0, c.Modulation())
	assert.False(t, c.HoldPedal())
}

func TestResetRestoresEverythingToPowerOnDefaults(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccBankSelectMSB, 3)
	c.processControlChange(ccHoldPedal, 127)
	c.reset()

	assert.Equal(t, uint16(0), c.bankNumber())
	assert.False(t, c.HoldPedal())
	assert.InDelta(t, float64(100<<7)/16383, c.Volume(), 1e-9)
}

func TestRPNPitchBendRangeViaDataEntry(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccRPNMSB, rpnPitchBendRange)
	c.processControlChange(ccRPNLSB, 0)
	c.processControlChange(ccDataEntryMSB, 5)
	assert.InDelta(t, 5.0, c.PitchBendRange(), 1e-6)
}

func TestRPNNullDeselectsRPN(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccRPNMSB, rpnPitchBendRange)
	c.processControlChange(ccRPNLSB, 0)
	c.processControlChange(ccRPNMSB, 0x7F)
	c.processControlChange(ccRPNLSB, 0x7F)
	c.processControlChange(ccDataEntryMSB, 12) // should be ignored: RPN deselected
	assert.InDelta(t, 2.0, c.PitchBendRange(), 1e-6)
}

func TestDataEntryIgnoredWithoutRPNSelected(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccDataEntryMSB, 12)
	assert.InDelta(t, 2.0, c.PitchBendRange(), 1e-6)
}

func TestCoarseTuneCentersAtZero(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccRPNMSB, 0)
	c.processControlChange(ccRPNLSB, rpnCoarseTune)
	c.processControlChange(ccDataEntryMSB, 64)
	assert.Equal(t, 0.0, c.Tune())
}

func TestPitchBendRawCentersAtZeroWheel(t *testing.T) {
	c := newChannel(false)
	c.setPitchBend(0, 64) // 64<<7 == 8192, the centered wheel position
	assert.InDelta(t, 0.0, c.PitchBend(), 1e-9)
}

func TestPitchBendScalesByRange(t *testing.T) {
	c := newChannel(false)
	c.processControlChange(ccRPNMSB, rpnPitchBendRange)
	c.processControlChange(ccRPNLSB, 0)
	c.processControlChange(ccDataEntryMSB, 2)
	c.setPitchBend(127, 127) // max wheel position
	assert.InDelta(t, 2.0, c.PitchBend(), 0.01)
}
