package gosfsynth

// MIDI controller numbers this package understands.
const (
	ccBankSelectMSB      = 0
	ccModulationMSB      = 1
	ccModulationLSB      = 33
	ccVolumeMSB          = 7
	ccVolumeLSB          = 39
	ccPanMSB             = 10
	ccPanLSB             = 42
	ccExpressionMSB      = 11
	ccExpressionLSB      = 43
	ccBankSelectLSB      = 32
	ccHoldPedal          = 64
	ccReverbSend         = 91
	ccChorusSend         = 93
	ccRPNLSB             = 100
	ccRPNMSB             = 101
	ccDataEntryMSB       = 6
	ccDataEntryLSB       = 38
	ccAllSoundOff        = 120
	ccResetAllController = 121
	ccAllNotesOff        = 123
)

// RPN (registered parameter number) targets understood via Data Entry.
const (
	rpnPitchBendRange = 0
	rpnFineTune       = 1
	rpnCoarseTune     = 2
	rpnNone           = -1
)

// percussionChannel is the channel index whose implied bank for
// preset lookup is 128 rather than 0.
const percussionChannel = 9

// Channel is one of the synthesizer's 16 MIDI channels: the currently
// selected bank/patch plus the continuous controller state generators
// reference at note-on and voices reference every block.
type Channel struct {
	isPercussion bool

	bankMSB uint8
	bankLSB uint8
	patch   uint8

	modulation uint16 // 14-bit
	volume     uint16 // 14-bit
	pan        uint16 // 14-bit
	expression uint16 // 14-bit

	holdPedal bool

	reverbSendByte uint8
	chorusSendByte uint8

	rpn      uint16 // 14-bit RPN selector, meaningful only while rpnSet
	rpnSet   bool

	pitchBendRange uint16 // 14-bit: MSB whole semitones, LSB cents
	coarseTune     int16  // semitones, -64..63
	fineTune       uint16 // 14-bit, centered at 8192

	pitchBendRaw int16 // 14-bit wheel position
}

func newChannel(isPercussion bool) *Channel {
	c := &Channel{isPercussion: isPercussion}
	c.reset()
	return c
}

// reset restores every piece of channel state to its MIDI power-on
// default.
func (c *Channel) reset() {
	c.bankMSB = 0
	c.bankLSB = 0
	c.patch = 0
	c.modulation = 0
	c.volume = 100 << 7
	c.pan = 64 << 7
	c.expression = 127 << 7
	c.holdPedal = false
	c.reverbSendByte = 40
	c.chorusSendByte = 0
	c.rpn = 0
	c.rpnSet = false
	c.pitchBendRange = 2 << 7
	c.coarseTune = 0
	c.fineTune = 8192
	c.pitchBendRaw = 0
}

// resetAllControllers implements MIDI CC 121: modulation, expression,
// hold pedal, RPN selection, and pitch-bend return to defaults; bank,
// patch, volume, pan, reverb/chorus send, and tune are left untouched.
func (c *Channel) resetAllControllers() {
	c.modulation = 0
	c.expression = 127 << 7
	c.holdPedal = false
	c.rpn = 0
	c.rpnSet = false
	c.pitchBendRaw = 0
}

// bankNumber returns the effective MIDI bank number, 128 on the
// percussion channel regardless of what bank-select the caller sent
// (real GM files never change the drum channel's bank).
func (c *Channel) bankNumber() uint16 {
	if c.isPercussion {
		return 128
	}
	return uint16(c.bankMSB)
}

func (c *Channel) programNumber() uint16 { return uint16(c.patch) }

// HoldPedal reports whether the sustain pedal (CC 64) is currently
// held down.
func (c *Channel) HoldPedal() bool { return c.holdPedal }

// Modulation returns the modulation wheel's depth as a percentage of
// full scale (0-100), matching the 0.01x scaling the voice pitch
// formula applies to it.
func (c *Channel) Modulation() float64 { return float64(c.modulation) / 16383 * 100 }

// Volume returns channel volume (CC 7) normalized to [0, 1].
func (c *Channel) Volume() float64 { return float64(c.volume) / 16383 }

// Expression returns expression (CC 11) normalized to [0, 1].
func (c *Channel) Expression() float64 { return float64(c.expression) / 16383 }

// Pan returns channel pan (CC 10) in cents, [-50, 50].
func (c *Channel) Pan() float64 { return (float64(c.pan) - 8192) / 8192 * 50 }

// ReverbSend returns CC 91 normalized to [0, 1].
func (c *Channel) ReverbSend() float64 { return float64(c.reverbSendByte) / 127 }

// ChorusSend returns CC 93 normalized to [0, 1].
func (c *Channel) ChorusSend() float64 { return float64(c.chorusSendByte) / 127 }

// PitchBendRange returns the RPN 0 pitch-bend range in semitones.
func (c *Channel) PitchBendRange() float64 {
	msb := float64(c.pitchBendRange >> 7)
	lsb := float64(c.pitchBendRange & 0x7F)
	return msb + lsb/100
}

// Tune combines coarse tune (RPN 2) and fine tune (RPN 1) into a
// single semitone offset.
func (c *Channel) Tune() float64 {
	return float64(c.coarseTune) + (float64(c.fineTune)-8192)/8192
}

// PitchBend returns the current pitch-bend wheel position scaled by
// the channel's pitch-bend range, in semitones.
func (c *Channel) PitchBend() float64 {
	normalized := float64(c.pitchBendRaw) / 8192
	return c.PitchBendRange() * normalized
}

// setCoarse writes the high 7 bits of a 14-bit controller, preserving
// the low 7 bits already present.
func setCoarse(field *uint16, msb uint8) {
	*field = (*field & 0x7F) | (uint16(msb) << 7)
}

// setFine writes the low 7 bits of a 14-bit controller, preserving
// the high 7 bits already present.
func setFine(field *uint16, lsb uint8) {
	*field = (*field &^ 0x7F) | uint16(lsb)
}

func (c *Channel) setPitchBend(lsb, msb uint8) {
	raw := int32(lsb) | int32(msb)<<7
	c.pitchBendRaw = int16(raw - 8192)
}

// processControlChange dispatches a single Control Change message
// (status 0xB0).
func (c *Channel) processControlChange(controller, value uint8) {
	switch controller {
	case ccBankSelectMSB:
		c.bankMSB = value
	case ccBankSelectLSB:
		c.bankLSB = value
	case ccModulationMSB:
		setCoarse(&c.modulation, value)
	case ccModulationLSB:
		setFine(&c.modulation, value)
	case ccVolumeMSB:
		setCoarse(&c.volume, value)
	case ccVolumeLSB:
		setFine(&c.volume, value)
	case ccPanMSB:
		setCoarse(&c.pan, value)
	case ccPanLSB:
		setFine(&c.pan, value)
	case ccExpressionMSB:
		setCoarse(&c.expression, value)
	case ccExpressionLSB:
		setFine(&c.expression, value)
	case ccHoldPedal:
		c.holdPedal = value >= 64
	case ccReverbSend:
		c.reverbSendByte = value
	case ccChorusSend:
		c.chorusSendByte = value
	case ccRPNMSB:
		c.setRPNCoarse(value)
	case ccRPNLSB:
		c.setRPNFine(value)
	case ccDataEntryMSB:
		c.dataEntryCoarse(value)
	case ccDataEntryLSB:
		c.dataEntryFine(value)
	case ccAllSoundOff:
		// dispatched by the synthesizer, not state here
	case ccResetAllController:
		c.resetAllControllers()
	case ccAllNotesOff:
		// dispatched by the synthesizer, not state here
	}
}

// setRPNCoarse handles Registered Parameter Number Coarse (CC 101):
// the high 7 bits of the selector. 0x7F/0x7F (RPN null) deselects.
func (c *Channel) setRPNCoarse(value uint8) {
	if value == 0x7F {
		c.rpnSet = false
		return
	}
	setCoarse(&c.rpn, value)
	c.rpnSet = true
}

// setRPNFine handles Registered Parameter Number Fine (CC 100): the
// low 7 bits of the selector. This writes into the channel's rpn
// selector field directly, unlike an earlier iteration of this logic
// that mistakenly wrote the fine half into an unrelated field.
func (c *Channel) setRPNFine(value uint8) {
	if value == 0x7F {
		c.rpnSet = false
		return
	}
	setFine(&c.rpn, value)
	c.rpnSet = true
}

func (c *Channel) dataEntryCoarse(value uint8) {
	if !c.rpnSet {
		return
	}
	switch c.rpn {
	case rpnPitchBendRange:
		setCoarse(&c.pitchBendRange, value)
	case rpnFineTune:
		setCoarse(&c.fineTune, value)
	case rpnCoarseTune:
		c.coarseTune = int16(value) - 64
	}
}

func (c *Channel) dataEntryFine(value uint8) {
	if !c.rpnSet {
		return
	}
	switch c.rpn {
	case rpnPitchBendRange:
		setFine(&c.pitchBendRange, value)
	case rpnFineTune:
		setFine(&c.fineTune, value)
	}
}
