package gosfsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalSoundFont builds a one-sample, one-instrument, one-preset
// SoundFont spanning the full key/velocity range, enough to exercise
// NoteOn/NoteOff/Render without parsing an actual SF2 file.
func minimalSoundFont() *SoundFont {
	data := make([]float32, 2000)
	for i := range data {
		data[i] = 0.5
	}

	instR := newRegion()
	inst := Instrument{
		Name:    "test instrument",
		Regions: []instrumentRegion{{region: instR, sampleHeaderIndex: 0}},
	}

	presetR := newPresetRegion()
	preset := Preset{
		Name:    "test preset",
		Number:  0,
		Bank:    0,
		Regions: []presetRegion{{region: presetR, instrumentIndex: 0}},
	}

	sh := SampleHeader{
		Start:         0,
		End:           2000,
		Startloop:     500,
		Endloop:       1500,
		SampleRate:    44100,
		OriginalPitch: 60,
	}

	return &SoundFont{
		Presets:       []Preset{preset},
		Instruments:   []Instrument{inst},
		SampleHeaders: []SampleHeader{sh},
		samples:       &samplePool{data: data},
	}
}

func newTestSynth(t *testing.T) *Synthesizer {
	t.Helper()
	sf := minimalSoundFont()
	s, err := NewSynthesizer(sf, NewSynthesizerSettings(44100))
	require.NoError(t, err)
	return s
}

func TestNewSynthesizerRejectsInvalidSettings(t *testing.T) {
	sf := minimalSoundFont()
	settings := NewSynthesizerSettings(44100)
	settings.BlockSize = 1
	_, err := NewSynthesizer(sf, settings)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNoteOnStartsAVoice(t *testing.T) {
	s := newTestSynth(t)
	err := s.NoteOn(0, 60, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, s.ActiveVoiceCount())
}

func TestNoteOnZeroVelocityActsAsNoteOff(t *testing.T) {
	s := newTestSynth(t)
	require.NoError(t, s.NoteOn(0, 60, 100))
	require.NoError(t, s.NoteOn(0, 60, 0))

	v := &s.voices.voices[0]
	assert.Equal(t, voiceReleaseRequested, v.state)
}

func TestNoteOnRejectsOutOfRangeKey(t *testing.T) {
	s := newTestSynth(t)
	err := s.NoteOn(0, 200, 100)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNoteOffRequestsReleaseNotImmediateSilence(t *testing.T) {
	s := newTestSynth(t)
	require.NoError(t, s.NoteOn(0, 60, 100))
	require.NoError(t, s.NoteOff(0, 60))
	assert.Equal(t, 1, s.ActiveVoiceCount()) // still sounding through release
}

func TestNoteOffAllImmediateKillsVoicesNextBlock(t *testing.T) {
	s := newTestSynth(t)
	require.NoError(t, s.NoteOn(0, 60, 100))
	s.NoteOffAll(true)

	left := make([]float32, s.settings.BlockSize)
	right := make([]float32, s.settings.BlockSize)
	require.NoError(t, s.Render(left, right))
	assert.Equal(t, 0, s.ActiveVoiceCount())
}

func TestRenderRejectsMismatchedBufferLengths(t *testing.T) {
	s := newTestSynth(t)
	err := s.Render(make([]float32, 10), make([]float32, 11))
	assert.ErrorIs(t, err, ErrRenderMisuse)
}

func TestRenderProducesNonSilentOutputForASoundingVoice(t *testing.T) {
	s := newTestSynth(t)
	require.NoError(t, s.NoteOn(0, 60, 127))

	left := make([]float32, 256)
	right := make([]float32, 256)
	require.NoError(t, s.Render(left, right))

	var sum float32
	for _, v := range left {
		if v < 0 {
			sum -= v
		} else {
			sum += v
		}
	}
	assert.Greater(t, sum, float32(0))
}

func TestRenderProducesExactlyRequestedLength(t *testing.T) {
	s := newTestSynth(t)
	left := make([]float32, 137) // deliberately not a multiple of BlockSize
	right := make([]float32, 137)
	require.NoError(t, s.Render(left, right))
}

func TestResetSilencesVoicesAndChannelState(t *testing.T) {
	s := newTestSynth(t)
	require.NoError(t, s.NoteOn(0, 60, 100))
	s.channels[0].processControlChange(ccVolumeMSB, 1)

	s.Reset()

	assert.Equal(t, 0, s.ActiveVoiceCount())
	assert.InDelta(t, float64(100<<7)/16383, s.channels[0].Volume(), 1e-9)
}

func TestFindPresetForChannelFallsBackToBankZero(t *testing.T) {
	s := newTestSynth(t)
	ch := newChannel(false)
	ch.bankMSB = 5 // no preset registered at bank 5; should fall back to bank 0
	p := s.findPresetForChannel(ch)
	require.NotNil(t, p)
	assert.Equal(t, uint16(0), p.Bank)
}

func TestProcessMIDIMessageDispatchesNoteOnAndOff(t *testing.T) {
	s := newTestSynth(t)
	require.NoError(t, s.ProcessMIDIMessage(0, 0x90, 60, 100))
	assert.Equal(t, 1, s.ActiveVoiceCount())
	require.NoError(t, s.ProcessMIDIMessage(0, 0x80, 60, 0))
	assert.Equal(t, voiceReleaseRequested, s.voices.voices[0].state)
}

func TestMasterVolumeAttenuatesOutput(t *testing.T) {
	s := newTestSynth(t)
	require.NoError(t, s.NoteOn(0, 60, 127))
	s.SetMasterVolume(0)

	left := make([]float32, 64)
	right := make([]float32, 64)
	require.NoError(t, s.Render(left, right))
	for _, v := range left {
		assert.Equal(t, float32(0), v)
	}
}
