package gosfsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerRenderSilentWithoutAFileLoaded(t *testing.T) {
	s, err := NewSynthesizer(minimalSoundFont(), NewSynthesizerSettings(44100))
	require.NoError(t, err)
	seq := NewMidiFileSequencer(s)

	left := make([]float32, 32)
	right := make([]float32, 32)
	require.NoError(t, seq.Render(left, right))
	for _, v := range left {
		assert.Equal(t, float32(0), v)
	}
}

func TestSequencerPlayDispatchesEventsAsTimePasses(t *testing.T) {
	s, err := NewSynthesizer(minimalSoundFont(), NewSynthesizerSettings(16000))
	require.NoError(t, err)
	seq := NewMidiFileSequencer(s)

	file := &MidiFile{
		events: []midiEvent{
			{time: 0, channel: 0, command: 0x90, data1: 60, data2: 100},
		},
		length: 0.5,
	}
	seq.Play(file, false)

	left := make([]float32, 50)
	right := make([]float32, 50)
	require.NoError(t, seq.Render(left, right))
	assert.Equal(t, 1, s.ActiveVoiceCount())
}

func TestSequencerStopSilencesAndDetachesFile(t *testing.T) {
	s, err := NewSynthesizer(minimalSoundFont(), NewSynthesizerSettings(16000))
	require.NoError(t, err)
	seq := NewMidiFileSequencer(s)

	file := &MidiFile{
		events: []midiEvent{{time: 0, channel: 0, command: 0x90, data1: 60, data2: 100}},
		length: 0.5,
	}
	seq.Play(file, false)
	seq.Stop()

	assert.Nil(t, seq.file)
	left := make([]float32, 16)
	right := make([]float32, 16)
	require.NoError(t, seq.Render(left, right))
	for _, v := range left {
		assert.Equal(t, float32(0), v)
	}
}

func TestSequencerLoopsBackToStartWhenFileEnds(t *testing.T) {
	s, err := NewSynthesizer(minimalSoundFont(), NewSynthesizerSettings(16000))
	require.NoError(t, err)
	seq := NewMidiFileSequencer(s)

	file := &MidiFile{
		events: []midiEvent{{time: 0, channel: 0, command: 0x90, data1: 60, data2: 100}},
		length: 0.01, // ends almost immediately
	}
	seq.Play(file, true)

	left := make([]float32, 1024) // 64 ms at 16 kHz, well past the file's end
	right := make([]float32, 1024)
	require.NoError(t, seq.Render(left, right))

	assert.Equal(t, 0, seq.index)
	assert.Equal(t, 0.0, seq.currentTime)
	assert.NotNil(t, seq.file)
}

func TestSequencerDetachesFileWhenNotLooping(t *testing.T) {
	s, err := NewSynthesizer(minimalSoundFont(), NewSynthesizerSettings(16000))
	require.NoError(t, err)
	seq := NewMidiFileSequencer(s)

	file := &MidiFile{
		events: []midiEvent{{time: 0, channel: 0, command: 0x90, data1: 60, data2: 100}},
		length: 0.01,
	}
	seq.Play(file, false)

	left := make([]float32, 1024)
	right := make([]float32, 1024)
	require.NoError(t, seq.Render(left, right))
	assert.Nil(t, seq.file)
}
