package gosfsynth

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSMF assembles a minimal single-track Standard MIDI File from a
// raw MTrk event body, with the given ticks-per-quarter resolution.
func buildSMF(resolution uint16, trackBody []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("MThd")
	buf.Write([]byte{0, 0, 0, 6})
	buf.Write([]byte{0, 0}) // format 0
	buf.Write([]byte{0, 1}) // one track
	buf.Write([]byte{byte(resolution >> 8), byte(resolution)})

	buf.WriteString("MTrk")
	size := len(trackBody)
	buf.Write([]byte{byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size)})
	buf.Write(trackBody)
	return buf.Bytes()
}

func TestReadMidiFileParsesNoteOnNoteOffAtDefaultTempo(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x00)             // delta 0
	body.Write([]byte{0x90, 60, 100}) // note on
	body.WriteByte(0x60)              // delta 96 ticks
	body.Write([]byte{0x80, 60, 0})   // note off
	body.WriteByte(0x00)
	body.Write([]byte{0xFF, 0x2F, 0x00}) // end of track

	data := buildSMF(96, body.Bytes())
	mf, err := ReadMidiFile(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, mf.events, 2)
	assert.Equal(t, uint8(0x90), mf.events[0].command)
	assert.InDelta(t, 0.0, mf.events[0].time, 1e-9)
	assert.Equal(t, uint8(0x80), mf.events[1].command)
	// 96 ticks at 96 ticks/quarter and 500000us/quarter tempo == 0.5s
	assert.InDelta(t, 0.5, mf.events[1].time, 1e-6)
	assert.InDelta(t, 0.5, mf.Length(), 1e-6)
}

func TestReadMidiFileHonorsSetTempoMetaEvent(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x00)
	body.Write([]byte{0xFF, 0x51, 0x03, 0x0F, 0x42, 0x40}) // 1,000,000 us/quarter = 60 BPM
	body.WriteByte(0x60)
	body.Write([]byte{0x90, 60, 100})
	body.WriteByte(0x00)
	body.Write([]byte{0xFF, 0x2F, 0x00})

	data := buildSMF(96, body.Bytes())
	mf, err := ReadMidiFile(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, mf.events, 1)
	// 96 ticks at 96 ticks/quarter and 1,000,000us/quarter tempo == 1.0s
	assert.InDelta(t, 1.0, mf.events[0].time, 1e-6)
}

func TestReadMidiFileUsesRunningStatus(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x00)
	body.Write([]byte{0x90, 60, 100})
	body.WriteByte(0x00)
	body.Write([]byte{62, 100}) // running status: another note on, no status byte
	body.WriteByte(0x00)
	body.Write([]byte{0xFF, 0x2F, 0x00})

	data := buildSMF(96, body.Bytes())
	mf, err := ReadMidiFile(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, mf.events, 2)
	assert.Equal(t, uint8(0x90), mf.events[1].command)
	assert.Equal(t, uint8(62), mf.events[1].data1)
}

func TestReadMidiFileSkipsSysExPayload(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x00)
	body.Write([]byte{0xF0, 0x03, 0x7E, 0x7F, 0xF7}) // SysEx, 3-byte payload
	body.WriteByte(0x00)
	body.Write([]byte{0x90, 60, 100})
	body.WriteByte(0x00)
	body.Write([]byte{0xFF, 0x2F, 0x00})

	data := buildSMF(96, body.Bytes())
	mf, err := ReadMidiFile(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, mf.events, 1)
	assert.Equal(t, uint8(0x90), mf.events[0].command)
}

func TestReadMidiFileRejectsBadHeaderSize(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("MThd")
	buf.Write([]byte{0, 0, 0, 4}) // wrong size
	buf.Write([]byte{0, 0, 0, 1, 0, 96})

	_, err := ReadMidiFile(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrMalformedContainer)
}

func TestReadMidiFileRejectsSMPTEDivision(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(0x00)
	body.Write([]byte{0xFF, 0x2F, 0x00})

	var buf bytes.Buffer
	buf.WriteString("MThd")
	buf.Write([]byte{0, 0, 0, 6})
	buf.Write([]byte{0, 0, 0, 1})
	buf.Write([]byte{0x80, 0}) // SMPTE flag set

	buf.WriteString("MTrk")
	size := len(body.Bytes())
	buf.Write([]byte{byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size)})
	buf.Write(body.Bytes())

	_, err := ReadMidiFile(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrMalformedContainer)
}
