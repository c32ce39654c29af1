package gosfsynth

// MidiFileSequencer drives a Synthesizer from a parsed MidiFile,
// pumping channel-voice events into it as rendered time advances
// rather than requiring the caller to schedule MIDI messages itself.
type MidiFileSequencer struct {
	synth *Synthesizer

	file *MidiFile
	loop bool

	index       int
	currentTime float64
}

// NewMidiFileSequencer returns a sequencer that drives synth.
func NewMidiFileSequencer(synth *Synthesizer) *MidiFileSequencer {
	return &MidiFileSequencer{synth: synth}
}

// Play starts (or restarts) playback of file. The synthesizer is reset
// first, so any notes left sounding from a previous file do not bleed
// into the new one.
func (s *MidiFileSequencer) Play(file *MidiFile, loop bool) {
	s.synth.Reset()
	s.file = file
	s.loop = loop
	s.index = 0
	s.currentTime = 0
}

// Stop silences every voice and detaches the current file; Render
// becomes a no-op until Play is called again.
func (s *MidiFileSequencer) Stop() {
	s.synth.NoteOffAll(true)
	s.file = nil
}

// Render advances playback by len(left) frames (left and right must be
// equal length) and fills them with synthesized audio. Every MIDI
// event whose timestamp falls at or before the block's end time is
// delivered to the synthesizer before that block is rendered, so an
// event's audible effect always lands within the block it belongs to.
func (s *MidiFileSequencer) Render(left, right []float32) error {
	if s.file == nil {
		for i := range left {
			left[i] = 0
			right[i] = 0
		}
		return nil
	}

	blockEnd := s.currentTime + float64(len(left))/s.synth.settings.SampleRate
	for s.index < len(s.file.events) && s.file.events[s.index].time <= blockEnd {
		ev := s.file.events[s.index]
		if err := s.synth.ProcessMIDIMessage(int(ev.channel), ev.command, ev.data1, ev.data2); err != nil {
			return err
		}
		s.index++
	}
	s.currentTime = blockEnd

	if err := s.synth.Render(left, right); err != nil {
		return err
	}

	if s.currentTime >= s.file.length && s.index >= len(s.file.events) {
		if !s.loop {
			s.file = nil
			return nil
		}
		s.currentTime = 0
		s.index = 0
		s.synth.NoteOffAll(false)
	}
	return nil
}
