package gosfsynth

import "fmt"

// channelCount is the number of MIDI channels a Synthesizer exposes.
const channelCount = 16

// SynthesizerSettings configures a Synthesizer's render parameters.
// Values outside their permitted range are rejected by NewSynthesizer
// rather than silently clamped.
type SynthesizerSettings struct {
	// SampleRate is the output sample rate in Hz, 16000-192000.
	SampleRate float64
	// BlockSize is the number of frames rendered per internal block,
	// 8-1024. Render can be called with any buffer length; BlockSize
	// only controls how often envelopes/LFOs/filters are recomputed.
	BlockSize int
	// MaximumPolyphony caps the number of simultaneously sounding
	// voices, 8-256.
	MaximumPolyphony int
	// EnableReverbAndChorus is carried through to callers that wire an
	// effects send themselves; this package never applies reverb or
	// chorus processing on its own.
	EnableReverbAndChorus bool
}

// NewSynthesizerSettings returns settings with the library's defaults
// (64-frame blocks, 64-voice polyphony, reverb/chorus sends enabled)
// at the given sample rate.
func NewSynthesizerSettings(sampleRate float64) SynthesizerSettings {
	return SynthesizerSettings{
		SampleRate:            sampleRate,
		BlockSize:             64,
		MaximumPolyphony:      64,
		EnableReverbAndChorus: true,
	}
}

func (s SynthesizerSettings) validate() error {
	if s.SampleRate < 16000 || s.SampleRate > 192000 {
		return fmt.Errorf("%w: sample rate %v not in [16000, 192000]", ErrInvalidConfig, s.SampleRate)
	}
	if s.BlockSize < 8 || s.BlockSize > 1024 {
		return fmt.Errorf("%w: block size %d not in [8, 1024]", ErrInvalidConfig, s.BlockSize)
	}
	if s.MaximumPolyphony < 8 || s.MaximumPolyphony > 256 {
		return fmt.Errorf("%w: maximum polyphony %d not in [8, 256]", ErrInvalidConfig, s.MaximumPolyphony)
	}
	return nil
}

// Synthesizer renders MIDI channel state and a SoundFont's presets
// into a stream of stereo samples. A single Synthesizer owns 16
// channels (channel 9 is the percussion channel) and a fixed-capacity
// voice pool; it is not safe for concurrent use.
type Synthesizer struct {
	soundFont *SoundFont
	settings  SynthesizerSettings

	channels [channelCount]*Channel
	voices   *voiceCollection

	presetsByID   map[int]*Preset
	defaultPreset *Preset

	masterVolume float64

	minimumVoiceDuration int64

	blockLeft    []float32
	blockRight   []float32
	voiceScratch []float32
	blockRead    int
}

// NewSynthesizer builds a Synthesizer bound to sf, validating settings
// first.
func NewSynthesizer(sf *SoundFont, settings SynthesizerSettings) (*Synthesizer, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	s := &Synthesizer{
		soundFont:            sf,
		settings:             settings,
		masterVolume:         0.5,
		minimumVoiceDuration: int64(settings.SampleRate) / 500,
		voices:               newVoiceCollection(settings.MaximumPolyphony),
		blockLeft:            make([]float32, settings.BlockSize),
		blockRight:           make([]float32, settings.BlockSize),
		voiceScratch:         make([]float32, settings.BlockSize),
		blockRead:            settings.BlockSize,
	}
	for i := range s.channels {
		s.channels[i] = newChannel(i == percussionChannel)
	}

	s.presetsByID = make(map[int]*Preset, len(sf.Presets))
	for i := range sf.Presets {
		p := &sf.Presets[i]
		id := p.id()
		s.presetsByID[id] = p
		if s.defaultPreset == nil || id < s.defaultPreset.id() {
			s.defaultPreset = p
		}
	}

	logger.Debug("synthesizer ready", "presets", len(s.presetsByID), "polyphony", settings.MaximumPolyphony)
	return s, nil
}

// ChannelCount returns the number of MIDI channels the synthesizer
// exposes (always 16).
func (s *Synthesizer) ChannelCount() int { return channelCount }

// PercussionChannel returns the index of the channel whose preset
// lookup always resolves against bank 128 (always 9, General MIDI's
// drum channel).
func (s *Synthesizer) PercussionChannel() int { return percussionChannel }

// MasterVolume returns the linear gain applied to the whole mix after
// every voice has been summed.
func (s *Synthesizer) MasterVolume() float64 { return s.masterVolume }

// SetMasterVolume sets the linear gain applied to the whole mix.
func (s *Synthesizer) SetMasterVolume(volume float64) { s.masterVolume = volume }

// ActiveVoiceCount returns the number of voices currently sounding.
func (s *Synthesizer) ActiveVoiceCount() int { return s.voices.activeCount() }

// Reset silences every voice and restores every channel to its MIDI
// power-on default, as if the synthesizer had just been constructed.
func (s *Synthesizer) Reset() {
	s.voices.clear()
	for _, ch := range s.channels {
		ch.reset()
	}
	s.blockRead = s.settings.BlockSize
}

// ProcessMIDIMessage dispatches a single channel-voice MIDI message
// (Note Off, Note On, Control Change, Program Change, Pitch Bend).
func (s *Synthesizer) ProcessMIDIMessage(channel int, command, data1, data2 uint8) error {
	if channel < 0 || channel >= channelCount {
		return fmt.Errorf("%w: channel %d", ErrOutOfRange, channel)
	}
	ch := s.channels[channel]

	switch command & 0xF0 {
	case 0x80:
		return s.NoteOff(channel, int(data1))
	case 0x90:
		return s.NoteOn(channel, int(data1), int(data2))
	case 0xB0:
		switch data1 {
		case ccAllSoundOff:
			s.voices.forEachOnChannel(channel, func(v *Voice) { v.kill() })
		case ccAllNotesOff:
			s.voices.forEachOnChannel(channel, func(v *Voice) { v.release() })
		default:
			ch.processControlChange(data1, data2)
		}
	case 0xC0:
		ch.patch = data1
	case 0xE0:
		ch.setPitchBend(data1, data2)
	}
	return nil
}

// NoteOn starts every instrument region, across every matching preset
// region, whose key/velocity range covers (key, velocity) on channel's
// current preset. A velocity of 0 is treated as Note Off, per the MIDI
// spec's running-status convention.
func (s *Synthesizer) NoteOn(channel, key, velocity int) error {
	if channel < 0 || channel >= channelCount {
		return fmt.Errorf("%w: channel %d", ErrOutOfRange, channel)
	}
	if velocity == 0 {
		return s.NoteOff(channel, key)
	}
	if key < 0 || key > 127 || velocity < 0 || velocity > 127 {
		return fmt.Errorf("%w: key %d velocity %d", ErrOutOfRange, key, velocity)
	}

	ch := s.channels[channel]
	preset := s.findPresetForChannel(ch)
	if preset == nil {
		return nil
	}

	for i := range preset.Regions {
		pr := &preset.Regions[i]
		if !pr.matches(key, velocity) {
			continue
		}
		if pr.instrumentIndex >= len(s.soundFont.Instruments) {
			continue
		}
		inst := &s.soundFont.Instruments[pr.instrumentIndex]
		for j := range inst.Regions {
			ir := &inst.Regions[j]
			if !ir.matches(key, velocity) {
				continue
			}
			rp := newRegionPair(pr, ir)
			if rp.sampleHeaderIndex() >= len(s.soundFont.SampleHeaders) {
				continue
			}
			sh := s.soundFont.SampleHeaders[rp.sampleHeaderIndex()]
			data := s.soundFont.sampleData(sh)

			v := s.voices.requestNew(rp.exclusiveClass(), channel)
			if v == nil {
				continue
			}
			v.start(s, rp, sh, data, channel, key, velocity)
		}
	}
	return nil
}

// findPresetForChannel resolves channel's bank/program to a preset,
// following the fallback chain: exact (bank, patch) match; else
// (bank 0, patch) for melodic channels or (bank 128, patch 0) for the
// percussion channel; else the preset with the smallest ID.
func (s *Synthesizer) findPresetForChannel(ch *Channel) *Preset {
	bank := int(ch.bankNumber())
	patch := int(ch.programNumber())

	if p, ok := s.presetsByID[bank<<16|patch]; ok {
		return p
	}

	var fallback int
	if bank < 128 {
		fallback = patch
	} else {
		fallback = 128 << 16
	}
	if p, ok := s.presetsByID[fallback]; ok {
		return p
	}

	return s.defaultPreset
}

// NoteOff requests release of every active voice on channel sounding
// key. Actual silence is deferred to the voice's release envelope
// (and the hold pedal, if down).
func (s *Synthesizer) NoteOff(channel, key int) error {
	if channel < 0 || channel >= channelCount {
		return fmt.Errorf("%w: channel %d", ErrOutOfRange, channel)
	}
	s.voices.forEachOnChannelKey(channel, key, func(v *Voice) { v.release() })
	return nil
}

// NoteOffAll stops every voice on every channel. immediate kills
// voices outright (MIDI All Sound Off); otherwise they are released
// through their normal envelope (MIDI All Notes Off).
func (s *Synthesizer) NoteOffAll(immediate bool) {
	for c := 0; c < channelCount; c++ {
		s.voices.forEachOnChannel(c, func(v *Voice) {
			if immediate {
				v.kill()
			} else {
				v.release()
			}
		})
	}
}

// Render fills left and right with synthesized stereo samples. The two
// buffers must have equal length.
func (s *Synthesizer) Render(left, right []float32) error {
	if len(left) != len(right) {
		return fmt.Errorf("%w: left/right buffer length mismatch (%d vs %d)", ErrRenderMisuse, len(left), len(right))
	}

	wrote := 0
	for wrote < len(left) {
		if s.blockRead >= s.settings.BlockSize {
			s.renderBlock()
			s.blockRead = 0
		}
		n := s.settings.BlockSize - s.blockRead
		if rem := len(left) - wrote; rem < n {
			n = rem
		}
		copy(left[wrote:wrote+n], s.blockLeft[s.blockRead:s.blockRead+n])
		copy(right[wrote:wrote+n], s.blockRight[s.blockRead:s.blockRead+n])
		s.blockRead += n
		wrote += n
	}
	return nil
}

// renderBlock advances every active voice by one block and mixes the
// result into blockLeft/blockRight, ramping each voice's contribution
// from its previous gain to its current one rather than stepping
// discontinuously.
func (s *Synthesizer) renderBlock() {
	for i := range s.blockLeft {
		s.blockLeft[i] = 0
		s.blockRight[i] = 0
	}

	s.voices.process(func(v *Voice) bool {
		alive := v.process(s.voiceScratch, s.channels[v.channel], s.minimumVoiceDuration)
		writeBlock(v.previousMixGainLeft, v.currentMixGainLeft, s.voiceScratch, s.blockLeft)
		writeBlock(v.previousMixGainRight, v.currentMixGainRight, s.voiceScratch, s.blockRight)
		return alive
	})

	for i := range s.blockLeft {
		s.blockLeft[i] *= float32(s.masterVolume)
		s.blockRight[i] *= float32(s.masterVolume)
	}
}

// writeBlock adds source*gain into dest, ramping gain linearly from
// prevGain to curGain across the block rather than applying curGain
// uniformly, which would otherwise click whenever a voice's mix gain
// changes between blocks. A pair of gains that are both inaudible is
// skipped entirely; a pair that is nearly unchanged is applied as a
// flat multiply, skipping the ramp's per-sample gain update.
func writeBlock(prevGain, curGain float64, source, dest []float32) {
	if prevGain < nonAudible && curGain < nonAudible {
		return
	}
	if prevGain < 0 {
		prevGain = 0
	}

	if absFloat(curGain-prevGain) < nonAudible {
		gain := float32(curGain)
		for i, x := range source {
			dest[i] += x * gain
		}
		return
	}

	n := len(source)
	step := (curGain - prevGain) / float64(n)
	gain := prevGain
	for i, x := range source {
		gain += step
		dest[i] += x * float32(gain)
	}
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
