package gosfsynth

import (
	"fmt"
	"io"
)

// SoundFont is a fully parsed SF2 bank: its metadata, presets,
// instruments, and the normalized sample pool they address.
type SoundFont struct {
	Info          *SoundFontInfo
	Presets       []Preset
	Instruments   []Instrument
	SampleHeaders []SampleHeader
	samples       *samplePool
}

// LoadSoundFont reads a complete SF2 file from r: the RIFF container,
// its INFO/sdta/pdta LIST chunks, and folds the raw preset/instrument
// zone tables into resolved Preset/Instrument regions.
func LoadSoundFont(r io.Reader) (*SoundFont, error) {
	var riff chunk
	if err := riff.expect(r, [4]byte{'R', 'I', 'F', 'F'}); err != nil {
		return nil, fmt.Errorf("reading RIFF header: %w", err)
	}
	body := riff.newReader()

	if err := expectLiteral(body, []byte("sfbk")); err != nil {
		return nil, fmt.Errorf("reading sfbk literal: %w", err)
	}

	var infoList chunk
	if err := infoList.expect(body, [4]byte{'L', 'I', 'S', 'T'}); err != nil {
		return nil, fmt.Errorf("reading INFO LIST: %w", err)
	}
	info, err := readSoundFontInfo(infoList.newReader())
	if err != nil {
		return nil, fmt.Errorf("reading INFO chunk: %w", err)
	}

	var sdtaList chunk
	if err := sdtaList.expect(body, [4]byte{'L', 'I', 'S', 'T'}); err != nil {
		return nil, fmt.Errorf("reading sdta LIST: %w", err)
	}
	sdtaReader := sdtaList.newReader()
	if err := expectLiteral(sdtaReader, []byte("sdta")); err != nil {
		return nil, fmt.Errorf("reading sdta literal: %w", err)
	}
	samples, err := readSamplePool(sdtaReader)
	if err != nil {
		return nil, fmt.Errorf("reading sdta chunk: %w", err)
	}

	var pdtaList chunk
	if err := pdtaList.expect(body, [4]byte{'L', 'I', 'S', 'T'}); err != nil {
		return nil, fmt.Errorf("reading pdta LIST: %w", err)
	}
	pdtaReader := pdtaList.newReader()
	if err := expectLiteral(pdtaReader, []byte("pdta")); err != nil {
		return nil, fmt.Errorf("reading pdta literal: %w", err)
	}
	raw, err := readSoundFontHydra(pdtaReader)
	if err != nil {
		return nil, fmt.Errorf("reading pdta chunk: %w", err)
	}

	instruments, err := buildInstruments(raw)
	if err != nil {
		return nil, fmt.Errorf("resolving instruments: %w", err)
	}
	presets, err := buildPresets(raw)
	if err != nil {
		return nil, fmt.Errorf("resolving presets: %w", err)
	}
	for i := range presets {
		for _, pr := range presets[i].Regions {
			if pr.instrumentIndex >= len(instruments) {
				return nil, fmt.Errorf("%w: preset %q references instrument %d out of range", ErrOutOfRange, presets[i].Name, pr.instrumentIndex)
			}
		}
	}

	sf := &SoundFont{
		Info:          info,
		Presets:       presets,
		Instruments:   instruments,
		SampleHeaders: raw.sampleHeaders[:len(raw.sampleHeaders)-1],
		samples:       samples,
	}
	logger.Debug("loaded soundfont", "name", info.Name, "presets", len(presets), "instruments", len(instruments))
	return sf, nil
}

// sampleData returns the normalized sample pool that header's absolute
// Start/End/Startloop/Endloop offsets index into, or nil when the
// header's span does not fit inside the pool.
func (sf *SoundFont) sampleData(header SampleHeader) []float32 {
	if sf.samples == nil || int(header.End) > len(sf.samples.data) {
		return nil
	}
	return sf.samples.data
}

// findPreset locates a preset by MIDI bank and program number,
// returning (preset, true) on success.
func (sf *SoundFont) findPreset(bank, number uint16) (*Preset, bool) {
	for i := range sf.Presets {
		if sf.Presets[i].Bank == bank && sf.Presets[i].Number == number {
			return &sf.Presets[i], true
		}
	}
	return nil, false
}
