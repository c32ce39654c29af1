package gosfsynth

import "fmt"

// presetRegion is one preset zone, resolved into a dense generator
// array plus the instrument it selects.
type presetRegion struct {
	region          region
	instrumentIndex int
}

// Preset is a named collection of preset zones, each of which maps a
// key/velocity range to an instrument plus additive generator
// overrides layered on top of it.
type Preset struct {
	Name    string
	Number  uint16
	Bank    uint16
	Regions []presetRegion
}

// matches reports whether this zone's own key/velocity range covers
// the given note. Key/velocity range is never delegated to the
// instrument side of a region pair — each side is checked
// independently against the note before a pair is even formed.
func (pr presetRegion) matches(key, velocity int) bool {
	lo, hi := pr.region.rangeLow(genKeyRange), pr.region.rangeHigh(genKeyRange)
	if key < int(lo) || key > int(hi) {
		return false
	}
	lo, hi = pr.region.rangeLow(genVelRange), pr.region.rangeHigh(genVelRange)
	return velocity >= int(lo) && velocity <= int(hi)
}

// id returns the (bank, preset) pair packed for lookup, matching the
// convention bank<<16|preset used elsewhere in this package to index
// presets by MIDI program-change/bank-select.
func (p Preset) id() int { return int(p.Bank)<<16 | int(p.Number) }

// buildPresets resolves the raw phdr/pbag/pgen arrays into Preset
// values. The last record in presetHeaders is always a terminal dummy
// and is not turned into a Preset of its own.
func buildPresets(raw *soundFontHydra) ([]Preset, error) {
	if len(raw.presetHeaders) < 2 {
		return nil, fmt.Errorf("%w: phdr requires at least 2 records", ErrMalformedContainer)
	}

	zones, err := buildZones(raw.presetBagGenStart, raw.presetGenerators)
	if err != nil {
		return nil, err
	}

	presets := make([]Preset, len(raw.presetHeaders)-1)
	for i := range presets {
		bagStart := raw.presetHeaders[i].PresetBagNdx
		bagEnd := raw.presetHeaders[i+1].PresetBagNdx
		if bagEnd < bagStart || int(bagEnd) > len(zones) {
			return nil, fmt.Errorf("%w: preset %q has an invalid bag range", ErrMalformedContainer, asciiZ(raw.presetHeaders[i].PresetName[:]))
		}
		presetZones := zones[bagStart:bagEnd]

		base := newPresetRegion()
		regionStart := 0
		if len(presetZones) > 0 && presetZones[0].isGlobal(genInstrument) {
			base = presetZones[0].toRegion(base)
			regionStart = 1
		}

		p := Preset{
			Name:   asciiZ(raw.presetHeaders[i].PresetName[:]),
			Number: raw.presetHeaders[i].Preset,
			Bank:   raw.presetHeaders[i].Bank,
		}
		for _, z := range presetZones[regionStart:] {
			r := z.toRegion(base)
			p.Regions = append(p.Regions, presetRegion{region: r, instrumentIndex: int(r.unsigned(genInstrument))})
		}
		presets[i] = p
	}
	return presets, nil
}
