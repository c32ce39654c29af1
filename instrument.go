package gosfsynth

import "fmt"

// instrumentRegion is one instrument zone, resolved into a dense
// generator array plus the sample it addresses.
type instrumentRegion struct {
	region            region
	sampleHeaderIndex int
}

// matches reports whether this zone's own key/velocity range covers
// the given note. See presetRegion.matches: the two sides are checked
// independently, never through a region pair.
func (ir instrumentRegion) matches(key, velocity int) bool {
	lo, hi := ir.region.rangeLow(genKeyRange), ir.region.rangeHigh(genKeyRange)
	if key < int(lo) || key > int(hi) {
		return false
	}
	lo, hi = ir.region.rangeLow(genVelRange), ir.region.rangeHigh(genVelRange)
	return velocity >= int(lo) && velocity <= int(hi)
}

// Instrument is a named collection of instrument zones, each of which
// maps a key/velocity range to a sample and its playback parameters.
type Instrument struct {
	Name    string
	Regions []instrumentRegion
}

// buildInstruments resolves the raw inst/ibag/igen arrays into
// Instrument values. The last record in instruments is always a
// terminal dummy (per the SF2 spec) and is not turned into an
// Instrument of its own.
func buildInstruments(raw *soundFontHydra) ([]Instrument, error) {
	if len(raw.instruments) < 2 {
		return nil, fmt.Errorf("%w: inst requires at least 2 records", ErrMalformedContainer)
	}

	zones, err := buildZones(raw.instrumentBagGenStart, raw.instrumentGenerators)
	if err != nil {
		return nil, err
	}

	instruments := make([]Instrument, len(raw.instruments)-1)
	for i := range instruments {
		bagStart := raw.instruments[i].InstBagNdx
		bagEnd := raw.instruments[i+1].InstBagNdx
		if bagEnd < bagStart || int(bagEnd) > len(zones) {
			return nil, fmt.Errorf("%w: instrument %q has an invalid bag range", ErrMalformedContainer, asciiZ(raw.instruments[i].Name[:]))
		}
		instZones := zones[bagStart:bagEnd]

		base := newRegion()
		regionStart := 0
		if len(instZones) > 0 && instZones[0].isGlobal(genSampleID) {
			base = instZones[0].toRegion(base)
			regionStart = 1
		}

		inst := Instrument{Name: asciiZ(raw.instruments[i].Name[:])}
		for _, z := range instZones[regionStart:] {
			r := z.toRegion(base)
			sampleIdx := int(r.unsigned(genSampleID))
			if sampleIdx >= len(raw.sampleHeaders)-1 {
				return nil, fmt.Errorf("%w: instrument %q references sample %d out of range", ErrOutOfRange, inst.Name, sampleIdx)
			}
			inst.Regions = append(inst.Regions, instrumentRegion{region: r, sampleHeaderIndex: sampleIdx})
		}
		instruments[i] = inst
	}
	return instruments, nil
}
