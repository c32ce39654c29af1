package gosfsynth

// regionPair is an ephemeral view over a preset region and the
// instrument region it selects. Most generators are additive: the
// sounding value is the preset zone's amount plus the instrument
// zone's amount, with the SF2 defaults supplying whichever side a
// generator list never mentioned. A handful of generators are
// structural rather than additive (sample selection, key/velocity
// range, loop mode, exclusive class, root key override) and are only
// ever meaningful on the instrument side, so those are read directly
// off the instrument region instead of summed.
type regionPair struct {
	preset *presetRegion
	inst   *instrumentRegion
}

func newRegionPair(p *presetRegion, i *instrumentRegion) regionPair {
	return regionPair{preset: p, inst: i}
}

// sum returns the additive combination of an amount generator.
func (rp regionPair) sum(g generatorType) int16 {
	return rp.preset.region.raw(g) + rp.inst.region.raw(g)
}

func (rp regionPair) sumFloat(g generatorType) float64 {
	return float64(rp.sum(g))
}

// sampleHeaderIndex, loopMode, exclusiveClass, and overridingRootKey
// are all read from the instrument side only — presets never override
// them. scaleTuning, like coarse/fine tune (see params.go's tune), is
// additive. Key/velocity range matching happens earlier, before a
// pair even exists: each side's own region is checked independently
// against the note (see presetRegion.matches/instrumentRegion.matches).
func (rp regionPair) sampleHeaderIndex() int { return rp.inst.sampleHeaderIndex }

func (rp regionPair) sampleLoopMode() loopMode {
	return loopMode(rp.inst.region.raw(genSampleModes) & 0x3)
}

func (rp regionPair) exclusiveClass() int16 { return rp.inst.region.raw(genExclusiveClass) }

func (rp regionPair) overridingRootKey() int16 { return rp.inst.region.raw(genOverridingRootKey) }

func (rp regionPair) scaleTuning() int16 { return rp.sum(genScaleTuning) }
