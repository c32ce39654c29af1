package gosfsynth

// region holds one SF2 zone's generator values as a dense array
// indexed by generatorType, the same "61 shorts" layout the binary
// format itself uses. Both preset zones and instrument zones are
// represented this way; RegionPair reads through both at once.
type region struct {
	gen [generatorCount]int16
}

// newRegion returns a region pre-populated with the SF2 spec's default
// generator amounts. A zone only overwrites the slots its generator
// list actually names; everything else keeps these defaults.
func newRegion() region {
	var r region
	r.gen[genInitialFilterFc] = 13500
	r.gen[genDelayModLFO] = -12000
	r.gen[genDelayVibLFO] = -12000
	r.gen[genDelayModEnv] = -12000
	r.gen[genAttackModEnv] = -12000
	r.gen[genHoldModEnv] = -12000
	r.gen[genDecayModEnv] = -12000
	r.gen[genReleaseModEnv] = -12000
	r.gen[genDelayVolEnv] = -12000
	r.gen[genAttackVolEnv] = -12000
	r.gen[genHoldVolEnv] = -12000
	r.gen[genDecayVolEnv] = -12000
	r.gen[genReleaseVolEnv] = -12000
	r.gen[genKeyRange] = packRange(0, 127)
	r.gen[genVelRange] = packRange(0, 127)
	r.gen[genKeyNum] = -1
	r.gen[genVelocity] = -1
	r.gen[genScaleTuning] = 100
	r.gen[genOverridingRootKey] = -1
	return r
}

// newPresetRegion returns a region with every generator zeroed except
// key/velocity range. Preset zones are always summed onto an
// instrument zone through regionPair.sum, so a preset region must
// start from zero rather than newRegion's instrument defaults — an
// instrument region already contributes those defaults once, and
// summing them a second time from the preset side would double every
// additive generator (filter cutoff, envelope timecents, and so on).
func newPresetRegion() region {
	var r region
	r.gen[genKeyRange] = packRange(0, 127)
	r.gen[genVelRange] = packRange(0, 127)
	return r
}

// packRange combines a [lo, hi] MIDI key/velocity range into the
// generator's two-byte encoding (low byte = lo, high byte = hi).
func packRange(lo, hi uint8) int16 {
	return int16(uint16(lo) | uint16(hi)<<8)
}

// apply overwrites the generator named by g with amount, used while
// walking a zone's generator list onto a freshly defaulted region.
func (r *region) apply(g generatorType, amount int16) {
	if int(g) < len(r.gen) {
		r.gen[g] = amount
	}
}

// raw returns the generator's signed 16-bit amount as stored.
func (r *region) raw(g generatorType) int16 { return r.gen[g] }

// unsigned returns the generator's amount reinterpreted as unsigned,
// for generators the spec defines as WORD rather than SHORT
// (instrument index, sampleID, sampleModes).
func (r *region) unsigned(g generatorType) uint16 { return uint16(r.gen[g]) }

// rangeLow and rangeHigh unpack a two-byte MIDI range generator
// (keyRange, velRange).
func (r *region) rangeLow(g generatorType) uint8  { return uint8(r.unsigned(g)) }
func (r *region) rangeHigh(g generatorType) uint8 { return uint8(r.unsigned(g) >> 8) }
