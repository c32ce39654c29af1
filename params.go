package gosfsynth

// Typed parameter access over a regionPair, implementing the unit
// conversions the SF2 spec defines for each generator family
// (timecents, cents, centibels, packed ranges, address offsets).

func (rp regionPair) sampleStartOffset() int64 {
	return 32768*int64(rp.sum(genStartAddrCoarseOffset)) + int64(rp.sum(genStartAddrOffset))
}

func (rp regionPair) sampleEndOffset() int64 {
	return 32768*int64(rp.sum(genEndAddrCoarseOffset)) + int64(rp.sum(genEndAddrOffset))
}

func (rp regionPair) sampleStartLoopOffset() int64 {
	return 32768*int64(rp.sum(genStartLoopAddrCoarseOffset)) + int64(rp.sum(genStartLoopAddrOffset))
}

func (rp regionPair) sampleEndLoopOffset() int64 {
	return 32768*int64(rp.sum(genEndLoopAddrCoarseOffset)) + int64(rp.sum(genEndLoopAddrOffset))
}

// tune combines the coarse/fine tune generators with the sample's
// own recorded pitch correction, expressed in semitones.
func (rp regionPair) tune(samplePitchCorrection int8) float64 {
	cents := float64(rp.sum(genCoarseTune))*100 + float64(rp.sum(genFineTune)) + float64(samplePitchCorrection)
	return cents / 100
}

func (rp regionPair) pitchChangeScale() float64 {
	return float64(rp.scaleTuning()) / 100
}

func (rp regionPair) rootKey(originalPitch uint8) int {
	if over := rp.overridingRootKey(); over != -1 {
		return int(over)
	}
	return int(originalPitch)
}

func (rp regionPair) loopModeResolved() loopMode {
	lm := rp.sampleLoopMode()
	if lm != loopModeNoLoop && lm != loopModeContinuous && lm != loopModeLoopUntilNoteOff {
		return loopModeNoLoop
	}
	return lm
}

// --- envelope / LFO timecent and centibel fields (additive, preset + instrument) ---

func (rp regionPair) delayModLFO() float64  { return timecentsToSeconds(rp.sumFloat(genDelayModLFO)) }
func (rp regionPair) freqModLFO() float64   { return centsToHertz(rp.sumFloat(genFreqModLFO)) }
func (rp regionPair) delayVibLFO() float64  { return timecentsToSeconds(rp.sumFloat(genDelayVibLFO)) }
func (rp regionPair) freqVibLFO() float64   { return centsToHertz(rp.sumFloat(genFreqVibLFO)) }

func (rp regionPair) delayModEnv() float64   { return timecentsToSeconds(rp.sumFloat(genDelayModEnv)) }
func (rp regionPair) attackModEnv() float64  { return timecentsToSeconds(rp.sumFloat(genAttackModEnv)) }
func (rp regionPair) holdModEnv() float64    { return timecentsToSeconds(rp.sumFloat(genHoldModEnv)) }
func (rp regionPair) decayModEnv() float64   { return timecentsToSeconds(rp.sumFloat(genDecayModEnv)) }
func (rp regionPair) sustainModEnv() float64 { return 1 - clampFloat(rp.sumFloat(genSustainModEnv), 0, 1000)/1000 }
func (rp regionPair) releaseModEnv() float64 { return timecentsToSeconds(rp.sumFloat(genReleaseModEnv)) }
func (rp regionPair) keyToModEnvHold() float64  { return rp.sumFloat(genKeyNumToModEnvHold) }
func (rp regionPair) keyToModEnvDecay() float64 { return rp.sumFloat(genKeyNumToModEnvDecay) }

func (rp regionPair) delayVolEnv() float64   { return timecentsToSeconds(rp.sumFloat(genDelayVolEnv)) }
func (rp regionPair) attackVolEnv() float64  { return timecentsToSeconds(rp.sumFloat(genAttackVolEnv)) }
func (rp regionPair) holdVolEnv() float64    { return timecentsToSeconds(rp.sumFloat(genHoldVolEnv)) }
func (rp regionPair) decayVolEnv() float64   { return timecentsToSeconds(rp.sumFloat(genDecayVolEnv)) }
func (rp regionPair) sustainVolEnv() float64 { return decibelsToLinear(-0.1 * rp.sumFloat(genSustainVolEnv)) }
func (rp regionPair) releaseVolEnv() float64 { return timecentsToSeconds(rp.sumFloat(genReleaseVolEnv)) }
func (rp regionPair) keyToVolEnvHold() float64  { return rp.sumFloat(genKeyNumToVolEnvHold) }
func (rp regionPair) keyToVolEnvDecay() float64 { return rp.sumFloat(genKeyNumToVolEnvDecay) }

// --- filter / mix fields ---

func (rp regionPair) initialFilterFc() float64 { return centsToHertz(rp.sumFloat(genInitialFilterFc)) }
func (rp regionPair) initialFilterQ() float64  { return 0.1 * rp.sumFloat(genInitialFilterQ) }
func (rp regionPair) modLfoToFilterFc() float64 { return rp.sumFloat(genModLfoToFilterFc) }
func (rp regionPair) modEnvToFilterFc() float64 { return rp.sumFloat(genModEnvToFilterFc) }

func (rp regionPair) modLfoToPitch() float64 { return rp.sumFloat(genModLfoToPitch) }
func (rp regionPair) vibLfoToPitch() float64 { return rp.sumFloat(genVibLfoToPitch) }
func (rp regionPair) modEnvToPitch() float64 { return rp.sumFloat(genModEnvToPitch) }

func (rp regionPair) modLfoToVolume() float64 { return 0.1 * rp.sumFloat(genModLfoToVolume) }

func (rp regionPair) initialAttenuation() float64 { return 0.1 * rp.sumFloat(genInitialAttenuation) }

func (rp regionPair) pan() float64 { return 0.1 * rp.sumFloat(genPan) }

func (rp regionPair) reverbEffectsSend() float64 {
	return clampFloat(0.1*rp.sumFloat(genReverbEffectsSend)/100, 0, 1)
}
func (rp regionPair) chorusEffectsSend() float64 {
	return clampFloat(0.1*rp.sumFloat(genChorusEffectsSend)/100, 0, 1)
}
