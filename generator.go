package gosfsynth

// generatorType enumerates the SF2 generator slots. The SoundFont 2
// spec reserves 61 generator indices (0 through 60); a handful in the
// middle of the range are marked "not in use" in the spec and are kept
// here only so positional arithmetic against the spec's own table
// stays obvious.
type generatorType uint16

const (
	genStartAddrOffset generatorType = iota
	genEndAddrOffset
	genStartLoopAddrOffset
	genEndLoopAddrOffset
	genStartAddrCoarseOffset
	genModLfoToPitch
	genVibLfoToPitch
	genModEnvToPitch
	genInitialFilterFc
	genInitialFilterQ
	genModLfoToFilterFc
	genModEnvToFilterFc
	genEndAddrCoarseOffset
	genModLfoToVolume
	genUnused1
	genChorusEffectsSend
	genReverbEffectsSend
	genPan
	genUnused2
	genUnused3
	genUnused4
	genDelayModLFO
	genFreqModLFO
	genDelayVibLFO
	genFreqVibLFO
	genDelayModEnv
	genAttackModEnv
	genHoldModEnv
	genDecayModEnv
	genSustainModEnv
	genReleaseModEnv
	genKeyNumToModEnvHold
	genKeyNumToModEnvDecay
	genDelayVolEnv
	genAttackVolEnv
	genHoldVolEnv
	genDecayVolEnv
	genSustainVolEnv
	genReleaseVolEnv
	genKeyNumToVolEnvHold
	genKeyNumToVolEnvDecay
	genInstrument
	genReserved1
	genKeyRange
	genVelRange
	genStartLoopAddrCoarseOffset
	genKeyNum
	genVelocity
	genInitialAttenuation
	genReserved2
	genEndLoopAddrCoarseOffset
	genCoarseTune
	genFineTune
	genSampleID
	genSampleModes
	genReserved3
	genScaleTuning
	genExclusiveClass
	genOverridingRootKey
	genUnused5
	genUnused6End
)

// generatorCount is the width of a region's dense parameter array.
const generatorCount = int(genUnused6End) + 1

// loopMode mirrors the low two bits of genSampleModes.
type loopMode int32

const (
	loopModeNoLoop loopMode = iota
	loopModeContinuous
	loopModeReserved
	loopModeLoopUntilNoteOff
)
