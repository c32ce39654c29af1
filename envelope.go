package gosfsynth

// envelopeStage is the common DAHDSR state both envelope variants walk
// through. There is no distinct "sustain" state: once DECAY reaches
// the sustain level the envelope simply holds it, remaining in the
// DECAY stage until release_() is called.
type envelopeStage int

const (
	stageDelay envelopeStage = iota
	stageAttack
	stageHold
	stageDecay
	stageRelease
)

// priority ranks stages so voice stealing can prefer quiet,
// already-releasing voices over ones only just starting.
func (s envelopeStage) priority() float64 {
	switch s {
	case stageDelay:
		return 4
	case stageAttack:
		return 3
	case stageHold:
		return 2
	case stageDecay:
		return 1
	default:
		return 0
	}
}

const minReleaseSeconds = 0.01
const envelopeNonAudible = 1e-3

// volumeEnvelope is the exponential-decay/release DAHDSR used to shape
// a voice's amplitude.
type volumeEnvelope struct {
	sampleRate float64
	stage      envelopeStage
	time       float64 // seconds elapsed in the current stage

	delay, attack, hold, decay, release float64
	sustain                             float64 // linear amplitude target

	value        float64
	releaseLevel float64
}

func (e *volumeEnvelope) start(sampleRate, delay, attack, hold, decay, sustain, release float64) {
	e.sampleRate = sampleRate
	e.delay = delay
	e.attack = attack
	e.hold = delay + attack + hold
	e.decay = decay
	e.sustain = clampFloat(sustain, 0, 1)
	if release < minReleaseSeconds {
		release = minReleaseSeconds
	}
	e.release = release
	e.stage = stageDelay
	e.time = 0
	e.value = 0
}

func (e *volumeEnvelope) release_() {
	e.stage = stageRelease
	e.time = 0
	e.releaseLevel = e.value
}

// process advances the envelope by blockSamples worth of time and
// returns false once the envelope has decayed below the non-audible
// floor and the voice should be retired.
func (e *volumeEnvelope) process(blockSamples int) bool {
	dt := float64(blockSamples) / e.sampleRate
	e.time += dt

	switch e.stage {
	case stageDelay:
		if e.time < e.delay {
			e.value = 0
			return true
		}
		e.stage = stageAttack
		fallthrough
	case stageAttack:
		if e.stage == stageAttack {
			elapsed := e.time - e.delay
			if e.attack <= 0 {
				e.value = 1
			} else {
				e.value = elapsed / e.attack
			}
			if e.value < 1 {
				return true
			}
			e.value = 1
			e.stage = stageHold
		}
		fallthrough
	case stageHold:
		if e.stage == stageHold {
			if e.time < e.hold {
				e.value = 1
				return true
			}
			e.stage = stageDecay
		}
		fallthrough
	case stageDecay:
		if e.stage == stageDecay {
			elapsed := e.time - e.hold
			if e.decay <= 0 {
				e.value = e.sustain
			} else {
				e.value = expCutoff(-9.226 * elapsed / e.decay)
				if e.value < e.sustain {
					e.value = e.sustain
				}
			}
			if e.value > envelopeNonAudible {
				return true
			}
			return false
		}
	case stageRelease:
		elapsed := e.time
		e.value = e.releaseLevel * expCutoff(-9.226*elapsed/e.release)
		return e.value > envelopeNonAudible
	}
	return true
}

func (e *volumeEnvelope) priority() float64 { return e.stage.priority() + e.value }

// modulationEnvelope is the linear-segment DAHDSR used to modulate
// pitch/filter cutoff rather than amplitude directly.
type modulationEnvelope struct {
	sampleRate float64
	stage      envelopeStage
	time       float64

	delay, attack, hold, decay, release float64
	sustain                             float64

	value        float64
	releaseLevel float64
}

func (e *modulationEnvelope) start(sampleRate, delay, attack, hold, decay, sustain, release float64) {
	e.sampleRate = sampleRate
	e.delay = delay
	e.attack = attack
	e.hold = delay + attack + hold
	e.decay = decay
	e.sustain = clampFloat(sustain, 0, 1)
	e.release = release
	e.stage = stageDelay
	e.time = 0
	e.value = 0
}

func (e *modulationEnvelope) release_() {
	e.stage = stageRelease
	e.time = 0
	e.releaseLevel = e.value
}

func (e *modulationEnvelope) process(blockSamples int) bool {
	dt := float64(blockSamples) / e.sampleRate
	e.time += dt

	switch e.stage {
	case stageDelay:
		if e.time < e.delay {
			e.value = 0
			return true
		}
		e.stage = stageAttack
		fallthrough
	case stageAttack:
		if e.stage == stageAttack {
			elapsed := e.time - e.delay
			if e.attack <= 0 {
				e.value = 1
			} else {
				e.value = elapsed / e.attack
			}
			if e.value < 1 {
				return true
			}
			e.value = 1
			e.stage = stageHold
		}
		fallthrough
	case stageHold:
		if e.stage == stageHold {
			if e.time < e.hold {
				e.value = 1
				return true
			}
			e.stage = stageDecay
		}
		fallthrough
	case stageDecay:
		if e.stage == stageDecay {
			elapsed := e.time - e.hold
			if e.decay <= 0 {
				e.value = e.sustain
			} else {
				e.value = 1 - (1-e.sustain)*elapsed/e.decay
				if e.value < e.sustain {
					e.value = e.sustain
				}
			}
			return true
		}
	case stageRelease:
		if e.release <= 0 {
			e.value = 0
			return false
		}
		e.value = e.releaseLevel * (1 - e.time/e.release)
		if e.value < 0 {
			e.value = 0
			return false
		}
		return true
	}
	return true
}
