package gosfsynth

import "math"

type voiceState int

const (
	voicePlaying voiceState = iota
	voiceReleaseRequested
	voiceReleased
)

// Voice glues together one sounding note's oscillator, envelopes,
// LFOs, and filter, and carries the mix state the render loop needs
// to place it into the stereo output with smoothed gain ramps.
type Voice struct {
	synth *Synthesizer

	volEnv volumeEnvelope
	modEnv modulationEnvelope
	vibLFO lfo
	modLFO lfo
	osc    oscillator
	filter biquadFilter

	channel        int
	key            int
	velocity       int
	exclusiveClass int16

	noteGain float64

	vibLfoToPitch  float64
	modLfoToPitch  float64
	modEnvToPitch  float64
	modLfoToFc     float64
	modEnvToFc     float64
	modLfoToVolume float64

	instrumentPan float64
	baseCutoff    float64
	filterQDB     float64

	reverbSend float64
	chorusSend float64

	state       voiceState
	voiceLength int64
	firstBlock  bool

	previousMixGainLeft  float64
	previousMixGainRight float64
	currentMixGainLeft   float64
	currentMixGainRight  float64
}

// start configures the voice for a fresh note-on, given the fully
// resolved region pair, the owning channel/key/velocity, and the
// sample data it plays.
func (v *Voice) start(synth *Synthesizer, rp regionPair, sh SampleHeader, data []float32, channel, key, velocity int) {
	v.synth = synth
	v.channel = channel
	v.key = key
	v.velocity = velocity
	v.exclusiveClass = rp.exclusiveClass()
	v.state = voicePlaying
	v.voiceLength = 0
	v.firstBlock = true
	v.previousMixGainLeft = 0
	v.previousMixGainRight = 0
	v.currentMixGainLeft = 0
	v.currentMixGainRight = 0

	sampleAttenuation := 0.4 * rp.initialAttenuation()
	filterAttenuation := 0.5 * rp.initialFilterQ()
	velRatio := float64(velocity) / 127
	if velRatio <= 0 {
		velRatio = 1.0 / 127
	}
	v.noteGain = decibelsToLinear(2*20*math.Log10(velRatio) - sampleAttenuation - filterAttenuation)

	v.vibLfoToPitch = rp.vibLfoToPitch()
	v.modLfoToPitch = rp.modLfoToPitch()
	v.modEnvToPitch = rp.modEnvToPitch()
	v.modLfoToFc = rp.modLfoToFilterFc()
	v.modEnvToFc = rp.modEnvToFilterFc()
	v.modLfoToVolume = rp.modLfoToVolume()
	v.instrumentPan = rp.pan()
	v.baseCutoff = rp.initialFilterFc()
	v.filterQDB = rp.initialFilterQ()
	v.reverbSend = rp.reverbEffectsSend()
	v.chorusSend = rp.chorusEffectsSend()

	sampleRate := synth.settings.SampleRate

	holdVol := rp.holdVolEnv() * keyNumberToMultiplyingFactor(rp.keyToVolEnvHold(), key)
	decayVol := rp.decayVolEnv() * keyNumberToMultiplyingFactor(rp.keyToVolEnvDecay(), key)
	v.volEnv.start(sampleRate, rp.delayVolEnv(), rp.attackVolEnv(), holdVol, decayVol, rp.sustainVolEnv(), rp.releaseVolEnv())

	holdMod := rp.holdModEnv() * keyNumberToMultiplyingFactor(rp.keyToModEnvHold(), key)
	decayMod := rp.decayModEnv() * keyNumberToMultiplyingFactor(rp.keyToModEnvDecay(), key)
	attackMod := rp.attackModEnv() * (145 - float64(velocity)) / 144
	v.modEnv.start(sampleRate, rp.delayModEnv(), attackMod, holdMod, decayMod, rp.sustainModEnv(), rp.releaseModEnv())

	v.vibLFO.start(sampleRate, rp.delayVibLFO(), rp.freqVibLFO())
	v.modLFO.start(sampleRate, rp.delayModLFO(), rp.freqModLFO())

	rootKey := rp.rootKey(sh.OriginalPitch)
	tune := rp.tune(sh.PitchCorrection)
	scale := rp.pitchChangeScale()
	lm := rp.loopModeResolved()

	start := int64(sh.Start) + rp.sampleStartOffset()
	end := int64(sh.End) + rp.sampleEndOffset()
	startLoop := int64(sh.Startloop) + rp.sampleStartLoopOffset()
	endLoop := int64(sh.Endloop) + rp.sampleEndLoopOffset()

	v.osc.start(data, lm, float64(sh.SampleRate), sampleRate, start, end, startLoop, endLoop, rootKey, tune, scale)
	v.filter.reset(sampleRate)
}

// release requests that the voice begin its release phase. The
// transition is deferred until process observes that the hold pedal
// is off and the voice has played for at least the minimum duration.
func (v *Voice) release() {
	if v.state == voicePlaying {
		v.state = voiceReleaseRequested
	}
}

// kill silences the voice immediately, used by all-sound-off.
func (v *Voice) kill() {
	v.noteGain = 0
}

func (v *Voice) priority() float64 {
	return v.volEnv.priority()
}

// Priority returns the voice's current stealing priority: a later
// envelope stage and a quieter current level both make a voice a more
// attractive steal target than one just starting.
func (v *Voice) Priority() float64 { return v.priority() }

// Channel returns the MIDI channel this voice is sounding on.
func (v *Voice) Channel() int { return v.channel }

// Key returns the MIDI note number this voice is sounding.
func (v *Voice) Key() int { return v.key }

// process advances the voice by one render block, writing its signal
// into block (one block's worth of frames). It returns false
// once the voice should be retired from the pool.
func (v *Voice) process(block []float32, ch *Channel, minimumVoiceDuration int64) bool {
	if v.noteGain < envelopeNonAudible {
		return false
	}

	if v.state == voiceReleaseRequested && !ch.HoldPedal() && v.voiceLength >= minimumVoiceDuration {
		v.volEnv.release_()
		v.modEnv.release_()
		v.osc.release()
		v.state = voiceReleased
	}

	if !v.volEnv.process(len(block)) {
		return false
	}
	v.modEnv.process(len(block))
	vib := v.vibLFO.process(len(block))
	mod := v.modLFO.process(len(block))

	pitch := float64(v.key) +
		(0.01*ch.Modulation()+v.vibLfoToPitch)*vib +
		v.modLfoToPitch*mod +
		v.modEnvToPitch*v.modEnv.value +
		ch.Tune() +
		ch.PitchBend()

	if !v.osc.process(block, pitch) {
		v.voiceLength += int64(len(block))
		return false
	}

	if v.modLfoToFc != 0 || v.modEnvToFc != 0 {
		cutoff := v.baseCutoff * math.Exp2((v.modLfoToFc*mod+v.modEnvToFc*v.modEnv.value)/1200)
		v.filter.setLowPassFilter(cutoff, v.filterQDB)
	} else if v.firstBlock {
		v.filter.setLowPassFilter(v.baseCutoff, v.filterQDB)
	}
	v.filter.process(block)

	v.previousMixGainLeft = v.currentMixGainLeft
	v.previousMixGainRight = v.currentMixGainRight

	channelGain := ch.Volume() * ch.Expression()
	channelGain *= channelGain
	mixGain := v.noteGain * channelGain * v.volEnv.value
	if v.modLfoToVolume != 0 {
		mixGain *= decibelsToLinear(v.modLfoToVolume * mod)
	}

	angle := (math.Pi / 200) * clampFloat(ch.Pan()+v.instrumentPan+50, 0, 100)
	v.currentMixGainLeft = mixGain * math.Cos(angle)
	v.currentMixGainRight = mixGain * math.Sin(angle)

	if v.firstBlock {
		v.previousMixGainLeft = v.currentMixGainLeft
		v.previousMixGainRight = v.currentMixGainRight
		v.firstBlock = false
	}

	v.voiceLength += int64(len(block))
	return true
}
