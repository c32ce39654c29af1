package gosfsynth

import "math"

// oscillator resamples a SoundFont sample at an arbitrary pitch using
// linear interpolation between adjacent sample-pool positions,
// honoring the sample's loop policy once playback reaches the loop
// points (or, for LOOP_UNTIL_NOTE_OFF, once the voice is released).
type oscillator struct {
	data     []float32
	loopMode loopMode

	start     int64
	end       int64
	startLoop int64
	endLoop   int64

	rootKey          int
	tune             float64
	pitchChangeScale float64
	sampleRateRatio  float64

	position float64
	looping  bool
	finished bool
}

// start configures the oscillator for a fresh note. tune is the
// sample's fixed detuning in semitones (pitch correction plus the
// region's coarse/fine tune generators); pitchChangeScale is the
// scale-tuning generator's effect (normally 1.0) on how strongly MIDI
// key distance from rootKey bends pitch.
func (o *oscillator) start(data []float32, lm loopMode, nativeRate, outputRate float64, start, end, startLoop, endLoop int64, rootKey int, tune, pitchChangeScale float64) {
	o.data = data
	o.loopMode = lm
	o.start = start
	o.end = end
	o.startLoop = startLoop
	o.endLoop = endLoop
	o.rootKey = rootKey
	o.tune = tune
	o.pitchChangeScale = pitchChangeScale
	o.sampleRateRatio = nativeRate / outputRate
	o.position = float64(start)
	o.looping = lm != loopModeNoLoop
	o.finished = false
}

// release ends looping for LOOP_UNTIL_NOTE_OFF samples; CONTINUOUS
// samples keep looping through the release portion of the envelope,
// and NO_LOOP samples were never looping to begin with.
func (o *oscillator) release() {
	if o.loopMode == loopModeLoopUntilNoteOff {
		o.looping = false
	}
}

// process fills block with the next len(block) resampled frames at
// the given MIDI pitch (semitones, fractional). When a non-looping
// sample runs past its end part-way through the block, the rest of the
// block is zero-filled and true is still returned; it returns false
// only when the end is reached before the block's first frame (or was
// already reached in an earlier block).
func (o *oscillator) process(block []float32, pitch float64) bool {
	if o.finished {
		for i := range block {
			block[i] = 0
		}
		return false
	}

	pitchChange := o.pitchChangeScale*(pitch-float64(o.rootKey)) + o.tune
	pitchRatio := o.sampleRateRatio * math.Exp2(pitchChange/12)

	for i := range block {
		if o.looping {
			block[i] = o.interpolateLooping()
		} else {
			v, ok := o.interpolateNoLoop()
			if !ok {
				o.finished = true
				for j := i; j < len(block); j++ {
					block[j] = 0
				}
				return i > 0
			}
			block[i] = v
		}
		o.position += pitchRatio
		if o.looping {
			loopLength := float64(o.endLoop - o.startLoop)
			if loopLength > 0 {
				for o.position >= float64(o.endLoop) {
					o.position -= loopLength
				}
			}
		}
	}
	return true
}

func (o *oscillator) interpolateNoLoop() (float32, bool) {
	x1 := int64(o.position)
	if x1 >= o.end {
		return 0, false
	}
	x2 := x1 + 1
	frac := float32(o.position - float64(x1))
	if x2 >= o.end {
		return o.data[x1], true
	}
	return o.data[x1] + frac*(o.data[x2]-o.data[x1]), true
}

func (o *oscillator) interpolateLooping() float32 {
	x1 := int64(o.position)
	x2 := x1 + 1
	if x2 >= o.endLoop {
		x2 = o.startLoop
	}
	if x1 < 0 || x1 >= int64(len(o.data)) {
		return 0
	}
	frac := float32(o.position - float64(x1))
	var v2 float32
	if x2 >= 0 && x2 < int64(len(o.data)) {
		v2 = o.data[x2]
	}
	return o.data[x1] + frac*(v2-o.data[x1])
}
