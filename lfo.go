package gosfsynth

// lfo is a delayed triangle low-frequency oscillator used for both
// vibrato (pitch) and modulation (pitch/filter/volume) depth signals.
// It is evaluated once per render block rather than once per sample.
type lfo struct {
	sampleRate float64
	delay      float64
	period     float64
	active     bool

	time  float64
	value float64
}

// start configures the LFO for a fresh note. A frequency at or below
// 1e-3 Hz is treated as disabled: value stays 0 forever.
func (l *lfo) start(sampleRate, delay, frequency float64) {
	l.sampleRate = sampleRate
	l.delay = delay
	l.time = 0
	l.value = 0
	if frequency <= 1e-3 {
		l.active = false
		l.period = 0
		return
	}
	l.active = true
	l.period = 1 / frequency
}

// process advances the LFO by blockSamples worth of time and returns
// its current triangle-wave value in [-1, 1].
func (l *lfo) process(blockSamples int) float64 {
	if !l.active {
		return 0
	}
	l.time += float64(blockSamples) / l.sampleRate
	if l.time < l.delay {
		l.value = 0
		return l.value
	}

	phase := mod(l.time-l.delay, l.period) / l.period
	switch {
	case phase < 0.25:
		l.value = 4 * phase
	case phase < 0.75:
		l.value = 2 - 4*phase
	default:
		l.value = 4*phase - 4
	}
	return l.value
}

func mod(x, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := x - m*float64(int64(x/m))
	if r < 0 {
		r += m
	}
	return r
}
