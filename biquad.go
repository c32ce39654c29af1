package gosfsynth

import "math"

// resonancePeakOffset keeps a resonance value of 0 dB mapped to a flat
// (Butterworth-ish) response rather than a literal Q of 0.
const resonancePeakOffset = 1 - 1/math.Sqrt2

// biquadFilter is a resonant RBJ low-pass filter with a smoothed
// cutoff target, used to avoid audible zipper noise when a voice's
// dynamic cutoff modulation changes quickly.
type biquadFilter struct {
	sampleRate float64

	bypass bool

	a0, a1, a2 float64 // feed-forward (normalized)
	b1, b2     float64 // feedback (normalized)

	x1, x2 float64
	y1, y2 float64

	smoothedCutoff float64
}

func (f *biquadFilter) reset(sampleRate float64) {
	f.sampleRate = sampleRate
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
	f.smoothedCutoff = 0
	f.bypass = true
}

// setLowPassFilter recomputes coefficients for the given cutoff and
// resonance (dB), clamping the cutoff's rate of change against the
// previously smoothed value so the tone color cannot jump abruptly.
func (f *biquadFilter) setLowPassFilter(cutoff, resonanceDB float64) {
	if f.smoothedCutoff <= 0 {
		f.smoothedCutoff = cutoff
	} else {
		cutoff = clampFloat(cutoff, 0.5*f.smoothedCutoff, 2.0*f.smoothedCutoff)
		f.smoothedCutoff = cutoff
	}

	if cutoff >= 0.499*f.sampleRate {
		f.bypass = true
		return
	}
	f.bypass = false

	resonanceLinear := decibelsToLinear(resonanceDB)
	q := resonanceLinear - resonancePeakOffset/(1+6*(resonanceLinear-1))
	if q < 0.1 {
		q = 0.1
	}

	w := 2 * math.Pi * cutoff / f.sampleRate
	cosw := math.Cos(w)
	alpha := math.Sin(w) / (2 * q)

	b0 := (1 - cosw) / 2
	b1 := 1 - cosw
	b2 := (1 - cosw) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw
	a2 := 1 - alpha

	f.a0 = b0 / a0
	f.a1 = b1 / a0
	f.a2 = b2 / a0
	f.b1 = a1 / a0
	f.b2 = a2 / a0
}

// process filters block in place. When the filter is bypassed because
// the cutoff is at or above the Nyquist-adjacent threshold, the delay
// line is primed from the block's own tail so a later un-bypass does
// not produce a click from stale state.
func (f *biquadFilter) process(block []float32) {
	if f.bypass {
		n := len(block)
		if n >= 2 {
			f.x1 = float64(block[n-1])
			f.x2 = float64(block[n-2])
		} else if n == 1 {
			f.x2 = f.x1
			f.x1 = float64(block[0])
		}
		f.y1 = f.x1
		f.y2 = f.x2
		return
	}

	for i, x := range block {
		xf := float64(x)
		y := f.a0*xf + f.a1*f.x1 + f.a2*f.x2 - f.b1*f.y1 - f.b2*f.y2
		f.x2 = f.x1
		f.x1 = xf
		f.y2 = f.y1
		f.y1 = y
		block[i] = float32(y)
	}
}
