package gosfsynth

import "io"

// samplePool holds the entire SF2 file's digital audio data as a
// single normalized float32 slice, the layout every SampleHeader's
// Start/End/Startloop/Endloop offsets index into. Normalizing once at
// load time keeps the oscillator's inner loop free of per-sample
// integer-to-float conversion.
type samplePool struct {
	data []float32
}

// readSamplePool parses the sdta LIST's smpl sub-chunk (required,
// 16-bit linear PCM) and sm24 sub-chunk (optional, the low byte of a
// 24-bit extension), producing normalized float32 samples in roughly
// [-1, 1].
func readSamplePool(r io.Reader) (*samplePool, error) {
	var smpl chunk
	if err := smpl.expect(r, [4]byte{'s', 'm', 'p', 'l'}); err != nil {
		return nil, err
	}

	count := len(smpl.data) / 2
	hi := make([]int16, count)
	for i := 0; i < count; i++ {
		// Little-endian: low byte first, high byte second.
		hi[i] = int16(uint16(smpl.data[2*i]) | uint16(smpl.data[2*i+1])<<8)
	}

	var sm24 chunk
	if err := sm24.expect(r, [4]byte{'s', 'm', '2', '4'}); err != nil {
		if err == io.EOF {
			return &samplePool{data: normalize16(hi)}, nil
		}
		return nil, err
	}

	lo := sm24.data
	if len(lo) < count {
		// sm24 is shorter than smpl/2: only the prefix it covers gets
		// the extra precision, the rest falls back to 16-bit.
		data := make([]float32, count)
		for i := 0; i < len(lo); i++ {
			combined := int32(hi[i])<<8 | int32(lo[i])
			data[i] = float32(combined) / 8388608.0
		}
		for i := len(lo); i < count; i++ {
			data[i] = float32(hi[i]) / 32768.0
		}
		return &samplePool{data: data}, nil
	}

	data := make([]float32, count)
	for i := 0; i < count; i++ {
		combined := int32(hi[i])<<8 | int32(lo[i])
		data[i] = float32(combined) / 8388608.0
	}
	return &samplePool{data: data}, nil
}

func normalize16(hi []int16) []float32 {
	data := make([]float32, len(hi))
	for i, v := range hi {
		data[i] = float32(v) / 32768.0
	}
	return data
}
