package gosfsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegionDefaults(t *testing.T) {
	r := newRegion()
	assert.Equal(t, int16(13500), r.raw(genInitialFilterFc))
	assert.Equal(t, int16(-12000), r.raw(genDelayVolEnv))
	assert.Equal(t, int16(-12000), r.raw(genReleaseModEnv))
	assert.Equal(t, uint8(0), r.rangeLow(genKeyRange))
	assert.Equal(t, uint8(127), r.rangeHigh(genKeyRange))
	assert.Equal(t, uint8(0), r.rangeLow(genVelRange))
	assert.Equal(t, uint8(127), r.rangeHigh(genVelRange))
	assert.Equal(t, int16(100), r.raw(genScaleTuning))
	assert.Equal(t, int16(-1), r.raw(genOverridingRootKey))
}

func TestPackRange(t *testing.T) {
	packed := packRange(10, 90)
	var r region
	r.apply(genKeyRange, packed)
	assert.Equal(t, uint8(10), r.rangeLow(genKeyRange))
	assert.Equal(t, uint8(90), r.rangeHigh(genKeyRange))
}

func TestRegionApplyOverwritesDefault(t *testing.T) {
	r := newRegion()
	r.apply(genInitialFilterFc, 8000)
	assert.Equal(t, int16(8000), r.raw(genInitialFilterFc))
}

func TestGeneratorCountIsSixtyOne(t *testing.T) {
	assert.Equal(t, 61, generatorCount)
	assert.Equal(t, generatorType(60), genUnused6End)
}
