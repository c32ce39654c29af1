package gosfsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeEnvelopeStagesAdvanceThroughBlocks(t *testing.T) {
	var e volumeEnvelope
	sampleRate := 1000.0
	e.start(sampleRate, 0.01, 0.01, 0.01, 0.01, 0.5, 0.05)

	// Delay: 10 samples at 1kHz = 0.01s.
	alive := e.process(5)
	assert.True(t, alive)
	assert.Equal(t, 0.0, e.value)

	// Advance well past delay+attack+hold+decay; sustain should be reached.
	for i := 0; i < 20; i++ {
		alive = e.process(5)
		assert.True(t, alive)
	}
	assert.InDelta(t, 0.5, e.value, 0.05)
}

func TestVolumeEnvelopeTimeAdvancesAcrossStages(t *testing.T) {
	// Regression: time must advance every call, not only in the Delay
	// stage, or every stage past the first would appear frozen.
	var e volumeEnvelope
	e.start(1000, 0, 0, 0, 10, 0, 0.05)
	first := e.value
	e.process(100)
	second := e.value
	e.process(100)
	third := e.value
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
}

func TestVolumeEnvelopeReleaseDecaysToInaudible(t *testing.T) {
	var e volumeEnvelope
	e.start(1000, 0, 0, 0, 0, 1, 0.01)
	e.process(1) // reach sustain immediately (no attack/decay)
	e.release_()

	alive := true
	for i := 0; i < 1000 && alive; i++ {
		alive = e.process(1)
	}
	assert.False(t, alive)
}

func TestVolumeEnvelopeReleaseFloorsAtMinimum(t *testing.T) {
	var e volumeEnvelope
	e.start(1000, 0, 0, 0, 0, 1, 0.0) // requests an instant release
	assert.GreaterOrEqual(t, e.release, minReleaseSeconds)
}

func TestModulationEnvelopeLinearSegments(t *testing.T) {
	var e modulationEnvelope
	e.start(1000, 0, 1.0, 0, 0, 0, 1.0)
	e.process(250) // a quarter through a 1-second attack
	assert.InDelta(t, 0.25, e.value, 1e-6)
}

func TestModulationEnvelopeSustainHolds(t *testing.T) {
	var e modulationEnvelope
	e.start(1000, 0, 0, 0, 0, 0.3, 1.0)
	e.process(1)
	assert.InDelta(t, 0.3, e.value, 1e-9)
	e.process(500)
	assert.InDelta(t, 0.3, e.value, 1e-9)
}

func TestEnvelopeStagePriorityOrdering(t *testing.T) {
	assert.Greater(t, stageDelay.priority(), stageAttack.priority())
	assert.Greater(t, stageAttack.priority(), stageHold.priority())
	assert.Greater(t, stageHold.priority(), stageDecay.priority())
	assert.Greater(t, stageDecay.priority(), stageRelease.priority())
}
