package gosfsynth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildZonesSlicesByBagIndex(t *testing.T) {
	generators := []Generator{
		{GenOper: SFGenerator(genPan), GenAmount: 10},
		{GenOper: SFGenerator(genSampleID), GenAmount: 0},
		{GenOper: SFGenerator(genInitialAttenuation), GenAmount: 20},
		{GenOper: SFGenerator(genSampleID), GenAmount: 1},
	}
	bags := []uint16{0, 2, 4}

	zones, err := buildZones(bags, generators)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Len(t, zones[0].generators, 2)
	assert.Len(t, zones[1].generators, 2)
}

func TestBuildZonesRejectsBadBagRange(t *testing.T) {
	generators := []Generator{{GenOper: SFGenerator(genPan), GenAmount: 10}}
	bags := []uint16{0, 5}

	_, err := buildZones(bags, generators)
	assert.ErrorIs(t, err, ErrMalformedContainer)
}

func TestZoneIsGlobal(t *testing.T) {
	global := zone{generators: []Generator{{GenOper: SFGenerator(genPan)}}}
	assert.True(t, global.isGlobal(genSampleID))

	notGlobal := zone{generators: []Generator{
		{GenOper: SFGenerator(genPan)},
		{GenOper: SFGenerator(genSampleID)},
	}}
	assert.False(t, notGlobal.isGlobal(genSampleID))

	empty := zone{}
	assert.True(t, empty.isGlobal(genSampleID))
}

func TestZoneToRegionFoldsOntoBase(t *testing.T) {
	base := newRegion()
	z := zone{generators: []Generator{{GenOper: SFGenerator(genPan), GenAmount: 250}}}
	r := z.toRegion(base)
	assert.Equal(t, int16(250), r.raw(genPan))
	assert.Equal(t, int16(13500), r.raw(genInitialFilterFc)) // untouched default carried through
}
