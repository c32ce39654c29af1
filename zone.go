package gosfsynth

// zone is one bag's worth of generators, still in list form (as read
// off disk) before being folded into a region's dense array.
type zone struct {
	generators []Generator
}

// buildZones slices a generator list into per-bag zones using a bag
// index table. bagGenStart holds one (genStart) index per zone plus a
// trailing terminal entry, exactly as phdr/pbag and inst/ibag store
// it; zoneCount is len(bagGenStart)-1.
func buildZones(bagGenStart []uint16, generators []Generator) ([]zone, error) {
	if len(bagGenStart) < 2 {
		return nil, nil
	}
	zones := make([]zone, len(bagGenStart)-1)
	for i := range zones {
		start := bagGenStart[i]
		end := bagGenStart[i+1]
		if end < start || int(end) > len(generators) {
			return nil, ErrMalformedContainer
		}
		zones[i].generators = generators[start:end]
	}
	return zones, nil
}

// isGlobal reports whether a zone is the special "global" zone that
// supplies defaults to every other zone in the same preset/instrument
// rather than describing a region of its own. Per the SF2 spec, a
// zone is global when its generator list does not end with
// genSampleID (instrument zones) or genInstrument (preset zones) —
// those two generators, when present, must be the last in their zone.
func (z zone) isGlobal(terminal generatorType) bool {
	if len(z.generators) == 0 {
		return true
	}
	last := z.generators[len(z.generators)-1]
	return last.GenOper != SFGenerator(terminal)
}

// toRegion folds a zone's generator list onto base, returning a new
// region. base is typically the global zone's region (or spec
// defaults if there is no global zone).
func (z zone) toRegion(base region) region {
	r := base
	for _, g := range z.generators {
		r.apply(generatorType(g.GenOper), g.GenAmount)
	}
	return r
}
