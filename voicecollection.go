package gosfsynth

// voiceCollection is a fixed-capacity polyphony pool. Active voices
// occupy the front of the slice; process() compacts dead voices by
// swapping them with the last active slot, so the pool never
// allocates after construction and "active" is just a length.
type voiceCollection struct {
	voices []Voice
	active int
}

func newVoiceCollection(capacity int) *voiceCollection {
	return &voiceCollection{voices: make([]Voice, capacity)}
}

func (vc *voiceCollection) activeCount() int { return vc.active }

// requestNew returns the voice to (re)start for a note-on. If the
// region claims a non-zero exclusive class, any active voice already
// sounding that class on the same channel is reused in place (killed
// and restarted) rather than adding a new one. Otherwise a free slot
// is used if capacity allows, or the lowest-priority active voice is
// stolen.
func (vc *voiceCollection) requestNew(exclusiveClass int16, channel int) *Voice {
	if exclusiveClass != 0 {
		for i := 0; i < vc.active; i++ {
			if vc.voices[i].channel == channel && vc.voices[i].exclusiveClass == exclusiveClass {
				return &vc.voices[i]
			}
		}
	}

	if vc.active < len(vc.voices) {
		v := &vc.voices[vc.active]
		vc.active++
		return v
	}

	return vc.steal()
}

// steal picks the active voice with the lowest priority, breaking
// ties in favor of the voice that has been sounding longest.
func (vc *voiceCollection) steal() *Voice {
	if vc.active == 0 {
		return nil
	}
	best := 0
	bestPriority := vc.voices[0].priority()
	bestLength := vc.voices[0].voiceLength
	for i := 1; i < vc.active; i++ {
		p := vc.voices[i].priority()
		l := vc.voices[i].voiceLength
		if p < bestPriority || (p == bestPriority && l > bestLength) {
			best = i
			bestPriority = p
			bestLength = l
		}
	}
	logger.Debug("stealing voice", "index", best, "priority", bestPriority)
	return &vc.voices[best]
}

// process advances every active voice by one render block, retiring
// any that die by swapping them out with the last active slot. fn is
// responsible for both rendering the voice (typically into a scratch
// buffer, then mixing it into the output) and reporting whether the
// voice is still alive.
func (vc *voiceCollection) process(fn func(v *Voice) bool) {
	i := 0
	for i < vc.active {
		v := &vc.voices[i]
		if fn(v) {
			i++
			continue
		}
		vc.active--
		vc.voices[i], vc.voices[vc.active] = vc.voices[vc.active], vc.voices[i]
	}
}

// forEachOnChannelKey calls fn for every active voice on channel
// matching key, used by note-off.
func (vc *voiceCollection) forEachOnChannelKey(channel, key int, fn func(v *Voice)) {
	for i := 0; i < vc.active; i++ {
		if vc.voices[i].channel == channel && vc.voices[i].key == key {
			fn(&vc.voices[i])
		}
	}
}

// forEachOnChannel calls fn for every active voice on channel, used
// by all-sound-off/all-notes-off.
func (vc *voiceCollection) forEachOnChannel(channel int, fn func(v *Voice)) {
	for i := 0; i < vc.active; i++ {
		if vc.voices[i].channel == channel {
			fn(&vc.voices[i])
		}
	}
}

// clear resets the pool to empty without running any per-voice
// teardown; the underlying voice structs are simply overwritten the
// next time they are reused.
func (vc *voiceCollection) clear() {
	vc.active = 0
}
