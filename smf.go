package gosfsynth

import (
	"bufio"
	"fmt"
	"io"
)

// midiEvent is one fully time-stamped channel-voice message produced
// by merging a Standard MIDI File's tracks. Meta and SysEx events
// never appear here: they are consumed while parsing and, in the case
// of Set Tempo, folded into the tick-to-second conversion instead.
type midiEvent struct {
	time    float64 // seconds from the start of the file
	channel uint8
	command uint8
	data1   uint8
	data2   uint8
}

// MidiFile is a parsed Standard MIDI File: every track's channel-voice
// events merged into a single time-ordered stream, plus the file's
// total duration.
type MidiFile struct {
	events []midiEvent
	length float64
}

// Length returns the file's duration in seconds: the time of its last
// event (typically an End of Track-adjacent Note Off).
func (m *MidiFile) Length() float64 { return m.length }

// trackEvent is one raw event read off an MTrk chunk before tracks are
// merged, still expressed in ticks relative to the file's start.
type trackEvent struct {
	tick    uint32
	channel uint8
	command uint8
	data1   uint8
	data2   uint8
	isTempo bool
	tempo   float64 // microseconds per quarter note, valid when isTempo
	isEnd   bool
}

// ReadMidiFile parses a complete Standard MIDI File from r.
func ReadMidiFile(r io.Reader) (*MidiFile, error) {
	br := bufio.NewReader(r)

	var header chunk
	if err := header.expect(br, [4]byte{'M', 'T', 'h', 'd'}); err != nil {
		return nil, fmt.Errorf("reading MThd: %w", err)
	}
	if header.size != 6 {
		return nil, fmt.Errorf("%w: MThd size %d, want 6", ErrMalformedContainer, header.size)
	}
	hr := header.newReader()
	format, err := readUint16BE(hr)
	if err != nil {
		return nil, err
	}
	if format != 0 && format != 1 {
		return nil, fmt.Errorf("%w: unsupported SMF format %d", ErrMalformedContainer, format)
	}
	trackCount, err := readUint16BE(hr)
	if err != nil {
		return nil, err
	}
	resolution, err := readUint16BE(hr)
	if err != nil {
		return nil, err
	}
	if resolution&0x8000 != 0 {
		return nil, fmt.Errorf("%w: SMPTE time division is not supported", ErrMalformedContainer)
	}

	tracks := make([][]trackEvent, trackCount)
	for i := range tracks {
		events, err := readTrack(br)
		if err != nil {
			return nil, fmt.Errorf("reading track %d: %w", i, err)
		}
		tracks[i] = events
	}

	return mergeTracks(tracks, float64(resolution)), nil
}

// readTrack reads one MTrk chunk's delta-time/event stream into
// absolute-tick trackEvents, resolving running status and skipping
// SysEx payloads. Every channel-voice event (notes, controller changes,
// program change, pressure, pitch bend) is retained, along with Set
// Tempo and End of Track; SysEx and all other meta events are parsed
// for framing only and then discarded.
func readTrack(r io.Reader) ([]trackEvent, error) {
	var ck chunk
	if err := ck.expect(r, [4]byte{'M', 'T', 'r', 'k'}); err != nil {
		return nil, err
	}
	tr := ck.newReader()

	var events []trackEvent
	var tick uint32
	var runningStatus uint8
	ended := false

	for !ended {
		delta, err := readVariableLength(tr)
		if err != nil {
			return nil, err
		}
		tick += delta

		status, err := readUint8(tr)
		if err != nil {
			return nil, err
		}

		if status < 0x80 {
			// running status: status re-read as this event's first data byte
			data1 := status
			status = runningStatus
			if status < 0x80 {
				return nil, fmt.Errorf("%w: running status with no prior status byte", ErrMalformedContainer)
			}
			ev, err := continueChannelEvent(status, data1, tr)
			if err != nil {
				return nil, err
			}
			ev.tick = tick
			events = append(events, ev)
			continue
		}

		switch {
		case status == 0xFF:
			metaType, err := readUint8(tr)
			if err != nil {
				return nil, err
			}
			length, err := readVariableLength(tr)
			if err != nil {
				return nil, err
			}
			payload := make([]byte, length)
			if _, err := io.ReadFull(tr, payload); err != nil {
				return nil, err
			}
			switch metaType {
			case 0x2F: // End of Track
				events = append(events, trackEvent{tick: tick, isEnd: true})
				ended = true
			case 0x51: // Set Tempo
				if len(payload) != 3 {
					return nil, fmt.Errorf("%w: Set Tempo payload length %d, want 3", ErrMalformedContainer, len(payload))
				}
				microsPerQuarter := float64(payload[0])<<16 | float64(payload[1])<<8 | float64(payload[2])
				events = append(events, trackEvent{tick: tick, isTempo: true, tempo: microsPerQuarter})
			}
			runningStatus = 0
		case status == 0xF0 || status == 0xF7:
			length, err := readVariableLength(tr)
			if err != nil {
				return nil, err
			}
			if _, err := io.CopyN(io.Discard, tr, int64(length)); err != nil {
				return nil, err
			}
			runningStatus = 0
		default:
			runningStatus = status
			data1, err := readUint8(tr)
			if err != nil {
				return nil, err
			}
			ev, err := continueChannelEvent(status, data1, tr)
			if err != nil {
				return nil, err
			}
			ev.tick = tick
			events = append(events, ev)
		}
	}

	return events, nil
}

// continueChannelEvent reads the rest of a channel-voice event given
// its status byte and already-consumed first data byte.
func continueChannelEvent(status, data1 uint8, r io.Reader) (trackEvent, error) {
	command := status & 0xF0
	channel := status & 0x0F

	if command == 0xC0 || command == 0xD0 {
		return trackEvent{channel: channel, command: command, data1: data1}, nil
	}

	data2, err := readUint8(r)
	if err != nil {
		return trackEvent{}, err
	}
	return trackEvent{channel: channel, command: command, data1: data1, data2: data2}, nil
}

// mergeTracks combines every track's absolute-tick events into a
// single time-ordered midiEvent stream, repeatedly advancing whichever
// track holds the smallest next tick and converting tick deltas to
// seconds with the tempo in effect at that point. Tempo changes update
// the running tempo but are never themselves emitted as midiEvents.
func mergeTracks(tracks [][]trackEvent, resolution float64) *MidiFile {
	index := make([]int, len(tracks))
	currentTick := uint32(0)
	currentTime := 0.0
	tempo := 500000.0 // 120 BPM, the SMF default when no Set Tempo has occurred

	var out []midiEvent

	for {
		best := -1
		var bestTick uint32
		for t, events := range tracks {
			if index[t] >= len(events) {
				continue
			}
			tick := events[index[t]].tick
			if best == -1 || tick < bestTick {
				best = t
				bestTick = tick
			}
		}
		if best == -1 {
			break
		}

		if bestTick > currentTick {
			currentTime += float64(bestTick-currentTick) * tempo / (resolution * 1000000)
			currentTick = bestTick
		}

		ev := tracks[best][index[best]]
		index[best]++

		switch {
		case ev.isTempo:
			tempo = ev.tempo
		case ev.isEnd:
			// contributes only its tick to currentTime above
		default:
			out = append(out, midiEvent{
				time:    currentTime,
				channel: ev.channel,
				command: ev.command,
				data1:   ev.data1,
				data2:   ev.data2,
			})
		}
	}

	return &MidiFile{events: out, length: currentTime}
}
