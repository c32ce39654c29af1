package gosfsynth

import (
	"encoding/binary"
	"fmt"
	"io"
)

// soundFontHydra holds the nine raw pdta arrays exactly as they are
// laid out on disk: presets/instruments/samples plus the bag and
// generator/modulator tables that describe their zones. Nothing here
// has been resolved into regions yet; soundfont.go does that folding
// once the whole hydra has been read.
type soundFontHydra struct {
	// presetHeaders lists every preset, terminated by a dummy record.
	presetHeaders []PresetHeader
	// presetBagGenStart is the genIndex field of each pbag record.
	presetBagGenStart []uint16
	// presetModulators is pmod's modulator records (framing-checked,
	// not modeled — see SPEC_FULL.md Open Questions).
	presetModulators []Modulator
	// presetGenerators is pgen's generator records.
	presetGenerators []Generator
	// instruments lists every instrument, terminated by a dummy record.
	instruments []rawInstrument
	// instrumentBagGenStart is the genIndex field of each ibag record.
	instrumentBagGenStart []uint16
	// instrumentModulators is imod's modulator records.
	instrumentModulators []Modulator
	// instrumentGenerators is igen's generator records.
	instrumentGenerators []Generator
	// sampleHeaders lists every sample, terminated by a dummy record.
	sampleHeaders []SampleHeader
}

// PresetHeader is one phdr record: the preset name, MIDI preset/bank
// number, and an index into the preset bag table.
type PresetHeader struct {
	PresetName   [20]byte
	Preset       uint16
	Bank         uint16
	PresetBagNdx uint16
	Library      uint32
	Genre        uint32
	Morphology   uint32
}

func (p PresetHeader) String() string {
	return fmt.Sprintf("PresetHeader{Name: %q, Preset: %d, Bank: %d}", asciiZ(p.PresetName[:]), p.Preset, p.Bank)
}

type SFModulator uint16
type SFGenerator uint16
type SFTransform uint16

// Modulator is one pmod/imod record. Modulators are parsed for
// framing validation only; no modulator is ever evaluated at render
// time (see SPEC_FULL.md Open Questions).
type Modulator struct {
	ModSrcOper    SFModulator
	ModDestOper   SFGenerator
	ModAmount     int16
	ModAmtSrcOper SFModulator
	ModTransOper  SFTransform
}

// Generator is one pgen/igen record: a generator type and its amount.
type Generator struct {
	GenOper   SFGenerator
	GenAmount int16
}

// rawInstrument is one inst record: a name and an index into the
// instrument bag table. This is the raw binary layout, distinct from
// the resolved Instrument type in instrument.go that zones fold into.
type rawInstrument struct {
	Name       [20]byte
	InstBagNdx uint16
}

func (inst rawInstrument) String() string {
	return fmt.Sprintf("Instrument{Name: %q, InstBagNdx: %d}", asciiZ(inst.Name[:]), inst.InstBagNdx)
}

// SfSampleType identifies how a sample participates in a stereo pair,
// and whether it is a ROM sample with no digital audio of its own.
type SfSampleType uint16

const (
	SampleTypeMono     SfSampleType = 1
	SampleTypeRight    SfSampleType = 2
	SampleTypeLeft     SfSampleType = 4
	SampleTypeLink     SfSampleType = 8
	SampleTypeRomMono  SfSampleType = 0x8001
	SampleTypeRomRight SfSampleType = 0x8002
	SampleTypeRomLeft  SfSampleType = 0x8004
	SampleTypeRomLink  SfSampleType = 0x8008
)

func (s SfSampleType) String() string {
	switch s {
	case SampleTypeMono:
		return "Mono"
	case SampleTypeRight:
		return "Right"
	case SampleTypeLeft:
		return "Left"
	case SampleTypeLink:
		return "Link"
	case SampleTypeRomMono:
		return "RomMono"
	case SampleTypeRomRight:
		return "RomRight"
	case SampleTypeRomLeft:
		return "RomLeft"
	case SampleTypeRomLink:
		return "RomLink"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(s))
	}
}

// SampleHeader is one shdr record, describing a span of the sample
// pool (see samples.go) plus the metadata needed to pitch and loop it.
type SampleHeader struct {
	SampleName      [20]byte
	Start           uint32
	End             uint32
	Startloop       uint32
	Endloop         uint32
	SampleRate      uint32
	OriginalPitch   uint8
	PitchCorrection int8
	SampleLink      uint16
	SampleType      SfSampleType
}

func (s SampleHeader) String() string {
	return fmt.Sprintf("SampleHeader{Name: %q, Start: %d, End: %d, Loop: [%d,%d], Rate: %d}",
		asciiZ(s.SampleName[:]), s.Start, s.End, s.Startloop, s.Endloop, s.SampleRate)
}

// Name returns the sample's name with its zero-byte padding trimmed.
func (s SampleHeader) Name() string { return asciiZ(s.SampleName[:]) }

var pdtaChunkIDs = [9][4]byte{
	{'p', 'h', 'd', 'r'}, {'p', 'b', 'a', 'g'}, {'p', 'm', 'o', 'd'}, {'p', 'g', 'e', 'n'},
	{'i', 'n', 's', 't'}, {'i', 'b', 'a', 'g'}, {'i', 'm', 'o', 'd'}, {'i', 'g', 'e', 'n'},
	{'s', 'h', 'd', 'r'},
}

// readSoundFontHydra parses the pdta LIST's nine required sub-chunks.
func readSoundFontHydra(r io.Reader) (*soundFontHydra, error) {
	sound := &soundFontHydra{}

	seen := make(map[[4]byte]bool, len(pdtaChunkIDs))
	for _, id := range pdtaChunkIDs {
		seen[id] = false
	}

	for {
		var ck chunk
		if err := ck.parse(r); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		if _, known := seen[ck.id]; !known {
			logger.Debug("skipping unknown pdta chunk", "id", string(ck.id[:]))
			continue
		}
		seen[ck.id] = true

		switch ck.id {
		case [4]byte{'p', 'h', 'd', 'r'}:
			if ck.size%38 != 0 {
				return nil, fmt.Errorf("%w: phdr size %d not a multiple of 38", ErrMalformedContainer, ck.size)
			}
			sound.presetHeaders = make([]PresetHeader, ck.size/38)
			cr := ck.newReader()
			for i := range sound.presetHeaders {
				if err := binary.Read(cr, binary.LittleEndian, &sound.presetHeaders[i]); err != nil {
					return nil, err
				}
			}
		case [4]byte{'p', 'b', 'a', 'g'}:
			idx, err := readBagIndices(ck)
			if err != nil {
				return nil, err
			}
			sound.presetBagGenStart = idx
		case [4]byte{'p', 'm', 'o', 'd'}:
			mods, err := readModulators(ck)
			if err != nil {
				return nil, err
			}
			sound.presetModulators = mods
		case [4]byte{'p', 'g', 'e', 'n'}:
			gens, err := readGenerators(ck)
			if err != nil {
				return nil, err
			}
			sound.presetGenerators = gens
		case [4]byte{'i', 'n', 's', 't'}:
			if ck.size%22 != 0 {
				return nil, fmt.Errorf("%w: inst size %d not a multiple of 22", ErrMalformedContainer, ck.size)
			}
			sound.instruments = make([]rawInstrument, ck.size/22)
			cr := ck.newReader()
			for i := range sound.instruments {
				if err := binary.Read(cr, binary.LittleEndian, &sound.instruments[i]); err != nil {
					return nil, err
				}
			}
		case [4]byte{'i', 'b', 'a', 'g'}:
			idx, err := readBagIndices(ck)
			if err != nil {
				return nil, err
			}
			sound.instrumentBagGenStart = idx
		case [4]byte{'i', 'm', 'o', 'd'}:
			mods, err := readModulators(ck)
			if err != nil {
				return nil, err
			}
			sound.instrumentModulators = mods
		case [4]byte{'i', 'g', 'e', 'n'}:
			gens, err := readGenerators(ck)
			if err != nil {
				return nil, err
			}
			sound.instrumentGenerators = gens
		case [4]byte{'s', 'h', 'd', 'r'}:
			if ck.size%46 != 0 {
				return nil, fmt.Errorf("%w: shdr size %d not a multiple of 46", ErrMalformedContainer, ck.size)
			}
			sound.sampleHeaders = make([]SampleHeader, ck.size/46)
			cr := ck.newReader()
			for i := range sound.sampleHeaders {
				if err := binary.Read(cr, binary.LittleEndian, &sound.sampleHeaders[i]); err != nil {
					return nil, err
				}
			}
		}
	}

	for id, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: missing pdta chunk %q", ErrMalformedContainer, string(id[:]))
		}
	}

	return sound, nil
}

func readBagIndices(ck chunk) ([]uint16, error) {
	if ck.size%4 != 0 {
		return nil, fmt.Errorf("%w: bag size %d not a multiple of 4", ErrMalformedContainer, ck.size)
	}
	out := make([]uint16, ck.size/4)
	for i := range out {
		out[i] = uint16(ck.data[4*i]) | uint16(ck.data[4*i+1])<<8
	}
	return out, nil
}

func readModulators(ck chunk) ([]Modulator, error) {
	if ck.size%10 != 0 {
		return nil, fmt.Errorf("%w: modulator size %d not a multiple of 10", ErrMalformedContainer, ck.size)
	}
	out := make([]Modulator, ck.size/10)
	cr := ck.newReader()
	for i := range out {
		if err := binary.Read(cr, binary.LittleEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readGenerators(ck chunk) ([]Generator, error) {
	if ck.size%4 != 0 {
		return nil, fmt.Errorf("%w: generator size %d not a multiple of 4", ErrMalformedContainer, ck.size)
	}
	out := make([]Generator, ck.size/4)
	cr := ck.newReader()
	for i := range out {
		if err := binary.Read(cr, binary.LittleEndian, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
