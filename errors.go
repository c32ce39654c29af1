package gosfsynth

import "errors"

// Sentinel errors callers can match with errors.Is. Loaders and the
// render path wrap these with context via fmt.Errorf("...: %w", err).
var (
	// ErrMalformedContainer covers RIFF/SF2/SMF framing that does not
	// parse: bad magic, truncated chunks, record sizes that are not a
	// multiple of their fixed width, a required sub-chunk missing, or
	// an unknown chunk ID where the format requires one to be known.
	ErrMalformedContainer = errors.New("gosfsynth: malformed container")

	// ErrOutOfRange covers an index that does not fit the data it
	// addresses (a zone's instrument or sample index, MIDI
	// key/velocity/channel).
	ErrOutOfRange = errors.New("gosfsynth: value out of range")

	// ErrInvalidConfig covers a SynthesizerSettings value that fails
	// validation (sample rate, block size, or polyphony outside the
	// permitted range).
	ErrInvalidConfig = errors.New("gosfsynth: invalid configuration")

	// ErrRenderMisuse covers calling Render with a buffer whose two
	// channels are not equal length.
	ErrRenderMisuse = errors.New("gosfsynth: render misuse")

	// ErrInternal covers states that should be unreachable given the
	// above checks passed (e.g. a voice group invariant violated).
	ErrInternal = errors.New("gosfsynth: internal error")
)
