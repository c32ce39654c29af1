package gosfsynth

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// An SF2 file is built from RIFF (Resource Interchange File Format)
// chunks: a four-character ID, a little-endian size, and that many
// bytes of payload.
type chunk struct {
	// id is the chunk's FourCC, normally four ASCII characters.
	id [4]byte
	// size is the little-endian byte count of data.
	size uint32
	// data holds the chunk payload.
	data []byte
}

// parse reads a chunk's id, size, and payload from r.
func (ck *chunk) parse(r io.Reader) error {
	if _, err := io.ReadFull(r, ck.id[:]); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &ck.size); err != nil {
		return err
	}
	ck.data = make([]byte, ck.size)
	if _, err := io.ReadFull(r, ck.data); err != nil {
		return err
	}
	return nil
}

// expect reads a chunk from r and requires it to carry the given id.
func (ck *chunk) expect(r io.Reader, id [4]byte) error {
	if err := ck.parse(r); err != nil {
		return err
	}
	if ck.id != id {
		return fmt.Errorf("%w: expected chunk %q, got %q", ErrMalformedContainer, id, ck.id)
	}
	return nil
}

// newReader returns a reader over the chunk's payload.
func (ck *chunk) newReader() io.Reader {
	return bytes.NewReader(ck.data)
}

// expectLiteral reads len(b) bytes from r and requires them to equal b.
// Used for the literal FourCC tags nested inside RIFF/LIST payloads
// ("sfbk", "sdta", "pdta", "INFO") which are not themselves chunks.
func expectLiteral(r io.Reader, b []byte) error {
	buf := make([]byte, len(b))
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	if !bytes.Equal(buf, b) {
		return fmt.Errorf("%w: expected literal %q, got %q", ErrMalformedContainer, b, buf)
	}
	return nil
}
