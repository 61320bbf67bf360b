// SPDX-License-Identifier: EPL-2.0

package riff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Config controls how a Walker reads chunk headers.
type Config struct {
	// Order is the byte order of the 4-byte chunk size field.
	// Defaults to little-endian, as used by RIFF (RIFX uses big-endian).
	Order binary.ByteOrder

	// Padded skips one pad byte after any chunk whose payload length is
	// odd, per the RIFF framing rules.
	Padded bool
}

func (c Config) order() binary.ByteOrder {
	if c.Order == nil {
		return binary.LittleEndian
	}
	return c.Order
}

// Chunk is one tagged region of the input: a 4-byte ASCII tag, the declared
// payload size and the payload bytes. The payload is a sub-slice of the
// walked buffer, not a copy.
type Chunk struct {
	Tag  string
	Size uint32

	body []byte
}

// Body returns the chunk payload.
func (c *Chunk) Body() []byte { return c.body }

// List interprets the chunk as a LIST-style container: the first 4 payload
// bytes are the list-type signature, the rest are nested sibling chunks.
// It returns the signature and a fresh Walker over the nested chunks.
func (c *Chunk) List(cfg Config) (string, *Walker, error) {
	if len(c.body) < 4 {
		return "", nil, fmt.Errorf("%w: %q payload is %d bytes", ErrNotList, c.Tag, len(c.body))
	}
	return string(c.body[:4]), NewWalker(c.body[4:], cfg), nil
}

// Walker enumerates the sibling chunks of one nesting level over a byte
// region. It stops exactly at the region boundary.
type Walker struct {
	buf []byte
	pos int
	cfg Config
}

// NewWalker creates a Walker over buf.
func NewWalker(buf []byte, cfg Config) *Walker {
	return &Walker{buf: buf, cfg: cfg}
}

// Next returns the next chunk, or io.EOF once the region is exhausted.
// A chunk header that is truncated, or a declared size that would read past
// the end of the region, yields ErrMalformedChunk.
func (w *Walker) Next() (*Chunk, error) {
	if w.pos == len(w.buf) {
		return nil, io.EOF
	}
	if len(w.buf)-w.pos < 8 {
		return nil, fmt.Errorf("%w: %d trailing bytes at offset %d", ErrMalformedChunk, len(w.buf)-w.pos, w.pos)
	}

	tag := string(w.buf[w.pos : w.pos+4])
	size := w.cfg.order().Uint32(w.buf[w.pos+4 : w.pos+8])
	start := w.pos + 8

	if uint64(start)+uint64(size) > uint64(len(w.buf)) {
		return nil, fmt.Errorf("%w: chunk %q declares %d bytes, region has %d left",
			ErrMalformedChunk, tag, size, len(w.buf)-start)
	}

	w.pos = start + int(size)
	if w.cfg.Padded && size%2 == 1 && w.pos < len(w.buf) {
		w.pos++
	}

	return &Chunk{
		Tag:  tag,
		Size: size,
		body: w.buf[start : start+int(size)],
	}, nil
}
