// SPDX-License-Identifier: EPL-2.0

// Package riff enumerates chunks in RIFF-framed binary data.
//
// A RIFF chunk is a 4-byte ASCII tag, a 4-byte unsigned payload length and
// the payload itself, optionally followed by a single pad byte when the
// length is odd. A Walker enumerates the sibling chunks of one nesting
// level; nested LIST chunks are walked by building a fresh Walker over a
// chunk's payload after consuming the 4-byte list-type signature.
//
//	w := riff.NewWalker(data, riff.Config{})
//	for {
//		c, err := w.Next()
//		if err == io.EOF {
//			break
//		}
//		// inspect c.Tag, c.Body()
//	}
package riff
