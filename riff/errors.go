// SPDX-License-Identifier: EPL-2.0

package riff

import "errors"

var (
	// ErrMalformedChunk reports a chunk whose declared size reads past the
	// end of its enclosing region, or a truncated chunk header.
	ErrMalformedChunk = errors.New("malformed RIFF chunk")

	// ErrNotList reports a List call on a chunk too small to carry the
	// 4-byte list-type signature.
	ErrNotList = errors.New("chunk is not a LIST")
)
