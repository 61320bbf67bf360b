// SPDX-License-Identifier: EPL-2.0

package sf2

import "errors"

var (
	// ErrNotSoundFont reports input that is not a RIFF file with form type
	// "sfbk".
	ErrNotSoundFont = errors.New("not a SoundFont (RIFF/sfbk) file")

	// ErrBadLayout reports a chunk-count, ordering or signature mismatch
	// anywhere in the file structure.
	ErrBadLayout = errors.New("unexpected SoundFont chunk layout")

	// ErrBadRecordSize reports a pdta chunk whose size is not a whole
	// number of its fixed-width records.
	ErrBadRecordSize = errors.New("chunk size is not a whole number of records")
)
