// SPDX-License-Identifier: EPL-2.0

// Package output plays an audio Source on the default audio device
// through the oto library.
//
// Only one Player should exist per process: oto allows a single audio
// context.
package output
