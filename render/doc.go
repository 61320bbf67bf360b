// SPDX-License-Identifier: EPL-2.0

// Package render captures audio from a Source into PCM buffers and
// 16-bit WAV files.
//
// It uses the github.com/go-audio family for the buffer model and WAV
// encoding, so captured audio interoperates with other go-audio tooling.
package render
