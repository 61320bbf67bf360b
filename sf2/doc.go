// SPDX-License-Identifier: EPL-2.0

// Package sf2 parses SoundFont2 instrument-bank files into typed record
// arrays.
//
// An SF2 file is a RIFF container with form type "sfbk" holding three
// LIST chunks: INFO (metadata), sdta (the shared PCM sample pool) and
// pdta (nine fixed-order chunks describing presets, instruments,
// generators, modulators and sample headers).
//
// Parse validates the structure strictly: any chunk-count, ordering or
// signature mismatch aborts the whole parse with an error wrapping one of
// the package sentinel errors. There is never a partially-usable result.
//
// The parse is structural only. Resolving presets and instruments into a
// playable table is the job of the bank package.
package sf2
