// SPDX-License-Identifier: EPL-2.0

// Package synth drives polyphonic sample playback of MIDI note events
// against a resolved SoundFont bank.
//
// A Synthesizer holds 16 fixed channels of MIDI state (program, bank,
// volume, pan, pitch bend, hold pedal). NoteOn resolves the channel's
// (bank, program) and key through the bank table — falling back through
// the percussion bank and bank 0 — and starts a voice; a note that cannot
// be resolved is logged and dropped without disturbing other voices.
//
// Each voice owns its playback cursor, volume envelope
// (attack/decay/sustain/release), loop state, low-pass filter and pan.
// Channel volume, pan and expression are snapshotted onto the voice at
// note-on; only pitch bend is pushed to sounding voices afterwards.
//
// The Synthesizer implements audio.Source as an endless stereo stream.
// Control operations may arrive from any goroutine: they share a mutex
// with the render path, held only for short bounded sections, and the
// render path never allocates.
package synth
