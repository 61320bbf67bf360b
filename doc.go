// SPDX-License-Identifier: EPL-2.0

// Package sf2synth decodes SoundFont2 (SF2) instrument-bank files and
// drives real-time, polyphonic, sample-based synthesis of MIDI note
// events against them.
//
// # Pipeline
//
// Loading runs once, synchronously: bytes -> RIFF chunks -> typed SF2
// records -> a resolved, immutable bank table. At runtime MIDI-like
// events (NoteOn, NoteOff, ProgramChange, BankChange, PitchBend) flow
// into a Synthesizer that looks up the table and drives per-note voices
// with envelopes, looping, filtering and pitch control.
//
// # Quick Start
//
//	s, err := sf2synth.Open("bank.sf2", 44100, synth.Config{})
//	if err != nil {
//		// handle error
//	}
//	s.NoteOn(0, 60, 100) // middle C
//
//	// Pull audio: s implements audio.Source (endless stereo stream).
//	buf := make([]float32, 4096)
//	s.ReadSamples(buf)
//
// For device playback wrap the synthesizer in an output.Player; to
// capture to a WAV file use render.WriteWAV.
//
// # Packages
//
//   - riff: RIFF chunk enumeration
//   - sf2: structural SoundFont parsing
//   - bank: preset/instrument/sample resolution into a playable table
//   - synth: channels, voices and rendering
//   - render: WAV capture of rendered audio
//   - output: device playback via oto
//
// All load-time errors are synchronous and fatal; all runtime playback
// errors are local and non-fatal (an unresolvable note is dropped, never
// the session).
package sf2synth
