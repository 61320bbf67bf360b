// SPDX-License-Identifier: EPL-2.0

// Package bank resolves a parsed SoundFont into an immutable playable
// table indexed by (bank, program, key).
//
// For every preset zone referencing an instrument, each of that
// instrument's zones carrying both a key range and a sample reference is
// expanded into per-key records. Overlapping zones resolve
// first-writer-wins: file order determines priority, and a key already
// populated is never overwritten.
//
// Each record precomputes everything a voice needs at note-on time — the
// playback-rate ratio, envelope times in seconds, sustain level, filter
// cutoff and resonance, pan and the loop bounds — so note-on is a table
// lookup, never a re-derivation from raw generators.
//
// Sample data is sliced out of the font's shared pool. Samples whose
// native rate is below the synthesis rate are upsampled by repeated
// frame-duplication until the rate is at or above the target; this matches
// the historical behavior of the format's consumer and trades tonal
// quality for compatibility. Ogg-Vorbis-compressed samples (sample type
// flag 0x10) are decoded at load time.
package bank
