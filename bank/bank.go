// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"math"

	"github.com/ik5/sf2synth/sf2"
)

// Percussion is the bank number holding percussion programs in General
// MIDI SoundFonts.
const Percussion = 128

// KeyRecord holds everything needed to start a voice for one MIDI key:
// precomputed at load time, immutable afterwards.
type KeyRecord struct {
	// Sample is the mono sample slice at SampleRate, referencing the
	// font's shared pool (or an upsampled/decoded copy of it).
	Sample     []float32
	SampleRate int

	// RateRatio is the base playback-rate multiplier for this key.
	RateRatio float64

	// Loop bounds in seconds, relative to the start of Sample. Active
	// only when Loop is set.
	LoopStart float64
	LoopEnd   float64
	Loop      bool

	// Volume envelope: times in seconds, sustain as a 0..1 fraction of
	// the peak gain, attenuation in the raw generator unit (a voice
	// scales its peak by 1 - Attenuation/1000, floored at zero).
	Attack      float64
	Decay       float64
	Release     float64
	Sustain     float64
	Attenuation float64

	// Low-pass filter parameters.
	CutoffHz float64
	Q        float64

	// Pan position, 0 = hard left, 1 = hard right. Valid when HasPan;
	// otherwise the voice falls back to the channel pan.
	Pan    float64
	HasPan bool

	SampleName string
}

type program [128]*KeyRecord

// Bank is the resolved (bank, program, key) table of a SoundFont.
// Immutable after New returns.
type Bank struct {
	rate  int
	banks map[uint16]map[uint16]*program
}

// New resolves the parsed font into a playable table for synthesis at
// sampleRate.
func New(f *sf2.File, sampleRate int) (*Bank, error) {
	b := &Bank{
		rate:  sampleRate,
		banks: make(map[uint16]map[uint16]*program),
	}
	pool := newPool(f, sampleRate)

	for i, ph := range f.PresetHeaders {
		for _, pz := range f.PresetZones(i) {
			// Zones with no instrument reference (global zones) are
			// skipped; their generators are not inherited by siblings.
			ig, ok := pz.Gens[sf2.GenInstrument]
			if !ok {
				continue
			}
			instIdx := int(ig.Amount)
			if instIdx < 0 || instIdx >= len(f.Instruments) {
				continue
			}

			for _, iz := range f.InstrumentZones(instIdx) {
				if err := b.addZone(f, pool, ph, iz); err != nil {
					return nil, err
				}
			}
		}
	}
	return b, nil
}

// SampleRate returns the synthesis rate the table was resolved for.
func (b *Bank) SampleRate() int { return b.rate }

// Lookup returns the record for (bankNum, programNum, key), or nil.
func (b *Bank) Lookup(bankNum, programNum uint16, key byte) *KeyRecord {
	progs, ok := b.banks[bankNum]
	if !ok || key > 127 {
		return nil
	}
	p, ok := progs[programNum]
	if !ok {
		return nil
	}
	return p[key]
}

// HasBank reports whether any program resolved into bankNum.
func (b *Bank) HasBank(bankNum uint16) bool {
	return len(b.banks[bankNum]) > 0
}

func (b *Bank) addZone(f *sf2.File, pool *samplePool, ph sf2.PresetHeader, z sf2.Zone) error {
	// A playable zone needs an explicit key range and sample reference.
	if !z.Gens.Has(sf2.GenKeyRange) || !z.Gens.Has(sf2.GenSampleID) {
		return nil
	}
	sampleIdx := int(z.Gens.Amount(sf2.GenSampleID, 0))
	if sampleIdx < 0 || sampleIdx >= len(f.SampleHeaders) {
		return nil
	}
	hdr := f.SampleHeaders[sampleIdx]

	slice, err := pool.slice(sampleIdx, z.Gens)
	if err != nil {
		return err
	}
	if slice == nil {
		return nil
	}

	progs, ok := b.banks[ph.Bank]
	if !ok {
		progs = make(map[uint16]*program)
		b.banks[ph.Bank] = progs
	}
	prog, ok := progs[ph.Preset]
	if !ok {
		prog = &program{}
		progs[ph.Preset] = prog
	}

	rootKey := hdr.OriginalKey
	if z.Gens.Has(sf2.GenOverridingRootKey) {
		if v := z.Gens.Amount(sf2.GenOverridingRootKey, 0); v >= 0 && v <= 127 {
			rootKey = byte(v)
		}
	}
	coarse := float64(z.Gens.Amount(sf2.GenCoarseTune, 0))
	fine := float64(z.Gens.Amount(sf2.GenFineTune, 0))
	scale := float64(z.Gens.Amount(sf2.GenScaleTuning, 100))

	rec := KeyRecord{
		Sample:      slice.data,
		SampleRate:  slice.rate,
		LoopStart:   slice.loopStart,
		LoopEnd:     slice.loopEnd,
		Loop:        z.Gens.Amount(sf2.GenSampleModes, 0)&1 == 1,
		Attack:      timecents(z.Gens.Amount(sf2.GenAttackVolEnv, -12000)),
		Decay:       timecents(z.Gens.Amount(sf2.GenDecayVolEnv, -12000)),
		Release:     timecents(z.Gens.Amount(sf2.GenReleaseVolEnv, -12000)),
		Sustain:     clamp01(1 - float64(z.Gens.Amount(sf2.GenSustainVolEnv, 0))/1000),
		Attenuation: float64(z.Gens.Amount(sf2.GenInitialAttenuation, 0)),
		CutoffHz:    filterHz(z.Gens.Amount(sf2.GenInitialFilterFc, 13500)),
		Q:           math.Pow(10, float64(z.Gens.Amount(sf2.GenInitialFilterQ, 0))/200),
		SampleName:  hdr.Name,
	}
	if g, ok := z.Gens[sf2.GenPan]; ok {
		rec.Pan = clamp01((float64(g.Amount) + 500) / 1000)
		rec.HasPan = true
	}

	lo, hi := z.Gens.KeyRange()
	for key := int(lo); key <= int(hi) && key <= 127; key++ {
		if prog[key] != nil {
			// First writer wins: earlier zones keep overlapping keys.
			continue
		}
		kr := rec
		kr.RateRatio = rateRatio(key, rootKey, coarse, fine, scale)
		prog[key] = &kr
	}
	return nil
}

// rateRatio computes the playback-rate multiplier placing key relative to
// the sample's root key, honoring coarse/fine tuning (semitones and cents)
// and scale tuning (cents of pitch change per key).
func rateRatio(key int, rootKey byte, coarse, fine, scale float64) float64 {
	semis := (float64(key) - float64(rootKey) + coarse + fine/100) * scale / 100
	return math.Pow(2, semis/12)
}

// timecents converts an SF2 logarithmic time amount to seconds.
func timecents(tc int16) float64 {
	return math.Pow(2, float64(tc)/1200)
}

// filterHz converts an absolute-cents cutoff to Hz (6900 cents = 440 Hz).
func filterHz(cents int16) float64 {
	return math.Pow(2, (float64(cents)-6900)/1200) * 440
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
