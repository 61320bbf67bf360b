// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"

	"github.com/ik5/sf2synth/bank"
)

type voiceState int

const (
	stateAttacking voiceState = iota
	stateDecaying
	stateSustaining
	stateReleasing
	stateFinished
)

// voice is one sounding note: playback cursor, volume envelope, loop
// state, low-pass filter and pan, all derived from a precomputed
// bank.KeyRecord plus the channel state snapshotted at note-on.
type voice struct {
	rec *bank.KeyRecord
	key byte
	seq uint64

	cursor  float64 // frame position in rec.Sample
	step    float64 // data frames per output frame, before pitch bend
	bendMul float64

	looping    bool
	loopStartF float64
	loopEndF   float64

	state       voiceState
	gain        float64
	target      float64
	sustainGain float64
	attackStep  float64
	decayStep   float64
	releaseStep float64
	outRate     int

	gainL, gainR float64

	filterOn           bool
	b0, b1, b2, a1, a2 float64
	x1, x2, z1, z2     float64

	// noteOff arrived while the hold pedal was down.
	releaseRequested bool
}

// channelSnapshot captures the channel state a voice copies at note-on.
// Volume, pan and expression are not live-tracked afterwards.
type channelSnapshot struct {
	volume     byte
	pan        byte
	expression byte
	bendSemis  float64
}

func newVoice(rec *bank.KeyRecord, key, velocity byte, outRate int, snap channelSnapshot, seq uint64) *voice {
	v := &voice{rec: rec, key: key, seq: seq, outRate: outRate, bendMul: 1}

	// Malformed or empty sample data must never break the render path.
	if rec == nil || len(rec.Sample) == 0 || rec.SampleRate <= 0 || outRate <= 0 {
		v.state = stateFinished
		return v
	}

	v.step = rec.RateRatio * float64(rec.SampleRate) / float64(outRate)
	v.bendMul = math.Pow(2, snap.bendSemis/12)

	v.loopStartF = rec.LoopStart * float64(rec.SampleRate)
	v.loopEndF = rec.LoopEnd * float64(rec.SampleRate)
	v.looping = rec.Loop && v.loopEndF > v.loopStartF && v.loopEndF <= float64(len(rec.Sample))

	pan := float64(snap.pan) / 127
	if rec.HasPan {
		pan = rec.Pan
	}
	v.gainL = math.Cos(pan * math.Pi / 2)
	v.gainR = math.Sin(pan * math.Pi / 2)

	peak := 1 - rec.Attenuation/1000
	if peak < 0 {
		peak = 0
	}
	v.target = float64(snap.volume) / 127 * float64(snap.expression) / 127 *
		float64(velocity) / 127 * peak
	v.sustainGain = v.target * rec.Sustain
	v.attackStep = v.target / envFrames(rec.Attack, outRate)
	v.decayStep = (v.target - v.sustainGain) / envFrames(rec.Decay, outRate)

	v.initFilter(rec.CutoffHz, rec.Q)
	return v
}

func envFrames(seconds float64, rate int) float64 {
	f := seconds * float64(rate)
	if f < 1 {
		return 1
	}
	return f
}

// initFilter derives low-pass biquad coefficients from the cutoff and Q.
// A cutoff at or beyond the usable band leaves the filter disabled.
func (v *voice) initFilter(cutoffHz, q float64) {
	nyquist := float64(v.outRate) / 2
	if cutoffHz <= 0 || cutoffHz >= nyquist*0.9 {
		return
	}
	if q < 0.01 {
		q = 0.01
	}

	w := 2 * math.Pi * cutoffHz / float64(v.outRate)
	alpha := math.Sin(w) / (2 * q)
	cosw := math.Cos(w)
	a0 := 1 + alpha

	v.b0 = (1 - cosw) / 2 / a0
	v.b1 = (1 - cosw) / a0
	v.b2 = v.b0
	v.a1 = -2 * cosw / a0
	v.a2 = (1 - alpha) / a0
	v.filterOn = true
}

func (v *voice) filter(x float64) float64 {
	y := v.b0*x + v.b1*v.x1 + v.b2*v.x2 - v.a1*v.z1 - v.a2*v.z2
	v.x2, v.x1 = v.x1, x
	v.z2, v.z1 = v.z1, y
	return y
}

// setBend applies a pitch-bend offset in semitones, effective immediately.
func (v *voice) setBend(semitones float64) {
	v.bendMul = math.Pow(2, semitones/12)
}

// release starts the final gain ramp. Pending envelope movement is
// cancelled; the ramp runs from the current gain to zero over the
// precomputed release time. A looping voice stops looping and lets the
// sample's natural end terminate playback if it arrives first.
func (v *voice) release() {
	if v.state == stateReleasing || v.state == stateFinished {
		return
	}
	if v.gain <= 0 {
		v.state = stateFinished
		return
	}
	v.releaseStep = v.gain / envFrames(v.rec.Release, v.outRate)
	v.looping = false
	v.state = stateReleasing
}

func (v *voice) finished() bool { return v.state == stateFinished }

// render mixes up to frames stereo frames into dst (interleaved, additive).
func (v *voice) render(dst []float32, frames int, master float64) {
	if v.state == stateFinished {
		return
	}
	data := v.rec.Sample
	step := v.step * v.bendMul

	for i := range frames {
		if v.looping && v.cursor >= v.loopEndF {
			v.cursor -= v.loopEndF - v.loopStartF
		}
		idx := int(v.cursor)
		if idx >= len(data) {
			v.state = stateFinished
			return
		}

		v.advanceEnvelope()
		if v.state == stateFinished {
			return
		}

		s := float64(data[idx])
		if v.filterOn {
			s = v.filter(s)
		}
		s *= v.gain * master

		dst[2*i] += float32(s * v.gainL)
		dst[2*i+1] += float32(s * v.gainR)

		v.cursor += step
	}
}

func (v *voice) advanceEnvelope() {
	switch v.state {
	case stateAttacking:
		v.gain += v.attackStep
		if v.gain >= v.target {
			v.gain = v.target
			v.state = stateDecaying
		}
	case stateDecaying:
		v.gain -= v.decayStep
		if v.gain <= v.sustainGain {
			v.gain = v.sustainGain
			v.state = stateSustaining
		}
	case stateReleasing:
		v.gain -= v.releaseStep
		if v.gain <= 0 {
			v.gain = 0
			v.state = stateFinished
		}
	}
}
