// SPDX-License-Identifier: EPL-2.0

package synth

// percussionChannel is the zero-based MIDI channel reserved for
// percussion in General MIDI (channel 10 as musicians count).
const percussionChannel = 9

const bendCenter = 8192

// channel is the per-MIDI-channel state machine. All fields are guarded
// by the owning Synthesizer's mutex.
type channel struct {
	bank            uint16
	program         uint16
	volume          byte // 0..127
	pan             byte // 0..127, 64 = center
	expression      byte // 0..127
	bend            int  // 14-bit, center 8192
	bendSensitivity byte // semitones
	hold            bool
	percussion      bool
	reverbSend      byte

	voices []*voice
}

// reset restores General MIDI power-on defaults. idx is the channel's
// position; the percussion channel defaults to the percussion flag set.
func (c *channel) reset(idx int) {
	c.bank = 0
	c.program = 0
	c.volume = 100
	c.pan = 64
	c.expression = 127
	c.bend = bendCenter
	c.bendSensitivity = 2
	c.hold = false
	c.percussion = idx == percussionChannel
	c.reverbSend = 40
	c.voices = c.voices[:0]
}

// bendSemitones converts the current 14-bit bend to a semitone offset.
// The positive half-range is one step smaller than the negative one, so
// the divisor follows the sign of the delta.
func (c *channel) bendSemitones() float64 {
	delta := float64(c.bend - bendCenter)
	denom := 8192.0
	if delta > 0 {
		denom = 8191.0
	}
	return delta / denom * float64(c.bendSensitivity)
}

func (c *channel) snapshot() channelSnapshot {
	return channelSnapshot{
		volume:     c.volume,
		pan:        c.pan,
		expression: c.expression,
		bendSemis:  c.bendSemitones(),
	}
}

// sweep drops finished voices in place without allocating.
func (c *channel) sweep() int {
	kept := c.voices[:0]
	for _, v := range c.voices {
		if !v.finished() {
			kept = append(kept, v)
		}
	}
	removed := len(c.voices) - len(kept)
	c.voices = kept
	return removed
}
