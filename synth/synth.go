// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"io"
	"log"
	"sync"

	"github.com/ik5/sf2synth/audio"
	"github.com/ik5/sf2synth/bank"
)

// NumChannels is the fixed MIDI channel count.
const NumChannels = 16

// Config tunes a Synthesizer.
type Config struct {
	// MaxVoices caps simultaneous voices; when the cap is reached the
	// oldest voice is stolen. 0 means unbounded polyphony.
	MaxVoices int

	// Logger receives dropped-note and fallback diagnostics. nil
	// discards them.
	Logger *log.Logger
}

// Synthesizer is the per-session MIDI state machine: 16 channels, each
// with its own program selection and sounding voices, rendered as one
// endless stereo stream.
//
// Control operations may be called from any goroutine; they serialize
// with the render path through a mutex held only for short bounded
// sections.
type Synthesizer struct {
	mu sync.Mutex

	bank       *bank.Bank
	rate       int
	channels   [NumChannels]channel
	master     float64
	logger     *log.Logger
	maxVoices  int
	voiceCount int
	seq        uint64
}

// New creates a Synthesizer over a resolved bank. The synthesis rate is
// the rate the bank was resolved for.
func New(b *bank.Bank, cfg Config) *Synthesizer {
	s := &Synthesizer{
		bank:      b,
		rate:      b.SampleRate(),
		master:    1,
		logger:    cfg.Logger,
		maxVoices: cfg.MaxVoices,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	for i := range s.channels {
		s.channels[i].reset(i)
	}
	return s
}

// Reset silences every voice and restores all channels to their General
// MIDI defaults.
func (s *Synthesizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.channels {
		s.channels[i].reset(i)
	}
	s.voiceCount = 0
}

// SetMasterVolume scales the final mix. 1 is unity gain.
func (s *Synthesizer) SetMasterVolume(level float64) {
	if level < 0 {
		level = 0
	}
	s.mu.Lock()
	s.master = level
	s.mu.Unlock()
}

// ProgramChange selects a program on the channel.
func (s *Synthesizer) ProgramChange(ch int, program byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.channel(ch)
	if c == nil {
		return
	}
	c.program = uint16(program)
}

// BankChange selects a bank on the channel. A bank with no resolved data
// falls back to bank 0, or to the percussion bank when the channel is
// flagged percussion.
func (s *Synthesizer) BankChange(ch int, bankNum uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.channel(ch)
	if c == nil {
		return
	}
	if !s.bank.HasBank(bankNum) {
		fallback := uint16(0)
		if c.percussion {
			fallback = bank.Percussion
		}
		s.logger.Printf("synth: bank %d empty on channel %d, using bank %d", bankNum, ch, fallback)
		bankNum = fallback
	}
	c.bank = bankNum
}

// NoteOn starts a voice for key on the channel. The record resolves
// through the channel's selection, then percussion bank program 0, then
// bank 0 with the channel's program; an unresolvable note is logged and
// dropped without affecting other voices.
func (s *Synthesizer) NoteOn(ch int, key, velocity byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.channel(ch)
	if c == nil || key > 127 {
		return
	}

	rec := s.bank.Lookup(c.bank, c.program, key)
	if rec == nil {
		rec = s.bank.Lookup(bank.Percussion, 0, key)
	}
	if rec == nil {
		rec = s.bank.Lookup(0, c.program, key)
	}
	if rec == nil {
		s.logger.Printf("synth: no sample for channel %d bank %d program %d key %d",
			ch, c.bank, c.program, key)
		return
	}

	if s.maxVoices > 0 && s.voiceCount >= s.maxVoices {
		s.stealOldest()
	}

	s.seq++
	v := newVoice(rec, key, velocity, s.rate, c.snapshot(), s.seq)
	if v.finished() {
		return
	}
	c.voices = append(c.voices, v)
	s.voiceCount++
}

// NoteOff signals release for the key's voices on the channel. While the
// hold pedal is engaged the voices keep sounding; the release happens
// when the pedal is lifted.
func (s *Synthesizer) NoteOff(ch int, key byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.channel(ch)
	if c == nil {
		return
	}
	for _, v := range c.voices {
		if v.key != key {
			continue
		}
		if c.hold {
			v.releaseRequested = true
		} else {
			v.release()
		}
	}
}

// SetHoldPedal engages or lifts the channel's hold pedal. Lifting it
// releases every voice whose note-off arrived while held.
func (s *Synthesizer) SetHoldPedal(ch int, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.channel(ch)
	if c == nil {
		return
	}
	c.hold = down
	if down {
		return
	}
	for _, v := range c.voices {
		if v.releaseRequested {
			v.release()
		}
	}
}

// PitchBend applies a 14-bit bend (lsb/msb pair, center 8192) to the
// channel and pushes the new offset to every sounding voice immediately.
func (s *Synthesizer) PitchBend(ch int, lsb, msb byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.channel(ch)
	if c == nil {
		return
	}
	c.bend = int(msb&0x7f)<<7 | int(lsb&0x7f)
	semis := c.bendSemitones()
	for _, v := range c.voices {
		v.setBend(semis)
	}
}

// SetPitchBendSensitivity sets the channel's bend range in semitones.
func (s *Synthesizer) SetPitchBendSensitivity(ch int, semitones byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.channel(ch); c != nil {
		c.bendSensitivity = semitones
	}
}

// SetChannelVolume sets the channel volume (0..127). Sounding voices keep
// the volume they snapshotted at note-on.
func (s *Synthesizer) SetChannelVolume(ch int, volume byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.channel(ch); c != nil {
		c.volume = volume & 0x7f
	}
}

// SetExpression sets the channel expression (0..127), snapshotted by
// future voices.
func (s *Synthesizer) SetExpression(ch int, expression byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.channel(ch); c != nil {
		c.expression = expression & 0x7f
	}
}

// SetPan sets the channel pan (0..127, 64 = center), snapshotted by
// future voices.
func (s *Synthesizer) SetPan(ch int, pan byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.channel(ch); c != nil {
		c.pan = pan & 0x7f
	}
}

// SetPercussion flags the channel as percussion for bank fallback.
func (s *Synthesizer) SetPercussion(ch int, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.channel(ch); c != nil {
		c.percussion = on
	}
}

// ActiveVoices reports the number of sounding voices.
func (s *Synthesizer) ActiveVoices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voiceCount
}

// SampleRate implements audio.Source.
func (s *Synthesizer) SampleRate() int { return s.rate }

// Channels implements audio.Source; output is always stereo.
func (s *Synthesizer) Channels() int { return 2 }

// BufSize implements audio.Source.
func (s *Synthesizer) BufSize() int { return 4096 }

// Close implements audio.Source.
func (s *Synthesizer) Close() error { return nil }

// ReadSamples renders the next block of interleaved stereo samples. It
// always fills dst completely and never returns io.EOF: an idle
// synthesizer produces silence.
func (s *Synthesizer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	for i := range dst {
		dst[i] = 0
	}
	frames := len(dst) / 2

	s.mu.Lock()
	for i := range s.channels {
		c := &s.channels[i]
		for _, v := range c.voices {
			v.render(dst, frames, s.master)
		}
		s.voiceCount -= c.sweep()
	}
	s.mu.Unlock()

	return len(dst), nil
}

func (s *Synthesizer) channel(ch int) *channel {
	if ch < 0 || ch >= NumChannels {
		return nil
	}
	return &s.channels[ch]
}

// stealOldest drops the longest-sounding voice. Caller holds the mutex.
func (s *Synthesizer) stealOldest() {
	var (
		oldest   *voice
		oldestCh *channel
	)
	for i := range s.channels {
		for _, v := range s.channels[i].voices {
			if oldest == nil || v.seq < oldest.seq {
				oldest = v
				oldestCh = &s.channels[i]
			}
		}
	}
	if oldest == nil {
		return
	}
	oldest.state = stateFinished
	s.voiceCount -= oldestCh.sweep()
}
