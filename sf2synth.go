// SPDX-License-Identifier: EPL-2.0

package sf2synth

import (
	"fmt"
	"os"

	"github.com/ik5/sf2synth/bank"
	"github.com/ik5/sf2synth/sf2"
	"github.com/ik5/sf2synth/synth"
)

// DefaultSampleRate is used when a zero synthesis rate is requested.
const DefaultSampleRate = 44100

// Load parses a SoundFont file image, resolves it for playback at
// sampleRate and returns a ready Synthesizer.
//
// The returned synthesizer references data for its sample pool; data
// must not be modified while the synthesizer is in use.
func Load(data []byte, sampleRate int, cfg synth.Config) (*synth.Synthesizer, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	font, err := sf2.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("sf2synth: %w", err)
	}
	b, err := bank.New(font, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("sf2synth: %w", err)
	}
	return synth.New(b, cfg), nil
}

// Open reads a SoundFont file from disk and loads it. See Load.
func Open(path string, sampleRate int, cfg synth.Config) (*synth.Synthesizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sf2synth: %w", err)
	}
	return Load(data, sampleRate, cfg)
}
