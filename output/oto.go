// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/sf2synth/audio"
)

// Player streams an audio.Source to the default audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	src    audio.Source
	buf    []float32

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the audio device at the source's rate and channel
// count. The player starts paused; call Start.
func NewPlayer(src audio.Source) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: src.Channels(),
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	<-ready

	p := &Player{
		ctx: ctx,
		src: src,
		buf: make([]float32, 4096),
	}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read implements io.Reader for the oto player: little-endian float32
// frames pulled from the source.
func (p *Player) Read(b []byte) (int, error) {
	n := len(b) / 4
	if n == 0 {
		return 0, nil
	}
	if len(p.buf) < n {
		p.buf = make([]float32, n)
	}

	read, err := p.src.ReadSamples(p.buf[:n])
	if read == 0 && err != nil {
		return 0, err
	}
	for i := range read {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(p.buf[i]))
	}
	return read * 4, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

// Stop pauses playback.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started && p.player != nil {
		p.player.Pause()
		p.started = false
	}
}

// Close stops playback and releases the device player.
func (p *Player) Close() error {
	p.Stop()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		if err := p.player.Close(); err != nil {
			return fmt.Errorf("output: %w", err)
		}
		p.player = nil
	}
	return nil
}
