// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/sf2synth/sf2"
	"github.com/ik5/sf2synth/utils"
)

// sampleSlice is one zone's view of the sample pool, ready for playback.
type sampleSlice struct {
	data      []float32
	rate      int
	loopStart float64 // seconds from the slice start
	loopEnd   float64
}

// samplePool extracts zone sample slices from the font's shared pool.
// The PCM pool is converted to float32 once and shared by every slice;
// compressed samples are decoded once and cached.
type samplePool struct {
	f       *sf2.File
	target  int
	pcm     []float32
	decoded map[int]*decodedSample
}

type decodedSample struct {
	data []float32
	rate int
}

func newPool(f *sf2.File, target int) *samplePool {
	return &samplePool{
		f:       f,
		target:  target,
		decoded: make(map[int]*decodedSample),
	}
}

// slice extracts sample idx through the zone's address-offset generators.
// A nil slice (with nil error) means the zone references data outside the
// pool and should be skipped rather than fail the whole load.
func (p *samplePool) slice(idx int, gens sf2.GenMap) (*sampleSlice, error) {
	hdr := p.f.SampleHeaders[idx]
	if hdr.Compressed() {
		return p.sliceCompressed(idx, hdr, gens)
	}
	return p.slicePCM(hdr, gens)
}

func (p *samplePool) slicePCM(hdr sf2.SampleHeader, gens sf2.GenMap) (*sampleSlice, error) {
	if p.pcm == nil {
		p.pcm = decodePool(p.f.SampleData)
	}

	start := int(hdr.Start) + addrOffset(gens, sf2.GenStartAddrsOffset, sf2.GenStartAddrsCoarseOffset)
	end := int(hdr.End) + addrOffset(gens, sf2.GenEndAddrsOffset, sf2.GenEndAddrsCoarseOffset)
	loopStart := int(hdr.LoopStart) + addrOffset(gens, sf2.GenStartloopAddrsOffset, sf2.GenStartloopAddrsCoarseOffset)
	loopEnd := int(hdr.LoopEnd) + addrOffset(gens, sf2.GenEndloopAddrsOffset, sf2.GenEndloopAddrsCoarseOffset)

	if start < 0 || end > len(p.pcm) || start >= end || hdr.SampleRate == 0 {
		return nil, nil
	}
	loopStart = clampRange(loopStart, start, end)
	loopEnd = clampRange(loopEnd, start, end)

	native := float64(hdr.SampleRate)
	s := &sampleSlice{
		data:      p.pcm[start:end],
		rate:      int(hdr.SampleRate),
		loopStart: float64(loopStart-start) / native,
		loopEnd:   float64(loopEnd-start) / native,
	}
	s.upsample(p.target)
	return s, nil
}

func (p *samplePool) sliceCompressed(idx int, hdr sf2.SampleHeader, gens sf2.GenMap) (*sampleSlice, error) {
	dec, ok := p.decoded[idx]
	if !ok {
		start, end := int(hdr.Start), int(hdr.End)
		if start < 0 || end > len(p.f.SampleData) || start >= end {
			return nil, nil
		}
		data, format, err := oggvorbis.ReadAll(bytes.NewReader(p.f.SampleData[start:end]))
		if err != nil {
			return nil, fmt.Errorf("%w: sample %q: %v", ErrBadSample, hdr.Name, err)
		}
		if format.Channels > 1 {
			data = mixToMono(data, format.Channels)
		}
		dec = &decodedSample{data: data, rate: format.SampleRate}
		p.decoded[idx] = dec
	}
	if len(dec.data) == 0 || dec.rate == 0 {
		return nil, nil
	}

	// Compressed loop bounds are frame offsets into the decoded stream.
	loopStart := clampRange(int(hdr.LoopStart)+addrOffset(gens, sf2.GenStartloopAddrsOffset, sf2.GenStartloopAddrsCoarseOffset), 0, len(dec.data))
	loopEnd := clampRange(int(hdr.LoopEnd)+addrOffset(gens, sf2.GenEndloopAddrsOffset, sf2.GenEndloopAddrsCoarseOffset), 0, len(dec.data))

	native := float64(dec.rate)
	s := &sampleSlice{
		data:      dec.data,
		rate:      dec.rate,
		loopStart: float64(loopStart) / native,
		loopEnd:   float64(loopEnd) / native,
	}
	s.upsample(p.target)
	return s, nil
}

// upsample duplicates frames until the data rate is at or above target,
// doubling each pass. No interpolation: this preserves the historical
// output of the format's consumer at the cost of tonal quality.
func (s *sampleSlice) upsample(target int) {
	mult := 1
	for rate := s.rate; rate < target; rate *= 2 {
		mult *= 2
	}
	if mult == 1 {
		return
	}

	out := make([]float32, len(s.data)*mult)
	for i, v := range s.data {
		base := i * mult
		for j := range mult {
			out[base+j] = v
		}
	}
	s.data = out
	s.rate *= mult
	// Loop bounds are in seconds; frame indexes and rate scale together.
}

func decodePool(raw []byte) []float32 {
	out := make([]float32, len(raw)/2)
	for i := range out {
		out[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(raw[2*i : 2*i+2])))
	}
	return out
}

func mixToMono(data []float32, channels int) []float32 {
	frames := len(data) / channels
	out := make([]float32, frames)
	inv := 1 / float32(channels)
	for i := range out {
		var sum float32
		for c := range channels {
			sum += data[i*channels+c]
		}
		out[i] = sum * inv
	}
	return out
}

func addrOffset(gens sf2.GenMap, fine, coarse sf2.GenType) int {
	return int(gens.Amount(fine, 0)) + 32768*int(gens.Amount(coarse, 0))
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
