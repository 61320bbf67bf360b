// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/sf2synth/audio"
	"github.com/ik5/sf2synth/utils"
)

// Capture reads up to frames frames from src and returns them as a
// 16-bit go-audio IntBuffer. A finite source may deliver fewer frames.
func Capture(src audio.Source, frames int) (*goaudio.IntBuffer, error) {
	channels := src.Channels()
	want := frames * channels
	data := make([]int, 0, want)

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)

	for len(data) < want {
		chunk := buf
		if remaining := want - len(data); remaining < len(chunk) {
			chunk = chunk[:remaining]
		}
		n, err := src.ReadSamples(chunk)
		for _, v := range chunk[:n] {
			data = append(data, int(utils.Float32ToInt16(v)))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  src.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: 16,
	}, nil
}

// WriteWAV captures frames frames from src and writes them to w as a
// 16-bit PCM WAV file.
func WriteWAV(w io.WriteSeeker, src audio.Source, frames int) error {
	buf, err := Capture(src, frames)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(w, src.SampleRate(), 16, src.Channels(), 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
