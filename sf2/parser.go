// SPDX-License-Identifier: EPL-2.0

package sf2

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/ik5/sf2synth/riff"
)

// Parse decodes a whole SoundFont file image into a File.
//
// Parsing is synchronous and all-or-nothing: the first structural mismatch
// aborts with an error and no partial result. The returned File references
// data for its sample pool instead of copying it.
func Parse(data []byte) (*File, error) {
	cfg := riff.Config{Padded: true}

	top := riff.NewWalker(data, cfg)
	root, err := top.Next()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSoundFont, err)
	}
	if root.Tag != "RIFF" {
		return nil, fmt.Errorf("%w: top-level chunk is %q", ErrNotSoundFont, root.Tag)
	}
	if _, err := top.Next(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after RIFF chunk", ErrNotSoundFont)
	}

	form, lists, err := root.List(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSoundFont, err)
	}
	if form != "sfbk" {
		return nil, fmt.Errorf("%w: form type is %q", ErrNotSoundFont, form)
	}

	f := &File{}

	for _, want := range []string{"INFO", "sdta", "pdta"} {
		c, err := lists.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: missing %s list: %v", ErrBadLayout, want, err)
		}
		if c.Tag != "LIST" {
			return nil, fmt.Errorf("%w: expected LIST, got %q", ErrBadLayout, c.Tag)
		}
		listType, sub, err := c.List(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadLayout, err)
		}
		if listType != want {
			return nil, fmt.Errorf("%w: expected %s list, got %q", ErrBadLayout, want, listType)
		}

		switch want {
		case "INFO":
			err = parseInfo(sub, &f.Info)
		case "sdta":
			err = parseSampleData(sub, f)
		case "pdta":
			err = parsePdta(sub, f)
		}
		if err != nil {
			return nil, err
		}
	}

	if _, err := lists.Next(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing chunks after pdta list", ErrBadLayout)
	}

	return f, nil
}

func parseInfo(w *riff.Walker, info *Info) error {
	for {
		c, err := w.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadLayout, err)
		}

		body := c.Body()
		switch c.Tag {
		case "ifil":
			if len(body) != 4 {
				return fmt.Errorf("%w: ifil is %d bytes", ErrBadLayout, len(body))
			}
			info.VersionMajor = binary.LittleEndian.Uint16(body[0:2])
			info.VersionMinor = binary.LittleEndian.Uint16(body[2:4])
		case "INAM":
			info.Name = trimNUL(body)
		case "isng":
			info.Engine = trimNUL(body)
		case "IENG":
			info.Engineers = trimNUL(body)
		case "ISFT":
			info.Tools = trimNUL(body)
		default:
			// Remaining INFO chunks (dates, comments, copyright, ROM
			// references) are walked but not retained.
		}
	}
}

func parseSampleData(w *riff.Walker, f *File) error {
	c, err := w.Next()
	if err != nil {
		return fmt.Errorf("%w: sdta list has no sample chunk", ErrBadLayout)
	}
	f.SampleData = c.Body()
	if _, err := w.Next(); err != io.EOF {
		return fmt.Errorf("%w: sdta list must hold exactly one chunk", ErrBadLayout)
	}
	return nil
}

// pdta record widths, in file order.
const (
	phdrWidth = 38
	bagWidth  = 4
	modWidth  = 10
	genWidth  = 4
	instWidth = 22
	shdrWidth = 46
)

func parsePdta(w *riff.Walker, f *File) error {
	steps := []struct {
		tag    string
		width  int
		decode func(body []byte)
	}{
		{"phdr", phdrWidth, func(b []byte) { f.PresetHeaders = decodePresetHeaders(b) }},
		{"pbag", bagWidth, func(b []byte) { f.PresetBags = decodeBags(b) }},
		{"pmod", modWidth, func(b []byte) { f.PresetMods = decodeModulators(b) }},
		{"pgen", genWidth, func(b []byte) { f.PresetGens = decodeGenerators(b) }},
		{"inst", instWidth, func(b []byte) { f.Instruments = decodeInstrumentHeaders(b) }},
		{"ibag", bagWidth, func(b []byte) { f.InstrumentBags = decodeBags(b) }},
		{"imod", modWidth, func(b []byte) { f.InstrumentMods = decodeModulators(b) }},
		{"igen", genWidth, func(b []byte) { f.InstrumentGens = decodeGenerators(b) }},
		{"shdr", shdrWidth, func(b []byte) { f.SampleHeaders = decodeSampleHeaders(b) }},
	}

	for _, step := range steps {
		c, err := w.Next()
		if err != nil {
			return fmt.Errorf("%w: missing %s chunk: %v", ErrBadLayout, step.tag, err)
		}
		if c.Tag != step.tag {
			return fmt.Errorf("%w: expected %s, got %q", ErrBadLayout, step.tag, c.Tag)
		}
		if len(c.Body())%step.width != 0 {
			return fmt.Errorf("%w: %s is %d bytes, record width %d",
				ErrBadRecordSize, step.tag, len(c.Body()), step.width)
		}
		step.decode(c.Body())
	}

	if _, err := w.Next(); err != io.EOF {
		return fmt.Errorf("%w: trailing chunks after shdr", ErrBadLayout)
	}
	return nil
}

func decodePresetHeaders(b []byte) []PresetHeader {
	out := make([]PresetHeader, 0, len(b)/phdrWidth)
	for ; len(b) >= phdrWidth; b = b[phdrWidth:] {
		out = append(out, PresetHeader{
			Name:       trimNUL(b[0:20]),
			Preset:     binary.LittleEndian.Uint16(b[20:22]),
			Bank:       binary.LittleEndian.Uint16(b[22:24]),
			BagIndex:   binary.LittleEndian.Uint16(b[24:26]),
			Library:    binary.LittleEndian.Uint32(b[26:30]),
			Genre:      binary.LittleEndian.Uint32(b[30:34]),
			Morphology: binary.LittleEndian.Uint32(b[34:38]),
		})
	}
	return out
}

func decodeBags(b []byte) []Bag {
	out := make([]Bag, 0, len(b)/bagWidth)
	for ; len(b) >= bagWidth; b = b[bagWidth:] {
		out = append(out, Bag{
			GenIndex: binary.LittleEndian.Uint16(b[0:2]),
			ModIndex: binary.LittleEndian.Uint16(b[2:4]),
		})
	}
	return out
}

func decodeModulators(b []byte) []Modulator {
	out := make([]Modulator, 0, len(b)/modWidth)
	for ; len(b) >= modWidth; b = b[modWidth:] {
		out = append(out, Modulator{
			SrcOper:    binary.LittleEndian.Uint16(b[0:2]),
			DestOper:   GenType(binary.LittleEndian.Uint16(b[2:4])),
			Amount:     int16(binary.LittleEndian.Uint16(b[4:6])),
			AmtSrcOper: binary.LittleEndian.Uint16(b[6:8]),
			TransOper:  binary.LittleEndian.Uint16(b[8:10]),
		})
	}
	return out
}

func decodeGenerators(b []byte) []Generator {
	out := make([]Generator, 0, len(b)/genWidth)
	for ; len(b) >= genWidth; b = b[genWidth:] {
		g := Generator{Type: GenType(binary.LittleEndian.Uint16(b[0:2]))}
		if g.Type.Ranged() {
			g.Lo, g.Hi = b[2], b[3]
		} else {
			g.Amount = int16(binary.LittleEndian.Uint16(b[2:4]))
		}
		out = append(out, g)
	}
	return out
}

func decodeInstrumentHeaders(b []byte) []InstrumentHeader {
	out := make([]InstrumentHeader, 0, len(b)/instWidth)
	for ; len(b) >= instWidth; b = b[instWidth:] {
		out = append(out, InstrumentHeader{
			Name:     trimNUL(b[0:20]),
			BagIndex: binary.LittleEndian.Uint16(b[20:22]),
		})
	}
	return out
}

func decodeSampleHeaders(b []byte) []SampleHeader {
	out := make([]SampleHeader, 0, len(b)/shdrWidth)
	for ; len(b) >= shdrWidth; b = b[shdrWidth:] {
		out = append(out, SampleHeader{
			Name:        trimNUL(b[0:20]),
			Start:       binary.LittleEndian.Uint32(b[20:24]),
			End:         binary.LittleEndian.Uint32(b[24:28]),
			LoopStart:   binary.LittleEndian.Uint32(b[28:32]),
			LoopEnd:     binary.LittleEndian.Uint32(b[32:36]),
			SampleRate:  binary.LittleEndian.Uint32(b[36:40]),
			OriginalKey: b[40],
			Correction:  int8(b[41]),
			Link:        binary.LittleEndian.Uint16(b[42:44]),
			Type:        binary.LittleEndian.Uint16(b[44:46]),
		})
	}
	return out
}

func trimNUL(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}
