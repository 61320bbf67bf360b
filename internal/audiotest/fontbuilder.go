// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Builders for synthetic SoundFont file images. Tests describe a font as
// samples, instruments and presets; Bytes assembles a structurally valid
// RIFF/sfbk image including the terminal records real authoring tools
// emit (EOP, EOI, EOS and the zero modulator/generator terminators).

// Sample is one entry of the shared sample pool.
type Sample struct {
	Name       string
	Data       []int16 // PCM sample frames
	Raw        []byte  // raw pool bytes instead of Data (compressed samples)
	Rate       uint32
	RootKey    byte
	Correction int8
	LoopStart  uint32 // frames, relative to the sample start
	LoopEnd    uint32
	Type       uint16 // 0 defaults to mono
}

// Gen is one generator record of a zone.
type Gen struct {
	Code   uint16
	Amount int16
	Lo, Hi byte
	Range  bool
}

// KeyRange builds a keyRange generator (code 43).
func KeyRange(lo, hi byte) Gen { return Gen{Code: 43, Lo: lo, Hi: hi, Range: true} }

// VelRange builds a velRange generator (code 44).
func VelRange(lo, hi byte) Gen { return Gen{Code: 44, Lo: lo, Hi: hi, Range: true} }

// Value builds a signed-amount generator.
func Value(code uint16, v int16) Gen { return Gen{Code: code, Amount: v} }

// SampleID builds a sampleID generator (code 53) referencing sample i.
func SampleID(i int) Gen { return Gen{Code: 53, Amount: int16(i)} }

// InstrumentRef builds an instrument generator (code 41) referencing
// instrument i.
func InstrumentRef(i int) Gen { return Gen{Code: 41, Amount: int16(i)} }

// Zone is an ordered generator list.
type Zone struct {
	Gens []Gen
}

// Instrument is a named, ordered zone list.
type Instrument struct {
	Name  string
	Zones []Zone
}

// Preset selects an instrument for a (bank, program) slot.
type Preset struct {
	Name    string
	Bank    uint16
	Program uint16
	Zones   []Zone
}

// Font describes a whole synthetic SoundFont.
type Font struct {
	Name        string
	Samples     []Sample
	Instruments []Instrument
	Presets     []Preset
}

// Bytes assembles the font into a SoundFont file image.
func (f *Font) Bytes() []byte {
	pool, shdr := f.buildSamples()

	phdr, pbag, pgen := buildZoneSet(presetRecords(f.Presets), "EOP")
	inst, ibag, igen := buildZoneSet(instrumentRecords(f.Instruments), "EOI")

	info := concat(
		chunk("ifil", leUint16s(2, 1)),
		chunk("isng", zstr("EMU8000")),
		chunk("INAM", zstr(f.Name)),
	)
	pdta := concat(
		chunk("phdr", phdr),
		chunk("pbag", pbag),
		chunk("pmod", make([]byte, 10)),
		chunk("pgen", pgen),
		chunk("inst", inst),
		chunk("ibag", ibag),
		chunk("imod", make([]byte, 10)),
		chunk("igen", igen),
		chunk("shdr", shdr),
	)

	body := concat(
		[]byte("sfbk"),
		chunk("LIST", concat([]byte("INFO"), info)),
		chunk("LIST", concat([]byte("sdta"), chunk("smpl", pool))),
		chunk("LIST", concat([]byte("pdta"), pdta)),
	)
	return chunk("RIFF", body)
}

func (f *Font) buildSamples() (pool []byte, shdr []byte) {
	buf := new(bytes.Buffer)
	hdrs := new(bytes.Buffer)

	for _, s := range f.Samples {
		var start, end, loopStart, loopEnd uint32
		if s.Raw != nil {
			start = uint32(buf.Len())
			buf.Write(s.Raw)
			end = uint32(buf.Len())
			// Compressed loop bounds stay relative to the decoded stream.
			loopStart, loopEnd = s.LoopStart, s.LoopEnd
		} else {
			start = uint32(buf.Len() / 2)
			for _, v := range s.Data {
				binary.Write(buf, binary.LittleEndian, v)
			}
			end = uint32(buf.Len() / 2)
			loopStart = start + s.LoopStart
			loopEnd = start + s.LoopEnd
		}

		typ := s.Type
		if typ == 0 {
			typ = 1 // mono
		}
		hdrs.Write(name20(s.Name))
		binary.Write(hdrs, binary.LittleEndian, start)
		binary.Write(hdrs, binary.LittleEndian, end)
		binary.Write(hdrs, binary.LittleEndian, loopStart)
		binary.Write(hdrs, binary.LittleEndian, loopEnd)
		binary.Write(hdrs, binary.LittleEndian, s.Rate)
		hdrs.WriteByte(s.RootKey)
		hdrs.WriteByte(byte(s.Correction))
		binary.Write(hdrs, binary.LittleEndian, uint16(0)) // link
		binary.Write(hdrs, binary.LittleEndian, typ)
	}

	// Terminal EOS record.
	hdrs.Write(name20("EOS"))
	hdrs.Write(make([]byte, 26))

	if buf.Len()%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes(), hdrs.Bytes()
}

// zoneRecord is the shared shape of preset and instrument headers for the
// bag/generator assembly below.
type zoneRecord struct {
	header func(bagIndex uint16) []byte
	zones  []Zone
}

func presetRecords(presets []Preset) []zoneRecord {
	recs := make([]zoneRecord, len(presets))
	for i, p := range presets {
		recs[i] = zoneRecord{
			header: func(bagIndex uint16) []byte {
				b := new(bytes.Buffer)
				b.Write(name20(p.Name))
				binary.Write(b, binary.LittleEndian, p.Program)
				binary.Write(b, binary.LittleEndian, p.Bank)
				binary.Write(b, binary.LittleEndian, bagIndex)
				b.Write(make([]byte, 12)) // library, genre, morphology
				return b.Bytes()
			},
			zones: p.Zones,
		}
	}
	return recs
}

func instrumentRecords(insts []Instrument) []zoneRecord {
	recs := make([]zoneRecord, len(insts))
	for i, in := range insts {
		recs[i] = zoneRecord{
			header: func(bagIndex uint16) []byte {
				b := new(bytes.Buffer)
				b.Write(name20(in.Name))
				binary.Write(b, binary.LittleEndian, bagIndex)
				return b.Bytes()
			},
			zones: in.Zones,
		}
	}
	return recs
}

func buildZoneSet(recs []zoneRecord, terminal string) (headers, bags, gens []byte) {
	h := new(bytes.Buffer)
	bg := new(bytes.Buffer)
	gn := new(bytes.Buffer)

	nBags := uint16(0)
	nGens := uint16(0)
	for _, r := range recs {
		h.Write(r.header(nBags))
		for _, z := range r.zones {
			binary.Write(bg, binary.LittleEndian, nGens)
			binary.Write(bg, binary.LittleEndian, uint16(0)) // mod index
			for _, g := range z.Gens {
				binary.Write(gn, binary.LittleEndian, g.Code)
				if g.Range {
					gn.WriteByte(g.Lo)
					gn.WriteByte(g.Hi)
				} else {
					binary.Write(gn, binary.LittleEndian, g.Amount)
				}
				nGens++
			}
			nBags++
		}
	}

	// Terminal header, bag and zero generator records.
	if terminal == "EOI" {
		b := new(bytes.Buffer)
		b.Write(name20(terminal))
		binary.Write(b, binary.LittleEndian, nBags)
		h.Write(b.Bytes())
	} else {
		b := new(bytes.Buffer)
		b.Write(name20(terminal))
		b.Write(make([]byte, 4)) // preset, bank
		binary.Write(b, binary.LittleEndian, nBags)
		b.Write(make([]byte, 12))
		h.Write(b.Bytes())
	}
	binary.Write(bg, binary.LittleEndian, nGens)
	binary.Write(bg, binary.LittleEndian, uint16(0))
	gn.Write(make([]byte, 4))

	return h.Bytes(), bg.Bytes(), gn.Bytes()
}

func chunk(tag string, body []byte) []byte {
	b := make([]byte, 0, 8+len(body)+1)
	b = append(b, tag...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(body)))
	b = append(b, body...)
	if len(body)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func name20(s string) []byte {
	b := make([]byte, 20)
	copy(b, s)
	return b
}

func zstr(s string) []byte {
	b := append([]byte(s), 0)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

func leUint16s(vs ...uint16) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint16(b, v)
	}
	return b
}
