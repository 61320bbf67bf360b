// SPDX-License-Identifier: EPL-2.0

package sf2

// Info carries the metadata found in the INFO list.
type Info struct {
	VersionMajor uint16
	VersionMinor uint16
	Name         string // INAM
	Engine       string // isng
	Engineers    string // IENG
	Tools        string // ISFT
}

// PresetHeader is one 38-byte phdr record.
type PresetHeader struct {
	Name       string
	Preset     uint16
	Bank       uint16
	BagIndex   uint16
	Library    uint32
	Genre      uint32
	Morphology uint32
}

// Bag is one 4-byte pbag/ibag record. It scopes a half-open range into the
// parent generator and modulator arrays: the range ends at the next bag's
// start index, or at the array length for the last bag.
type Bag struct {
	GenIndex uint16
	ModIndex uint16
}

// Modulator is one 10-byte pmod/imod record. Modulators are parsed and
// preserved but not applied during synthesis.
type Modulator struct {
	SrcOper    uint16
	DestOper   GenType
	Amount     int16
	AmtSrcOper uint16
	TransOper  uint16
}

// Generator is one decoded 4-byte pgen/igen record. Codes listed as ranged
// in the generator table carry Lo/Hi; all others carry a signed Amount.
// Unrecognized codes are kept as-is with their raw value so that unknown
// generators can never break playback.
type Generator struct {
	Type   GenType
	Amount int16
	Lo, Hi byte
}

// Known reports whether the generator code has a semantic name.
func (g Generator) Known() bool { return g.Type.Known() }

// InstrumentHeader is one 22-byte inst record.
type InstrumentHeader struct {
	Name     string
	BagIndex uint16
}

// Sample type flags from shdr records.
const (
	SampleTypeMono       = 0x0001
	SampleTypeRight      = 0x0002
	SampleTypeLeft       = 0x0004
	SampleTypeLinked     = 0x0008
	SampleTypeCompressed = 0x0010 // Ogg-Vorbis-compressed sample data
	SampleTypeROM        = 0x8000
)

// SampleHeader is one 46-byte shdr record. Start/End and the loop bounds
// index into the shared sample pool; for compressed samples they are byte
// offsets into the pool and frame offsets into the decoded stream
// respectively.
type SampleHeader struct {
	Name        string
	Start       uint32
	End         uint32
	LoopStart   uint32
	LoopEnd     uint32
	SampleRate  uint32
	OriginalKey byte
	Correction  int8 // pitch correction in cents
	Link        uint16
	Type        uint16
}

// Compressed reports whether the sample data is an Ogg Vorbis stream.
func (h SampleHeader) Compressed() bool { return h.Type&SampleTypeCompressed != 0 }

// GenMap is a zone's decoded generator set, keyed by generator code.
// Unknown generators are included under their raw code.
type GenMap map[GenType]Generator

// Has reports whether the zone carries the generator.
func (m GenMap) Has(t GenType) bool {
	_, ok := m[t]
	return ok
}

// Amount returns the generator's signed amount, or def when absent.
func (m GenMap) Amount(t GenType, def int16) int16 {
	if g, ok := m[t]; ok {
		return g.Amount
	}
	return def
}

// KeyRange returns the zone's key range, defaulting to {0,127} when the
// keyRange generator is absent.
func (m GenMap) KeyRange() (lo, hi byte) {
	if g, ok := m[GenKeyRange]; ok {
		return g.Lo, g.Hi
	}
	return 0, 127
}

// Zone is one bag resolved against its generator and modulator arrays.
type Zone struct {
	Gens GenMap
	Mods []Modulator
}

// File is the structured content of a parsed SoundFont. It is immutable
// after Parse returns.
//
// SampleData references the input buffer rather than copying it; the
// buffer must outlive the File and everything derived from it.
type File struct {
	Info Info

	// SampleData is the raw shared sample pool from the sdta list:
	// little-endian 16-bit PCM, except for byte ranges flagged as
	// compressed by their sample header.
	SampleData []byte

	PresetHeaders  []PresetHeader
	PresetBags     []Bag
	PresetMods     []Modulator
	PresetGens     []Generator
	Instruments    []InstrumentHeader
	InstrumentBags []Bag
	InstrumentMods []Modulator
	InstrumentGens []Generator
	SampleHeaders  []SampleHeader
}

// PresetZones resolves the bag records of preset i into zones. The preset's
// bag range ends at the next preset's bag index, or at the bag array length
// for the last preset.
func (f *File) PresetZones(i int) []Zone {
	end := len(f.PresetBags)
	if i+1 < len(f.PresetHeaders) {
		end = int(f.PresetHeaders[i+1].BagIndex)
	}
	return resolveZones(f.PresetBags, int(f.PresetHeaders[i].BagIndex), end, f.PresetGens, f.PresetMods)
}

// InstrumentZones resolves the bag records of instrument i into zones.
func (f *File) InstrumentZones(i int) []Zone {
	end := len(f.InstrumentBags)
	if i+1 < len(f.Instruments) {
		end = int(f.Instruments[i+1].BagIndex)
	}
	return resolveZones(f.InstrumentBags, int(f.Instruments[i].BagIndex), end, f.InstrumentGens, f.InstrumentMods)
}

func resolveZones(bags []Bag, from, to int, gens []Generator, mods []Modulator) []Zone {
	if from < 0 || to > len(bags) || from > to {
		return nil
	}

	zones := make([]Zone, 0, to-from)
	for i := from; i < to; i++ {
		genEnd := len(gens)
		modEnd := len(mods)
		if i+1 < len(bags) {
			genEnd = int(bags[i+1].GenIndex)
			modEnd = int(bags[i+1].ModIndex)
		}
		genStart := clampIndex(int(bags[i].GenIndex), genEnd)
		modStart := clampIndex(int(bags[i].ModIndex), modEnd)

		z := Zone{Gens: make(GenMap, genEnd-genStart)}
		for _, g := range gens[genStart:genEnd] {
			z.Gens[g.Type] = g
		}
		if modEnd > modStart {
			z.Mods = mods[modStart:modEnd]
		}
		zones = append(zones, z)
	}
	return zones
}

func clampIndex(i, max int) int {
	if i > max {
		return max
	}
	return i
}
