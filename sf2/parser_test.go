// SPDX-License-Identifier: EPL-2.0

package sf2_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/sf2synth/internal/audiotest"
	"github.com/ik5/sf2synth/sf2"
)

func testFont() *audiotest.Font {
	return &audiotest.Font{
		Name: "Test Bank",
		Samples: []audiotest.Sample{
			{
				Name:      "sine low",
				Data:      []int16{0, 100, 200, 300, 200, 100, 0, -100},
				Rate:      22050,
				RootKey:   48,
				LoopStart: 2,
				LoopEnd:   6,
			},
			{
				Name:       "sine high",
				Data:       []int16{0, 1000, 0, -1000},
				Rate:       44100,
				RootKey:    72,
				Correction: -5,
			},
		},
		Instruments: []audiotest.Instrument{
			{
				Name: "Split Sine",
				Zones: []audiotest.Zone{
					{Gens: []audiotest.Gen{audiotest.KeyRange(0, 63), audiotest.SampleID(0)}},
					{Gens: []audiotest.Gen{audiotest.KeyRange(64, 127), audiotest.SampleID(1)}},
				},
			},
		},
		Presets: []audiotest.Preset{
			{
				Name:    "Sine Lead",
				Bank:    0,
				Program: 0,
				Zones: []audiotest.Zone{
					{Gens: []audiotest.Gen{audiotest.InstrumentRef(0)}},
				},
			},
		},
	}
}

func TestParse_Info(t *testing.T) {
	t.Parallel()

	f, err := sf2.Parse(testFont().Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Info.Name != "Test Bank" {
		t.Errorf("Info.Name = %q, want %q", f.Info.Name, "Test Bank")
	}
	if f.Info.VersionMajor != 2 || f.Info.VersionMinor != 1 {
		t.Errorf("Info version = %d.%d, want 2.1", f.Info.VersionMajor, f.Info.VersionMinor)
	}
	if f.Info.Engine != "EMU8000" {
		t.Errorf("Info.Engine = %q, want %q", f.Info.Engine, "EMU8000")
	}
}

func TestParse_Headers(t *testing.T) {
	t.Parallel()

	f, err := sf2.Parse(testFont().Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// One real preset plus the EOP terminal record.
	if len(f.PresetHeaders) != 2 {
		t.Fatalf("len(PresetHeaders) = %d, want 2", len(f.PresetHeaders))
	}
	p := f.PresetHeaders[0]
	if p.Name != "Sine Lead" || p.Bank != 0 || p.Preset != 0 {
		t.Errorf("preset header = %+v", p)
	}

	if len(f.Instruments) != 2 {
		t.Fatalf("len(Instruments) = %d, want 2", len(f.Instruments))
	}
	if f.Instruments[0].Name != "Split Sine" {
		t.Errorf("instrument name = %q", f.Instruments[0].Name)
	}

	if len(f.SampleHeaders) != 3 {
		t.Fatalf("len(SampleHeaders) = %d, want 3", len(f.SampleHeaders))
	}
	s := f.SampleHeaders[0]
	if s.Name != "sine low" || s.SampleRate != 22050 || s.OriginalKey != 48 {
		t.Errorf("sample header = %+v", s)
	}
	if s.Start != 0 || s.End != 8 {
		t.Errorf("sample bounds = [%d,%d), want [0,8)", s.Start, s.End)
	}
	if s.LoopStart != 2 || s.LoopEnd != 6 {
		t.Errorf("loop bounds = [%d,%d], want [2,6]", s.LoopStart, s.LoopEnd)
	}

	s = f.SampleHeaders[1]
	if s.Start != 8 || s.Correction != -5 {
		t.Errorf("second sample header = %+v", s)
	}
}

func TestParse_SamplePool(t *testing.T) {
	t.Parallel()

	font := testFont()
	f, err := sf2.Parse(font.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := new(bytes.Buffer)
	for _, s := range font.Samples {
		binary.Write(want, binary.LittleEndian, s.Data)
	}
	if !bytes.Equal(f.SampleData, want.Bytes()) {
		t.Errorf("SampleData = % x, want % x", f.SampleData, want.Bytes())
	}
}

func TestParse_ZoneBoundaries(t *testing.T) {
	t.Parallel()

	f, err := sf2.Parse(testFont().Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	zones := f.InstrumentZones(0)
	if len(zones) != 2 {
		t.Fatalf("len(InstrumentZones(0)) = %d, want 2", len(zones))
	}

	lo, hi := zones[0].Gens.KeyRange()
	if lo != 0 || hi != 63 {
		t.Errorf("zone 0 key range = [%d,%d], want [0,63]", lo, hi)
	}
	if got := zones[0].Gens.Amount(sf2.GenSampleID, -1); got != 0 {
		t.Errorf("zone 0 sampleID = %d, want 0", got)
	}

	lo, hi = zones[1].Gens.KeyRange()
	if lo != 64 || hi != 127 {
		t.Errorf("zone 1 key range = [%d,%d], want [64,127]", lo, hi)
	}
	if got := zones[1].Gens.Amount(sf2.GenSampleID, -1); got != 1 {
		t.Errorf("zone 1 sampleID = %d, want 1", got)
	}

	pz := f.PresetZones(0)
	if len(pz) != 1 {
		t.Fatalf("len(PresetZones(0)) = %d, want 1", len(pz))
	}
	if got := pz[0].Gens.Amount(sf2.GenInstrument, -1); got != 0 {
		t.Errorf("preset zone instrument = %d, want 0", got)
	}
}

func TestParse_UnknownGeneratorPreserved(t *testing.T) {
	t.Parallel()

	font := testFont()
	// Code 55 is reserved in the generator enumeration.
	font.Instruments[0].Zones[0].Gens = append(
		[]audiotest.Gen{audiotest.Value(55, 1234)},
		font.Instruments[0].Zones[0].Gens...)

	f, err := sf2.Parse(font.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	zones := f.InstrumentZones(0)
	g, ok := zones[0].Gens[sf2.GenType(55)]
	if !ok {
		t.Fatal("unknown generator 55 was dropped")
	}
	if g.Known() {
		t.Error("generator 55 reported as known")
	}
	if g.Amount != 1234 {
		t.Errorf("generator 55 amount = %d, want 1234", g.Amount)
	}
}

func TestParse_NotSoundFont(t *testing.T) {
	t.Parallel()

	cases := map[string][]byte{
		"garbage":    []byte("not a soundfont at all"),
		"empty":      nil,
		"wrong tag":  bytes.Replace(testFont().Bytes(), []byte("RIFF"), []byte("RIFX"), 1),
		"wrong form": bytes.Replace(testFont().Bytes(), []byte("sfbk"), []byte("WAVE"), 1),
		"trailing":   append(testFont().Bytes(), 0, 0, 0, 0, 0, 0, 0, 0),
	}

	for name, data := range cases {
		if _, err := sf2.Parse(data); !errors.Is(err, sf2.ErrNotSoundFont) {
			t.Errorf("Parse(%s) error = %v, want ErrNotSoundFont", name, err)
		}
	}
}

func TestParse_BadLayout(t *testing.T) {
	t.Parallel()

	cases := map[string][]byte{
		"missing pdta": bytes.Replace(testFont().Bytes(), []byte("pdta"), []byte("xdta"), 1),
		"missing phdr": bytes.Replace(testFont().Bytes(), []byte("phdr"), []byte("xhdr"), 1),
		"missing shdr": bytes.Replace(testFont().Bytes(), []byte("shdr"), []byte("xhdr"), 1),
	}

	for name, data := range cases {
		if _, err := sf2.Parse(data); !errors.Is(err, sf2.ErrBadLayout) {
			t.Errorf("Parse(%s) error = %v, want ErrBadLayout", name, err)
		}
	}
}

func TestParse_BadRecordSize(t *testing.T) {
	t.Parallel()

	data := testFont().Bytes()
	i := bytes.Index(data, []byte("phdr"))
	if i < 0 {
		t.Fatal("no phdr chunk in test image")
	}

	// Grow the declared phdr size by two bytes so its body is no longer a
	// whole number of 38-byte records.
	size := binary.LittleEndian.Uint32(data[i+4 : i+8])
	binary.LittleEndian.PutUint32(data[i+4:i+8], size+2)

	if _, err := sf2.Parse(data); !errors.Is(err, sf2.ErrBadRecordSize) {
		t.Errorf("Parse() error = %v, want ErrBadRecordSize", err)
	}
}
