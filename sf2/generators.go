// SPDX-License-Identifier: EPL-2.0

package sf2

// GenType is a numeric SF2 generator (or modulator destination) code.
type GenType uint16

// Generator codes, per the SF2 specification enumeration. Reserved and
// unused codes are left as gaps in the name table below.
const (
	GenStartAddrsOffset           GenType = 0
	GenEndAddrsOffset             GenType = 1
	GenStartloopAddrsOffset       GenType = 2
	GenEndloopAddrsOffset         GenType = 3
	GenStartAddrsCoarseOffset     GenType = 4
	GenModLfoToPitch              GenType = 5
	GenVibLfoToPitch              GenType = 6
	GenModEnvToPitch              GenType = 7
	GenInitialFilterFc            GenType = 8
	GenInitialFilterQ             GenType = 9
	GenModLfoToFilterFc           GenType = 10
	GenModEnvToFilterFc           GenType = 11
	GenEndAddrsCoarseOffset       GenType = 12
	GenModLfoToVolume             GenType = 13
	GenChorusEffectsSend          GenType = 15
	GenReverbEffectsSend          GenType = 16
	GenPan                        GenType = 17
	GenDelayModLFO                GenType = 21
	GenFreqModLFO                 GenType = 22
	GenDelayVibLFO                GenType = 23
	GenFreqVibLFO                 GenType = 24
	GenDelayModEnv                GenType = 25
	GenAttackModEnv               GenType = 26
	GenHoldModEnv                 GenType = 27
	GenDecayModEnv                GenType = 28
	GenSustainModEnv              GenType = 29
	GenReleaseModEnv              GenType = 30
	GenKeynumToModEnvHold         GenType = 31
	GenKeynumToModEnvDecay        GenType = 32
	GenDelayVolEnv                GenType = 33
	GenAttackVolEnv               GenType = 34
	GenHoldVolEnv                 GenType = 35
	GenDecayVolEnv                GenType = 36
	GenSustainVolEnv              GenType = 37
	GenReleaseVolEnv              GenType = 38
	GenKeynumToVolEnvHold         GenType = 39
	GenKeynumToVolEnvDecay        GenType = 40
	GenInstrument                 GenType = 41
	GenKeyRange                   GenType = 43
	GenVelRange                   GenType = 44
	GenStartloopAddrsCoarseOffset GenType = 45
	GenKeynum                     GenType = 46
	GenVelocity                   GenType = 47
	GenInitialAttenuation         GenType = 48
	GenEndloopAddrsCoarseOffset   GenType = 50
	GenCoarseTune                 GenType = 51
	GenFineTune                   GenType = 52
	GenSampleID                   GenType = 53
	GenSampleModes                GenType = 54
	GenScaleTuning                GenType = 56
	GenExclusiveClass             GenType = 57
	GenOverridingRootKey          GenType = 58
)

// generatorNames maps generator codes to their semantic names. Empty slots
// are reserved or unused codes; they decode as unknown generators and are
// kept with their raw code and value.
var generatorNames = [60]string{
	0:  "startAddrsOffset",
	1:  "endAddrsOffset",
	2:  "startloopAddrsOffset",
	3:  "endloopAddrsOffset",
	4:  "startAddrsCoarseOffset",
	5:  "modLfoToPitch",
	6:  "vibLfoToPitch",
	7:  "modEnvToPitch",
	8:  "initialFilterFc",
	9:  "initialFilterQ",
	10: "modLfoToFilterFc",
	11: "modEnvToFilterFc",
	12: "endAddrsCoarseOffset",
	13: "modLfoToVolume",

	15: "chorusEffectsSend",
	16: "reverbEffectsSend",
	17: "pan",

	21: "delayModLFO",
	22: "freqModLFO",
	23: "delayVibLFO",
	24: "freqVibLFO",
	25: "delayModEnv",
	26: "attackModEnv",
	27: "holdModEnv",
	28: "decayModEnv",
	29: "sustainModEnv",
	30: "releaseModEnv",
	31: "keynumToModEnvHold",
	32: "keynumToModEnvDecay",
	33: "delayVolEnv",
	34: "attackVolEnv",
	35: "holdVolEnv",
	36: "decayVolEnv",
	37: "sustainVolEnv",
	38: "releaseVolEnv",
	39: "keynumToVolEnvHold",
	40: "keynumToVolEnvDecay",
	41: "instrument",

	43: "keyRange",
	44: "velRange",
	45: "startloopAddrsCoarseOffset",
	46: "keynum",
	47: "velocity",
	48: "initialAttenuation",

	50: "endloopAddrsCoarseOffset",
	51: "coarseTune",
	52: "fineTune",
	53: "sampleID",
	54: "sampleModes",

	56: "scaleTuning",
	57: "exclusiveClass",
	58: "overridingRootKey",
}

// Name returns the semantic name of the generator code, or "" for
// reserved, unused or out-of-table codes.
func (g GenType) Name() string {
	if int(g) >= len(generatorNames) {
		return ""
	}
	return generatorNames[g]
}

// Known reports whether the code has a semantic name in the table.
func (g GenType) Known() bool { return g.Name() != "" }

// Ranged reports whether the generator amount decodes as a {lo,hi} byte
// range rather than a signed 16-bit value.
func (g GenType) Ranged() bool {
	switch g {
	case GenKeyRange, GenVelRange, GenKeynum, GenVelocity:
		return true
	}
	return false
}
