package types

/*

	These are the "immutable" core types of Scansion,
	provided for cross-package use (e.g. Plugins) and testing.

	Constructors and the scoring rules live in the server package.
	Methods defined here only describe the vocabulary itself.

*/

import "time"

// StressPattern holds the 0-based syllable indices that carry a stress,
// in reading order. It may be empty, and gaps between indices are meaningful.
type StressPattern []int

// Profile is the expansion of a StressPattern into one 0/1 flag per syllable,
// from index 0 up to and including the last stressed syllable.
type Profile []int

// These read top-down, accent then non-accent,
// and are used to draw a profile one syllable at a time.
const (
	AccentRune    = '⚊' // U+268A is on (yang)
	NonAccentRune = '⚋' // U+268B is off (yin)
)

// Meter is one of the five canonical metrical feet.
// The declaration order is also the tie-break priority.
type Meter int

const (
	Iamb         Meter = iota // Iamb: non-accent → accent
	Trochee                   // Trochee: accent → non-accent
	Dactyl                    // Dactyl: accent → non-accent → non-accent
	Amphibrach                // Amphibrach: non-accent → accent → non-accent
	Anapest                   // Anapest: non-accent → non-accent → accent
	Undetermined              // Not enough stresses to say
)

// Meters is the closed template set, in priority order.
var Meters = []Meter{Iamb, Trochee, Dactyl, Amphibrach, Anapest}

// BinaryMeters and TernaryMeters are the two foot families.
var (
	BinaryMeters  = []Meter{Iamb, Trochee}
	TernaryMeters = []Meter{Dactyl, Amphibrach, Anapest}
)

// Template is the repeating stress cycle of the foot.
// Undetermined has no template.
func (m Meter) Template() []int {
	switch m {
	case Iamb:
		return []int{0, 1}
	case Trochee:
		return []int{1, 0}
	case Dactyl:
		return []int{1, 0, 0}
	case Amphibrach:
		return []int{0, 1, 0}
	case Anapest:
		return []int{0, 0, 1}
	default:
		return nil
	}
}

// String is the internal key used for scores, storage and JSON.
func (m Meter) String() string {
	switch m {
	case Iamb:
		return "iamb"
	case Trochee:
		return "trochee"
	case Dactyl:
		return "dactyl"
	case Amphibrach:
		return "amphibrach"
	case Anapest:
		return "anapest"
	default:
		return "undetermined"
	}
}

// Label is the name shown to readers.
// Both classifiers report in this one vocabulary.
func (m Meter) Label() string {
	switch m {
	case Iamb:
		return "ямб"
	case Trochee:
		return "хорей"
	case Dactyl:
		return "дактиль"
	case Amphibrach:
		return "амфибрахий"
	case Anapest:
		return "анапест"
	default:
		return "неопределенный размер"
	}
}

// Glyph is the trigram used to illuminate the meter in the UI.
func (m Meter) Glyph() rune {
	switch m {
	case Iamb:
		return '⚍' // off, on (lesser yin)
	case Trochee:
		return '⚎' // on, off (lesser yang)
	case Dactyl:
		return '☶' // on, off, off (mountain)
	case Amphibrach:
		return '☵' // off, on, off (water)
	case Anapest:
		return '☳' // off, off, on (thunder)
	default:
		return '·'
	}
}

func (m Meter) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Meter) UnmarshalText(b []byte) error {
	*m = ParseMeter(string(b))
	return nil
}

// ParseMeter is the inverse of String, unknown keys are Undetermined.
func ParseMeter(s string) Meter {
	for _, m := range Meters {
		if m.String() == s {
			return m
		}
	}
	return Undetermined
}

// MeterScores maps each meter to a percentage.
// Heuristic bonuses can push a score past 100, so treat it as a ranking only.
type MeterScores map[Meter]float64

// RhythmType is the coarse two- or three-syllable judgment.
type RhythmType int

const (
	RhythmUndetermined RhythmType = iota
	Disyllabic
	Trisyllabic
)

func (r RhythmType) String() string {
	switch r {
	case Disyllabic:
		return "disyllabic"
	case Trisyllabic:
		return "trisyllabic"
	default:
		return "undetermined"
	}
}

func (r RhythmType) Label() string {
	switch r {
	case Disyllabic:
		return "двусложный"
	case Trisyllabic:
		return "трехсложный"
	default:
		return "неопределенный"
	}
}

func (r RhythmType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RhythmType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "disyllabic":
		*r = Disyllabic
	case "trisyllabic":
		*r = Trisyllabic
	default:
		*r = RhythmUndetermined
	}
	return nil
}

// RhythmInfo is derived from a pattern without naming a meter.
type RhythmInfo struct {
	Type      RhythmType `json:"rhythm_type"`
	Density   float64    `json:"stress_density"`
	Intervals []int      `json:"stress_intervals"`
}

// Language selects the extraction and scoring rules.
type Language string

const (
	Russian Language = "ru"
	English Language = "en"
)

// LineAnalysis is everything known about a single verse line.
type LineAnalysis struct {
	Number  int           `json:"line_number"`
	Text    string        `json:"text"`
	Pattern StressPattern `json:"stress_pattern"`
	Meter   Meter         `json:"meter"`
	Label   string        `json:"label"`
	Scores  MeterScores   `json:"scores,omitempty"`
	Rhythm  RhythmInfo    `json:"rhythm"`
}

// PoemAnalysis is the per-poem record handed to presentation and outputs.
// Overall is the whole-poem classification of the concatenated patterns (English),
// Dominant is the most frequent determined line meter (any language).
type PoemAnalysis struct {
	ID            string         `json:"id"`
	Created       time.Time      `json:"created"`
	Language      Language       `json:"language"`
	Lines         []LineAnalysis `json:"lines"`
	Overall       Meter          `json:"overall"`
	OverallLabel  string         `json:"overall_label,omitempty"`
	OverallScores MeterScores    `json:"overall_scores,omitempty"`
	Dominant      Meter          `json:"dominant"`
	DominantLabel string         `json:"dominant_label"`
	DominantCount int            `json:"dominant_count"`
	Analyzed      int            `json:"analyzed"`
}
