package scansion

import (
	St "github.com/maroda/scansion/types"
)

// UndefinedMeterEN is what the English classifier answers for short input.
const UndefinedMeterEN = "undefined meter"

// residueMatch tells whether a stressed position sits where the meter expects a stress.
// Only stressed syllables are looked at, English stress assignment is too noisy
// for unstressed agreement to mean much.
func residueMatch(m St.Meter, pos int) bool {
	switch m {
	case St.Iamb:
		return pos%2 != 0
	case St.Trochee:
		return pos%2 == 0
	case St.Dactyl:
		return pos%3 == 0
	case St.Amphibrach:
		return pos%3 == 1
	case St.Anapest:
		return pos%3 == 2
	default:
		return false
	}
}

// ScoreMeterEN picks the stronger foot family first and then the best member of it,
// so a meter of the losing family never wins.
// Fewer than two stresses is Undetermined with an empty score map.
func ScoreMeterEN(p St.StressPattern) (St.Meter, St.MeterScores) {
	if len(p) < 2 {
		return St.Undetermined, St.MeterScores{}
	}

	scores := make(St.MeterScores, len(St.Meters))
	for _, m := range St.Meters {
		matches := 0
		for _, pos := range p {
			if residueMatch(m, pos) {
				matches++
			}
		}
		scores[m] = float64(matches) / float64(len(p)) * 100
	}

	binary := scores[bestOf(scores, St.BinaryMeters)]
	ternary := scores[bestOf(scores, St.TernaryMeters)]
	if binary >= ternary {
		return bestOf(scores, St.BinaryMeters), scores
	}
	return bestOf(scores, St.TernaryMeters), scores
}

// IdentifyMeterEN returns the localized meter name and every score.
func IdentifyMeterEN(p St.StressPattern) (string, St.MeterScores) {
	m, scores := ScoreMeterEN(p)
	if m == St.Undetermined {
		return UndefinedMeterEN, scores
	}
	return m.Label(), scores
}
