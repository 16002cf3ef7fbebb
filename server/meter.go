package scansion

import (
	St "github.com/maroda/scansion/types"
)

// Interval bands are closed on both ends.
const (
	ternaryBandLow  = 2.6
	ternaryBandHigh = 3.4
	binaryBandLow   = 1.6
	binaryBandHigh  = 2.4

	ternaryBonus = 20.0
	binaryBonus  = 15.0
)

// NewProfile expands stress positions into one flag per syllable.
// Negative positions are not syllables and are skipped.
// An empty pattern has no profile and returns nil.
func NewProfile(p St.StressPattern) St.Profile {
	maxPos := -1
	for _, pos := range p {
		if pos > maxPos {
			maxPos = pos
		}
	}
	if maxPos < 0 {
		return nil
	}

	profile := make(St.Profile, maxPos+1)
	for _, pos := range p {
		if pos >= 0 {
			profile[pos] = 1
		}
	}
	return profile
}

// ProfileMatch is the percentage of syllables where the profile
// agrees with the repeating template, stressed or not.
func ProfileMatch(profile St.Profile, template []int) float64 {
	if len(profile) == 0 || len(template) == 0 {
		return 0
	}

	score := 0
	for i, actual := range profile {
		if template[i%len(template)] == actual {
			score++
		}
	}
	return float64(score) / float64(len(profile)) * 100
}

// Intervals are the consecutive differences between stress positions.
func Intervals(p St.StressPattern) []int {
	intervals := make([]int, 0, max(len(p)-1, 0))
	for i := 1; i < len(p); i++ {
		intervals = append(intervals, p[i]-p[i-1])
	}
	return intervals
}

// MeanInterval is zero when there are no intervals.
func MeanInterval(intervals []int) float64 {
	if len(intervals) == 0 {
		return 0
	}
	sum := 0
	for _, iv := range intervals {
		sum += iv
	}
	return float64(sum) / float64(len(intervals))
}

func inBand(v, low, high float64) bool {
	return v >= low && v <= high
}

// sameParity reports whether every position is even, or every position is odd.
func sameParity(p St.StressPattern) bool {
	allEven, allOdd := true, true
	for _, pos := range p {
		if pos%2 == 0 {
			allOdd = false
		} else {
			allEven = false
		}
	}
	return allEven || allOdd
}

// bestOf scans in the given order and keeps the first strictly higher score,
// so earlier meters win ties.
func bestOf(scores St.MeterScores, order []St.Meter) St.Meter {
	best := order[0]
	for _, m := range order[1:] {
		if scores[m] > scores[best] {
			best = m
		}
	}
	return best
}

// ScoreMeterRU scores a Russian line against every template across the whole profile,
// then adds a single interval bonus for the foot the first stress points to.
// Fewer than two stresses is Undetermined with no scores.
func ScoreMeterRU(p St.StressPattern) (St.Meter, St.MeterScores) {
	if len(p) < 2 {
		return St.Undetermined, nil
	}

	profile := NewProfile(p)
	scores := make(St.MeterScores, len(St.Meters))
	for _, m := range St.Meters {
		scores[m] = ProfileMatch(profile, m.Template())
	}

	avg := MeanInterval(Intervals(p))
	switch {
	case inBand(avg, ternaryBandLow, ternaryBandHigh):
		// The opening stress is taken to reveal the foot's internal offset.
		switch p[0] % 3 {
		case 0:
			scores[St.Dactyl] += ternaryBonus
		case 1:
			scores[St.Amphibrach] += ternaryBonus
		default:
			scores[St.Anapest] += ternaryBonus
		}
	case inBand(avg, binaryBandLow, binaryBandHigh):
		if sameParity(p) {
			if p[0]%2 != 0 {
				scores[St.Trochee] += binaryBonus
			} else {
				scores[St.Iamb] += binaryBonus
			}
		}
	}

	return bestOf(scores, St.Meters), scores
}

// IdentifyMeter names the meter of a Russian line.
func IdentifyMeter(p St.StressPattern) string {
	m, _ := ScoreMeterRU(p)
	return m.Label()
}
