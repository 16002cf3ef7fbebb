package scansion

import (
	St "github.com/maroda/scansion/types"
)

// These are narrower than the classifier bands on purpose,
// the two judgments are independent and may disagree.
const (
	disyllabicLow   = 1.8
	disyllabicHigh  = 2.2
	trisyllabicLow  = 2.8
	trisyllabicHigh = 3.2
)

// AnalyzeRhythm derives interval and density statistics without naming a meter.
func AnalyzeRhythm(p St.StressPattern) St.RhythmInfo {
	if len(p) == 0 {
		return St.RhythmInfo{
			Type:      St.RhythmUndetermined,
			Density:   0,
			Intervals: []int{},
		}
	}

	maxPos := p[0]
	for _, pos := range p[1:] {
		maxPos = max(maxPos, pos)
	}

	density := 0.0
	if total := maxPos + 1; total > 0 {
		density = float64(len(p)) / float64(total)
	}

	intervals := Intervals(p)
	rt := St.RhythmUndetermined
	if len(intervals) > 0 {
		avg := MeanInterval(intervals)
		switch {
		case inBand(avg, disyllabicLow, disyllabicHigh):
			rt = St.Disyllabic
		case inBand(avg, trisyllabicLow, trisyllabicHigh):
			rt = St.Trisyllabic
		}
	}

	return St.RhythmInfo{
		Type:      rt,
		Density:   density,
		Intervals: intervals,
	}
}
