package scansion_test

import (
	"testing"

	Ss "github.com/maroda/scansion/server"
	St "github.com/maroda/scansion/types"
)

func TestScoreMeterEN(t *testing.T) {
	tests := []struct {
		name    string
		pattern St.StressPattern
		want    St.Meter
		label   string
	}{
		{name: "Iambic pentameter", pattern: St.StressPattern{1, 3, 5, 7, 9}, want: St.Iamb, label: "ямб"},
		{name: "Trochee", pattern: St.StressPattern{0, 2, 4, 6}, want: St.Trochee, label: "хорей"},
		{name: "Dactyl beats a split binary family", pattern: St.StressPattern{0, 3, 6, 9}, want: St.Dactyl, label: "дактиль"},
		{name: "Amphibrach", pattern: St.StressPattern{1, 4, 7}, want: St.Amphibrach, label: "амфибрахий"},
		{name: "Anapest", pattern: St.StressPattern{2, 5, 8}, want: St.Anapest, label: "анапест"},
		{name: "Family tie goes to binary", pattern: St.StressPattern{0, 1}, want: St.Iamb, label: "ямб"},
		{name: "One stress", pattern: St.StressPattern{4}, want: St.Undetermined, label: Ss.UndefinedMeterEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Ss.ScoreMeterEN(tt.pattern)
			assertMeter(t, got, tt.want)

			label, _ := Ss.IdentifyMeterEN(tt.pattern)
			assertString(t, label, tt.label)
		})
	}

	t.Run("Scores count stressed residues only", func(t *testing.T) {
		_, scores := Ss.ScoreMeterEN(St.StressPattern{1, 3, 5, 7, 9})
		assertFloat(t, scores[St.Iamb], 100)
		assertFloat(t, scores[St.Trochee], 0)
		assertFloat(t, scores[St.Dactyl], 40)
		assertFloat(t, scores[St.Amphibrach], 40)
		assertFloat(t, scores[St.Anapest], 20)
	})

	t.Run("Undetermined has an empty score map", func(t *testing.T) {
		_, scores := Ss.ScoreMeterEN(St.StressPattern{})
		if scores == nil || len(scores) != 0 {
			t.Errorf("expected empty non-nil scores, got %v", scores)
		}
	})
}
