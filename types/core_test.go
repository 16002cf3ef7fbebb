package types_test

import (
	"encoding/json"
	"slices"
	"testing"

	St "github.com/maroda/scansion/types"
)

func TestMeter_Vocabulary(t *testing.T) {
	tests := []struct {
		meter    St.Meter
		key      string
		label    string
		template []int
	}{
		{St.Iamb, "iamb", "ямб", []int{0, 1}},
		{St.Trochee, "trochee", "хорей", []int{1, 0}},
		{St.Dactyl, "dactyl", "дактиль", []int{1, 0, 0}},
		{St.Amphibrach, "amphibrach", "амфибрахий", []int{0, 1, 0}},
		{St.Anapest, "anapest", "анапест", []int{0, 0, 1}},
		{St.Undetermined, "undetermined", "неопределенный размер", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := tt.meter.String(); got != tt.key {
				t.Errorf("got key %q, want %q", got, tt.key)
			}
			if got := tt.meter.Label(); got != tt.label {
				t.Errorf("got label %q, want %q", got, tt.label)
			}
			if got := tt.meter.Template(); !slices.Equal(got, tt.template) {
				t.Errorf("got template %v, want %v", got, tt.template)
			}
			if got := St.ParseMeter(tt.key); got != tt.meter {
				t.Errorf("ParseMeter(%q) = %v", tt.key, got)
			}
		})
	}

	if got := St.ParseMeter("spondee"); got != St.Undetermined {
		t.Errorf("unknown key should be undetermined, got %v", got)
	}
}

func TestMeter_Glyphs(t *testing.T) {
	seen := make(map[rune]bool)
	for _, m := range St.Meters {
		g := m.Glyph()
		if seen[g] {
			t.Errorf("glyph %q used twice", g)
		}
		seen[g] = true
	}
}

func TestLineAnalysis_JSON(t *testing.T) {
	la := St.LineAnalysis{
		Number:  1,
		Text:    "weary way",
		Pattern: St.StressPattern{0, 2},
		Meter:   St.Trochee,
		Label:   "хорей",
		Scores:  St.MeterScores{St.Trochee: 100},
		Rhythm:  St.RhythmInfo{Type: St.Disyllabic, Density: 2.0 / 3, Intervals: []int{2}},
	}

	b, err := json.Marshal(la)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["meter"] != "trochee" {
		t.Errorf("meter should be written by key, got %v", raw["meter"])
	}
	if scores, ok := raw["scores"].(map[string]any); !ok || scores["trochee"] != 100.0 {
		t.Errorf("scores should be keyed by meter, got %v", raw["scores"])
	}
	if rhythm, ok := raw["rhythm"].(map[string]any); !ok || rhythm["rhythm_type"] != "disyllabic" {
		t.Errorf("rhythm type should be written by key, got %v", raw["rhythm"])
	}

	var back St.LineAnalysis
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Meter != St.Trochee || back.Rhythm.Type != St.Disyllabic || back.Scores[St.Trochee] != 100 {
		t.Errorf("did not read back the same line, got %+v", back)
	}
}
