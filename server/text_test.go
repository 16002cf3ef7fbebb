package scansion_test

import (
	"slices"
	"testing"

	Ss "github.com/maroda/scansion/server"
)

func TestCleanText(t *testing.T) {
	got := Ss.CleanText("a\n b\r\nc   d")
	assertString(t, got, "a b c d")
}

func TestSplitIntoLines(t *testing.T) {
	got := Ss.SplitIntoLines("One line. Another!  A third?  ")
	want := []string{"One line", "Another", "A third"}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := Ss.SplitIntoLines(" ... "); len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
}

func TestSplitVerses(t *testing.T) {
	got := Ss.SplitVerses("\nfirst line\r\n\n   \nsecond line\n")
	want := []string{"first line", "second line"}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanWord(t *testing.T) {
	tests := []struct {
		name string
		word string
		want string
	}{
		{name: "Punctuation is dropped", word: "Day,", want: "day"},
		{name: "Apostrophes are dropped", word: "Don't", want: "dont"},
		{name: "Cyrillic is lowered", word: "Ёлка!", want: "ёлка"},
		{name: "Decomposed letters are composed", word: "мои\u0306", want: "мой"},
		{name: "Underscores and digits stay", word: "a_1", want: "a_1"},
		{name: "Empty", word: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertString(t, Ss.CleanWord(tt.word), tt.want)
		})
	}
}

func TestCountSyllablesRU(t *testing.T) {
	assertInt(t, Ss.CountSyllablesRU("дядя"), 2)
	assertInt(t, Ss.CountSyllablesRU("Ёлка"), 2)
	assertInt(t, Ss.CountSyllablesRU("честных"), 2)
	// no vowels is still one syllable
	assertInt(t, Ss.CountSyllablesRU("в"), 1)
}

func TestCountSyllablesEN(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{word: "the", want: 1},
		{word: "curfew", want: 2},
		{word: "parting", want: 2},
		{word: "weary", want: 2},
		{word: "make", want: 1},
		{word: "beautiful", want: 3},
		{word: "rhythm", want: 1},
		{word: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assertInt(t, Ss.CountSyllablesEN(tt.word), tt.want)
		})
	}
}
