package scansion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	St "github.com/maroda/scansion/types"
)

// StressMark is placed immediately before a stressed vowel by an Accentizer.
const StressMark = '+'

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Accentizer is a stress model for Russian.
// It returns the line with StressMark in front of every stressed vowel.
type Accentizer interface {
	Accentize(ctx context.Context, line string) (string, error)
}

// Lexicon carries the read-only data extraction depends on:
// the English stress dictionary and the Russian stress model.
// It is built once at startup and shared without locking.
type Lexicon struct {
	English StressDict
	Russian Accentizer
}

// StressPattern extracts stress positions from a line of the given language.
// A failing stress model is logged and gives an empty pattern,
// the classifiers answer that with their undetermined sentinel.
func (lx *Lexicon) StressPattern(ctx context.Context, lang St.Language, line string) (St.StressPattern, error) {
	switch lang {
	case St.English:
		return StressPatternEN(line, lx.English), nil
	case St.Russian:
		if lx.Russian == nil {
			slog.Warn("No Russian stress model configured")
			return St.StressPattern{}, nil
		}
		accented, err := lx.Russian.Accentize(ctx, strings.ToLower(CleanText(line)))
		if err != nil {
			slog.Error("Stress model failed", slog.String("line", line), slog.Any("Error", err))
			return St.StressPattern{}, nil
		}
		return PatternFromAccented(line, accented), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
}

// WordStressEN looks a cleaned word up in the dictionary, falling back to a guess.
// The second value is the syllable count used to advance through the line.
func WordStressEN(word string, dict StressDict) ([]int, int) {
	if pos, ok := dict.Positions(word); ok {
		// Known words advance by the dictionary's syllable count, not the
		// heuristic one, so "fire" counts 2 syllables here where vowel groups give 1.
		if n := dict.Syllables(word); n > 0 {
			return pos, n
		}
	}

	syllables := CountSyllablesEN(word)
	switch {
	case syllables <= 2:
		return []int{0}, syllables
	case utf8.RuneCountInString(word) < 7:
		return []int{0}, syllables
	default:
		return []int{1}, syllables
	}
}

// StressPatternEN walks the words of an English line and offsets each
// word's stresses by the syllables before it.
func StressPatternEN(line string, dict StressDict) St.StressPattern {
	pattern := St.StressPattern{}
	if strings.TrimSpace(line) == "" {
		return pattern
	}

	offset := 0
	for _, w := range strings.Fields(strings.ToLower(CleanText(line))) {
		word := CleanWord(w)
		if word == "" {
			continue
		}
		positions, syllables := WordStressEN(word, dict)
		for _, p := range positions {
			pattern = append(pattern, offset+p)
		}
		offset += syllables
	}
	return pattern
}

// PatternFromAccented maps the stress marks of an accented line back onto
// syllable positions of the original line. If the two disagree on word count
// the marks cannot be aligned and the pattern is empty.
func PatternFromAccented(line, accented string) St.StressPattern {
	pattern := St.StressPattern{}

	words := strings.Fields(strings.ToLower(CleanText(line)))
	marked := strings.Fields(accented)
	if len(words) == 0 || len(words) != len(marked) {
		slog.Debug("Accented line does not align",
			slog.Int("words", len(words)),
			slog.Int("accented", len(marked)))
		return pattern
	}

	offset := 0
	for i, word := range words {
		if idx, ok := markedVowelIndex(marked[i]); ok {
			pattern = append(pattern, offset+idx)
		}
		offset += CountSyllablesRU(word)
	}
	return pattern
}

// markedVowelIndex counts the vowels before the first StressMark.
func markedVowelIndex(word string) (int, bool) {
	mark := strings.IndexRune(word, StressMark)
	if mark < 0 {
		return 0, false
	}
	count := 0
	for _, r := range strings.ToLower(word[:mark]) {
		if strings.ContainsRune(vowelsRU, r) {
			count++
		}
	}
	return count, true
}

// DictAccentizer marks Russian stress from a StressDict.
// Unknown words stay unmarked and contribute no stress.
type DictAccentizer struct {
	Dict StressDict
}

func NewDictAccentizer(d StressDict) *DictAccentizer {
	return &DictAccentizer{Dict: d}
}

func (da *DictAccentizer) Accentize(ctx context.Context, line string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	words := strings.Fields(line)
	for i, w := range words {
		pos, ok := da.Dict.Positions(CleanWord(w))
		if !ok || len(pos) == 0 {
			continue
		}
		words[i] = markVowel(w, pos[0])
	}
	return strings.Join(words, " "), nil
}

// markVowel inserts StressMark before the n-th vowel of the word.
func markVowel(word string, n int) string {
	seen := 0
	for i, r := range word {
		if !strings.ContainsRune(vowelsRU, r) {
			continue
		}
		if seen == n {
			return word[:i] + string(StressMark) + word[i:]
		}
		seen++
	}
	return word
}
