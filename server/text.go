package scansion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	vowelsRU = "аеёиоуыэюя"
	vowelsEN = "aeiouy"
)

// Short English words the vowel-group count gets wrong.
var syllableExceptionsEN = map[string]int{
	"e": 1, "a": 1, "i": 1, "o": 1, "u": 1, "y": 1,
	"the": 1, "was": 1, "were": 1, "an": 1, "for": 1, "to": 1, "in": 1, "on": 1,
	"and": 1, "but": 1, "or": 1, "from": 1, "of": 1,
}

// CleanText flattens line breaks and collapses repeated spaces.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	for strings.Contains(text, "  ") {
		text = strings.ReplaceAll(text, "  ", " ")
	}
	return text
}

// SplitIntoLines breaks prose-like text on sentence punctuation.
func SplitIntoLines(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var lines []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// SplitVerses breaks text on line endings, dropping blank lines.
func SplitVerses(text string) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(CleanText(l)) == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(l, "\r"))
	}
	return lines
}

// CleanWord lower-cases a word and drops everything but letters, digits, '_' and spaces.
// Text is composed to NFC first so letters like "й" survive as one rune.
func CleanWord(word string) string {
	if word == "" {
		return ""
	}
	word = strings.ToLower(norm.NFC.String(word))

	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CountSyllablesRU counts vowels, every Russian word has at least one syllable.
func CountSyllablesRU(word string) int {
	count := 0
	for _, r := range strings.ToLower(word) {
		if strings.ContainsRune(vowelsRU, r) {
			count++
		}
	}
	return max(1, count)
}

// CountSyllablesEN approximates English syllables by vowel groups.
func CountSyllablesEN(word string) int {
	word = CleanWord(word)
	if word == "" {
		return 0
	}
	if n, ok := syllableExceptionsEN[word]; ok {
		return n
	}

	// silent final e
	if strings.HasSuffix(word, "e") && utf8.RuneCountInString(word) > 2 {
		word = strings.TrimSuffix(word, "e")
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowelsEN, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	return max(1, count)
}
