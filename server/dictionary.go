package scansion

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// errSkipLine signals that a CMU line carries no entry (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// StressDict maps a normalized word to one stress flag per syllable,
// 1 for primary stress and 0 otherwise. It is read-only once loaded.
type StressDict map[string][]int

// Positions returns the within-word indices of stressed syllables.
// The second value reports whether the word is known at all.
func (d StressDict) Positions(word string) ([]int, bool) {
	flags, ok := d[word]
	if !ok {
		return nil, false
	}
	var pos []int
	for i, f := range flags {
		if f == 1 {
			pos = append(pos, i)
		}
	}
	return pos, true
}

// Syllables is the dictionary syllable count, zero when the word is unknown.
func (d StressDict) Syllables(word string) int {
	return len(d[word])
}

// CMUStats holds parser statistics for logging.
type CMUStats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

// LoadStressDict reads the JSON form of the dictionary: {"word": [0,1,0], ...}
func LoadStressDict(path string) (StressDict, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer file.Close()

	if err := validateLoad(file); err != nil {
		return nil, err
	}

	dict := make(StressDict)
	if err := json.NewDecoder(file).Decode(&dict); err != nil {
		slog.Error("could not decode dictionary", slog.String("path", path), slog.Any("Error", err))
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}

	slog.Info("Stress dictionary loaded", slog.String("path", path), slog.Int("words", len(dict)))
	return dict, nil
}

// LoadCMUDict reads a raw CMU Pronouncing Dictionary file.
func LoadCMUDict(path string) (StressDict, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cmudict: %w", err)
	}
	defer file.Close()

	dict, stats, err := ParseCMU(file)
	if err != nil {
		return nil, err
	}

	slog.Info("CMU dictionary loaded",
		slog.String("path", path),
		slog.Int("lines", stats.TotalLines),
		slog.Int("parsed", stats.ParsedLines),
		slog.Int("words", stats.UniqueWords))
	return dict, nil
}

// ParseCMU builds a StressDict from CMUdict lines.
// Only the first pronunciation of a word is kept, secondary stress counts as unstressed.
func ParseCMU(r io.Reader) (StressDict, CMUStats, error) {
	dict := make(StressDict)
	var stats CMUStats

	// CMUdict is shipped in ISO-8859-1
	scanner := bufio.NewScanner(charmap.ISO8859_1.NewDecoder().Reader(r))
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		word, flags, err := parseCMULine(line)
		if errors.Is(err, errSkipLine) {
			if strings.HasPrefix(line, ";;;") {
				stats.CommentLines++
			}
			continue
		}

		stats.ParsedLines++
		if _, seen := dict[word]; !seen {
			dict[word] = flags
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, CMUStats{}, fmt.Errorf("scanner error: %w", err)
	}

	stats.UniqueWords = len(dict)
	return dict, stats, nil
}

// parseCMULine reads "WORD(2)  PH0 PH1 ..." into a lower-case word and its stress flags.
func parseCMULine(line string) (string, []int, error) {
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";;;") {
		return "", nil, errSkipLine
	}

	parts := strings.Fields(line)
	if len(parts) < 2 {
		return "", nil, errSkipLine
	}

	word := parts[0]
	if idx := strings.IndexByte(word, '('); idx > 0 && strings.HasSuffix(word, ")") {
		word = word[:idx]
	}
	word = strings.ToLower(word)

	flags := make([]int, 0, len(parts)-1)
	for _, ph := range parts[1:] {
		if stress, ok := phonemeStress(ph); ok {
			if stress == 1 {
				flags = append(flags, 1)
			} else {
				flags = append(flags, 0)
			}
		}
	}

	return word, flags, nil
}

// phonemeStress returns the stress digit of a vowel phoneme like "AH0".
// Consonants carry no digit.
func phonemeStress(ph string) (int, bool) {
	for _, r := range ph {
		if r >= '0' && r <= '2' {
			return int(r - '0'), true
		}
	}
	return 0, false
}
