package scansion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	St "github.com/maroda/scansion/types"
)

// maxConcurrentLines limits stress extraction in flight for one poem,
// a remote stress model is the slow part.
const maxConcurrentLines = 8

// AnalyzeLine runs extraction, classification and rhythm for one line.
func (lx *Lexicon) AnalyzeLine(ctx context.Context, lang St.Language, number int, text string) (St.LineAnalysis, error) {
	pattern, err := lx.StressPattern(ctx, lang, text)
	if err != nil {
		return St.LineAnalysis{}, err
	}
	return ScanLine(lang, number, text, pattern), nil
}

// ScanLine classifies a ready pattern, no extraction involved.
func ScanLine(lang St.Language, number int, text string, pattern St.StressPattern) St.LineAnalysis {
	la := St.LineAnalysis{
		Number:  number,
		Text:    text,
		Pattern: pattern,
		Rhythm:  AnalyzeRhythm(pattern),
	}

	switch lang {
	case St.English:
		la.Meter, la.Scores = ScoreMeterEN(pattern)
		la.Label, _ = IdentifyMeterEN(pattern)
	default:
		la.Meter, la.Scores = ScoreMeterRU(pattern)
		la.Label = la.Meter.Label()
	}
	return la
}

// AnalyzePoem scans every non-blank line. Lines are extracted concurrently
// and reported in their original order, numbered from 1.
func (lx *Lexicon) AnalyzePoem(ctx context.Context, lang St.Language, lines []string) (*St.PoemAnalysis, error) {
	if lang != St.English && lang != St.Russian {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	var texts []string
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			texts = append(texts, l)
		}
	}

	results := make([]St.LineAnalysis, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLines)
	for i, text := range texts {
		g.Go(func() error {
			la, err := lx.AnalyzeLine(gctx, lang, i+1, text)
			if err != nil {
				return err
			}
			results[i] = la
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("Poem analysis failed", slog.Any("Error", err))
		return nil, err
	}

	pa := &St.PoemAnalysis{
		ID:       uuid.NewString(),
		Created:  time.Now(),
		Language: lang,
		Lines:    results,
		Overall:  St.Undetermined,
		Analyzed: len(results),
	}

	if lang == St.English {
		whole := ConcatPatterns(results)
		pa.Overall, pa.OverallScores = ScoreMeterEN(whole)
		pa.OverallLabel, _ = IdentifyMeterEN(whole)
	}

	pa.Dominant, pa.DominantCount = DominantMeter(results)
	pa.DominantLabel = pa.Dominant.Label()
	if lang == St.English && pa.Dominant == St.Undetermined {
		pa.DominantLabel = UndefinedMeterEN
	}

	slog.Debug("Poem analyzed",
		slog.String("id", pa.ID),
		slog.String("language", string(lang)),
		slog.Int("lines", pa.Analyzed),
		slog.String("dominant", pa.Dominant.String()))

	return pa, nil
}

// ConcatPatterns appends every line's positions as they are.
// Positions restart at zero on each line, so residues across line seams
// are not renormalized.
func ConcatPatterns(lines []St.LineAnalysis) St.StressPattern {
	var all St.StressPattern
	for _, la := range lines {
		all = append(all, la.Pattern...)
	}
	return all
}

// DominantMeter is the most frequent determined line meter and its count.
// Ties go to the meter that was seen first. No determined line gives Undetermined, 0.
func DominantMeter(lines []St.LineAnalysis) (St.Meter, int) {
	counts := make(map[St.Meter]int)
	var order []St.Meter
	for _, la := range lines {
		if la.Meter == St.Undetermined {
			continue
		}
		if counts[la.Meter] == 0 {
			order = append(order, la.Meter)
		}
		counts[la.Meter]++
	}

	best, n := St.Undetermined, 0
	for _, m := range order {
		if counts[m] > n {
			best, n = m, counts[m]
		}
	}
	return best, n
}
