package scansion

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	Ss "github.com/maroda/scansion/server"
	St "github.com/maroda/scansion/types"
)

var (
	reportTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d29922"))
	reportLine  = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff"))
	reportMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	reportBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(0, 1)
)

// RenderReport is the text form of an analysis for the console
func RenderReport(poem *St.PoemAnalysis) string {
	if poem == nil || len(poem.Lines) == 0 {
		return reportMuted.Render("Не удалось проанализировать ни одной строки.")
	}

	var b strings.Builder

	for _, la := range poem.Lines {
		fmt.Fprintf(&b, "%s\n", reportLine.Render(fmt.Sprintf("Строка %d: %q", la.Number, la.Text)))
		fmt.Fprintf(&b, "  - Ударения (позиции слогов): %s\n", formatInts(la.Pattern))
		fmt.Fprintf(&b, "  - Метр: %s\n", la.Label)
		fmt.Fprintf(&b, "  - Тип ритма: %s\n", la.Rhythm.Type.Label())
		fmt.Fprintf(&b, "  - Плотность ударений: %.2f\n", Ss.FloatPrecise(la.Rhythm.Density, 2))
		fmt.Fprintf(&b, "  - Интервалы между ударениями: %s\n", formatInts(la.Rhythm.Intervals))
		if poem.Language == St.English && len(la.Scores) > 0 {
			b.WriteString(renderScores("  Оценки для размеров:", la.Scores))
		}
	}

	var summary strings.Builder
	if poem.Language == St.English {
		fmt.Fprintf(&summary, "Общий размер стихотворения: %s\n", poem.OverallLabel)
		if len(poem.OverallScores) > 0 {
			summary.WriteString(renderScores("Оценки для каждого размера:", poem.OverallScores))
		}
	}
	if poem.DominantCount > 0 {
		fmt.Fprintf(&summary, "Наиболее вероятный размер: %s (%d/%d строк)",
			poem.DominantLabel, poem.DominantCount, poem.Analyzed)
	} else {
		summary.WriteString("Доминирующий размер не определен")
	}

	return reportTitle.Render("Результаты анализа метрики стихотворения:") + "\n\n" +
		b.String() + "\n" +
		reportBox.Render(strings.TrimRight(summary.String(), "\n"))
}

// renderScores lists scores in template order, rounded half away from zero
func renderScores(title string, scores St.MeterScores) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	for _, m := range St.Meters {
		if s, ok := scores[m]; ok {
			fmt.Fprintf(&b, "  - %s: %.1f%%\n", m, Ss.FloatPrecise(s, 1))
		}
	}
	return b.String()
}

func formatInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
