package scansion

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	So "github.com/maroda/scansion/obvy"
	Sp "github.com/maroda/scansion/plugin"
	Ss "github.com/maroda/scansion/server"
	St "github.com/maroda/scansion/types"
)

const (
	screenGutter = 3
	profileX     = 8
)

// View holds one analyzed poem and whatever presents it
type View struct {
	MU         sync.Mutex        // State locks to read data
	Lexicon    *Ss.Lexicon       // Read-only stress data
	Language   St.Language       // Default language for requests
	Poem       *St.PoemAnalysis  // Poem shown in the terminal
	Screen     tcell.Screen      // the screen itself
	Stats      *So.StatsInternal // Internal status for prometheus
	Output     Sp.OutputAdapter  // Where analyses go, may be nil
	server     *http.Server      // API and metrics server
	ShowRhythm bool              // Display rhythm details under each line
	Offset     int               // First poem line on screen
}

// ProfileRunes draws a pattern one syllable at a time
func ProfileRunes(p St.StressPattern) []rune {
	profile := Ss.NewProfile(p)
	runes := make([]rune, len(profile))
	for i, flag := range profile {
		if flag == 1 {
			runes[i] = St.AccentRune
		} else {
			runes[i] = St.NonAccentRune
		}
	}
	return runes
}

// MeterStyle gives each meter its color,
// stressed syllables are saturated and the rest dimmed
func MeterStyle(m St.Meter, isAccent bool) tcell.Style {
	var baseColor tcell.Color

	switch m {
	case St.Iamb:
		baseColor = tcell.ColorMaroon
	case St.Trochee:
		baseColor = tcell.ColorDarkOrange
	case St.Amphibrach:
		baseColor = tcell.ColorAquaMarine
	case St.Anapest:
		baseColor = tcell.ColorAzure
	case St.Dactyl:
		baseColor = tcell.ColorDodgerBlue
	default:
		baseColor = tcell.ColorGray
	}

	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(baseColor)
	if !isAccent {
		style = style.Dim(true)
	}
	return style
}

// DrawProfile puts the meter glyph and the stress profile of a line at (x, y)
// and returns the column after the profile
func (v *View) DrawProfile(x, y int, line St.LineAnalysis) int {
	v.Screen.SetContent(x, y, line.Meter.Glyph(), nil, MeterStyle(line.Meter, true))

	col := x + 2
	for _, r := range ProfileRunes(line.Pattern) {
		v.Screen.SetContent(col, y, r, nil, MeterStyle(line.Meter, r == St.AccentRune))
		col++
	}
	return col
}

// DrawText displays the text string at the given (x1, y1) with box size (x2, y2)
func (v *View) DrawText(x1, y1, x2, y2 int, text string) {
	row := y1
	col := x1
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLightSteelBlue)
	for _, r := range text {
		v.Screen.SetContent(col, row, r, nil, style)
		col++
		if col >= x2 {
			row++
			col = x1
		}
		if row > y2 {
			break
		}
	}
}

// DrawViewBorder displays the outline of the View
func (v *View) DrawViewBorder(width, height int) {
	hvStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	v.Screen.SetContent(0, 0, tcell.RuneULCorner, nil, hvStyle)
	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, 0, tcell.RuneHLine, nil, hvStyle)
	}
	v.Screen.SetContent(width, 0, tcell.RuneURCorner, nil, hvStyle)

	for i := 1; i < height; i++ {
		v.Screen.SetContent(0, i, tcell.RuneVLine, nil, hvStyle)
	}

	v.Screen.SetContent(0, height, tcell.RuneLLCorner, nil, hvStyle)

	for i := 1; i < height; i++ {
		v.Screen.SetContent(width, i, tcell.RuneVLine, nil, hvStyle)
	}

	v.Screen.SetContent(width, height, tcell.RuneLRCorner, nil, hvStyle)

	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, height, tcell.RuneHLine, nil, hvStyle)
	}
}

// rowsPerLine is 2 with the rhythm detail row
func rowsPerLine(showRhythm bool) int {
	if showRhythm {
		return 2
	}
	return 1
}

// DrawPoemView draws the whole poem screen
func (v *View) DrawPoemView() {
	width, height := v.GetScreenSize()

	v.MU.Lock()
	poem := v.Poem
	showRhythm := v.ShowRhythm
	offset := v.Offset
	v.MU.Unlock()

	v.DrawViewBorder(width-2, height-1)

	if poem == nil {
		v.DrawText(2, screenGutter, width-2, screenGutter, "nothing to scan")
		v.DrawText(1, height-1, width, height+10, "/ESC/ to quit")
		return
	}

	v.DrawText(1, 1, width-2, 1, fmt.Sprintf("SCANSION - %s - %d lines", poem.Language, poem.Analyzed))

	// Leave the bottom three rows to the footer
	step := rowsPerLine(showRhythm)
	y := screenGutter
	for i := offset; i < len(poem.Lines) && y+step <= height-3; i++ {
		line := poem.Lines[i]
		v.DrawText(2, y, 6, y, fmt.Sprintf("%3d", line.Number))
		col := v.DrawProfile(profileX-2, y, line)
		v.DrawText(col+2, y, width-2, y, line.Label)

		if showRhythm {
			v.drawRhythm(profileX, y+1, width, line.Rhythm)
		}
		y += step
	}

	footer := fmt.Sprintf("Dominant: %s (%d/%d lines)", poem.DominantLabel, poem.DominantCount, poem.Analyzed)
	if poem.Language == St.English {
		footer = fmt.Sprintf("Overall: %s | %s", poem.OverallLabel, footer)
	}
	v.DrawText(2, height-2, width-2, height-2, footer)

	v.DrawText(1, height-1, width, height+10, "/r/ rhythm | /↑↓/ scroll | /ESC/ to quit")
	v.DrawText(width-12, height-1, width, height+10, "SCANSION")
}

// drawRhythm shows the rhythm type, a density bar and the intervals
func (v *View) drawRhythm(x, y, width int, ri St.RhythmInfo) {
	v.DrawText(x, y, width-2, y, ri.Type.Label())

	barX := x + 16
	barW := int(ri.Density * 10)
	WriteBar(v.Screen, barX, y, barX+barW, y+1, tcell.StyleDefault.Background(tcell.ColorSeaGreen))

	intervals := make([]string, len(ri.Intervals))
	for i, iv := range ri.Intervals {
		intervals[i] = fmt.Sprint(iv)
	}
	v.DrawText(barX+12, y, width-2, y,
		fmt.Sprintf("%.2f [%s]", ri.Density, strings.Join(intervals, " ")))
}

// GetScreenSize provides the terminal size for drawing
func (v *View) GetScreenSize() (int, int) {
	width, height := v.Screen.Size()
	return width, height
}

// ResizeScreen redraws after terminal changes
func (v *View) ResizeScreen() {
	v.Screen.Sync()
	v.UpdateScreen()
}

func (v *View) UpdateScreen() {
	v.Screen.Clear()
	v.DrawPoemView()
	v.Screen.Show()
}

// ScrollBy moves the first visible line, clamped to the poem
func (v *View) ScrollBy(n int) {
	v.MU.Lock()
	defer v.MU.Unlock()

	if v.Poem == nil {
		return
	}
	v.Offset = min(max(v.Offset+n, 0), max(len(v.Poem.Lines)-1, 0))
}

// HandleEvent applies one terminal event, false means quit
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case nil:
		// screen was finalized
		return false
	case *tcell.EventResize:
		v.ResizeScreen()
	case *tcell.EventKey:
		// Catch quit and exit
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}

		switch ev.Key() {
		case tcell.KeyUp:
			v.ScrollBy(-1)
		case tcell.KeyDown:
			v.ScrollBy(1)
		case tcell.KeyRune:
			// Toggle rhythm details with 'r'
			if ev.Rune() == 'r' {
				v.MU.Lock()
				v.ShowRhythm = !v.ShowRhythm
				v.MU.Unlock()
			}
		}
		v.UpdateScreen()
	}
	return true
}

// Running Loop to handle events
func (v *View) handleKeyBoardEvent() {
	for v.HandleEvent(v.Screen.PollEvent()) {
	}
}

// NewView wraps an initialized screen
func NewView(screen tcell.Screen, poem *St.PoemAnalysis) (*View, error) {
	if screen == nil {
		slog.Error("Could not get a screen for display")
		return nil, errors.New("screen not found")
	}

	// Define and configure the default screen
	defStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	screen.SetStyle(defStyle)

	view := &View{
		Poem:   poem,
		Screen: screen,
		Stats:  So.NewStatsInternal(),
	}
	if poem != nil {
		view.Language = poem.Language
	}

	view.UpdateScreen()

	return view, nil
}

// StartView is called by main to show a scanned poem in the terminal.
// It returns when the reader quits.
func StartView(poem *St.PoemAnalysis) error {
	screen, err := GetTTY()
	if err != nil {
		slog.Error("Could not start terminal view", slog.Any("Error", err))
		return err
	}

	// Restore the terminal even on panic
	defer func() {
		maybePanic := recover()
		screen.Fini()
		if maybePanic != nil {
			panic(maybePanic)
		}
	}()

	view, err := NewView(screen, poem)
	if err != nil {
		return err
	}

	view.handleKeyBoardEvent()
	return nil
}
