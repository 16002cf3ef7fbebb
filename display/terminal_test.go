package scansion_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	Sd "github.com/maroda/scansion/display"
	St "github.com/maroda/scansion/types"
)

func TestScreen(t *testing.T) {
	s := mkTestScreen(t, "")
	defer s.Fini()
	s.Clear()

	t.Run("Check test screen", func(t *testing.T) {
		b, x, y := s.GetContents()
		if len(b) != x*y || x != 80 || y != 25 {
			t.Fatalf("Contents (%v, %v, %v) wrong", len(b), x, y)
		}
		for i := 0; i < x*y; i++ {
			if len(b[i].Runes) == 1 && b[i].Runes[0] != ' ' {
				t.Errorf("Incorrect contents at %v: %v", i, b[i].Runes)
			}
			if b[i].Style != tcell.StyleDefault {
				t.Errorf("Incorrect style at %v: %v", i, b[i].Style)
			}
		}
	})
}

func TestProfileRunes(t *testing.T) {
	t.Run("Expands a pattern into accent and non-accent glyphs", func(t *testing.T) {
		got := string(Sd.ProfileRunes(St.StressPattern{1, 3}))
		want := "⚋⚊⚋⚊"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("Empty pattern draws nothing", func(t *testing.T) {
		assertInt(t, len(Sd.ProfileRunes(nil)), 0)
	})
}

func TestMeterStyle(t *testing.T) {
	t.Run("Meters have distinct colors", func(t *testing.T) {
		iamb := Sd.MeterStyle(St.Iamb, true)
		dactyl := Sd.MeterStyle(St.Dactyl, true)
		if iamb == dactyl {
			t.Errorf("iamb and dactyl share a style")
		}
	})

	t.Run("Non-accents are dimmed", func(t *testing.T) {
		_, _, attrs := Sd.MeterStyle(St.Trochee, false).Decompose()
		if attrs&tcell.AttrDim == 0 {
			t.Errorf("expected dim attribute on a non-accent")
		}
	})
}

func TestNewView(t *testing.T) {
	t.Run("Errors without a screen", func(t *testing.T) {
		_, err := Sd.NewView(nil, nil)
		assertGotError(t, err)
	})

	s := mkTestScreen(t, "UTF-8")
	defer s.Fini()

	poem := makeTestPoem(t)
	view, err := Sd.NewView(s, poem)
	assertError(t, err, nil)

	t.Run("Draws the first line's profile", func(t *testing.T) {
		// glyph at x=6, profile from x=8 on the first poem row
		r := screenRune(s, 6, 3)
		if r != St.Iamb.Glyph() {
			t.Errorf("got glyph %q, want %q", r, St.Iamb.Glyph())
		}
		if screenRune(s, 8, 3) != St.NonAccentRune || screenRune(s, 9, 3) != St.AccentRune {
			t.Errorf("profile not drawn where expected")
		}
	})

	t.Run("Draws the dominant meter footer", func(t *testing.T) {
		_, height := view.GetScreenSize()
		assertStringContains(t, screenRow(s, height-2), "Dominant: ямб (2/2 lines)")
	})

	t.Run("r toggles rhythm details", func(t *testing.T) {
		quit := view.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
		if !quit {
			t.Fatalf("r should not quit")
		}
		if !view.ShowRhythm {
			t.Errorf("expected rhythm details on")
		}
		assertStringContains(t, screenRow(s, 4), "двусложный")
	})

	t.Run("Down scrolls and stops at the last line", func(t *testing.T) {
		for range 5 {
			view.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
		}
		assertInt(t, view.Offset, 1)

		view.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
		assertInt(t, view.Offset, 0)
	})

	t.Run("ESC quits", func(t *testing.T) {
		quit := view.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
		if quit {
			t.Errorf("ESC should quit")
		}
	})
}

func TestNewView_NoPoem(t *testing.T) {
	s := mkTestScreen(t, "UTF-8")
	defer s.Fini()

	_, err := Sd.NewView(s, nil)
	assertError(t, err, nil)
	assertStringContains(t, screenRow(s, 3), "nothing to scan")
}

func mkTestScreen(t *testing.T, charset string) tcell.SimulationScreen {
	s := tcell.NewSimulationScreen(charset)
	if s == nil {
		t.Fatalf("Failed to get SimulationScreen")
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	return s
}

func screenRune(s tcell.SimulationScreen, x, y int) rune {
	cells, width, _ := s.GetContents()
	cell := cells[y*width+x]
	if len(cell.Runes) == 0 {
		return ' '
	}
	return cell.Runes[0]
}

func screenRow(s tcell.SimulationScreen, y int) string {
	_, width, _ := s.GetContents()
	row := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		row = append(row, screenRune(s, x, y))
	}
	return string(row)
}
