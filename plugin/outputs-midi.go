//go:build !nomidi

package plugin

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	St "github.com/maroda/scansion/types"
)

const (
	velocityAccent    = 110
	velocityNonAccent = 45
)

// meterShift transposes the root so each meter has its own key.
var meterShift = map[St.Meter]uint8{
	St.Iamb:         0,
	St.Trochee:      5,
	St.Dactyl:       7,
	St.Amphibrach:   3,
	St.Anapest:      10,
	St.Undetermined: 0,
}

// MIDIOutput plays a poem's stress profile: one note per syllable,
// loud on a stress and soft otherwise, in a key chosen by the line's meter.
type MIDIOutput struct {
	Port    drivers.Out
	Send    func(msg midi.Message) error
	Channel uint8
	Root    uint8
	Beat    time.Duration
	WG      sync.WaitGroup
}

func NewMIDIOutput(port int, root uint8, beat time.Duration) (*MIDIOutput, error) {
	out, err := midi.OutPort(port)
	if err != nil {
		slog.Error("Error opening MIDI port", slog.Int("port", port))
		return nil, fmt.Errorf("error opening MIDI port: %w", err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		slog.Error("Error sending to MIDI port", slog.Int("port", port))
		return nil, fmt.Errorf("error sending to MIDI port: %w", err)
	}

	return &MIDIOutput{
		Port: out,
		Send: send,
		Root: root,
		Beat: beat,
	}, nil
}

func (mo *MIDIOutput) SendNoteOnMIDI(midic, midin, midiv uint8) error {
	return mo.Send(midi.NoteOn(midic, midin, midiv))
}

func (mo *MIDIOutput) SendNoteOffMIDI(midic, midin uint8) error {
	return mo.Send(midi.NoteOff(midic, midin))
}

// LineNotes expands a line into (note, velocity) pairs, one per syllable.
func (mo *MIDIOutput) LineNotes(line St.LineAnalysis) [][2]uint8 {
	maxPos := -1
	stressed := make(map[int]bool, len(line.Pattern))
	for _, p := range line.Pattern {
		stressed[p] = true
		maxPos = max(maxPos, p)
	}

	note := min(int(mo.Root)+int(meterShift[line.Meter]), 127)
	notes := make([][2]uint8, 0, maxPos+1)
	for i := 0; i <= maxPos; i++ {
		v := uint8(velocityNonAccent)
		if stressed[i] {
			v = velocityAccent
		}
		notes = append(notes, [2]uint8{uint8(note), v})
	}
	return notes
}

// playPoem blocks for the length of the poem.
func (mo *MIDIOutput) playPoem(poem *St.PoemAnalysis) error {
	var errs []error
	for _, line := range poem.Lines {
		for _, nv := range mo.LineNotes(line) {
			if err := mo.SendNoteOnMIDI(mo.Channel, nv[0], nv[1]); err != nil {
				slog.Error("NoteOn event failed", slog.Any("error", err))
				errs = append(errs, err)
				continue
			}
			time.Sleep(mo.Beat)
			if err := mo.SendNoteOffMIDI(mo.Channel, nv[0]); err != nil {
				slog.Error("NoteOff event failed, attempting Flush")
				errs = append(errs, err)
				mo.Flush()
			}
		}
		// a rest between lines
		time.Sleep(mo.Beat)
	}
	return errors.Join(errs...)
}

// WritePoem plays in the background, Close waits for it.
func (mo *MIDIOutput) WritePoem(poem *St.PoemAnalysis) error {
	mo.WG.Add(1)
	go func() {
		defer mo.WG.Done()
		if err := mo.playPoem(poem); err != nil {
			slog.Error("MIDI playback incomplete", slog.String("id", poem.ID), slog.Any("error", err))
		}
	}()
	return nil
}

// WriteBatch plays poems one after another and returns when done.
func (mo *MIDIOutput) WriteBatch(poems []*St.PoemAnalysis) error {
	var errs []error
	for _, p := range poems {
		if err := mo.playPoem(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (mo *MIDIOutput) QueryRange(start, end time.Time) ([]*St.PoemAnalysis, error) {
	return nil, fmt.Errorf("MIDI output does not store analyses")
}

func (mo *MIDIOutput) Flush() error {
	return mo.Send(midi.ControlChange(mo.Channel, midi.AllNotesOff, midi.Off))
}

func (mo *MIDIOutput) Close() error {
	mo.WG.Wait()

	if mo.Port != nil {
		mo.Port.Close()
		midi.CloseDriver()
	}
	return nil
}

func (mo *MIDIOutput) Type() string { return "MIDI" }
