//go:build nomidi

package plugin

import (
	"fmt"
	"time"

	St "github.com/maroda/scansion/types"
)

type MIDIOutput struct{}

func NewMIDIOutput(port int, root uint8, beat time.Duration) (*MIDIOutput, error) {
	return nil, fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) WritePoem(poem *St.PoemAnalysis) error {
	return fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) WriteBatch(poems []*St.PoemAnalysis) error {
	return fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) QueryRange(start, end time.Time) ([]*St.PoemAnalysis, error) {
	return nil, fmt.Errorf("MIDI support not compiled in this build")
}

func (m *MIDIOutput) Flush() error { return nil }
func (m *MIDIOutput) Close() error { return nil }
func (m *MIDIOutput) Type() string { return "midi-disabled" }
