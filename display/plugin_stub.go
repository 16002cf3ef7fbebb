//go:build nomidi

package scansion

import (
	"fmt"
	"log/slog"

	Ss "github.com/maroda/scansion/server"
)

func InitMIDIOutput(view *View, c *Ss.ConfigFile) error {
	slog.Warn("MIDI support not compiled in this build")
	return fmt.Errorf("MIDI support not available")
}

func (v *View) getMIDISystemInfo(systemInfo *SystemInfo) {}
