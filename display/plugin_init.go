//go:build !nomidi

package scansion

import (
	"log/slog"

	Sp "github.com/maroda/scansion/plugin"
	Ss "github.com/maroda/scansion/server"
)

func InitMIDIOutput(view *View, c *Ss.ConfigFile) error {
	slog.Info("Configuration found:",
		slog.Int("Port", c.MIDIPort),
		slog.Int("Root", c.MIDIRoot),
		slog.Duration("Beat", c.MIDIBeat),
	)

	output, err := Sp.NewMIDIOutput(c.MIDIPort, uint8(c.MIDIRoot), c.MIDIBeat)
	if err != nil {
		slog.Error("Failed to create adapter",
			slog.String("output", c.Output),
			slog.Any("error", err))
		return err
	}
	view.Output = output
	slog.Info("MIDI Adapter Enabled", slog.String("output", c.Output))
	return nil
}
