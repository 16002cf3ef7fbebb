package scansion

import (
	"log/slog"

	Sp "github.com/maroda/scansion/plugin"
	Ss "github.com/maroda/scansion/server"
)

func InitBadgerOutput(view *View, c *Ss.ConfigFile) error {
	output, err := Sp.NewBadgerOutput(c.BadgerPath, c.BatchSize)
	if err != nil {
		slog.Error("Failed to create adapter",
			slog.String("output", c.Output),
			slog.Any("error", err))
		return err
	}
	view.Output = output
	slog.Info("BadgerDB Adapter Enabled", slog.String("path", c.BadgerPath))
	return nil
}

// InitOutput wires the configured output adapter into the view.
// "none" leaves the view without one.
func InitOutput(view *View, c *Ss.ConfigFile) error {
	switch c.Output {
	case "badger":
		return InitBadgerOutput(view, c)
	case "midi":
		return InitMIDIOutput(view, c)
	default:
		return nil
	}
}
