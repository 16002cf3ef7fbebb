//go:build !nomidi

package scansion

import (
	Sp "github.com/maroda/scansion/plugin"
)

func (v *View) getMIDISystemInfo(systemInfo *SystemInfo) {
	// If the output type is MIDI, fill in the details
	if midiOut, ok := v.Output.(*Sp.MIDIOutput); ok {
		if midiOut.Port != nil {
			systemInfo.MIDIPort = midiOut.Port.String()
		}
		systemInfo.MIDIChannel = int(midiOut.Channel)
		systemInfo.MIDIRoot = int(midiOut.Root)
	}
}
