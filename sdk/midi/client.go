// Package midi opens MIDI transports and runs sessions that turn their raw
// packets into events, HUI messages and a control-surface model.
package midi

import (
	"github.com/leandrodaf/midikit/internal/midi/midirtmidi"
	"github.com/leandrodaf/midikit/sdk/contracts"
)

// NewMIDIClient creates a transport with the specified options. Most callers
// want NewSession, which also parses what the transport captures.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(&options)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// CloseDrivers releases process-wide driver state. Call it once before exit,
// after every client has been stopped.
func CloseDrivers() {
	midirtmidi.CloseDriver()
}
