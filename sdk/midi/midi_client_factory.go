package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/midikit/internal/midi/mididarwin"
	"github.com/leandrodaf/midikit/internal/midi/midirtmidi"
	"github.com/leandrodaf/midikit/internal/midi/midiwindows"
	"github.com/leandrodaf/midikit/sdk/contracts"
)

// ErrUnsupportedOS is returned when no native backend exists for the operating system.
var ErrUnsupportedOS = errors.New("unsupported operating system")

type clientInitializer func(*contracts.ClientOptions) (contracts.ClientMIDI, error)

// nativeInitializers maps OS names to the native MIDI client initializers.
var nativeInitializers = map[string]clientInitializer{
	"darwin":  mididarwin.NewMIDIClient,  // CoreMIDI
	"windows": midiwindows.NewMIDIClient, // winmm
}

var rtmidiInitializer clientInitializer = midirtmidi.NewMIDIClient

// NewClient initializes a transport for the configured driver. DriverAuto
// uses the native backend when the OS has one and rtmidi otherwise.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return newClient(opts, runtime.GOOS)
}

func newClient(opts *contracts.ClientOptions, goos string) (contracts.ClientMIDI, error) {
	native, hasNative := nativeInitializers[goos]
	switch opts.Driver {
	case contracts.DriverNative:
		if !hasNative {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
		}
		return native(opts)
	case contracts.DriverRtMidi:
		return rtmidiInitializer(opts)
	}
	if hasNative {
		return native(opts)
	}
	opts.Logger.Debug("No native MIDI backend; using rtmidi", opts.Logger.Field().String("os", goos))
	return rtmidiInitializer(opts)
}
