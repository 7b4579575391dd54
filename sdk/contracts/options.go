package contracts

import (
	"github.com/leandrodaf/midikit/sdk/event"
	"github.com/leandrodaf/midikit/sdk/hui"
)

// Driver selects the transport backend.
type Driver int

const (
	// DriverAuto picks the native backend for the current OS, falling back to rtmidi.
	DriverAuto Driver = iota
	// DriverNative forces CoreMIDI on macOS or winmm on Windows.
	DriverNative
	// DriverRtMidi forces the cross-platform rtmidi backend.
	DriverRtMidi
)

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// HUIConfig enables the HUI control-surface layer of a session.
type HUIConfig struct {
	Role hui.Role // Which end of the HUI link this process plays.
}

// ClientOptions defines the configuration options for the MIDI client and session.
type ClientOptions struct {
	Logger          Logger          // Logger for logging events and errors.
	LogLevel        LogLevel        // Level of logging to use.
	LogFilePath     string          // File path for logging if file logging is enabled.
	EventFilter     *event.Filter   // Optional filter for decoded events.
	CoreMIDIConfig  *CoreMIDIConfig // Configuration specific to CoreMIDI.
	Driver          Driver          // Transport backend.
	SysExReassembly bool            // Continue unterminated SysEx across packets.
	PacketBuffer    int             // Capacity of the transport packet channel.
	HUI             *HUIConfig      // Optional HUI decoding and shadow model.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithEventFilter sets the filter applied to decoded events before delivery.
func WithEventFilter(filter event.Filter) Option {
	return func(opts *ClientOptions) {
		opts.EventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithDriver selects the transport backend.
func WithDriver(d Driver) Option {
	return func(opts *ClientOptions) {
		opts.Driver = d
	}
}

// WithSysExReassembly keeps an unterminated SysEx open across packet
// boundaries instead of flushing it at the end of each packet. Only enable
// it when the transport guarantees contiguous delivery.
func WithSysExReassembly(enabled bool) Option {
	return func(opts *ClientOptions) {
		opts.SysExReassembly = enabled
	}
}

// WithPacketBuffer sets the capacity of the transport packet channel.
func WithPacketBuffer(size int) Option {
	return func(opts *ClientOptions) {
		opts.PacketBuffer = size
	}
}

// WithHUI enables HUI decoding and the shadow model for the given role.
func WithHUI(role hui.Role) Option {
	return func(opts *ClientOptions) {
		opts.HUI = &HUIConfig{Role: role}
	}
}
