package contracts

import "github.com/leandrodaf/midikit/sdk/event"

// Packet is a chunk of raw MIDI bytes as delivered by a transport. A packet
// may hold several messages, a fragment of one, or interleaved real-time bytes.
type Packet struct {
	Timestamp uint64 // Timestamp is the arrival time in nanoseconds.
	Data      []byte // Data holds the raw wire bytes.
	Group     uint8  // Group is the logical stream (0-15) the transport routed the bytes on.
}

// TimedEvent is a decoded event paired with the timestamp of the packet it completed in.
type TimedEvent struct {
	Timestamp uint64
	Event     event.Event
}

// ClientMIDI defines an interface for MIDI transport operations.
type ClientMIDI interface {
	Stop() error                             // Stops the client and releases resources.
	ListDevices() ([]DeviceInfo, error)      // Lists all available MIDI input devices.
	SelectDevice(deviceID int) error         // Selects a MIDI input device by its ID.
	StartCapture(packetChannel chan Packet)  // Starts delivering raw packets to the specified channel.
	ListDestinations() ([]DeviceInfo, error) // Lists all available MIDI output devices.
	SelectDestination(deviceID int) error    // Selects a MIDI output device by its ID.
	Send(data []byte) error                  // Transmits encoded bytes to the selected destination.
}
