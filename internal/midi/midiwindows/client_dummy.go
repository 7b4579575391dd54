//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/midikit/sdk/contracts"
)

// ErrUnavailable is returned by every operation of the dummy client.
var ErrUnavailable = errors.New("winmm is not available on this platform")

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient initializes a dummy MIDI client for non-Windows systems.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-Windows system")
	return &dummyMIDIClient{
		logger: options.Logger,
	}, nil
}

// ListDevices logs a warning and returns ErrUnavailable.
func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, ErrUnavailable
}

// SelectDevice logs a warning and returns ErrUnavailable.
func (m *dummyMIDIClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy MIDI client")
	return ErrUnavailable
}

// ListDestinations logs a warning and returns ErrUnavailable.
func (m *dummyMIDIClient) ListDestinations() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDestinations called on dummy MIDI client")
	return nil, ErrUnavailable
}

// SelectDestination logs a warning and returns ErrUnavailable.
func (m *dummyMIDIClient) SelectDestination(deviceID int) error {
	m.logger.Warn("SelectDestination called on dummy MIDI client")
	return ErrUnavailable
}

// Send logs a warning and returns ErrUnavailable.
func (m *dummyMIDIClient) Send(data []byte) error {
	m.logger.Warn("Send called on dummy MIDI client")
	return ErrUnavailable
}

// StartCapture logs a warning indicating that StartCapture was called on the dummy MIDI client.
func (m *dummyMIDIClient) StartCapture(packetChannel chan contracts.Packet) {
	m.logger.Warn("StartCapture called on dummy MIDI client")
}

// Stop logs a warning indicating that Stop was called on the dummy MIDI client.
func (m *dummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI client")
	return nil
}
