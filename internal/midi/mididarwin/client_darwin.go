//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midikit/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
	ErrCreateOutputPort    = errors.New("error creating output port")
	ErrNoDestination       = errors.New("no MIDI destination selected")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid manages MIDI operations on Darwin (macOS) systems.
// Incoming CoreMIDI packets are forwarded untouched; parsing happens in the
// session so that running status survives packet boundaries.
type ClientMid struct {
	logger         contracts.Logger
	packetChannel  atomic.Value              // chan contracts.Packet, swapped atomically by StartCapture and Stop.
	client         coremidi.Client           // CoreMIDI client instance for MIDI operations.
	inputPort      coremidi.InputPort        // Input port for receiving MIDI packets.
	portConn       internalPortConnection    // Connection to the MIDI port.
	outputPort     *coremidi.OutputPort      // Output port, created on first SelectDestination.
	destination    *coremidi.Destination     // Selected destination for Send.
	coreMIDIConfig *contracts.CoreMIDIConfig // Configuration for MIDI client.
	mu             sync.Mutex                // Mutex for thread safety on shared resources.
	capturing      bool                      // Indicates if capturing is currently active.
	wg             sync.WaitGroup            // WaitGroup for in-flight read callbacks.
	stopOnce       sync.Once                 // Ensures Stop() is executed only once.
}

// NewMIDIClient initializes a new ClientMid for handling MIDI on macOS.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created",
		options.Logger.Field().String("clientName", options.CoreMIDIConfig.ClientName))

	return &ClientMid{
		logger:         options.Logger,
		client:         client,
		coreMIDIConfig: options.CoreMIDIConfig,
	}, nil
}

// ListDevices retrieves and returns available MIDI sources.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// ListDestinations retrieves and returns available MIDI destinations.
func (m *ClientMid) ListDestinations() ([]contracts.DeviceInfo, error) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	if len(destinations) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(destinations))
	for i, dest := range destinations {
		entity := dest.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         dest.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI source by ID and connects to it.
// If a source is already connected, it disconnects first.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handlePacket)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return nil
}

// SelectDestination selects the MIDI destination used by Send.
func (m *ClientMid) SelectDestination(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI destinations: %w", err)
	}
	if deviceID < 0 || deviceID >= len(destinations) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.outputPort == nil {
		port, err := coremidi.NewOutputPort(m.client, "Output Port")
		if err != nil {
			m.logger.Error(ErrCreateOutputPort.Error())
			return fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
		}
		m.outputPort = &port
	}

	dest := destinations[deviceID]
	m.destination = &dest
	m.logger.Info("MIDI destination selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", dest.Name()))
	return nil
}

// Send transmits data as a single CoreMIDI packet.
func (m *ClientMid) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.destination == nil || m.outputPort == nil {
		return ErrNoDestination
	}
	packet := coremidi.NewPacket(data, 0)
	if err := packet.Send(m.outputPort, m.destination); err != nil {
		m.logger.Error("Failed to send MIDI packet", m.logger.Field().Error("error", err))
		return fmt.Errorf("send to %s: %w", m.destination.Name(), err)
	}
	m.logger.Debug("MIDI packet sent", m.logger.Field().Bytes("data", data))
	return nil
}

// handlePacket forwards a CoreMIDI packet to the capture channel. CoreMIDI
// reuses its buffers, so the bytes are copied.
func (m *ClientMid) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	packetChannel, _ := m.packetChannel.Load().(chan contracts.Packet)
	if packetChannel == nil {
		m.logger.Warn("packetChannel not initialized or of invalid type")
		return
	}
	if len(packet.Data) == 0 {
		return
	}

	pkt := contracts.Packet{
		Timestamp: uint64(time.Now().UTC().UnixNano()),
		Data:      append([]byte(nil), packet.Data...),
	}
	select {
	case packetChannel <- pkt:
	default:
		m.logger.Warn("Packet buffer full; dropping MIDI packet",
			m.logger.Field().String("source", source.Name()),
			m.logger.Field().Bytes("data", pkt.Data))
	}
}

// StartCapture begins forwarding packets by storing the channel and marking
// capturing as active.
func (m *ClientMid) StartCapture(packetChannel chan contracts.Packet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if packetChannel == nil {
		m.logger.Error("StartCapture called with nil packetChannel")
		return
	}

	if m.capturing {
		m.logger.Warn("Capture already started; replacing packet channel")
	}

	m.logger.Info("Starting MIDI capture")
	m.packetChannel.Store(packetChannel)
	m.capturing = true
}

// Stop halts capturing, disconnects from the device, and waits for in-flight
// callbacks to complete. It only executes once.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.portConn != nil {
			m.portConn.Disconnect()
			m.portConn = nil
		}
		m.destination = nil

		if m.capturing {
			m.capturing = false

			// A nil channel of the right type makes late callbacks return early.
			m.packetChannel.Store((chan contracts.Packet)(nil))

			m.wg.Wait()
			m.logger.Info("MIDI capture stopped")
		}
	})
	return nil
}
