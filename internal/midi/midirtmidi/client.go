// Package midirtmidi is the cross-platform transport built on gomidi and
// the rtmidi driver. It is used on Linux and wherever the native backend is
// unavailable.
package midirtmidi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/midikit/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // registers the rtmidi driver
)

var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrNoDestination     = errors.New("no MIDI destination selected")
)

// Ports is the part of drivers.Driver the client needs.
type Ports interface {
	Ins() ([]drivers.In, error)
	Outs() ([]drivers.Out, error)
}

type driverPorts struct{}

func (driverPorts) Ins() ([]drivers.In, error)   { return drivers.Ins() }
func (driverPorts) Outs() ([]drivers.Out, error) { return drivers.Outs() }

// Client is a contracts.ClientMIDI on top of a gomidi driver.
type Client struct {
	logger contracts.Logger
	ports  Ports

	mu            sync.Mutex
	in            drivers.In
	out           drivers.Out
	stopListen    func()
	packetChannel chan contracts.Packet
	stopped       bool
}

// NewMIDIClient creates a client backed by the registered rtmidi driver.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if drivers.Get() == nil {
		return nil, errors.New("rtmidi driver not registered")
	}
	options.Logger.Info("MIDI client created on rtmidi")
	return NewWithPorts(options.Logger, driverPorts{}), nil
}

// NewWithPorts creates a client over an explicit port source.
func NewWithPorts(logger contracts.Logger, ports Ports) *Client {
	return &Client{logger: logger, ports: ports}
}

func info[P drivers.Port](ports []P) []contracts.DeviceInfo {
	devices := make([]contracts.DeviceInfo, len(ports))
	for i, p := range ports {
		devices[i] = contracts.DeviceInfo{
			ID:         i,
			Name:       p.String(),
			EntityName: p.String(),
		}
	}
	return devices
}

// ListDevices lists the input ports.
func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	ins, err := c.ports.Ins()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		c.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	return info(ins), nil
}

// ListDestinations lists the output ports.
func (c *Client) ListDestinations() ([]contracts.DeviceInfo, error) {
	outs, err := c.ports.Outs()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI outputs: %w", err)
	}
	if len(outs) == 0 {
		c.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	return info(outs), nil
}

// SelectDevice opens input port deviceID. If capture is already running it
// moves to the new port.
func (c *Client) SelectDevice(deviceID int) error {
	ins, err := c.ports.Ins()
	if err != nil {
		return fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(ins) {
		c.logger.Error(ErrInvalidMIDIDevice.Error(), c.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeInLocked()
	in := ins[deviceID]
	if err := in.Open(); err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	c.in = in
	c.logger.Info("MIDI device selected",
		c.logger.Field().Int("deviceID", deviceID),
		c.logger.Field().String("deviceName", in.String()))

	if c.packetChannel != nil {
		return c.listenLocked()
	}
	return nil
}

// SelectDestination opens output port deviceID for Send.
func (c *Client) SelectDestination(deviceID int) error {
	outs, err := c.ports.Outs()
	if err != nil {
		return fmt.Errorf("error listing MIDI outputs: %w", err)
	}
	if deviceID < 0 || deviceID >= len(outs) {
		c.logger.Error(ErrInvalidMIDIDevice.Error(), c.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.out != nil {
		_ = c.out.Close()
	}
	out := outs[deviceID]
	if err := out.Open(); err != nil {
		c.out = nil
		return fmt.Errorf("open %s: %w", out, err)
	}
	c.out = out
	c.logger.Info("MIDI destination selected",
		c.logger.Field().Int("deviceID", deviceID),
		c.logger.Field().String("deviceName", out.String()))
	return nil
}

// Send writes data to the selected output.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	out := c.out
	c.mu.Unlock()

	if out == nil {
		return ErrNoDestination
	}
	if err := out.Send(data); err != nil {
		c.logger.Error("Failed to send MIDI data", c.logger.Field().Bytes("data", data), c.logger.Field().Error("error", err))
		return err
	}
	return nil
}

// StartCapture starts listening on the selected input.
func (c *Client) StartCapture(packetChannel chan contracts.Packet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if packetChannel == nil {
		c.logger.Error("StartCapture called with nil packetChannel")
		return
	}
	c.packetChannel = packetChannel
	if c.in == nil {
		c.logger.Warn("No MIDI device selected; capture starts on SelectDevice")
		return
	}
	if err := c.listenLocked(); err != nil {
		c.logger.Error("Failed to start MIDI capture", c.logger.Field().Error("error", err))
	}
}

func (c *Client) listenLocked() error {
	if c.stopListen != nil {
		c.stopListen()
		c.stopListen = nil
	}
	ch := c.packetChannel
	stop, err := midi.ListenTo(c.in, func(msg midi.Message, _ int32) {
		pkt := contracts.Packet{
			Timestamp: uint64(time.Now().UTC().UnixNano()),
			Data:      append([]byte(nil), msg.Bytes()...),
		}
		select {
		case ch <- pkt:
		default:
			c.logger.Warn("Packet buffer full; dropping MIDI packet", c.logger.Field().Bytes("data", pkt.Data))
		}
	}, midi.UseSysEx(), midi.HandleError(func(err error) {
		c.logger.Error("MIDI listener error", c.logger.Field().Error("error", err))
	}))
	if err != nil {
		return err
	}
	c.stopListen = stop
	c.logger.Info("Starting MIDI capture", c.logger.Field().String("deviceName", c.in.String()))
	return nil
}

func (c *Client) closeInLocked() {
	if c.stopListen != nil {
		c.stopListen()
		c.stopListen = nil
	}
	if c.in != nil {
		_ = c.in.Close()
		c.in = nil
	}
}

// Stop closes both ports. It is safe to call more than once.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return nil
	}
	c.stopped = true
	c.closeInLocked()
	var err error
	if c.out != nil {
		err = c.out.Close()
		c.out = nil
	}
	c.packetChannel = nil
	c.logger.Info("MIDI capture stopped")
	return err
}

// CloseDriver releases the rtmidi driver. Call it once at process exit.
func CloseDriver() {
	midi.CloseDriver()
}
