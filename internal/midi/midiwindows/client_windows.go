//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/leandrodaf/midikit/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type (
	HMIDIIN  windows.Handle
	HMIDIOUT windows.Handle
)

// Constants for callback flags
const (
	CALLBACK_NULL     = 0x00000000 // No callback
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_LONGDATA  = 0x3C4 // System exclusive buffer filled
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

const sysExBufferSize = 4096

var (
	ErrNoMIDIDevices    = errors.New("no MIDI devices found")
	ErrNoDestination    = errors.New("no MIDI destination selected")
	ErrInvalidHandle    = errors.New("invalid MIDI device handle")
	ErrMMSystem         = errors.New("winmm call failed")
	errSysExBufferInUse = errors.New("sysex buffer still queued")
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// midiHdr mirrors MIDIHDR.
type midiHdr struct {
	lpData          uintptr
	dwBufferLength  uint32
	dwBytesRecorded uint32
	dwUser          uintptr
	dwFlags         uint32
	lpNext          uintptr
	reserved        uintptr
	dwOffset        uint32
	dwReserved      [8]uintptr
}

// ClientMid manages MIDI on Windows
type ClientMid struct {
	logger        contracts.Logger
	packetChannel atomic.Value
	handle        HMIDIIN
	portConn      bool
	capturing     bool
	mu            sync.Mutex
	callback      uintptr

	// System exclusive input: winmm fills the buffer behind sysexHdr, the
	// callback signals requeueLoop, which gives it back to the driver.
	sysex    sysExSlot
	sysexHdr *midiHdr

	outMu     sync.Mutex
	outHandle HMIDIOUT
}

// Load the winmm.dll library and required functions
var (
	winmm                    = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs     = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps     = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen           = winmm.NewProc("midiInOpen")
	procMidiInStart          = winmm.NewProc("midiInStart")
	procMidiInStop           = winmm.NewProc("midiInStop")
	procMidiInReset          = winmm.NewProc("midiInReset")
	procMidiInClose          = winmm.NewProc("midiInClose")
	procMidiInPrepareHeader  = winmm.NewProc("midiInPrepareHeader")
	procMidiInUnprepareHdr   = winmm.NewProc("midiInUnprepareHeader")
	procMidiInAddBuffer      = winmm.NewProc("midiInAddBuffer")
	procMidiOutGetNumDevs    = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps    = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen          = winmm.NewProc("midiOutOpen")
	procMidiOutClose         = winmm.NewProc("midiOutClose")
	procMidiOutShortMsg      = winmm.NewProc("midiOutShortMsg")
	procMidiOutLongMsg       = winmm.NewProc("midiOutLongMsg")
	procMidiOutPrepareHeader = winmm.NewProc("midiOutPrepareHeader")
	procMidiOutUnprepareHdr  = winmm.NewProc("midiOutUnprepareHeader")
)

// inCallback is shared by every client; winmm passes the client back as the
// instance pointer.
var inCallback = windows.NewCallback(midiInCallback)

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows")

	return &ClientMid{
		logger: options.Logger,
	}, nil
}

func mmErr(op string, r uintptr) error {
	return fmt.Errorf("%w: %s returned %d", ErrMMSystem, op, r)
}

// ListDevices lists the available MIDI input devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get information for MIDI device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			ID:           int(i),
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// ListDestinations lists the available MIDI output devices
func (m *ClientMid) ListDestinations() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get information for MIDI output", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			ID:           int(i),
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// SelectDevice opens a MIDI input device and queues the sysex buffer.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.portConn {
		if err := m.stopCapture(); err != nil {
			return fmt.Errorf("failed to stop previous MIDI capture: %w", err)
		}
	}

	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS
	r1, _, _ := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		inCallback,
		uintptr(unsafe.Pointer(m)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		err := mmErr("midiInOpen", r1)
		m.logger.Error("Failed to open MIDI device", m.logger.Field().Int("deviceID", deviceID), m.logger.Field().Error("error", err))
		return err
	}

	if err := m.prepareSysEx(); err != nil {
		m.logger.Warn("SysEx input unavailable", m.logger.Field().Error("error", err))
	}

	m.portConn = true
	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

func (m *ClientMid) prepareSysEx() error {
	in := newSysExInput(sysExBufferSize)
	m.sysexHdr = &midiHdr{
		lpData:         uintptr(unsafe.Pointer(&in.buf[0])),
		dwBufferLength: sysExBufferSize,
	}
	size := unsafe.Sizeof(*m.sysexHdr)
	if r, _, _ := procMidiInPrepareHeader.Call(uintptr(m.handle), uintptr(unsafe.Pointer(m.sysexHdr)), size); r != 0 {
		m.sysexHdr = nil
		return mmErr("midiInPrepareHeader", r)
	}
	m.sysex.open(in)
	if r, _, _ := procMidiInAddBuffer.Call(uintptr(m.handle), uintptr(unsafe.Pointer(m.sysexHdr)), size); r != 0 {
		m.sysex.close()
		return mmErr("midiInAddBuffer", r)
	}

	go m.requeueLoop(m.handle, m.sysexHdr, in.requeue, in.done)
	return nil
}

// requeueLoop returns the sysex buffer to the driver after each MIM_LONGDATA;
// winmm forbids doing that from inside the callback.
func (m *ClientMid) requeueLoop(handle HMIDIIN, hdr *midiHdr, requeue, done chan struct{}) {
	size := unsafe.Sizeof(*hdr)
	for {
		select {
		case <-done:
			return
		case <-requeue:
			if r, _, _ := procMidiInAddBuffer.Call(uintptr(handle), uintptr(unsafe.Pointer(hdr)), size); r != 0 {
				m.logger.Error("Failed to requeue SysEx buffer", m.logger.Field().Error("error", mmErr("midiInAddBuffer", r)))
			}
		}
	}
}

// StartCapture initializes MIDI capture
func (m *ClientMid) StartCapture(packetChannel chan contracts.Packet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		m.logger.Error("Cannot start capture: No MIDI device selected")
		return
	}
	if packetChannel == nil {
		m.logger.Error("StartCapture called with nil packetChannel")
		return
	}
	if m.capturing {
		m.logger.Warn("Capture already started")
		return
	}
	if m.handle == 0 {
		m.logger.Error(ErrInvalidHandle.Error())
		return
	}

	m.packetChannel.Store(packetChannel)

	r1, _, _ := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", mmErr("midiInStart", r1)))
		return
	}

	m.capturing = true
	m.logger.Info("MIDI capture started")
}

func (m *ClientMid) deliver(data []byte) {
	ch, ok := m.packetChannel.Load().(chan contracts.Packet)
	if !ok || ch == nil {
		return
	}
	pkt := contracts.Packet{Timestamp: uint64(time.Now().UTC().UnixNano()), Data: data}
	select {
	case ch <- pkt:
	default:
		m.logger.Warn("MIDI packet channel is full; packet discarded", m.logger.Field().Bytes("data", data))
	}
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		m.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Info("MIDI device closed")
	case MIM_DATA:
		if msg := unpackShort(uint32(dwParam1)); msg != nil {
			m.deliver(msg)
		}
	case MIM_LONGDATA:
		hdr := (*midiHdr)(unsafe.Pointer(dwParam1))
		if data := m.sysex.receive(int(hdr.dwBytesRecorded)); data != nil {
			m.deliver(data)
		}
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI error", m.logger.Field().Uint64("msg", uint64(wMsg)))
	case MIM_MOREDATA:
		m.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		m.logger.Warn("Unknown MIDI message", m.logger.Field().Uint64("msg", uint64(wMsg)))
	}

	return 0
}

// SelectDestination opens a MIDI output device for Send.
func (m *ClientMid) SelectDestination(deviceID int) error {
	m.outMu.Lock()
	defer m.outMu.Unlock()

	if m.outHandle != 0 {
		procMidiOutClose.Call(uintptr(m.outHandle))
		m.outHandle = 0
	}

	r1, _, _ := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&m.outHandle)),
		uintptr(deviceID),
		0,
		0,
		CALLBACK_NULL,
	)
	if r1 != 0 {
		err := mmErr("midiOutOpen", r1)
		m.logger.Error("Failed to open MIDI output", m.logger.Field().Int("deviceID", deviceID), m.logger.Field().Error("error", err))
		return err
	}
	m.logger.Info("MIDI output connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

// Send splits data into single messages and transmits them in order.
func (m *ClientMid) Send(data []byte) error {
	m.outMu.Lock()
	defer m.outMu.Unlock()

	if m.outHandle == 0 {
		return ErrNoDestination
	}
	for _, msg := range splitMessages(data) {
		var err error
		if msg[0] == 0xF0 {
			err = m.sendLong(msg)
		} else if r, _, _ := procMidiOutShortMsg.Call(uintptr(m.outHandle), uintptr(packShort(msg))); r != 0 {
			err = mmErr("midiOutShortMsg", r)
		}
		if err != nil {
			m.logger.Error("Failed to send MIDI message", m.logger.Field().Bytes("data", msg), m.logger.Field().Error("error", err))
			return err
		}
	}
	return nil
}

// sendLong transmits a system exclusive message. midiOutLongMsg is
// asynchronous, so unprepare is retried until the driver releases the buffer.
func (m *ClientMid) sendLong(msg []byte) error {
	hdr := &midiHdr{
		lpData:         uintptr(unsafe.Pointer(&msg[0])),
		dwBufferLength: uint32(len(msg)),
	}
	size := unsafe.Sizeof(*hdr)
	h := uintptr(m.outHandle)
	p := uintptr(unsafe.Pointer(hdr))

	if r, _, _ := procMidiOutPrepareHeader.Call(h, p, size); r != 0 {
		return mmErr("midiOutPrepareHeader", r)
	}
	if r, _, _ := procMidiOutLongMsg.Call(h, p, size); r != 0 {
		procMidiOutUnprepareHdr.Call(h, p, size)
		return mmErr("midiOutLongMsg", r)
	}

	const stillPlaying = 65 // MIDIERR_STILLPLAYING
	for i := 0; i < 500; i++ {
		r, _, _ := procMidiOutUnprepareHdr.Call(h, p, size)
		if r == 0 {
			return nil
		}
		if r != stillPlaying {
			return mmErr("midiOutUnprepareHeader", r)
		}
		time.Sleep(time.Millisecond)
	}
	return errSysExBufferInUse
}

// Stop terminates MIDI capture and closes both devices
func (m *ClientMid) Stop() error {
	m.outMu.Lock()
	if m.outHandle != 0 {
		procMidiOutClose.Call(uintptr(m.outHandle))
		m.outHandle = 0
	}
	m.outMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		m.logger.Warn("No MIDI device is connected")
		return nil
	}

	if err := m.stopCapture(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// stopCapture stops the capture and releases resources
func (m *ClientMid) stopCapture() error {
	if m.handle == 0 {
		return ErrInvalidHandle
	}

	if r1, _, _ := procMidiInStop.Call(uintptr(m.handle)); r1 != 0 {
		return mmErr("midiInStop", r1)
	}
	// Detach first so the callback made by midiInReset finds no input.
	in := m.sysex.close()
	// Reset returns the queued sysex buffer so it can be unprepared.
	procMidiInReset.Call(uintptr(m.handle))

	if m.sysexHdr != nil {
		procMidiInUnprepareHdr.Call(uintptr(m.handle), uintptr(unsafe.Pointer(m.sysexHdr)), unsafe.Sizeof(*m.sysexHdr))
		m.sysexHdr = nil
	}
	// The driver held the buffer only through a uintptr.
	runtime.KeepAlive(in)

	if r1, _, _ := procMidiInClose.Call(uintptr(m.handle)); r1 != 0 {
		return mmErr("midiInClose", r1)
	}

	m.portConn = false
	m.capturing = false
	m.handle = 0
	m.packetChannel.Store((chan contracts.Packet)(nil))
	return nil
}
