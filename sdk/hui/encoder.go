package hui

import (
	"github.com/leandrodaf/midikit/sdk/event"
)

// Controller numbers and sysex commands of the HUI protocol. Everything
// travels on MIDI channel 0.
const (
	ccFaderMSB    = 0x00 // +strip
	ccJogWheel    = 0x0D
	ccZoneSelect  = 0x0F
	ccVPotDisplay = 0x10 // +v-pot
	ccFaderLSB    = 0x20 // +strip
	ccPort        = 0x2F
	ccVPotDelta   = 0x40 // +v-pot

	portOn   = 0x40
	negative = 0x40

	sysExSmallDisplay = 0x10
	sysExTimeDisplay  = 0x11
	sysExLargeDisplay = 0x12

	pingFromSurface = 0x7F
)

// Manufacturer is the sysex id HUI display messages are sent with.
var Manufacturer = func() event.ManufacturerID {
	id, err := event.NewExtendedManufacturerID(0x00, 0x66)
	if err != nil {
		panic(err)
	}
	return id
}()

// sysExPrefix follows the manufacturer id: product 0x05, model 0x00.
var sysExPrefix = []byte{0x05, 0x00}

// Encoder turns HUI events into MIDI events for one side of the link.
type Encoder struct {
	role Role
}

// NewEncoder creates an Encoder speaking as role.
func NewEncoder(role Role) *Encoder {
	return &Encoder{role: role}
}

// Role returns the side of the protocol the encoder speaks for.
func (enc *Encoder) Role() Role { return enc.role }

// Events returns the MIDI events that carry e, in transmission order.
// Values are masked to their wire width; build events with the New*
// constructors to have them range-checked.
func (enc *Encoder) Events(e Event) []event.Event {
	switch e := e.(type) {
	case Ping:
		vel := uint8(0)
		if enc.role == RoleSurface {
			vel = pingFromSurface
		}
		return []event.Event{event.NoteOn{Note: 0, Velocity: vel}}

	case SwitchEvent:
		port := e.Switch.port
		if e.On {
			port |= portOn
		}
		return []event.Event{cc(ccZoneSelect, e.Switch.zone), cc(ccPort, port)}

	case FaderLevel:
		s := e.Strip & 0x07
		return []event.Event{
			cc(ccFaderMSB+s, uint8(e.Level>>7)),
			cc(ccFaderLSB+s, uint8(e.Level)),
		}

	case LevelMeter:
		return []event.Event{event.PolyAftertouch{
			Note:     e.Strip & 0x07,
			Pressure: uint8(e.Side&0x01)<<4 | e.Level&0x0F,
		}}

	case VPotDelta:
		return []event.Event{cc(ccVPotDelta+uint8(e.VPot), signMagnitude(e.Delta))}

	case VPotDisplay:
		return []event.Event{cc(ccVPotDisplay+uint8(e.VPot), e.Value)}

	case JogWheel:
		return []event.Event{cc(ccJogWheel, signMagnitude(e.Delta))}

	case SystemReset:
		return []event.Event{event.SystemReset{}}

	case SmallDisplay:
		return []event.Event{sysEx(sysExSmallDisplay, e.Display, []byte(e.Text))}

	case TimeDisplay:
		return []event.Event{sysEx(sysExTimeDisplay, e.Offset, e.Digits)}

	case LargeDisplay:
		return []event.Event{sysEx(sysExLargeDisplay, e.Zone, []byte(e.Text))}
	}
	return nil
}

// Encode returns the wire bytes of e.
func (enc *Encoder) Encode(e Event) []byte {
	return event.EncodeAll(enc.Events(e)...)
}

func cc(controller, value uint8) event.ControlChange {
	return event.ControlChange{Controller: controller & 0x7F, Value: value & 0x7F}
}

func sysEx(cmd, index byte, body []byte) event.SysEx {
	data := make([]byte, 0, len(sysExPrefix)+2+len(body))
	data = append(data, sysExPrefix...)
	data = append(data, cmd, index&0x7F)
	for _, b := range body {
		data = append(data, b&0x7F)
	}
	return event.SysEx{Manufacturer: Manufacturer, Data: data}
}

// signMagnitude packs a delta into 7 bits: 0x40 marks a negative value and
// the low six bits hold the magnitude.
func signMagnitude(d int8) uint8 {
	if d < 0 {
		return negative | uint8(-int16(d))&deltaMax
	}
	return uint8(d) & deltaMax
}

func fromSignMagnitude(v uint8) int8 {
	mag := int8(v & deltaMax)
	if v&negative != 0 {
		return -mag
	}
	return mag
}
