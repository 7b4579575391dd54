package hui

import (
	"github.com/leandrodaf/midikit/sdk/event"
)

// Handler receives decoded HUI events.
type Handler interface {
	HandleHUIEvent(Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(Event)

// HandleHUIEvent calls f(e).
func (f HandlerFunc) HandleHUIEvent(e Event) { f(e) }

const none = -1

// Decoder recognizes HUI messages in a stream of MIDI events. Switches and
// faders span two control changes, so the decoder remembers the last zone
// select and the pending fader MSB of each strip. Events that are not HUI
// are ignored.
//
// A Decoder is an event.Sink and is not safe for concurrent use.
type Decoder struct {
	handler  Handler
	zone     int
	faderMSB [StripCount]int
}

// NewDecoder creates a Decoder that calls h for every completed event.
func NewDecoder(h Handler) *Decoder {
	d := &Decoder{handler: h}
	d.Reset()
	return d
}

// Reset forgets partially received switches and faders.
func (d *Decoder) Reset() {
	d.zone = none
	for i := range d.faderMSB {
		d.faderMSB[i] = none
	}
}

// Push feeds events in order.
func (d *Decoder) Push(events ...event.Event) {
	for _, e := range events {
		d.HandleEvent(e)
	}
}

// HandleEvent feeds one event.
func (d *Decoder) HandleEvent(e event.Event) {
	switch e := e.(type) {
	case event.NoteOn:
		if e.Channel == 0 && e.Note == 0 {
			d.emit(Ping{})
		}

	case event.ControlChange:
		if e.Channel == 0 {
			d.controlChange(e.Controller, e.Value)
		}

	case event.PitchBend:
		if e.Channel < StripCount {
			d.emit(FaderLevel{Strip: e.Channel, Level: e.Value})
		}

	case event.PolyAftertouch:
		if e.Channel == 0 && e.Note < StripCount {
			d.emit(meter(e.Note, e.Pressure))
		}

	case event.ChannelAftertouch:
		if e.Channel < StripCount {
			d.emit(meter(e.Channel, e.Pressure))
		}

	case event.SystemReset:
		d.Reset()
		d.emit(SystemReset{})

	case event.SysEx:
		d.sysEx(e)
	}
}

func meter(strip, value uint8) LevelMeter {
	return LevelMeter{Strip: strip, Side: Side(value>>4) & 0x01, Level: value & 0x0F}
}

func (d *Decoder) controlChange(controller, value uint8) {
	switch {
	case controller == ccZoneSelect:
		d.zone = int(value)

	case controller == ccPort:
		if d.zone == none {
			return
		}
		if s, ok := LookupSwitch(uint8(d.zone), value&0x0F); ok {
			d.emit(SwitchEvent{Switch: s, On: value&portOn != 0})
		}

	case controller == ccJogWheel:
		d.emit(JogWheel{Delta: fromSignMagnitude(value)})

	case controller < ccFaderMSB+StripCount:
		d.faderMSB[controller-ccFaderMSB] = int(value)

	case controller >= ccFaderLSB && controller < ccFaderLSB+StripCount:
		s := controller - ccFaderLSB
		if d.faderMSB[s] == none {
			return
		}
		level := uint16(d.faderMSB[s])<<7 | uint16(value)
		d.faderMSB[s] = none
		d.emit(FaderLevel{Strip: s, Level: level})

	case controller >= ccVPotDisplay && controller < ccVPotDisplay+uint8(vPotCount):
		d.emit(VPotDisplay{VPot: VPot(controller - ccVPotDisplay), Value: value})

	case controller >= ccVPotDelta && controller < ccVPotDelta+uint8(vPotCount):
		d.emit(VPotDelta{VPot: VPot(controller - ccVPotDelta), Delta: fromSignMagnitude(value)})
	}
}

func (d *Decoder) sysEx(e event.SysEx) {
	if e.Manufacturer != Manufacturer || len(e.Data) < len(sysExPrefix)+2 {
		return
	}
	if e.Data[0] != sysExPrefix[0] || e.Data[1] != sysExPrefix[1] {
		return
	}
	cmd, index, body := e.Data[2], e.Data[3], e.Data[4:]

	switch cmd {
	case sysExSmallDisplay:
		if index <= SelectAssignDisplay && len(body) == smallDisplayLen {
			d.emit(SmallDisplay{Display: index, Text: string(body)})
		}
	case sysExLargeDisplay:
		if index < largeZones && len(body) == largeDisplayLen {
			d.emit(LargeDisplay{Zone: index, Text: string(body)})
		}
	case sysExTimeDisplay:
		if len(body) > 0 && int(index)+len(body) <= timeDigits {
			d.emit(TimeDisplay{Offset: index, Digits: append([]uint8(nil), body...)})
		}
	}
}

func (d *Decoder) emit(e Event) {
	if d.handler != nil {
		d.handler.HandleHUIEvent(e)
	}
}
