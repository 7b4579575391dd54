package event

// Status bytes with fixed meaning.
const (
	StatusSysExStart byte = 0xF0
	StatusSysExEnd   byte = 0xF7
)

// IsRealTime reports whether b lies in the system real-time range 0xF8-0xFF.
func IsRealTime(b byte) bool { return b >= 0xF8 }

// IsChannelVoice reports whether b is a channel-voice status byte.
func IsChannelVoice(b byte) bool { return b >= 0x80 && b < 0xF0 }

// DataLength returns the number of data bytes that follow status. It
// returns false for data bytes, 0xF0 (variable length) and the undefined
// or meaningless codes 0xF4, 0xF5, 0xF7, 0xF9 and 0xFD.
func DataLength(status byte) (int, bool) {
	if status < 0x80 {
		return 0, false
	}
	if IsChannelVoice(status) {
		switch status & 0xF0 {
		case 0xC0, 0xD0:
			return 1, true
		}
		return 2, true
	}
	switch status {
	case 0xF1, 0xF3:
		return 1, true
	case 0xF2:
		return 2, true
	case 0xF6, 0xF8, 0xFA, 0xFB, 0xFC, 0xFE, 0xFF:
		return 0, true
	}
	return 0, false
}

// DecodeStatusMessage decodes one fixed-length message from its status byte
// and data bytes. Extra data bytes are ignored. It returns false for
// undefined status bytes, for 0xF0/0xF7 and when too few data bytes are
// supplied; those are not errors.
func DecodeStatusMessage(status byte, data []byte, group uint8) (Event, bool) {
	n, ok := DataLength(status)
	if !ok || len(data) < n {
		return nil, false
	}
	group &= 0x0F
	if IsRealTime(status) {
		return NewRealTime(status, group)
	}

	d := func(i int) uint8 { return data[i] & 0x7F }
	if IsChannelVoice(status) {
		ch := status & 0x0F
		switch status & 0xF0 {
		case 0x80:
			return NoteOff{Note: d(0), Velocity: d(1), Channel: ch, Group: group}, true
		case 0x90:
			return NoteOn{Note: d(0), Velocity: d(1), Channel: ch, Group: group}, true
		case 0xA0:
			return PolyAftertouch{Note: d(0), Pressure: d(1), Channel: ch, Group: group}, true
		case 0xB0:
			return ControlChange{Controller: d(0), Value: d(1), Channel: ch, Group: group}, true
		case 0xC0:
			return ProgramChange{Program: d(0), Channel: ch, Group: group}, true
		case 0xD0:
			return ChannelAftertouch{Pressure: d(0), Channel: ch, Group: group}, true
		case 0xE0:
			return PitchBend{Value: join14(d(0), d(1)), Channel: ch, Group: group}, true
		}
	}

	switch status {
	case 0xF1:
		return TimecodeQuarterFrame{Data: d(0), Group: group}, true
	case 0xF2:
		return SongPositionPointer{Beat: join14(d(0), d(1)), Group: group}, true
	case 0xF3:
		return SongSelect{Number: d(0), Group: group}, true
	case 0xF6:
		return TuneRequest{Group: group}, true
	}
	return nil, false
}

// Encode returns the canonical wire bytes for e. Values outside their
// declared bit width are masked; call Validate first to reject them.
func Encode(e Event) []byte {
	switch e := e.(type) {
	case NoteOff:
		return []byte{0x80 | e.Channel&0x0F, e.Note & 0x7F, e.Velocity & 0x7F}
	case NoteOn:
		return []byte{0x90 | e.Channel&0x0F, e.Note & 0x7F, e.Velocity & 0x7F}
	case PolyAftertouch:
		return []byte{0xA0 | e.Channel&0x0F, e.Note & 0x7F, e.Pressure & 0x7F}
	case ControlChange:
		return []byte{0xB0 | e.Channel&0x0F, e.Controller & 0x7F, e.Value & 0x7F}
	case ProgramChange:
		return []byte{0xC0 | e.Channel&0x0F, e.Program & 0x7F}
	case ChannelAftertouch:
		return []byte{0xD0 | e.Channel&0x0F, e.Pressure & 0x7F}
	case PitchBend:
		lsb, msb := split14(e.Value)
		return []byte{0xE0 | e.Channel&0x0F, lsb, msb}
	case TimecodeQuarterFrame:
		return []byte{0xF1, e.Data & 0x7F}
	case SongPositionPointer:
		lsb, msb := split14(e.Beat)
		return []byte{0xF2, lsb, msb}
	case SongSelect:
		return []byte{0xF3, e.Number & 0x7F}
	case TuneRequest:
		return []byte{0xF6}
	case SysEx:
		mfr := e.Manufacturer.Bytes()
		buf := make([]byte, 0, len(mfr)+len(e.Data)+2)
		buf = append(buf, StatusSysExStart)
		buf = append(buf, mfr...)
		for _, b := range e.Data {
			buf = append(buf, b&0x7F)
		}
		return append(buf, StatusSysExEnd)
	case TimingClock:
		return []byte{0xF8}
	case Start:
		return []byte{0xFA}
	case Continue:
		return []byte{0xFB}
	case Stop:
		return []byte{0xFC}
	case ActiveSensing:
		return []byte{0xFE}
	case SystemReset:
		return []byte{0xFF}
	}
	return nil
}

// Validate checks the fields of an event built without its constructor,
// returning the error the constructor would have returned.
func Validate(e Event) error {
	var err error
	switch e := e.(type) {
	case NoteOff:
		_, err = NewNoteOff(e.Note, e.Velocity, e.Channel, e.Group)
	case NoteOn:
		_, err = NewNoteOn(e.Note, e.Velocity, e.Channel, e.Group)
	case PolyAftertouch:
		_, err = NewPolyAftertouch(e.Note, e.Pressure, e.Channel, e.Group)
	case ControlChange:
		_, err = NewControlChange(e.Controller, e.Value, e.Channel, e.Group)
	case ProgramChange:
		_, err = NewProgramChange(e.Program, e.Channel, e.Group)
	case ChannelAftertouch:
		_, err = NewChannelAftertouch(e.Pressure, e.Channel, e.Group)
	case PitchBend:
		_, err = NewPitchBend(e.Value, e.Channel, e.Group)
	case TimecodeQuarterFrame:
		_, err = NewTimecodeQuarterFrame(e.Data, e.Group)
	case SongPositionPointer:
		_, err = NewSongPositionPointer(e.Beat, e.Group)
	case SongSelect:
		_, err = NewSongSelect(e.Number, e.Group)
	case SysEx:
		_, err = NewSysEx(e.Manufacturer, e.Data, e.Group)
	default:
		err = checkGroup(GroupOf(e))
	}
	return err
}

// ValidateAll returns the first error Validate reports for events.
func ValidateAll(events ...Event) error {
	for _, e := range events {
		if err := Validate(e); err != nil {
			return err
		}
	}
	return nil
}

// EncodeAll concatenates the encodings of events into a single buffer,
// suitable for one transport packet.
func EncodeAll(events ...Event) []byte {
	var buf []byte
	for _, e := range events {
		buf = append(buf, Encode(e)...)
	}
	return buf
}

// join14 assembles a 14-bit value from its LSB-first 7-bit halves.
func join14(lsb, msb uint8) uint16 {
	return uint16(lsb&0x7F) | uint16(msb&0x7F)<<7
}

func split14(v uint16) (lsb, msb uint8) {
	return uint8(v & 0x7F), uint8((v >> 7) & 0x7F)
}
