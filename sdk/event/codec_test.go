package event

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func mustMfr(t *testing.T, b byte) ManufacturerID {
	t.Helper()
	id, err := NewManufacturerID(b)
	if err != nil {
		t.Fatalf("NewManufacturerID(0x%02X): %v", b, err)
	}
	return id
}

func TestEncode(t *testing.T) {
	ext, err := NewExtendedManufacturerID(0x20, 0x29)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		event Event
		want  []byte
	}{
		{"note off", NoteOff{Note: 60, Velocity: 64, Channel: 0}, []byte{0x80, 0x3C, 0x40}},
		{"note on", NoteOn{Note: 60, Velocity: 64, Channel: 1}, []byte{0x91, 0x3C, 0x40}},
		{"poly aftertouch", PolyAftertouch{Note: 60, Pressure: 64, Channel: 4}, []byte{0xA4, 0x3C, 0x40}},
		{"cc", ControlChange{Controller: 1, Value: 127, Channel: 1}, []byte{0xB1, 0x01, 0x7F}},
		{"program change", ProgramChange{Program: 32, Channel: 10}, []byte{0xCA, 0x20}},
		{"channel aftertouch", ChannelAftertouch{Pressure: 64, Channel: 8}, []byte{0xD8, 0x40}},
		{"pitch bend center", PitchBend{Value: PitchBendCenter, Channel: 3}, []byte{0xE3, 0x00, 0x40}},
		{"pitch bend max", PitchBend{Value: 0x3FFF, Channel: 0}, []byte{0xE0, 0x7F, 0x7F}},
		{"quarter frame", TimecodeQuarterFrame{Data: 0x00}, []byte{0xF1, 0x00}},
		{"song position", SongPositionPointer{Beat: 8}, []byte{0xF2, 0x08, 0x00}},
		{"song position 14 bit", SongPositionPointer{Beat: 0x81}, []byte{0xF2, 0x01, 0x01}},
		{"song select", SongSelect{Number: 8}, []byte{0xF3, 0x08}},
		{"tune request", TuneRequest{}, []byte{0xF6}},
		{"sysex", SysEx{Manufacturer: mustMfr(t, 0x7D), Data: []byte{0x01}}, []byte{0xF0, 0x7D, 0x01, 0xF7}},
		{"sysex extended", SysEx{Manufacturer: ext, Data: []byte{0x02, 0x0C}}, []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0xF7}},
		{"timing clock", TimingClock{}, []byte{0xF8}},
		{"start", Start{}, []byte{0xFA}},
		{"continue", Continue{}, []byte{0xFB}},
		{"stop", Stop{}, []byte{0xFC}},
		{"active sensing", ActiveSensing{}, []byte{0xFE}},
		{"system reset", SystemReset{}, []byte{0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.event); !bytes.Equal(got, tt.want) {
				t.Errorf("Encode(%v) = % X, want % X", tt.event, got, tt.want)
			}
		})
	}
}

func TestEncodeMatchesGomidi(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  gomidi.Message
	}{
		{"note on", NoteOn{Note: 64, Velocity: 100, Channel: 9}, gomidi.NoteOn(9, 64, 100)},
		{"cc", ControlChange{Controller: 7, Value: 90, Channel: 2}, gomidi.ControlChange(2, 7, 90)},
		{"program change", ProgramChange{Program: 5, Channel: 15}, gomidi.ProgramChange(15, 5)},
		{"channel aftertouch", ChannelAftertouch{Pressure: 33, Channel: 4}, gomidi.AfterTouch(4, 33)},
		{"poly aftertouch", PolyAftertouch{Note: 61, Pressure: 12, Channel: 6}, gomidi.PolyAfterTouch(6, 61, 12)},
		{"sysex", SysEx{Manufacturer: mustMfr(t, 0x43), Data: []byte{0x10, 0x4C}}, gomidi.SysEx([]byte{0x43, 0x10, 0x4C})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.event); !bytes.Equal(got, []byte(tt.want)) {
				t.Errorf("Encode(%v) = % X, gomidi says % X", tt.event, got, []byte(tt.want))
			}
		})
	}
}

func TestDecodeStatusMessageRoundTrip(t *testing.T) {
	events := []Event{
		NoteOff{Note: 1, Velocity: 2, Channel: 4, Group: 3},
		NoteOn{Note: 127, Velocity: 0, Channel: 15, Group: 15},
		PolyAftertouch{Note: 60, Pressure: 64, Channel: 4},
		ControlChange{Controller: 0x2F, Value: 0x41, Channel: 0},
		ProgramChange{Program: 127, Channel: 7, Group: 1},
		ChannelAftertouch{Pressure: 0, Channel: 2},
		PitchBend{Value: 8193, Channel: 0},
		TimecodeQuarterFrame{Data: 0x71},
		SongPositionPointer{Beat: 0x3FFF, Group: 9},
		SongSelect{Number: 5},
		TuneRequest{Group: 2},
		TimingClock{},
		Start{},
		Continue{},
		Stop{},
		ActiveSensing{},
		SystemReset{Group: 1},
	}

	for _, e := range events {
		t.Run(e.Kind().String(), func(t *testing.T) {
			wire := Encode(e)
			got, ok := DecodeStatusMessage(wire[0], wire[1:], GroupOf(e))
			if !ok {
				t.Fatalf("DecodeStatusMessage(% X) failed", wire)
			}
			if got != e {
				t.Errorf("round trip = %v, want %v", got, e)
			}
		})
	}
}

func TestDecodeStatusMessageUndefined(t *testing.T) {
	for _, status := range []byte{0xF0, 0xF4, 0xF5, 0xF7, 0xF9, 0xFD, 0x3C} {
		if e, ok := DecodeStatusMessage(status, []byte{0x01, 0x02}, 0); ok {
			t.Errorf("DecodeStatusMessage(0x%02X) = %v, want no event", status, e)
		}
	}
}

func TestDecodeStatusMessageShortData(t *testing.T) {
	if e, ok := DecodeStatusMessage(0x90, []byte{0x3C}, 0); ok {
		t.Errorf("got %v from a truncated note on", e)
	}
	if e, ok := DecodeStatusMessage(0xF2, nil, 0); ok {
		t.Errorf("got %v from a truncated song position pointer", e)
	}
}

func TestDataLength(t *testing.T) {
	tests := []struct {
		status byte
		n      int
		ok     bool
	}{
		{0x80, 2, true}, {0x9F, 2, true}, {0xA0, 2, true}, {0xB3, 2, true},
		{0xC0, 1, true}, {0xD9, 1, true}, {0xE0, 2, true},
		{0xF0, 0, false}, {0xF1, 1, true}, {0xF2, 2, true}, {0xF3, 1, true},
		{0xF4, 0, false}, {0xF5, 0, false}, {0xF6, 0, true}, {0xF7, 0, false},
		{0xF8, 0, true}, {0xF9, 0, false}, {0xFD, 0, false}, {0xFF, 0, true},
		{0x40, 0, false},
	}
	for _, tt := range tests {
		n, ok := DataLength(tt.status)
		if n != tt.n || ok != tt.ok {
			t.Errorf("DataLength(0x%02X) = %d, %v; want %d, %v", tt.status, n, ok, tt.n, tt.ok)
		}
	}
}

func TestConstructorsRejectOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"channel", second(NewNoteOn(60, 64, 16, 0)), ErrChannelOutOfRange},
		{"group", second(NewControlChange(1, 2, 0, 16)), ErrGroupOutOfRange},
		{"note", second(NewNoteOff(128, 0, 0, 0)), ErrDataOutOfRange},
		{"pitch bend", second(NewPitchBend(0x4000, 0, 0)), ErrDataOutOfRange},
		{"song position", second(NewSongPositionPointer(0x4000, 0)), ErrDataOutOfRange},
		{"program", second(NewProgramChange(0x80, 0, 0)), ErrDataOutOfRange},
		{"manufacturer zero", second(NewManufacturerID(0x00)), ErrInvalidManufacturer},
		{"manufacturer high bit", second(NewManufacturerID(0x80)), ErrDataOutOfRange},
		{"extended manufacturer", second(NewExtendedManufacturerID(0x00, 0x80)), ErrDataOutOfRange},
		{"sysex data", second(NewSysEx(ManufacturerID{b0: 0x41}, []byte{0x01, 0xF7}, 0)), ErrDataOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Fatalf("err = %v, want %v", tt.err, tt.want)
			}
			if kind := ftag.Get(tt.err); kind != ftag.InvalidArgument {
				t.Errorf("ftag = %q, want %q", kind, ftag.InvalidArgument)
			}
		})
	}
}

func second[T any](_ T, err error) error { return err }

func TestConstructorsAcceptBounds(t *testing.T) {
	if _, err := NewNoteOn(127, 127, 15, 15); err != nil {
		t.Errorf("NewNoteOn at bounds: %v", err)
	}
	if _, err := NewPitchBend(0x3FFF, 15, 15); err != nil {
		t.Errorf("NewPitchBend at bounds: %v", err)
	}
	data := []byte{0x01, 0x02}
	ev, err := NewSysEx(mustMfr(t, 0x41), data, 0)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 0x7F
	if !reflect.DeepEqual(ev.Data, []byte{0x01, 0x02}) {
		t.Errorf("NewSysEx kept a reference to the caller's slice: % X", ev.Data)
	}
}

func TestParseManufacturerID(t *testing.T) {
	id, n, ok := ParseManufacturerID([]byte{0x41, 0x10})
	if !ok || n != 1 || id.IsExtended() || !bytes.Equal(id.Bytes(), []byte{0x41}) {
		t.Errorf("one-byte form: %v %d %v", id, n, ok)
	}

	id, n, ok = ParseManufacturerID([]byte{0x00, 0x00, 0x66, 0x05})
	if !ok || n != 3 || !id.IsExtended() || !bytes.Equal(id.Bytes(), []byte{0x00, 0x00, 0x66}) {
		t.Errorf("three-byte form: %v %d %v", id, n, ok)
	}

	if _, _, ok := ParseManufacturerID([]byte{0x00, 0x21}); ok {
		t.Error("truncated three-byte form accepted")
	}
	if _, _, ok := ParseManufacturerID(nil); ok {
		t.Error("empty input accepted")
	}
}

func TestEncodeAll(t *testing.T) {
	got := EncodeAll(NoteOn{Note: 60, Velocity: 64}, TimingClock{}, ProgramChange{Program: 1})
	want := []byte{0x90, 0x3C, 0x40, 0xF8, 0xC0, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeAll = % X, want % X", got, want)
	}
}

func TestKindFamilyAndNames(t *testing.T) {
	if KindPitchBend.Family() != FamilyChannelVoice || KindTuneRequest.Family() != FamilySystemCommon ||
		KindSysEx.Family() != FamilySystemExclusive || KindSystemReset.Family() != FamilySystemRealTime {
		t.Error("kind families are wrong")
	}
	for k := KindNoteOff; k <= KindSystemReset; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if f, ok := ParseFamily("systemRealTime"); !ok || f != FamilySystemRealTime {
		t.Errorf("ParseFamily = %v, %v", f, ok)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		e    Event
		want error
	}{
		{"valid note on", NoteOn{Note: 60, Velocity: 100, Channel: 15, Group: 15}, nil},
		{"channel", NoteOn{Channel: 20, Note: 60}, ErrChannelOutOfRange},
		{"note", NoteOff{Note: 200}, ErrDataOutOfRange},
		{"controller value", ControlChange{Controller: 7, Value: 0x80}, ErrDataOutOfRange},
		{"pitch bend", PitchBend{Value: 0x4000}, ErrDataOutOfRange},
		{"song position group", SongPositionPointer{Beat: 1, Group: 16}, ErrGroupOutOfRange},
		{"real-time group", TimingClock{Group: 16}, ErrGroupOutOfRange},
		{"sysex data", SysEx{Manufacturer: ManufacturerID{b0: 0x41}, Data: []byte{0x90}}, ErrDataOutOfRange},
		{"valid sysex", SysEx{Manufacturer: ManufacturerID{b0: 0x41}, Data: []byte{0x10}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.e)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate = %v, want %v", err, tt.want)
			}
			if kind := ftag.Get(err); kind != ftag.InvalidArgument {
				t.Errorf("ftag = %q", kind)
			}
		})
	}

	if err := ValidateAll(Start{}, NoteOn{Channel: 16}); !errors.Is(err, ErrChannelOutOfRange) {
		t.Errorf("ValidateAll = %v", err)
	}
}
