package event

import "fmt"

// PitchBendCenter is the 14-bit pitch-bend value meaning "no bend".
const PitchBendCenter uint16 = 0x2000

// NoteOff is a channel-voice note-off message (status 0x8n).
type NoteOff struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
	Group    uint8
}

// NewNoteOff validates and builds a NoteOff.
func NewNoteOff(note, velocity, channel, group uint8) (NoteOff, error) {
	if err := checkAll(checkChannel(channel), checkGroup(group), check7("note", note), check7("velocity", velocity)); err != nil {
		return NoteOff{}, err
	}
	return NoteOff{Note: note, Velocity: velocity, Channel: channel, Group: group}, nil
}

func (NoteOff) Kind() Kind { return KindNoteOff }
func (NoteOff) sealed()    {}

func (e NoteOff) String() string {
	return fmt.Sprintf("noteOff(note=%d vel=%d ch=%d grp=%d)", e.Note, e.Velocity, e.Channel, e.Group)
}

// NoteOn is a channel-voice note-on message (status 0x9n). A velocity of
// zero is kept as-is and not rewritten to NoteOff.
type NoteOn struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
	Group    uint8
}

// NewNoteOn validates and builds a NoteOn.
func NewNoteOn(note, velocity, channel, group uint8) (NoteOn, error) {
	if err := checkAll(checkChannel(channel), checkGroup(group), check7("note", note), check7("velocity", velocity)); err != nil {
		return NoteOn{}, err
	}
	return NoteOn{Note: note, Velocity: velocity, Channel: channel, Group: group}, nil
}

func (NoteOn) Kind() Kind { return KindNoteOn }
func (NoteOn) sealed()    {}

func (e NoteOn) String() string {
	return fmt.Sprintf("noteOn(note=%d vel=%d ch=%d grp=%d)", e.Note, e.Velocity, e.Channel, e.Group)
}

// PolyAftertouch is per-note pressure (status 0xAn).
type PolyAftertouch struct {
	Note     uint8
	Pressure uint8
	Channel  uint8
	Group    uint8
}

// NewPolyAftertouch validates and builds a PolyAftertouch.
func NewPolyAftertouch(note, pressure, channel, group uint8) (PolyAftertouch, error) {
	if err := checkAll(checkChannel(channel), checkGroup(group), check7("note", note), check7("pressure", pressure)); err != nil {
		return PolyAftertouch{}, err
	}
	return PolyAftertouch{Note: note, Pressure: pressure, Channel: channel, Group: group}, nil
}

func (PolyAftertouch) Kind() Kind { return KindPolyAftertouch }
func (PolyAftertouch) sealed()    {}

func (e PolyAftertouch) String() string {
	return fmt.Sprintf("polyAftertouch(note=%d pressure=%d ch=%d grp=%d)", e.Note, e.Pressure, e.Channel, e.Group)
}

// ControlChange is a controller message (status 0xBn).
type ControlChange struct {
	Controller uint8
	Value      uint8
	Channel    uint8
	Group      uint8
}

// NewControlChange validates and builds a ControlChange.
func NewControlChange(controller, value, channel, group uint8) (ControlChange, error) {
	if err := checkAll(checkChannel(channel), checkGroup(group), check7("controller", controller), check7("value", value)); err != nil {
		return ControlChange{}, err
	}
	return ControlChange{Controller: controller, Value: value, Channel: channel, Group: group}, nil
}

func (ControlChange) Kind() Kind { return KindControlChange }
func (ControlChange) sealed()    {}

func (e ControlChange) String() string {
	return fmt.Sprintf("cc(controller=%d value=%d ch=%d grp=%d)", e.Controller, e.Value, e.Channel, e.Group)
}

// ProgramChange selects a program (status 0xCn).
type ProgramChange struct {
	Program uint8
	Channel uint8
	Group   uint8
}

// NewProgramChange validates and builds a ProgramChange.
func NewProgramChange(program, channel, group uint8) (ProgramChange, error) {
	if err := checkAll(checkChannel(channel), checkGroup(group), check7("program", program)); err != nil {
		return ProgramChange{}, err
	}
	return ProgramChange{Program: program, Channel: channel, Group: group}, nil
}

func (ProgramChange) Kind() Kind { return KindProgramChange }
func (ProgramChange) sealed()    {}

func (e ProgramChange) String() string {
	return fmt.Sprintf("programChange(program=%d ch=%d grp=%d)", e.Program, e.Channel, e.Group)
}

// ChannelAftertouch is channel-wide pressure (status 0xDn).
type ChannelAftertouch struct {
	Pressure uint8
	Channel  uint8
	Group    uint8
}

// NewChannelAftertouch validates and builds a ChannelAftertouch.
func NewChannelAftertouch(pressure, channel, group uint8) (ChannelAftertouch, error) {
	if err := checkAll(checkChannel(channel), checkGroup(group), check7("pressure", pressure)); err != nil {
		return ChannelAftertouch{}, err
	}
	return ChannelAftertouch{Pressure: pressure, Channel: channel, Group: group}, nil
}

func (ChannelAftertouch) Kind() Kind { return KindChannelAftertouch }
func (ChannelAftertouch) sealed()    {}

func (e ChannelAftertouch) String() string {
	return fmt.Sprintf("chanAftertouch(pressure=%d ch=%d grp=%d)", e.Pressure, e.Channel, e.Group)
}

// PitchBend carries an unsigned 14-bit value; PitchBendCenter is neutral.
type PitchBend struct {
	Value   uint16
	Channel uint8
	Group   uint8
}

// NewPitchBend validates and builds a PitchBend.
func NewPitchBend(value uint16, channel, group uint8) (PitchBend, error) {
	if err := checkAll(checkChannel(channel), checkGroup(group), check14("pitch bend", value)); err != nil {
		return PitchBend{}, err
	}
	return PitchBend{Value: value, Channel: channel, Group: group}, nil
}

func (PitchBend) Kind() Kind { return KindPitchBend }
func (PitchBend) sealed()    {}

func (e PitchBend) String() string {
	return fmt.Sprintf("pitchBend(value=%d ch=%d grp=%d)", e.Value, e.Channel, e.Group)
}
