// Package event defines the typed MIDI 1.0 message model together with its
// canonical wire encoding and single-message decoding.
//
// Every message kind is a distinct struct type implementing the sealed Event
// interface, so consumers match on them with a type switch:
//
//	switch e := ev.(type) {
//	case event.NoteOn:
//	    fmt.Println(e.Note, e.Velocity)
//	case event.SysEx:
//	    fmt.Println(e.Manufacturer, e.Data)
//	}
//
// Events are used as values. Build them with the New* constructors, which
// range-check channel, group and data values; the parser only ever produces
// values that satisfy the same checks.
package event

// Family groups event kinds the way the MIDI 1.0 specification does.
type Family uint8

const (
	FamilyChannelVoice Family = iota + 1
	FamilySystemCommon
	FamilySystemRealTime
	FamilySystemExclusive
)

var familyNames = map[Family]string{
	FamilyChannelVoice:    "channelVoice",
	FamilySystemCommon:    "systemCommon",
	FamilySystemRealTime:  "systemRealTime",
	FamilySystemExclusive: "systemExclusive",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return "unknownFamily"
}

// Kind identifies a single event case.
type Kind uint8

const (
	KindNoteOff Kind = iota + 1
	KindNoteOn
	KindPolyAftertouch
	KindControlChange
	KindProgramChange
	KindChannelAftertouch
	KindPitchBend
	KindTimecodeQuarterFrame
	KindSongPositionPointer
	KindSongSelect
	KindTuneRequest
	KindSysEx
	KindTimingClock
	KindStart
	KindContinue
	KindStop
	KindActiveSensing
	KindSystemReset
)

var kindNames = map[Kind]string{
	KindNoteOff:              "noteOff",
	KindNoteOn:               "noteOn",
	KindPolyAftertouch:       "polyAftertouch",
	KindControlChange:        "controlChange",
	KindProgramChange:        "programChange",
	KindChannelAftertouch:    "channelAftertouch",
	KindPitchBend:            "pitchBend",
	KindTimecodeQuarterFrame: "timecodeQuarterFrame",
	KindSongPositionPointer:  "songPositionPointer",
	KindSongSelect:           "songSelect",
	KindTuneRequest:          "tuneRequest",
	KindSysEx:                "sysEx",
	KindTimingClock:          "timingClock",
	KindStart:                "start",
	KindContinue:             "continue",
	KindStop:                 "stop",
	KindActiveSensing:        "activeSensing",
	KindSystemReset:          "systemReset",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknownKind"
}

// Family returns the family the kind belongs to.
func (k Kind) Family() Family {
	switch {
	case k >= KindNoteOff && k <= KindPitchBend:
		return FamilyChannelVoice
	case k >= KindTimecodeQuarterFrame && k <= KindTuneRequest:
		return FamilySystemCommon
	case k == KindSysEx:
		return FamilySystemExclusive
	case k >= KindTimingClock && k <= KindSystemReset:
		return FamilySystemRealTime
	}
	return 0
}

// ParseKind resolves a kind from its String() name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// ParseFamily resolves a family from its String() name.
func ParseFamily(name string) (Family, bool) {
	for f, n := range familyNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// Event is a decoded MIDI message. The set of implementations is closed.
type Event interface {
	Kind() Kind
	String() string
	sealed()
}

// Sink receives events as they complete.
type Sink interface {
	HandleEvent(e Event)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(e Event)

// HandleEvent calls f(e).
func (f SinkFunc) HandleEvent(e Event) { f(e) }

// GroupOf returns the group index carried by e.
func GroupOf(e Event) uint8 {
	switch e := e.(type) {
	case NoteOff:
		return e.Group
	case NoteOn:
		return e.Group
	case PolyAftertouch:
		return e.Group
	case ControlChange:
		return e.Group
	case ProgramChange:
		return e.Group
	case ChannelAftertouch:
		return e.Group
	case PitchBend:
		return e.Group
	case TimecodeQuarterFrame:
		return e.Group
	case SongPositionPointer:
		return e.Group
	case SongSelect:
		return e.Group
	case TuneRequest:
		return e.Group
	case SysEx:
		return e.Group
	case TimingClock:
		return e.Group
	case Start:
		return e.Group
	case Continue:
		return e.Group
	case Stop:
		return e.Group
	case ActiveSensing:
		return e.Group
	case SystemReset:
		return e.Group
	}
	return 0
}

// ChannelOf returns the channel of a channel-voice event.
func ChannelOf(e Event) (uint8, bool) {
	switch e := e.(type) {
	case NoteOff:
		return e.Channel, true
	case NoteOn:
		return e.Channel, true
	case PolyAftertouch:
		return e.Channel, true
	case ControlChange:
		return e.Channel, true
	case ProgramChange:
		return e.Channel, true
	case ChannelAftertouch:
		return e.Channel, true
	case PitchBend:
		return e.Channel, true
	}
	return 0, false
}
