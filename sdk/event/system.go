package event

import "fmt"

// TimecodeQuarterFrame is an MTC quarter-frame message (0xF1).
type TimecodeQuarterFrame struct {
	Data  uint8
	Group uint8
}

// NewTimecodeQuarterFrame validates and builds a TimecodeQuarterFrame.
func NewTimecodeQuarterFrame(data, group uint8) (TimecodeQuarterFrame, error) {
	if err := checkAll(check7("quarter-frame", data), checkGroup(group)); err != nil {
		return TimecodeQuarterFrame{}, err
	}
	return TimecodeQuarterFrame{Data: data, Group: group}, nil
}

func (TimecodeQuarterFrame) Kind() Kind { return KindTimecodeQuarterFrame }
func (TimecodeQuarterFrame) sealed()    {}

func (e TimecodeQuarterFrame) String() string {
	return fmt.Sprintf("timecodeQuarterFrame(data=0x%02X grp=%d)", e.Data, e.Group)
}

// SongPositionPointer counts MIDI beats (sixteenth notes) from song start (0xF2).
type SongPositionPointer struct {
	Beat  uint16
	Group uint8
}

// NewSongPositionPointer validates and builds a SongPositionPointer.
func NewSongPositionPointer(beat uint16, group uint8) (SongPositionPointer, error) {
	if err := checkAll(check14("midi beat", beat), checkGroup(group)); err != nil {
		return SongPositionPointer{}, err
	}
	return SongPositionPointer{Beat: beat, Group: group}, nil
}

func (SongPositionPointer) Kind() Kind { return KindSongPositionPointer }
func (SongPositionPointer) sealed()    {}

func (e SongPositionPointer) String() string {
	return fmt.Sprintf("songPositionPointer(beat=%d grp=%d)", e.Beat, e.Group)
}

// SongSelect selects a song or sequence (0xF3).
type SongSelect struct {
	Number uint8
	Group  uint8
}

// NewSongSelect validates and builds a SongSelect.
func NewSongSelect(number, group uint8) (SongSelect, error) {
	if err := checkAll(check7("song number", number), checkGroup(group)); err != nil {
		return SongSelect{}, err
	}
	return SongSelect{Number: number, Group: group}, nil
}

func (SongSelect) Kind() Kind { return KindSongSelect }
func (SongSelect) sealed()    {}

func (e SongSelect) String() string {
	return fmt.Sprintf("songSelect(number=%d grp=%d)", e.Number, e.Group)
}

// TuneRequest asks analog synthesizers to tune their oscillators (0xF6).
type TuneRequest struct{ Group uint8 }

func (TuneRequest) Kind() Kind { return KindTuneRequest }
func (TuneRequest) sealed()    {}

func (e TuneRequest) String() string { return fmt.Sprintf("tuneRequest(grp=%d)", e.Group) }

// TimingClock is sent 24 times per quarter note (0xF8).
type TimingClock struct{ Group uint8 }

func (TimingClock) Kind() Kind { return KindTimingClock }
func (TimingClock) sealed()    {}

func (e TimingClock) String() string { return fmt.Sprintf("timingClock(grp=%d)", e.Group) }

// Start begins playback from the song start (0xFA).
type Start struct{ Group uint8 }

func (Start) Kind() Kind { return KindStart }
func (Start) sealed()    {}

func (e Start) String() string { return fmt.Sprintf("start(grp=%d)", e.Group) }

// Continue resumes playback from the current position (0xFB).
type Continue struct{ Group uint8 }

func (Continue) Kind() Kind { return KindContinue }
func (Continue) sealed()    {}

func (e Continue) String() string { return fmt.Sprintf("continue(grp=%d)", e.Group) }

// Stop halts playback (0xFC).
type Stop struct{ Group uint8 }

func (Stop) Kind() Kind { return KindStop }
func (Stop) sealed()    {}

func (e Stop) String() string { return fmt.Sprintf("stop(grp=%d)", e.Group) }

// ActiveSensing is the keep-alive message (0xFE).
type ActiveSensing struct{ Group uint8 }

func (ActiveSensing) Kind() Kind { return KindActiveSensing }
func (ActiveSensing) sealed()    {}

func (e ActiveSensing) String() string { return fmt.Sprintf("activeSensing(grp=%d)", e.Group) }

// SystemReset returns receivers to their power-up state (0xFF).
type SystemReset struct{ Group uint8 }

func (SystemReset) Kind() Kind { return KindSystemReset }
func (SystemReset) sealed()    {}

func (e SystemReset) String() string { return fmt.Sprintf("systemReset(grp=%d)", e.Group) }

// NewRealTime builds the real-time event for a 0xF8-0xFF status byte. It
// returns false for the undefined codes 0xF9 and 0xFD.
func NewRealTime(status byte, group uint8) (Event, bool) {
	group &= 0x0F
	switch status {
	case 0xF8:
		return TimingClock{Group: group}, true
	case 0xFA:
		return Start{Group: group}, true
	case 0xFB:
		return Continue{Group: group}, true
	case 0xFC:
		return Stop{Group: group}, true
	case 0xFE:
		return ActiveSensing{Group: group}, true
	case 0xFF:
		return SystemReset{Group: group}, true
	}
	return nil, false
}
