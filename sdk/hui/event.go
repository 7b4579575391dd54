// Package hui encodes and decodes the HUI control-surface protocol on top of
// MIDI 1.0 events, and keeps a shadow model of the surface state.
//
// Both ends of a HUI link speak the same vocabulary: the host (a DAW) sends
// LED, display and meter updates, the surface sends switch presses, fader
// moves and encoder turns. An Encoder is bound to the Role it plays; the
// Decoder accepts traffic from either side.
//
//	dec := hui.NewDecoder(hui.HandlerFunc(func(e hui.Event) {
//	    fmt.Println(e)
//	}))
//	events, _ := parser.New().Parse(packet, parser.State{})
//	dec.Push(events...)
package hui

import (
	"fmt"
	"strings"
)

// StripCount is the number of channel strips on a HUI surface.
const StripCount = 8

// FaderMax is the top of the 14-bit fader range.
const FaderMax = 0x3FFF

// Role is the side of the HUI link an Encoder speaks for.
type Role uint8

const (
	RoleHost Role = iota
	RoleSurface
)

// String returns "host" or "surface".
func (r Role) String() string {
	if r == RoleSurface {
		return "surface"
	}
	return "host"
}

// ParseRole accepts "host" or "surface".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "host", "":
		return RoleHost, nil
	case "surface":
		return RoleSurface, nil
	}
	return RoleHost, invalid(ErrValueOutOfRange, "role %q", s)
}

// Event is a decoded HUI message. The set of implementations is closed.
type Event interface {
	String() string
	huiEvent()
}

// Ping is the keep-alive exchanged about once a second.
type Ping struct{}

// SwitchEvent reports a switch press or release, or from the host, an LED
// turning on or off.
type SwitchEvent struct {
	Switch Switch
	On     bool
}

// FaderLevel is a 14-bit fader position, 0 to FaderMax.
type FaderLevel struct {
	Strip uint8
	Level uint16
}

// Side selects one half of a stereo meter.
type Side uint8

const (
	Left Side = iota
	Right
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// LevelMeter is a 4-bit meter segment count for one side of a strip.
type LevelMeter struct {
	Strip uint8
	Side  Side
	Level uint8
}

// VPot identifies a rotary encoder: 0-7 are the channel strip pots, the
// rest belong to the edit-assign section.
type VPot uint8

const (
	EditAssignA VPot = StripCount + iota
	EditAssignB
	EditAssignC
	EditAssignD

	vPotCount = EditAssignD + 1
)

// String names the v-pot, e.g. "strip2" or "editAssignA".
func (v VPot) String() string {
	if v < StripCount {
		return fmt.Sprintf("strip%d", uint8(v))
	}
	if v < vPotCount {
		return "editAssign" + string(rune('A'+v-EditAssignA))
	}
	return fmt.Sprintf("vPot(%d)", uint8(v))
}

// VPotDelta is an encoder turn by a signed number of detents.
type VPotDelta struct {
	VPot  VPot
	Delta int8
}

// VPotDisplay sets the LED ring around an encoder.
type VPotDisplay struct {
	VPot  VPot
	Value uint8
}

// JogWheel is a turn of the jog wheel by a signed number of ticks.
type JogWheel struct {
	Delta int8
}

// SystemReset asks the receiver to return to its power-on state.
type SystemReset struct{}

// SelectAssignDisplay addresses the 4-character select-assign display
// through SmallDisplay; 0-7 are the channel strip name displays.
const SelectAssignDisplay = StripCount

// SmallDisplay writes a 4-character display.
type SmallDisplay struct {
	Display uint8
	Text    string
}

// LargeDisplay writes one 10-character zone of the 2x40 main display.
type LargeDisplay struct {
	Zone uint8
	Text string
}

// TimeDisplay writes digits of the 8-digit time code display starting at
// Offset, counted from the rightmost digit. Each digit is 0x00-0x0F with
// 0x10 set to light the decimal point after it.
type TimeDisplay struct {
	Offset uint8
	Digits []uint8
}

const (
	smallDisplayLen = 4
	largeDisplayLen = 10
	largeZones      = 8
	timeDigits      = 8
	deltaMax        = 0x3F
)

// NewSwitchEvent reports a switch press (on) or release.
func NewSwitchEvent(s Switch, on bool) SwitchEvent { return SwitchEvent{Switch: s, On: on} }

// NewFaderLevel builds a 14-bit fader position for a channel strip.
//
// Returns:
//   - FaderLevel: the fader event.
//   - error: ErrValueOutOfRange when strip or level is out of range.
func NewFaderLevel(strip uint8, level uint16) (FaderLevel, error) {
	if err := checkStrip(strip); err != nil {
		return FaderLevel{}, err
	}
	if level > FaderMax {
		return FaderLevel{}, invalid(ErrValueOutOfRange, "fader level %d exceeds 14 bits", level)
	}
	return FaderLevel{Strip: strip, Level: level}, nil
}

// NewLevelMeter builds a meter reading for one side of a strip. Level is
// 4 bits wide.
func NewLevelMeter(strip uint8, side Side, level uint8) (LevelMeter, error) {
	if err := checkStrip(strip); err != nil {
		return LevelMeter{}, err
	}
	if side > Right {
		return LevelMeter{}, invalid(ErrValueOutOfRange, "meter side %d", side)
	}
	if level > 0x0F {
		return LevelMeter{}, invalid(ErrValueOutOfRange, "meter level %d exceeds 4 bits", level)
	}
	return LevelMeter{Strip: strip, Side: side, Level: level}, nil
}

func checkVPot(v VPot) error {
	if v >= vPotCount {
		return invalid(ErrValueOutOfRange, "v-pot %d", v)
	}
	return nil
}

func checkDelta(name string, d int8) error {
	if d > deltaMax || d < -deltaMax {
		return invalid(ErrValueOutOfRange, "%s delta %d outside ±%d", name, d, deltaMax)
	}
	return nil
}

// NewVPotDelta builds a relative v-pot turn. Positive deltas turn clockwise.
func NewVPotDelta(v VPot, delta int8) (VPotDelta, error) {
	if err := checkVPot(v); err != nil {
		return VPotDelta{}, err
	}
	if err := checkDelta("v-pot", delta); err != nil {
		return VPotDelta{}, err
	}
	return VPotDelta{VPot: v, Delta: delta}, nil
}

// NewVPotDisplay sets the LED ring pattern around a v-pot.
func NewVPotDisplay(v VPot, value uint8) (VPotDisplay, error) {
	if err := checkVPot(v); err != nil {
		return VPotDisplay{}, err
	}
	if value > 0x7F {
		return VPotDisplay{}, invalid(ErrValueOutOfRange, "v-pot display value %d exceeds 7 bits", value)
	}
	return VPotDisplay{VPot: v, Value: value}, nil
}

// NewJogWheel builds a relative jog wheel turn.
func NewJogWheel(delta int8) (JogWheel, error) {
	if err := checkDelta("jog wheel", delta); err != nil {
		return JogWheel{}, err
	}
	return JogWheel{Delta: delta}, nil
}

// NewSmallDisplay pads text with spaces to 4 characters. Text must be
// printable ASCII.
func NewSmallDisplay(display uint8, text string) (SmallDisplay, error) {
	if display > SelectAssignDisplay {
		return SmallDisplay{}, invalid(ErrValueOutOfRange, "small display %d", display)
	}
	t, err := fitText(text, smallDisplayLen)
	if err != nil {
		return SmallDisplay{}, err
	}
	return SmallDisplay{Display: display, Text: t}, nil
}

// NewLargeDisplay pads text with spaces to 10 characters. Zones 0-3 are the
// top line, 4-7 the bottom line.
func NewLargeDisplay(zone uint8, text string) (LargeDisplay, error) {
	if zone >= largeZones {
		return LargeDisplay{}, invalid(ErrValueOutOfRange, "large display zone %d", zone)
	}
	t, err := fitText(text, largeDisplayLen)
	if err != nil {
		return LargeDisplay{}, err
	}
	return LargeDisplay{Zone: zone, Text: t}, nil
}

// NewTimeDisplay writes digits into the time code display starting at
// offset, counted from the rightmost digit.
//
// Returns:
//   - TimeDisplay: the display update, holding a copy of digits.
//   - error: ErrValueOutOfRange when no digits are given, they overflow the
//     display, or a digit exceeds 0x1F.
func NewTimeDisplay(offset uint8, digits ...uint8) (TimeDisplay, error) {
	if len(digits) == 0 || int(offset)+len(digits) > timeDigits {
		return TimeDisplay{}, invalid(ErrValueOutOfRange, "%d time digits at offset %d", len(digits), offset)
	}
	for i, d := range digits {
		if d > 0x1F {
			return TimeDisplay{}, invalid(ErrValueOutOfRange, "time digit %d is 0x%02X", i, d)
		}
	}
	return TimeDisplay{Offset: offset, Digits: append([]uint8(nil), digits...)}, nil
}

func fitText(text string, n int) (string, error) {
	if len(text) > n {
		return "", invalid(ErrInvalidText, "%q longer than %d characters", text, n)
	}
	for i := 0; i < len(text); i++ {
		if text[i] < 0x20 || text[i] > 0x7E {
			return "", invalid(ErrInvalidText, "%q has non-printable byte at %d", text, i)
		}
	}
	return text + strings.Repeat(" ", n-len(text)), nil
}

func (Ping) huiEvent()         {}
func (SwitchEvent) huiEvent()  {}
func (FaderLevel) huiEvent()   {}
func (LevelMeter) huiEvent()   {}
func (VPotDelta) huiEvent()    {}
func (VPotDisplay) huiEvent()  {}
func (JogWheel) huiEvent()     {}
func (SystemReset) huiEvent()  {}
func (SmallDisplay) huiEvent() {}
func (LargeDisplay) huiEvent() {}
func (TimeDisplay) huiEvent()  {}

// String renders the Ping for logs and monitors.
func (Ping) String() string { return "ping" }

// String renders the SwitchEvent for logs and monitors.
func (e SwitchEvent) String() string {
	state := "off"
	if e.On {
		state = "on"
	}
	return fmt.Sprintf("switch(%s %s)", e.Switch, state)
}

// String renders the FaderLevel for logs and monitors.
func (e FaderLevel) String() string {
	return fmt.Sprintf("fader(strip=%d level=%d)", e.Strip, e.Level)
}

// String renders the LevelMeter for logs and monitors.
func (e LevelMeter) String() string {
	return fmt.Sprintf("meter(strip=%d side=%s level=%d)", e.Strip, e.Side, e.Level)
}

// String renders the VPotDelta for logs and monitors.
func (e VPotDelta) String() string {
	return fmt.Sprintf("vPot(%s delta=%+d)", e.VPot, e.Delta)
}

// String renders the VPotDisplay for logs and monitors.
func (e VPotDisplay) String() string {
	return fmt.Sprintf("vPotDisplay(%s value=%d)", e.VPot, e.Value)
}

// String renders the JogWheel for logs and monitors.
func (e JogWheel) String() string { return fmt.Sprintf("jogWheel(delta=%+d)", e.Delta) }

// String renders the SystemReset for logs and monitors.
func (SystemReset) String() string { return "systemReset" }

// String renders the SmallDisplay for logs and monitors.
func (e SmallDisplay) String() string {
	return fmt.Sprintf("smallDisplay(%d %q)", e.Display, e.Text)
}

// String renders the LargeDisplay for logs and monitors.
func (e LargeDisplay) String() string {
	return fmt.Sprintf("largeDisplay(zone=%d %q)", e.Zone, e.Text)
}

// String renders the TimeDisplay for logs and monitors.
func (e TimeDisplay) String() string {
	return fmt.Sprintf("timeDisplay(offset=%d digits=% X)", e.Offset, e.Digits)
}
