package hui

import (
	"fmt"
	"sort"
)

// StripFunction is one of the eight switches found on every channel strip.
type StripFunction uint8

const (
	FaderTouch StripFunction = iota
	Select
	Mute
	Solo
	Auto
	VSelect
	Insert
	RecordReady
)

var stripFunctionNames = [...]string{"faderTouch", "select", "mute", "solo", "auto", "vSelect", "insert", "recordReady"}

// String returns the lower camel case name used in switch names.
func (f StripFunction) String() string {
	if int(f) < len(stripFunctionNames) {
		return stripFunctionNames[f]
	}
	return fmt.Sprintf("stripFunction(%d)", uint8(f))
}

// Switch identifies one physical HUI switch (or the LED behind it) by its
// zone and port. The zero value is channel strip 0 fader touch. Values
// outside the HUI switch table cannot be built from outside this package.
type Switch struct {
	zone, port uint8
}

// Global switch zones follow the channel strip zones 0x00-0x07.
var globalZones = map[uint8]struct {
	name  string
	ports []string
}{
	0x08: {"keyboard", []string{"ctrl", "shift", "editMode", "undo", "alt", "option", "editTool", "save"}},
	0x09: {"window", []string{"mix", "edit", "transport", "memLoc", "status", "alt"}},
	0x0A: {"bank", []string{"channelLeft", "bankLeft", "channelRight", "bankRight"}},
	0x0B: {"assign", []string{"output", "input", "pan", "sendE", "sendD", "sendC", "sendB", "sendA"}},
	0x0C: {"assign2", []string{"assign", "default", "suspend", "shift", "mute", "bypass", "recordReadyAll"}},
	0x0D: {"cursor", []string{"down", "left", "mode", "right", "up", "scrub", "shuttle"}},
	0x0E: {"transport", []string{"talkback", "rewind", "fastForward", "stop", "play", "record"}},
	0x0F: {"transport2", []string{"returnToZero", "end", "online", "loop", "quickPunch"}},
	0x10: {"transport3", []string{"audition", "pre", "in", "out", "post"}},
	0x11: {"controlRoom", []string{"input3", "input2", "input1", "mute", "discrete"}},
	0x12: {"controlRoom2", []string{"output3", "output2", "output1", "dim", "mono"}},
	0x13: {"numPad", []string{"0", "1", "4", "2", "5", "dot", "3", "6"}},
	0x14: {"numPad2", []string{"enter", "plus"}},
	0x15: {"numPad3", []string{"7", "8", "9", "minus", "clear", "equals", "divide", "multiply"}},
	0x17: {"autoEnable", []string{"plugin", "pan", "fader", "sendMute", "send", "mute"}},
	0x18: {"autoMode", []string{"trim", "latch", "read", "off", "write", "touch"}},
	0x19: {"status", []string{"phase", "monitor", "auto", "suspend", "create", "group"}},
	0x1A: {"edit", []string{"paste", "cut", "capture", "delete", "copy", "separate"}},
	0x1B: {"function", []string{"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8"}},
	0x1C: {"paramEdit", []string{"insert", "assign", "select1", "select2", "select3", "select4", "bypass", "compare"}},
}

var switchesByName = func() map[string]Switch {
	m := make(map[string]Switch)
	for _, s := range Switches() {
		m[s.String()] = s
	}
	return m
}()

// LookupSwitch returns the switch at zone/port, or false if the HUI switch
// table has nothing there.
func LookupSwitch(zone, port uint8) (Switch, bool) {
	if zone < StripCount {
		if port < 8 {
			return Switch{zone: zone, port: port}, true
		}
		return Switch{}, false
	}
	z, ok := globalZones[zone]
	if !ok || int(port) >= len(z.ports) {
		return Switch{}, false
	}
	return Switch{zone: zone, port: port}, true
}

// ChannelStripSwitch returns the fn switch of channel strip strip.
func ChannelStripSwitch(strip uint8, fn StripFunction) (Switch, error) {
	if err := checkStrip(strip); err != nil {
		return Switch{}, err
	}
	if fn > RecordReady {
		return Switch{}, invalid(ErrUnknownSwitch, "strip function %d", fn)
	}
	return Switch{zone: strip, port: uint8(fn)}, nil
}

// ParseSwitch looks a switch up by the name String returns, e.g.
// "strip3.solo" or "transport.play".
func ParseSwitch(name string) (Switch, error) {
	if s, ok := switchesByName[name]; ok {
		return s, nil
	}
	return Switch{}, invalid(ErrUnknownSwitch, "%q", name)
}

// Switches returns every switch in the table ordered by zone and port.
func Switches() []Switch {
	var out []Switch
	for zone := uint8(0); zone < StripCount; zone++ {
		for port := uint8(0); port < 8; port++ {
			out = append(out, Switch{zone: zone, port: port})
		}
	}
	zones := make([]int, 0, len(globalZones))
	for z := range globalZones {
		zones = append(zones, int(z))
	}
	sort.Ints(zones)
	for _, z := range zones {
		for port := range globalZones[uint8(z)].ports {
			out = append(out, Switch{zone: uint8(z), port: uint8(port)})
		}
	}
	return out
}

// Zone returns the zone byte of the switch address on the wire.
func (s Switch) Zone() uint8 { return s.zone }

// Port returns the port nibble of the switch address on the wire.
func (s Switch) Port() uint8 { return s.port }

// Strip reports the channel strip and function of a channel strip switch.
func (s Switch) Strip() (uint8, StripFunction, bool) {
	if s.zone >= StripCount {
		return 0, 0, false
	}
	return s.zone, StripFunction(s.port), true
}

// String names the switch, e.g. "strip3.mute".
func (s Switch) String() string {
	if strip, fn, ok := s.Strip(); ok {
		return fmt.Sprintf("strip%d.%s", strip, fn)
	}
	z := globalZones[s.zone]
	return z.name + "." + z.ports[s.port]
}
