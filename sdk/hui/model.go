package hui

// ChannelStrip is the state of one channel strip.
type ChannelStrip struct {
	Name string

	FaderLevel   uint16
	FaderTouched bool

	Select      bool
	Mute        bool
	Solo        bool
	Auto        bool
	VSelect     bool
	Insert      bool
	RecordReady bool

	VPotDisplay  uint8
	VPotPosition int

	MeterLeft  uint8
	MeterRight uint8
}

func (c *ChannelStrip) setSwitch(fn StripFunction, on bool) {
	switch fn {
	case FaderTouch:
		c.FaderTouched = on
	case Select:
		c.Select = on
	case Mute:
		c.Mute = on
	case Solo:
		c.Solo = on
	case Auto:
		c.Auto = on
	case VSelect:
		c.VSelect = on
	case Insert:
		c.Insert = on
	case RecordReady:
		c.RecordReady = on
	}
}

// Switch reports the state of one of the strip's switches.
func (c ChannelStrip) Switch(fn StripFunction) bool {
	switch fn {
	case FaderTouch:
		return c.FaderTouched
	case Select:
		return c.Select
	case Mute:
		return c.Mute
	case Solo:
		return c.Solo
	case Auto:
		return c.Auto
	case VSelect:
		return c.VSelect
	case Insert:
		return c.Insert
	case RecordReady:
		return c.RecordReady
	}
	return false
}

// Model mirrors the state of a HUI surface as seen through decoded events.
// It always holds exactly StripCount channel strips.
//
// Model has no locking of its own. Mutate it from the goroutine that runs
// the decoder and hand Clone snapshots to readers elsewhere.
type Model struct {
	strips       [StripCount]ChannelStrip
	switches     map[Switch]bool
	editAssign   [vPotCount - StripCount]uint8
	selectAssign string
	large        [largeZones]string
	time         [timeDigits]uint8
	jog          int
	pings        int
}

// NewModel returns a model in its power-on state.
func NewModel() *Model {
	return &Model{switches: make(map[Switch]bool)}
}

// ChannelStrips returns a copy of the strips. Its length is always StripCount.
func (m *Model) ChannelStrips() []ChannelStrip {
	out := make([]ChannelStrip, StripCount)
	copy(out, m.strips[:])
	return out
}

// ChannelStrip returns strip i, or false when i is out of range.
func (m *Model) ChannelStrip(i int) (ChannelStrip, bool) {
	if i < 0 || i >= StripCount {
		return ChannelStrip{}, false
	}
	return m.strips[i], true
}

// SetChannelStrips replaces the strips. Extra elements are discarded and
// missing ones are reset to their default.
func (m *Model) SetChannelStrips(strips []ChannelStrip) {
	var next [StripCount]ChannelStrip
	copy(next[:], strips)
	m.strips = next
}

// ModifyChannelStrips lets fn edit the strips as a slice. Whatever slice fn
// returns is coerced back to StripCount elements as in SetChannelStrips.
func (m *Model) ModifyChannelStrips(fn func([]ChannelStrip) []ChannelStrip) {
	m.SetChannelStrips(fn(m.ChannelStrips()))
}

// Switch reports whether a switch (or its LED) is on.
func (m *Model) Switch(s Switch) bool {
	if strip, fn, ok := s.Strip(); ok {
		return m.strips[strip].Switch(fn)
	}
	return m.switches[s]
}

// EditAssignVPot returns the LED ring value of an edit-assign encoder.
func (m *Model) EditAssignVPot(v VPot) uint8 {
	if v < EditAssignA || v >= vPotCount {
		return 0
	}
	return m.editAssign[v-EditAssignA]
}

// SelectAssignText returns the four-character select-assign display.
func (m *Model) SelectAssignText() string { return m.selectAssign }

// LargeDisplay returns the ten-character text of each zone.
func (m *Model) LargeDisplay() [largeZones]string { return m.large }

// LargeDisplayLines joins the zones into the top and bottom lines.
func (m *Model) LargeDisplayLines() (top, bottom string) {
	for i, z := range m.large {
		if z == "" {
			z = "          "
		}
		if i < largeZones/2 {
			top += z
		} else {
			bottom += z
		}
	}
	return top, bottom
}

// TimeDisplay returns the digits, index 0 being the rightmost.
func (m *Model) TimeDisplay() [timeDigits]uint8 { return m.time }

// JogPosition is the sum of all jog wheel deltas since the last reset.
func (m *Model) JogPosition() int { return m.jog }

// Pings counts received pings.
func (m *Model) Pings() int { return m.pings }

// HandleHUIEvent makes Model a decoder Handler.
func (m *Model) HandleHUIEvent(e Event) { m.Apply(e) }

// Apply updates the model from e and reports whether e was accepted.
// Events addressing a strip, v-pot or display that does not exist are
// ignored.
func (m *Model) Apply(e Event) bool {
	switch e := e.(type) {
	case Ping:
		m.pings++

	case SwitchEvent:
		if strip, fn, ok := e.Switch.Strip(); ok {
			m.strips[strip].setSwitch(fn, e.On)
			break
		}
		if m.switches == nil {
			m.switches = make(map[Switch]bool)
		}
		m.switches[e.Switch] = e.On

	case FaderLevel:
		if e.Strip >= StripCount {
			return false
		}
		m.strips[e.Strip].FaderLevel = e.Level

	case LevelMeter:
		if e.Strip >= StripCount {
			return false
		}
		if e.Side == Right {
			m.strips[e.Strip].MeterRight = e.Level
		} else {
			m.strips[e.Strip].MeterLeft = e.Level
		}

	case VPotDelta:
		switch {
		case e.VPot < StripCount:
			m.strips[e.VPot].VPotPosition += int(e.Delta)
		case e.VPot >= vPotCount:
			return false
		}

	case VPotDisplay:
		switch {
		case e.VPot < StripCount:
			m.strips[e.VPot].VPotDisplay = e.Value
		case e.VPot < vPotCount:
			m.editAssign[e.VPot-EditAssignA] = e.Value
		default:
			return false
		}

	case JogWheel:
		m.jog += int(e.Delta)

	case SystemReset:
		*m = *NewModel()

	case SmallDisplay:
		switch {
		case e.Display < StripCount:
			m.strips[e.Display].Name = e.Text
		case e.Display == SelectAssignDisplay:
			m.selectAssign = e.Text
		default:
			return false
		}

	case LargeDisplay:
		if e.Zone >= largeZones {
			return false
		}
		m.large[e.Zone] = e.Text

	case TimeDisplay:
		if int(e.Offset)+len(e.Digits) > timeDigits {
			return false
		}
		copy(m.time[e.Offset:], e.Digits)

	default:
		return false
	}
	return true
}

// Clone returns an independent copy.
func (m *Model) Clone() *Model {
	c := *m
	c.switches = make(map[Switch]bool, len(m.switches))
	for k, v := range m.switches {
		c.switches[k] = v
	}
	return &c
}
