package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leandrodaf/midikit/sdk/hui"
)

const (
	stripWidth = 8
	barHeight  = 8
	meterMax   = 0x0C
)

var (
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	displayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7fdb6a")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	stripStyle = lipgloss.NewStyle().
			Width(stripWidth).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#444"))
)

// faderBar fills rows bottom-up in proportion to level.
func faderBar(level uint16, rows int) []bool {
	lit := int(level) * rows / hui.FaderMax
	bar := make([]bool, rows)
	for i := 0; i < lit && i < rows; i++ {
		bar[rows-1-i] = true
	}
	return bar
}

// meterCells scales a 0-12 meter level onto rows cells, bottom-up.
func meterCells(level uint8, rows int) []bool {
	if level > meterMax {
		level = meterMax
	}
	lit := int(level) * rows / meterMax
	cells := make([]bool, rows)
	for i := 0; i < lit; i++ {
		cells[rows-1-i] = true
	}
	return cells
}

// timeText renders the time display left to right. Digit 0 is the rightmost.
func timeText(digits [8]uint8) string {
	var b strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%X", digits[i]&0x0F)
		if digits[i]&0x10 != 0 {
			b.WriteByte('.')
		}
	}
	return b.String()
}

func lamp(label string, on bool) string {
	if on {
		return activeStyle.Render(label)
	}
	return dimStyle.Render(label)
}

func cell(on bool, glyph string) string {
	if on {
		return activeStyle.Render(glyph)
	}
	return dimStyle.Render("·")
}

func renderStrip(i int, s hui.ChannelStrip) string {
	name := s.Name
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Ch %d", i+1)
	}
	lines := []string{
		activeStyle.Render(name),
		fmt.Sprintf("pot %+d", s.VPotPosition),
	}

	fader := faderBar(s.FaderLevel, barHeight)
	left := meterCells(s.MeterLeft, barHeight)
	right := meterCells(s.MeterRight, barHeight)
	for r := 0; r < barHeight; r++ {
		lines = append(lines, cell(left[r], "▮")+cell(right[r], "▮")+" "+cell(fader[r], "█"))
	}

	touched := " "
	if s.FaderTouched {
		touched = "*"
	}
	lines = append(lines,
		fmt.Sprintf("%04X%s", s.FaderLevel, touched),
		lamp("S", s.Select)+lamp("M", s.Mute)+lamp("O", s.Solo)+lamp("R", s.RecordReady),
		lamp("A", s.Auto)+lamp("V", s.VSelect)+lamp("I", s.Insert),
	)
	return stripStyle.Render(strings.Join(lines, "\n"))
}

var transport = []struct {
	label string
	name  string
}{
	{"RTZ", "transport2.returnToZero"},
	{"REW", "transport.rewind"},
	{"FF", "transport.fastForward"},
	{"STOP", "transport.stop"},
	{"PLAY", "transport.play"},
	{"REC", "transport.record"},
	{"LOOP", "transport2.loop"},
}

func renderTransport(m *hui.Model) string {
	parts := make([]string, 0, len(transport))
	for _, t := range transport {
		sw, err := hui.ParseSwitch(t.name)
		if err != nil {
			continue
		}
		parts = append(parts, lamp(t.label, m.Switch(sw)))
	}
	return strings.Join(parts, " ")
}

func render(m *hui.Model, status string) string {
	top, bottom := m.LargeDisplayLines()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		displayStyle.Render(top+"\n"+bottom),
		" ",
		displayStyle.Render(timeText(m.TimeDisplay())+"\n"+m.SelectAssignText()),
	)

	strips := m.ChannelStrips()
	cols := make([]string, len(strips))
	for i, s := range strips {
		cols[i] = renderStrip(i, s)
	}

	footer := fmt.Sprintf("jog %+d  pings %d", m.JogPosition(), m.Pings())
	if status != "" {
		footer += "  " + status
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		renderTransport(m),
		statusStyle.Render(footer),
		statusStyle.Render("q quit  p ping  r reset"),
	)
}
