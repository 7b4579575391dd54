package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrodaf/midikit/sdk/hui"
)

// surface is the part of a session the UI drives.
type surface interface {
	Model() *hui.Model
	SendHUI(e hui.Event) error
}

type updateMsg struct{}

type model struct {
	session  surface
	updates  <-chan struct{}
	snapshot *hui.Model
	status   string
	quitting bool
}

func newModel(s surface, updates <-chan struct{}) model {
	return model{session: s, updates: updates, snapshot: s.Model()}
}

func listenForUpdates(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-updates
		return updateMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "p":
			m.status = m.send("ping", hui.Ping{})
		case "r":
			m.status = m.send("reset", hui.SystemReset{})
		}

	case updateMsg:
		m.snapshot = m.session.Model()
		return m, listenForUpdates(m.updates)
	}
	return m, nil
}

func (m model) send(what string, e hui.Event) string {
	if err := m.session.SendHUI(e); err != nil {
		return what + " failed: " + err.Error()
	}
	return what + " sent"
}

func (m model) View() string {
	if m.quitting || m.snapshot == nil {
		return ""
	}
	return render(m.snapshot, m.status)
}
