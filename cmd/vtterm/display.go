package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vtcore/vt100core"
)

// damageMsg signals that the emulation has finished a bulk-update cycle and
// the screen should be redrawn (§5 Damage).
type damageMsg struct{}

// titleMsg carries an OSC title-change request through to the bubbletea
// program's own window title.
type titleMsg string

// bubbleDisplay implements [vt100core.Display] by forwarding notifications
// into a running bubbletea program as messages, since bubbletea models may
// only be updated from Program.Send.
type bubbleDisplay struct {
	program *tea.Program
}

func newBubbleDisplay() *bubbleDisplay { return &bubbleDisplay{} }

func (d *bubbleDisplay) Bell() {
	// No audible bell in this harness; a visual flash would be wired here.
}

func (d *bubbleDisplay) SetTitle(title string) {
	if d.program != nil {
		d.program.Send(titleMsg(title))
	}
}

func (d *bubbleDisplay) Damage() {
	if d.program != nil {
		d.program.Send(damageMsg{})
	}
}

var _ vt100core.Display = (*bubbleDisplay)(nil)

// model is the bubbletea model rendering the active screen.
type model struct {
	em    *vt100core.Emulation
	pty   *vt100core.PTYAdapter
	title string
}

func newModel(em *vt100core.Emulation, pty *vt100core.PTYAdapter) model {
	return model{em: em, pty: pty}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.pty.Close()
			return m, tea.Quit
		}
		m.em.Write([]byte(msg.String()))
	case tea.WindowSizeMsg:
		m.em.Resize(msg.Height, msg.Width)
	case titleMsg:
		m.title = string(msg)
	case damageMsg:
		// nothing to do beyond the forced View() on the next render
	}
	return m, nil
}

var cellStyle = lipgloss.NewStyle()

func (m model) View() string {
	snap := m.em.Snapshot(vt100core.SnapshotDetailText)
	var b strings.Builder
	for _, line := range snap.Lines {
		b.WriteString(line.Text)
		b.WriteByte('\n')
	}
	return cellStyle.Render(b.String())
}
