package console

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m = m.commit()
			return m, nil
		case tea.KeyEsc:
			m.buffer = ""
			return m, nil
		case tea.KeyBackspace:
			if len(m.buffer) > 0 {
				m.buffer = m.buffer[:len(m.buffer)-1]
			}
			return m, nil
		case tea.KeyRunes:
			m.buffer += string(msg.Runes)
			return m, nil
		}
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
