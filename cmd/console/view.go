package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/lumacue/mixer"
)

var (
	bufferStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m Model) View() string {
	if m.quitting {
		return "bye\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", bufferStyle.Render(m.String()))

	b.WriteString("active effects:\n")
	for _, e := range m.pool.Effects {
		fmt.Fprintf(&b, "  %-12s strength=%.2f\n", e.Name, e.Strength)
	}
	b.WriteString("\n")

	status := "ok"
	if m.mix.LastStatus == mixer.SendError {
		status = errorStyle.Render("error")
	}
	fmt.Fprintf(&b, "dmx send: %s   %s spinner\n", status, m.spinner.View())

	b.WriteString(helpStyle.Render("\ntype an effect key or cue number, Enter to commit, Esc to clear, Ctrl-C to exit\n"))

	return b.String()
}
