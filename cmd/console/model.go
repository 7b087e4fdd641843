// Package console implements the typed-command-line control surface: a
// bubbletea TUI over the effect pool, cue list, and mixer send status, and
// the one concrete completion of the teacher's unfinished multicue
// prototype into a real external control collaborator.
package console

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/lumacue/command"
	"github.com/robmorgan/lumacue/cuelist"
	"github.com/robmorgan/lumacue/effect"
	"github.com/robmorgan/lumacue/mixer"
)

const tickInterval = 33 * time.Millisecond

// Model is the console's bubbletea model.
type Model struct {
	pool    *effect.Pool
	cueList *cuelist.CueList
	mix     *mixer.Mixer

	buffer   string
	lastCmds []effect.Command
	spinner  spinner.Model
	quitting bool
}

// New builds a console model wired to a running mixer.
func New(pool *effect.Pool, cueList *cuelist.CueList, mix *mixer.Mixer) Model {
	return Model{
		pool:    pool,
		cueList: cueList,
		mix:     mix,
		spinner: spinner.New(),
	}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

func (m Model) commit() Model {
	m.lastCmds = command.Expand(m.buffer, m.cueList)
	if len(m.lastCmds) > 0 {
		m.pool.AddCommands(m.lastCmds...)
	}
	m.buffer = ""
	return m
}

// String renders the command buffer with a trailing cursor, for the view.
func (m Model) String() string {
	return fmt.Sprintf("> %s_", m.buffer)
}
