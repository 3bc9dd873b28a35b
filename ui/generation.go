// Package ui renders generation progress with bubbletea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages the generation driver sends via Program.Send.

type EventStarted struct {
	ID   string
	Name string
}

type EventFinished struct {
	Name     string
	FileName string
}

type GenerationError struct {
	Err error
}

type GenerationComplete = struct{}

// Generation is the tea.Model shown while per-event documents render:
// a checkmark line per finished event and a spinner on the current one.
type Generation struct {
	spinner  spinner.Model
	current  string
	done     []EventFinished
	total    int
	err      error
	finished bool
}

func NewGeneration(total int) Generation {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	return Generation{spinner: s, total: total}
}

func (m Generation) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Generation) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventStarted:
		m.current = msg.Name
		return m, nil
	case EventFinished:
		m.done = append(m.done, msg)
		m.current = ""
		return m, nil
	case GenerationError:
		m.err = msg.Err
		m.finished = true
		return m, tea.Quit
	case GenerationComplete:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.finished = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Generation) View() string {
	var b strings.Builder
	for _, d := range m.done {
		fmt.Fprintf(&b, "✔ %s -> %s\n", d.Name, d.FileName)
	}
	if m.err != nil {
		fmt.Fprintf(&b, "❌ %s\n", m.err.Error())
		return b.String()
	}
	if m.current != "" {
		fmt.Fprintf(&b, "%s rendering %s\n", m.spinner.View(), m.current)
	}
	if m.finished {
		fmt.Fprintf(&b, "%d/%d events rendered\n", len(m.done), m.total)
	}
	return b.String()
}
