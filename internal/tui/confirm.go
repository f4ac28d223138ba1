package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// countdownMsg advances the confirm prompt's timeout by one second.
type countdownMsg struct{}

func countdown() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{}
	})
}

// confirmModel asks a yes/no question. When timeout is positive the default
// answer is taken once the countdown reaches zero.
type confirmModel struct {
	label     string
	remaining time.Duration
	def       bool
	answer    bool
	done      bool
	aborted   bool
	timedOut  bool
}

func newConfirmModel(label string, timeout time.Duration, def bool) confirmModel {
	return confirmModel{
		label:     label,
		remaining: timeout,
		def:       def,
	}
}

func (m confirmModel) Init() tea.Cmd {
	if m.remaining > 0 {
		return countdown()
	}

	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownMsg:
		if m.done {
			return m, nil
		}

		m.remaining -= time.Second
		if m.remaining <= 0 {
			m.answer = m.def
			m.done = true
			m.timedOut = true
			return m, tea.Quit
		}

		return m, countdown()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PromptKeys.Yes):
			m.answer = true
		case key.Matches(msg, PromptKeys.No):
			m.answer = false
		case key.Matches(msg, PromptKeys.Submit):
			m.answer = m.def
		case key.Matches(msg, PromptKeys.Abort):
			m.aborted = true
			return m, tea.Quit
		default:
			return m, nil
		}

		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(PromptLabelStyle.Render(m.label))
	b.WriteString(" ")
	b.WriteString(MutedTextStyle.Render(yesNoHint(m.def)))

	if m.remaining > 0 {
		b.WriteString(" ")
		b.WriteString(CountdownStyle.Render(fmt.Sprintf("(%ds)", int(m.remaining.Round(time.Second)/time.Second))))
	}

	b.WriteString("\n")
	b.WriteString(RenderHelp("y", "yes", "n", "no", "enter", "default"))

	return b.String()
}

func yesNoHint(def bool) string {
	if def {
		return "[Y/n]"
	}

	return "[y/N]"
}
