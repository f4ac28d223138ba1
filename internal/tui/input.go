package tui

import (
	"strings"

	"github.com/AntoineGS/shellkit/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const inputWidth = 40

// inputModel asks for one line of text.
type inputModel struct {
	field   components.TextField
	done    bool
	aborted bool
}

func newInputModel(label, placeholder string) inputModel {
	field := components.NewTextField(label, placeholder, "", inputWidth)
	field.Focus()

	return inputModel{field: field}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, PromptKeys.Submit):
			m.done = true
			m.field.Blur()
			return m, tea.Quit
		case key.Matches(msg, PromptKeys.Abort):
			m.aborted = true
			m.field.Blur()
			return m, tea.Quit
		}
	}

	cmd := m.field.Update(msg)

	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(PromptLabelStyle.Render(m.field.Label))
	b.WriteString("\n")
	b.WriteString(m.field.InputView())
	b.WriteString("\n")
	b.WriteString(RenderHelp("enter", "accept", "esc", "abort"))

	return b.String()
}

// value is the trimmed text the user typed; empty means "use the default".
func (m inputModel) value() string {
	return strings.TrimSpace(m.field.Value())
}
