// Package components holds small reusable bubbletea widgets.
package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextField is a single-line text input with a label. The placeholder is
// shown while the field is empty and doubles as the suggested default.
type TextField struct {
	Label       string
	Placeholder string
	input       textinput.Model
	focused     bool
}

// NewTextField creates a new TextField
func NewTextField(label, placeholder, value string, width int) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 256
	ti.Width = width

	return TextField{
		Label:       label,
		Placeholder: placeholder,
		input:       ti,
	}
}

// Focus starts editing with the cursor at the end of the value.
func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	t.input.SetCursor(len(t.input.Value()))

	return t.input.Focus()
}

// Blur stops editing
func (t *TextField) Blur() {
	t.focused = false
	t.input.Blur()
}

// IsFocused returns whether the field accepts input
func (t *TextField) IsFocused() bool {
	return t.focused
}

// Value returns the current field value
func (t *TextField) Value() string {
	return t.input.Value()
}

// SetValue sets the field value
func (t *TextField) SetValue(value string) {
	t.input.SetValue(value)
}

// Update forwards messages to the input while focused.
func (t *TextField) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)

	return cmd
}

// InputView renders the input line without the label.
func (t *TextField) InputView() string {
	return t.input.View()
}
