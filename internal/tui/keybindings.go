package tui

import "github.com/charmbracelet/bubbles/key"

// PromptKeyMap defines keybindings shared by the prompts.
type PromptKeyMap struct {
	Submit key.Binding
	Abort  key.Binding
	Yes    key.Binding
	No     key.Binding
}

// PromptKeys are the keybindings of the input and confirm prompts.
var PromptKeys = PromptKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	Abort: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "abort"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
}
